package assets

import (
	"iter"

	"github.com/google/uuid"
	"github.com/oliverbestmann/dodgeball/ecs"
)

// Assets stores all loaded values of type T. Every change is recorded as
// an Event and published to the world by FlushEvents.
type Assets[T any] struct {
	items   map[uuid.UUID]*T
	pending []Event[T]
}

func NewAssets[T any]() *Assets[T] {
	return &Assets[T]{items: map[uuid.UUID]*T{}}
}

// Add stores a new value and returns a fresh handle to it.
func (a *Assets[T]) Add(value T) Handle[T] {
	handle := NewHandle[T]()
	a.Insert(handle, value)
	return handle
}

// Reserve returns a fresh handle without a value. The value can be
// provided later using Insert.
func (a *Assets[T]) Reserve() Handle[T] {
	return NewHandle[T]()
}

// Insert stores the value for the given handle. This sends EventCreated if
// the handle had no value yet and EventModified otherwise.
func (a *Assets[T]) Insert(handle Handle[T], value T) {
	if handle.IsZero() {
		panic("assets: can not insert value for zero handle")
	}

	if a.items == nil {
		a.items = map[uuid.UUID]*T{}
	}

	kind := EventCreated
	if _, exists := a.items[handle.id]; exists {
		kind = EventModified
	}

	a.items[handle.id] = &value
	a.pending = append(a.pending, Event[T]{Kind: kind, Handle: handle})
}

// Get returns the value of the handle. The value must not be modified,
// use GetMut for that.
func (a *Assets[T]) Get(handle Handle[T]) (*T, bool) {
	value, ok := a.items[handle.id]
	return value, ok
}

// GetMut returns the value of the handle for modification and
// records an EventModified.
func (a *Assets[T]) GetMut(handle Handle[T]) (*T, bool) {
	value, ok := a.items[handle.id]
	if !ok {
		return nil, false
	}

	a.pending = append(a.pending, Event[T]{Kind: EventModified, Handle: handle})

	return value, true
}

func (a *Assets[T]) Remove(handle Handle[T]) (T, bool) {
	value, ok := a.items[handle.id]
	if !ok {
		var zeroT T
		return zeroT, false
	}

	delete(a.items, handle.id)
	a.pending = append(a.pending, Event[T]{Kind: EventRemoved, Handle: handle})

	return *value, true
}

func (a *Assets[T]) Contains(handle Handle[T]) bool {
	_, ok := a.items[handle.id]
	return ok
}

func (a *Assets[T]) Len() int {
	return len(a.items)
}

// All iterates over all handles and their values in no particular order.
func (a *Assets[T]) All() iter.Seq2[Handle[T], *T] {
	return func(yield func(Handle[T], *T) bool) {
		for id, value := range a.items {
			if !yield(Handle[T]{id: id}, value) {
				return
			}
		}
	}
}

// FlushEvents moves all recorded events into the given event queue.
func (a *Assets[T]) FlushEvents(events *ecs.Events[Event[T]]) {
	for _, event := range a.pending {
		events.Send(event)
	}

	clear(a.pending)
	a.pending = a.pending[:0]
}
