package ecs

type eventInstance[T any] struct {
	id    uint64
	event T
}

// Events is a double buffered event queue. Events survive two calls to Update,
// so every reader that runs once per tick sees every event, no matter whether it
// runs before or after the sender.
type Events[T any] struct {
	previous []eventInstance[T]
	current  []eventInstance[T]
	nextID   uint64
}

func (e *Events[T]) Send(event T) {
	e.current = append(e.current, eventInstance[T]{id: e.nextID, event: event})
	e.nextID++
}

// Update drops all events of the previous tick and moves the events of the
// current tick into the previous buffer.
func (e *Events[T]) Update() {
	clear(e.previous)
	e.previous, e.current = e.current, e.previous[:0]
}

// Len returns the number of events that are still buffered.
func (e *Events[T]) Len() int {
	return len(e.previous) + len(e.current)
}

// EventReader tracks the events it already has seen. Each system that
// reads events needs its own reader.
type EventReader[T any] struct {
	cursor uint64
}

// Read returns all events that this reader has not yet seen.
func (r *EventReader[T]) Read(events *Events[T]) []T {
	if events == nil {
		return nil
	}

	var result []T

	for _, buffer := range [][]eventInstance[T]{events.previous, events.current} {
		for _, instance := range buffer {
			if instance.id >= r.cursor {
				result = append(result, instance.event)
			}
		}
	}

	r.cursor = events.nextID

	return result
}

// ReadFrom reads unseen events from the Events[T] resource of the world.
func (r *EventReader[T]) ReadFrom(w *World) []T {
	events, _ := Resource[Events[T]](w)
	return r.Read(events)
}

// SendEvent sends an event using the Events[T] resource of the world.
// If the resource does not exist, the event is dropped.
func SendEvent[T any](w *World, event T) bool {
	events, ok := Resource[Events[T]](w)
	if !ok {
		return false
	}

	events.Send(event)
	return true
}
