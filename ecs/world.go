package ecs

import (
	"fmt"
	"iter"
	"reflect"
)

// World stores entities, their components and global resources.
// A World is not safe for concurrent use, the scheduler runs
// systems one after another.
type World struct {
	entities  entityRegistry
	stores    map[reflect.Type]*componentStore
	resources Resources
	commands  Commands
}

// componentStore holds all values of one component type, keyed by entity id.
// Values are stored as pointers to allow in place mutation.
type componentStore struct {
	values map[uint32]any
}

func NewWorld() *World {
	w := &World{
		stores: map[reflect.Type]*componentStore{},
	}

	w.commands.world = w

	return w
}

// Spawn creates a new entity with the given components. Each component
// is stored by its dynamic type, a second value of the same type replaces
// the first one.
func (w *World) Spawn(components ...any) Entity {
	entity := w.entities.reserve()
	w.Insert(entity, components...)
	return entity
}

// Insert adds or replaces components of an existing entity. Inserting into
// a dead entity is ignored and reported as false.
func (w *World) Insert(entity Entity, components ...any) bool {
	if !w.entities.isAlive(entity) {
		return false
	}

	for _, component := range components {
		if component == nil {
			panic("ecs: can not insert nil component")
		}

		typ := reflect.TypeOf(component)

		ptr := reflect.New(typ)
		ptr.Elem().Set(reflect.ValueOf(component))

		w.storeOf(typ).values[entity.ID] = ptr.Interface()
	}

	return true
}

// Despawn removes the entity and all of its components.
func (w *World) Despawn(entity Entity) bool {
	if !w.entities.isAlive(entity) {
		return false
	}

	for _, store := range w.stores {
		delete(store.values, entity.ID)
	}

	return w.entities.release(entity)
}

func (w *World) IsAlive(entity Entity) bool {
	return w.entities.isAlive(entity)
}

// EntityCount returns the number of alive entities.
func (w *World) EntityCount() int {
	return w.entities.alive
}

// Entities iterates all alive entities in ascending id order.
func (w *World) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for id, meta := range w.entities.metas {
			if !meta.alive {
				continue
			}

			if !yield(Entity{ID: uint32(id), Version: meta.version}) {
				return
			}
		}
	}
}

// Commands returns the command queue of this world. Queued commands are
// applied by ApplyCommands.
func (w *World) Commands() *Commands {
	return &w.commands
}

// ApplyCommands executes all queued commands in the order they were queued.
func (w *World) ApplyCommands() {
	w.commands.apply()
}

func (w *World) Resources() *Resources {
	return &w.resources
}

// InsertResource adds or replaces the resource with the type of value.
// Pointers are stored as is, everything else is copied into a new pointer.
func (w *World) InsertResource(value any) {
	w.resources.Insert(value)
}

func (w *World) storeOf(typ reflect.Type) *componentStore {
	store, ok := w.stores[typ]
	if !ok {
		store = &componentStore{values: map[uint32]any{}}
		w.stores[typ] = store
	}

	return store
}

// Get returns a pointer to the component of type T of the given entity.
func Get[T any](w *World, entity Entity) (*T, bool) {
	if !w.entities.isAlive(entity) {
		return nil, false
	}

	store, ok := w.stores[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}

	value, ok := store.values[entity.ID]
	if !ok {
		return nil, false
	}

	return value.(*T), true
}

func Has[T any](w *World, entity Entity) bool {
	_, ok := Get[T](w, entity)
	return ok
}

// Remove removes the component of type T from the given entity
func Remove[T any](w *World, entity Entity) bool {
	if !w.entities.isAlive(entity) {
		return false
	}

	store, ok := w.stores[reflect.TypeFor[T]()]
	if !ok {
		return false
	}

	_, ok = store.values[entity.ID]
	delete(store.values, entity.ID)

	return ok
}

// Query iterates all entities that have a component of type T,
// in ascending entity id order.
func Query[T any](w *World) iter.Seq2[Entity, *T] {
	return func(yield func(Entity, *T) bool) {
		store, ok := w.stores[reflect.TypeFor[T]()]
		if !ok || len(store.values) == 0 {
			return
		}

		for entity := range w.Entities() {
			value, ok := store.values[entity.ID]
			if !ok {
				continue
			}

			if !yield(entity, value.(*T)) {
				return
			}
		}
	}
}

// Row2 is a single result of Query2
type Row2[A, B any] struct {
	Entity Entity
	First  *A
	Second *B
}

// Query2 iterates all entities that have a component of type A and of type B.
func Query2[A, B any](w *World) iter.Seq[Row2[A, B]] {
	return func(yield func(Row2[A, B]) bool) {
		for entity, first := range Query[A](w) {
			second, ok := Get[B](w, entity)
			if !ok {
				continue
			}

			if !yield(Row2[A, B]{Entity: entity, First: first, Second: second}) {
				return
			}
		}
	}
}

// Count returns the number of entities with a component of type T.
func Count[T any](w *World) int {
	var count int
	for range Query[T](w) {
		count++
	}

	return count
}

// Single returns the only entity with a component of type T. If there
// are none or more than one entities, an error is returned.
func Single[T any](w *World) (Entity, *T, error) {
	var found Entity
	var value *T
	var count int

	for entity, component := range Query[T](w) {
		found, value = entity, component
		count++
	}

	if count != 1 {
		return Entity{}, nil, fmt.Errorf("expected exactly one %s, found %d", reflect.TypeFor[T](), count)
	}

	return found, value, nil
}
