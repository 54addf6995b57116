package ecs

import (
	"fmt"
	"reflect"
)

// Resources holds at most one value per type. Values are stored as pointers
// so that systems can mutate them in place.
type Resources struct {
	items map[reflect.Type]any
}

// Insert adds or replaces a resource. A pointer value is stored as is and
// registered under its element type.
func (r *Resources) Insert(value any) {
	if value == nil {
		panic("ecs: can not insert nil resource")
	}

	if r.items == nil {
		r.items = map[reflect.Type]any{}
	}

	typ := reflect.TypeOf(value)
	if typ.Kind() == reflect.Pointer {
		r.items[typ.Elem()] = value
		return
	}

	ptr := reflect.New(typ)
	ptr.Elem().Set(reflect.ValueOf(value))
	r.items[typ] = ptr.Interface()
}

func (r *Resources) Len() int {
	return len(r.items)
}

// Resource returns the resource of type T, if it exists.
func Resource[T any](w *World) (*T, bool) {
	value, ok := w.resources.items[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}

	return value.(*T), true
}

// MustResource returns the resource of type T and panics if it does not exist.
// Use this for resources that a plugin guarantees to be present.
func MustResource[T any](w *World) *T {
	value, ok := Resource[T](w)
	if !ok {
		panic(fmt.Sprintf("ecs: resource %s does not exist", reflect.TypeFor[T]()))
	}

	return value
}

func HasResource[T any](w *World) bool {
	_, ok := Resource[T](w)
	return ok
}

// InitResource inserts the zero value of T if no resource of type T exists yet
// and returns the (possibly existing) resource.
func InitResource[T any](w *World) *T {
	if value, ok := Resource[T](w); ok {
		return value
	}

	value := new(T)
	w.resources.Insert(value)

	return value
}

func RemoveResource[T any](w *World) bool {
	typ := reflect.TypeFor[T]()

	_, ok := w.resources.items[typ]
	delete(w.resources.items, typ)

	return ok
}
