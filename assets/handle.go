package assets

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// Handle is an opaque reference to an asset of type T. Handles are
// compared by identity, two handles are equal if they refer to the
// same asset. The zero Handle refers to no asset.
type Handle[T any] struct {
	id uuid.UUID
}

// NewHandle reserves a fresh handle that does not yet refer to any value.
func NewHandle[T any]() Handle[T] {
	return Handle[T]{id: uuid.New()}
}

// HandleOf rebuilds a handle from the id of an asset.
func HandleOf[T any](id uuid.UUID) Handle[T] {
	return Handle[T]{id: id}
}

func (h Handle[T]) ID() uuid.UUID {
	return h.id
}

func (h Handle[T]) IsZero() bool {
	return h.id == uuid.Nil
}

func (h Handle[T]) String() string {
	return fmt.Sprintf("Handle[%s](%s)", reflect.TypeFor[T]().Name(), h.id)
}
