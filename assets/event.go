package assets

//go:generate go tool stringer -type=EventKind -trimprefix=Event

type EventKind uint8

const (
	// EventCreated is sent once a value was added for a handle
	EventCreated EventKind = iota + 1

	// EventModified is sent after a value was replaced or mutably accessed
	EventModified

	// EventRemoved is sent after a value was removed from the store
	EventRemoved
)

// Event notifies about a change in the lifecycle of an asset.
type Event[T any] struct {
	Kind   EventKind
	Handle Handle[T]
}
