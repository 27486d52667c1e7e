package core

import "context"

// Repository defines the contract for storing and retrieving notes.
// Adhering to this interface allows callers to stay independent of the
// underlying storage mechanism (local key-value store, remote HTTP API).
type Repository interface {
	// List returns all persisted notes in storage order.
	List(ctx context.Context) ([]Note, error)

	// Create assigns an ID and timestamps, persists the note and returns it.
	Create(ctx context.Context, d Draft) (Note, error)

	// Update merges p onto the note identified by id and refreshes UpdatedAt.
	// It returns (nil, nil) when no note has that id.
	Update(ctx context.Context, id string, p Patch) (*Note, error)

	// Remove deletes the note identified by id. Removing an absent id is not an error.
	Remove(ctx context.Context, id string) (Ack, error)
}

// Watchable defines an interface for repositories that can report external changes.
type Watchable interface {
	// Watch emits an event whenever the persisted collection changes.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context) (<-chan Event, error)
}
