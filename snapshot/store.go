package snapshot

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a snapshot does not exist.
//
// Implementations must return an error satisfying
// errors.Is(err, ErrNotFound).
var ErrNotFound = errors.New("snapshot not found")

// Store is an abstraction over whole-document snapshot storage.
//
// Snapshots are small and written/read as single byte slices; backends do
// not need to support partial reads. Implementations must be safe for
// concurrent use.
type Store interface {
	// Put writes a snapshot atomically, replacing any existing one with the
	// same name.
	Put(ctx context.Context, name string, data []byte) error

	// Get reads a snapshot in full.
	Get(ctx context.Context, name string) ([]byte, error)

	// List returns the names of all snapshots with the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes a snapshot. Deleting a missing snapshot is not an error.
	Delete(ctx context.Context, name string) error
}
