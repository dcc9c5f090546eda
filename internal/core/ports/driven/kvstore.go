package driven

import "context"

// KVStore persists opaque values under fixed keys.
// It is the terminal counterpart of browser local storage.
type KVStore interface {
	// Get returns the value for key, or domain.ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying connection.
	Close() error
}
