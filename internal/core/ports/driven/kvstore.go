package driven

import "context"

// KeyValueStore is a durable string-keyed persistence layer.
type KeyValueStore interface {
	// Get returns the stored value and whether the key exists.
	// A missing key is not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, overwriting any prior value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
