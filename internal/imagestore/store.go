package imagestore

import "context"

// Store maps a logical image path to a data URL. Injected into the image
// handler so the dev-only memory backend can be swapped for a durable one
// without touching handler logic.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, dataURL string) error
}
