package cart

import "context"

// Storage is the key-value store cart snapshots are written to.
// Get returns ErrSnapshotNotFound when the key is absent.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
