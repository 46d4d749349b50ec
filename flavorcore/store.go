package flavorcore

import "context"

// Store is the shared flavor registry contract. The registry is
// append-only: entries are created once and never removed for the
// lifetime of the backing scope.
type Store interface {
	Driver() Driver
	Get(ctx context.Context, name string) ([]byte, bool, error)
	Add(ctx context.Context, name string, body []byte) (bool, error)
	Count(ctx context.Context) (int64, error)
	Names(ctx context.Context) ([]string, error)
}
