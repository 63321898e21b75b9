package archive

import (
	"context"
)

// Store persists exported workspace archives to durable object storage.
type Store interface {
	Put(ctx context.Context, bucket string, name string, data []byte) error
	Load(ctx context.Context, bucket string, name string) ([]byte, error)
}
