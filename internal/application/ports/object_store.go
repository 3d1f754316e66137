package ports

import (
	"context"
	"time"
)

type ObjectStore interface {
	Put(ctx context.Context, key string, payload []byte, contentType string) error
	Remove(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	GetBucket() string
}
