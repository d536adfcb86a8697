package mongodb

import (
	"context"
	"time"
)

// CacheService is the slice of the redis cache the repositories use for hot
// reference data. Cache failures are never fatal; repositories fall back to
// mongo.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
