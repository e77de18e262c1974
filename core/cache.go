package core

import (
	"context"
	"time"
)

// QueryCache caches read query results between mutations. Every mutation on
// an entity invalidates that entity's key prefix so the next read refetches
// from the upstream API (the mutation-then-refetch contract).
type QueryCache interface {
	// Get unmarshals the cached value for key into out and reports whether it was present.
	Get(ctx context.Context, key string, out interface{}) (bool, error)
	Set(ctx context.Context, key string, val interface{}, ttl time.Duration) error
	// Invalidate drops every key starting with prefix.
	Invalidate(ctx context.Context, prefix string) error
}
