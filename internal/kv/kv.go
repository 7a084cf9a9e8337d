// Package kv is the small key-value layer behind the snapshot cache and the
// stored token. Values are opaque strings.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("kv: not found")

// Store is a string key-value store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}
