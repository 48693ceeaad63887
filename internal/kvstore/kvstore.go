// Package kvstore provides the durable per-key JSON storage backing the
// settings and auth stores.
package kvstore

import (
	"context"
	"time"
)

type Store interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

const opTimeout = 2 * time.Second
