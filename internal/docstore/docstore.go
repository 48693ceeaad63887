// Package docstore is a schemaless document collection layer over the
// relational database: one JSONB row per document, addressed by
// (collection, id).
package docstore

import (
	"context"
	"encoding/json"
	"errors"
)

var ErrNotFound = errors.New("document not found")

type Store interface {
	Get(ctx context.Context, collection, id string, out any) error
	Create(ctx context.Context, collection string, data any, id string) (string, error)
	Update(ctx context.Context, collection, id string, data any) error
	Delete(ctx context.Context, collection, id string) error
	List(ctx context.Context, collection string) ([]json.RawMessage, error)
}

// DecodeAll unmarshals every raw document into a slice of T, skipping
// documents that fail to decode.
func DecodeAll[T any](raw []json.RawMessage) []T {
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
