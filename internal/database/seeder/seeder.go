package seeder

import (
	"context"

	"whitekola/internal/docstore"
)

// Seeder plants baseline documents. Implementations must be idempotent;
// the runner is invoked on every boot.
type Seeder interface {
	Name() string
	Run(ctx context.Context, docs docstore.Store) error
}
