package catalog

import (
	"context"
	"fmt"

	"whitekola/internal/docstore"
	"whitekola/internal/domain/job"
)

// Collection is the document collection job postings live in.
const Collection = "jobs"

// Repository persists job postings in the document store.
type Repository struct {
	docs docstore.Store
}

func NewRepository(docs docstore.Store) *Repository {
	return &Repository{docs: docs}
}

func (r *Repository) ListAll(ctx context.Context) ([]job.Posting, error) {
	if r == nil || r.docs == nil {
		return nil, fmt.Errorf("catalog repository is not initialized")
	}
	raw, err := r.docs.List(ctx, Collection)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return docstore.DecodeAll[job.Posting](raw), nil
}

func (r *Repository) Create(ctx context.Context, p job.Posting) error {
	if r == nil || r.docs == nil {
		return fmt.Errorf("catalog repository is not initialized")
	}
	if _, err := r.docs.Create(ctx, Collection, p, p.ID); err != nil {
		return fmt.Errorf("create job %s: %w", p.ID, err)
	}
	return nil
}

// Upsert writes a posting under its own ID, replacing any previous revision.
// Feed refreshes use it so repeated runs stay idempotent.
func (r *Repository) Upsert(ctx context.Context, p job.Posting) error {
	return r.Create(ctx, p)
}
