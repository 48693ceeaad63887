package seeder

import (
	"context"
	"fmt"
	"time"

	"whitekola/internal/catalog"
	"whitekola/internal/docstore"
	"whitekola/internal/feeds"
)

// JobsSeeder plants the launch job catalog. It only writes when the jobs
// collection is empty so feed runs and user posts are never clobbered.
type JobsSeeder struct {
	Now func() time.Time
}

func (s JobsSeeder) Name() string { return "jobs" }

func (s JobsSeeder) Run(ctx context.Context, docs docstore.Store) error {
	existing, err := docs.List(ctx, catalog.Collection)
	if err != nil {
		return fmt.Errorf("list jobs: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	for _, p := range feeds.SeedPostings(now().UTC()) {
		if _, err := docs.Create(ctx, catalog.Collection, p, p.ID); err != nil {
			return fmt.Errorf("seed job %s: %w", p.ID, err)
		}
	}
	return nil
}
