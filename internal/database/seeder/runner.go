package seeder

import (
	"context"
	"fmt"

	"whitekola/internal/docstore"
)

type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, docs docstore.Store) error {
	if docs == nil {
		return fmt.Errorf("nil document store")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, docs); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return nil
}
