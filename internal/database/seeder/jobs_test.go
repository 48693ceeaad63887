package seeder

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"whitekola/internal/catalog"
	"whitekola/internal/docstore"
	"whitekola/internal/domain/job"
)

type memDocs struct {
	data map[string]map[string]json.RawMessage
}

func newMemDocs() *memDocs {
	return &memDocs{data: make(map[string]map[string]json.RawMessage)}
}

func (m *memDocs) Get(ctx context.Context, collection, id string, out any) error {
	raw, ok := m.data[collection][id]
	if !ok {
		return docstore.ErrNotFound
	}
	return json.Unmarshal(raw, out)
}

func (m *memDocs) Create(ctx context.Context, collection string, data any, id string) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	if m.data[collection] == nil {
		m.data[collection] = make(map[string]json.RawMessage)
	}
	m.data[collection][id] = raw
	return id, nil
}

func (m *memDocs) Update(ctx context.Context, collection, id string, data any) error {
	if _, ok := m.data[collection][id]; !ok {
		return docstore.ErrNotFound
	}
	_, err := m.Create(ctx, collection, data, id)
	return err
}

func (m *memDocs) Delete(ctx context.Context, collection, id string) error {
	delete(m.data[collection], id)
	return nil
}

func (m *memDocs) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(m.data[collection]))
	for _, raw := range m.data[collection] {
		out = append(out, raw)
	}
	return out, nil
}

func TestJobsSeederPlantsCatalogOnce(t *testing.T) {
	docs := newMemDocs()
	ref := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := JobsSeeder{Now: func() time.Time { return ref }}

	if err := (Runner{Seeders: []Seeder{s}}).Run(context.Background(), docs); err != nil {
		t.Fatalf("seed: %v", err)
	}
	raw, _ := docs.List(context.Background(), catalog.Collection)
	if len(raw) != 7 {
		t.Fatalf("seeded %d postings, want 7", len(raw))
	}

	// A user-posted job must survive a second run.
	extra := job.Posting{ID: "user-post-1", Title: "Welder", Company: "Atelier Metallique"}
	if _, err := docs.Create(context.Background(), catalog.Collection, extra, extra.ID); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Run(context.Background(), docs); err != nil {
		t.Fatalf("second run: %v", err)
	}
	raw, _ = docs.List(context.Background(), catalog.Collection)
	if len(raw) != 8 {
		t.Fatalf("got %d postings after rerun, want 8", len(raw))
	}
}

func TestJobsSeederSkipsNonEmptyCollection(t *testing.T) {
	docs := newMemDocs()
	existing := job.Posting{ID: "42", Title: "Baker", Company: "Boulangerie du Centre"}
	if _, err := docs.Create(context.Background(), catalog.Collection, existing, existing.ID); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := (JobsSeeder{}).Run(context.Background(), docs); err != nil {
		t.Fatalf("seed: %v", err)
	}
	raw, _ := docs.List(context.Background(), catalog.Collection)
	if len(raw) != 1 {
		t.Fatalf("got %d postings, want the 1 pre-existing", len(raw))
	}
}
