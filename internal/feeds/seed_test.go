package feeds

import (
	"context"
	"testing"
	"time"

	"whitekola/internal/domain/job"
)

func TestSeedPostings(t *testing.T) {
	ref := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)
	got := SeedPostings(ref)

	if len(got) != 7 {
		t.Fatalf("expected 7 postings, got %d", len(got))
	}

	ids := map[string]struct{}{}
	priority := 0
	for _, p := range got {
		if _, dup := ids[p.ID]; dup {
			t.Fatalf("duplicate posting id %q", p.ID)
		}
		ids[p.ID] = struct{}{}
		if p.IsPriority {
			priority++
			if p.ApplicationType != job.ApplicationInternal {
				t.Errorf("posting %s: priority postings should be internal", p.ID)
			}
		} else {
			if !p.IsExternal || p.ApplicationLink == "" {
				t.Errorf("posting %s: non-priority seed postings link out", p.ID)
			}
		}
		if !p.PostedAt.Before(ref) {
			t.Errorf("posting %s: postedAt %v not before ref", p.ID, p.PostedAt)
		}
	}
	if priority != 4 {
		t.Fatalf("expected 4 priority postings, got %d", priority)
	}
}

func TestSeedFeedFetchOrdering(t *testing.T) {
	f := NewSeedFeed()
	got, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	job.Sort(got)

	wantOrder := []string{"4", "1", "2", "6", "3", "5", "7"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Fatalf("position %d: want %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestSeedFeedCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewSeedFeed().Fetch(ctx); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
