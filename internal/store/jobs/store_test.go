package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"whitekola/internal/domain/job"
	"whitekola/internal/feeds"
)

type fakeCatalog struct {
	postings  []job.Posting
	listErr   error
	createErr error
	created   []job.Posting
}

func (c *fakeCatalog) ListAll(ctx context.Context) ([]job.Posting, error) {
	if c.listErr != nil {
		return nil, c.listErr
	}
	return append([]job.Posting(nil), c.postings...), nil
}

func (c *fakeCatalog) Create(ctx context.Context, p job.Posting) error {
	if c.createErr != nil {
		return c.createErr
	}
	c.created = append(c.created, p)
	return nil
}

func seededStore(t *testing.T) (*Store, *fakeCatalog) {
	t.Helper()
	ref := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)
	cat := &fakeCatalog{postings: feeds.SeedPostings(ref)}
	s := New(cat, nil)
	s.FetchAll(context.Background())
	if st := s.State(); st.Err != "" {
		t.Fatalf("seed fetch failed: %s", st.Err)
	}
	return s, cat
}

func ids(ps []job.Posting) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func assertIDs(t *testing.T, got []job.Posting, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("want ids %v, got %v", want, gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("want ids %v, got %v", want, gotIDs)
		}
	}
}

func strptr(s string) *string { return &s }

func TestFetchAllSortsPriorityFirst(t *testing.T) {
	s, _ := seededStore(t)
	st := s.State()

	assertIDs(t, st.Jobs, "4", "1", "2", "6", "3", "5", "7")
	assertIDs(t, st.Filtered, "4", "1", "2", "6", "3", "5", "7")
	if st.IsLoading {
		t.Fatal("loading should be cleared after fetch")
	}
}

func TestFetchAllFailureKeepsPreviousLists(t *testing.T) {
	s, cat := seededStore(t)

	cat.listErr = errors.New("catalog down")
	s.FetchAll(context.Background())

	st := s.State()
	if st.Err != "Failed to fetch jobs" {
		t.Fatalf("unexpected error message: %q", st.Err)
	}
	if len(st.Jobs) != 7 || len(st.Filtered) != 7 {
		t.Fatal("previous lists must survive a failed fetch")
	}
	if st.IsLoading {
		t.Fatal("loading should be cleared after a failed fetch")
	}
}

func TestApplyFiltersByLocation(t *testing.T) {
	s, _ := seededStore(t)

	s.UpdateFilter(job.FilterPatch{Location: strptr("Douala")})
	s.ApplyFilters()

	st := s.State()
	assertIDs(t, st.Filtered, "4", "1")
	// the authoritative list is untouched
	if len(st.Jobs) != 7 {
		t.Fatalf("full catalog must stay intact, got %d", len(st.Jobs))
	}
}

func TestApplyFiltersCriteriaAreANDed(t *testing.T) {
	s, _ := seededStore(t)

	s.UpdateFilter(job.FilterPatch{Location: strptr("Douala"), Search: strptr("product")})
	s.ApplyFilters()

	assertIDs(t, s.State().Filtered, "4")
}

func TestUpdateFilterDoesNotRecompute(t *testing.T) {
	s, _ := seededStore(t)

	s.UpdateFilter(job.FilterPatch{Location: strptr("Bamenda")})

	st := s.State()
	if len(st.Filtered) != 7 {
		t.Fatal("filtered view must not change until ApplyFilters")
	}
	if st.Filter.Location != "Bamenda" {
		t.Fatalf("criteria not merged: %+v", st.Filter)
	}
}

func TestJobTypeFilterSetThenCleared(t *testing.T) {
	s, _ := seededStore(t)

	s.UpdateFilter(job.FilterPatch{JobType: strptr("remote")})
	s.ApplyFilters()
	assertIDs(t, s.State().Filtered, "1", "5")

	s.ClearFilters()
	st := s.State()
	if !st.Filter.IsEmpty() {
		t.Fatalf("criteria not cleared: %+v", st.Filter)
	}
	// clearing alone leaves the view; re-apply restores the catalog
	assertIDs(t, st.Filtered, "1", "5")

	s.ApplyFilters()
	assertIDs(t, s.State().Filtered, "4", "1", "2", "6", "3", "5", "7")
}

func TestPostPrependsPriorityPosting(t *testing.T) {
	s, cat := seededStore(t)

	id, err := s.Post(context.Background(), job.Posting{
		Title:    "Flutter Developer",
		Company:  "MoMo Apps",
		Location: "Douala, Cameroon",
		JobType:  job.TypeRemote,
		Sector:   "Technology",
		PostedBy: "user-self",
	})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if id == "" {
		t.Fatal("expected assigned id")
	}

	st := s.State()
	if len(st.Jobs) != 8 || len(st.Filtered) != 8 {
		t.Fatalf("posting missing from lists: %d/%d", len(st.Jobs), len(st.Filtered))
	}
	if st.Jobs[0].ID != id || !st.Jobs[0].IsPriority {
		t.Fatalf("newest self-posted job must lead the list: %+v", st.Jobs[0])
	}
	if len(cat.created) != 1 || cat.created[0].ID != id {
		t.Fatal("posting not persisted to the catalog")
	}

	id2, err := s.Post(context.Background(), job.Posting{Title: "Sales Lead", Company: "Globex"})
	if err != nil {
		t.Fatalf("second post: %v", err)
	}
	if id2 == id {
		t.Fatal("each posting needs its own id")
	}
}

func TestPostFailure(t *testing.T) {
	s, cat := seededStore(t)
	cat.createErr = errors.New("insert failed")

	if _, err := s.Post(context.Background(), job.Posting{Title: "Doomed"}); err == nil {
		t.Fatal("expected error")
	}

	st := s.State()
	if st.Err != "Failed to post job" {
		t.Fatalf("unexpected error message: %q", st.Err)
	}
	if len(st.Jobs) != 7 {
		t.Fatal("failed post must not enter the list")
	}
}

func TestSubscribeReceivesChanges(t *testing.T) {
	s, _ := seededStore(t)

	var last State
	var calls int
	unsub := s.Subscribe(func(st State) {
		last = st
		calls++
	})

	s.UpdateFilter(job.FilterPatch{Sector: strptr("Design")})
	if calls != 1 || last.Filter.Sector != "Design" {
		t.Fatalf("subscriber not notified: calls=%d filter=%+v", calls, last.Filter)
	}

	unsub()
	s.ClearFilters()
	if calls != 1 {
		t.Fatal("unsubscribed listener must not be called")
	}
}
