// Package jobs owns the authoritative posting catalog and its derived
// filtered view. Filtering is a linear scan; ordering is always priority
// first, then recency.
package jobs

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"whitekola/internal/domain/job"
)

// Catalog is the external source of truth the store fetches from and
// posts to.
type Catalog interface {
	ListAll(ctx context.Context) ([]job.Posting, error)
	Create(ctx context.Context, p job.Posting) error
}

type State struct {
	Jobs      []job.Posting
	Filtered  []job.Posting
	Filter    job.Filter
	IsLoading bool
	Err       string
}

type Store struct {
	catalog Catalog
	logger  *log.Logger

	mu       sync.Mutex
	jobs     []job.Posting
	filtered []job.Posting
	filter   job.Filter
	loading  bool
	errMsg   string
	subs     map[int]func(State)
	nextSub  int
}

func New(catalog Catalog, logger *log.Logger) *Store {
	return &Store{
		catalog: catalog,
		logger:  logger,
		subs:    make(map[int]func(State)),
	}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// FetchAll replaces both the catalog and the filtered view with the
// source's postings in priority-then-recency order. A fetch failure is
// recorded as an error message; the previous lists are kept.
func (s *Store) FetchAll(ctx context.Context) {
	s.setLoading(true, "")

	postings, err := s.catalog.ListAll(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.Printf("[Jobs] fetch failed: %v", err)
		}
		s.mu.Lock()
		s.errMsg = "Failed to fetch jobs"
		s.loading = false
		st := s.snapshotLocked()
		s.mu.Unlock()
		s.notify(st)
		return
	}

	job.Sort(postings)

	s.mu.Lock()
	s.jobs = postings
	s.filtered = append([]job.Posting(nil), postings...)
	s.loading = false
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(st)
}

// UpdateFilter merges the patch into the current criteria without
// recomputing the view.
func (s *Store) UpdateFilter(p job.FilterPatch) {
	s.mu.Lock()
	s.filter = s.filter.Merge(p)
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(st)
}

// ApplyFilters recomputes the filtered view from the authoritative list:
// a posting stays when it satisfies every non-empty criterion, and the
// result is re-sorted by the standard ordering.
func (s *Store) ApplyFilters() {
	s.mu.Lock()
	filtered := make([]job.Posting, 0, len(s.jobs))
	for _, p := range s.jobs {
		if s.filter.Matches(p) {
			filtered = append(filtered, p)
		}
	}
	job.Sort(filtered)
	s.filtered = filtered
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(st)
}

// ClearFilters resets the criteria to all-empty. The view is not
// recomputed; callers re-apply when they want the full catalog back.
func (s *Store) ClearFilters() {
	s.mu.Lock()
	s.filter = job.Filter{}
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(st)
}

// Post persists a new posting and inserts it into both lists. Self-posted
// jobs are always promoted to priority. The assigned id is returned; on
// failure the error is both recorded and returned.
func (s *Store) Post(ctx context.Context, p job.Posting) (string, error) {
	s.setLoading(true, "")

	p.ID = uuid.NewString()
	p.PostedAt = time.Now().UTC()
	p.IsPriority = true

	if err := s.catalog.Create(ctx, p); err != nil {
		if s.logger != nil {
			s.logger.Printf("[Jobs] post failed: %v", err)
		}
		s.mu.Lock()
		s.errMsg = "Failed to post job"
		s.loading = false
		st := s.snapshotLocked()
		s.mu.Unlock()
		s.notify(st)
		return "", err
	}

	s.mu.Lock()
	s.jobs = append([]job.Posting{p}, s.jobs...)
	job.Sort(s.jobs)
	s.filtered = append([]job.Posting{p}, s.filtered...)
	job.Sort(s.filtered)
	s.loading = false
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(st)

	return p.ID, nil
}

// Subscribe registers a listener called after every state change. The
// returned function removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) setLoading(v bool, errMsg string) {
	s.mu.Lock()
	s.loading = v
	s.errMsg = errMsg
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(st)
}

func (s *Store) snapshotLocked() State {
	return State{
		Jobs:      append([]job.Posting(nil), s.jobs...),
		Filtered:  append([]job.Posting(nil), s.filtered...),
		Filter:    s.filter,
		IsLoading: s.loading,
		Err:       s.errMsg,
	}
}

func (s *Store) notify(st State) {
	s.mu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}
