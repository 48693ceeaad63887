package feeds

import (
	"context"
	"fmt"
	"log"

	"whitekola/internal/domain/job"
)

// Ingestor receives postings produced by a refresh.
type Ingestor interface {
	Upsert(ctx context.Context, p job.Posting) error
}

// Refresher fans feed fetches out over a worker pool and upserts whatever
// comes back into the catalog. A feed that fails is logged and skipped; the
// refresh as a whole only errors when no feed delivered anything.
type Refresher struct {
	ingest    Ingestor
	feeds     []Feed
	workers   int
	rps       int
	logger    *log.Logger
	onRefresh func(stored int)
}

func NewRefresher(ingest Ingestor, feeds []Feed, workers int, logger *log.Logger) *Refresher {
	if workers <= 0 {
		workers = 2
	}
	return &Refresher{
		ingest:  ingest,
		feeds:   feeds,
		workers: workers,
		logger:  logger,
	}
}

// SetRateLimit caps fetch starts at rps per second across the pool's
// workers; rps <= 0 leaves fetches unthrottled.
func (r *Refresher) SetRateLimit(rps int) {
	if r == nil {
		return
	}
	r.rps = rps
}

// OnRefresh registers a hook invoked after a refresh that stored at least
// one posting. The websocket hub uses it to tell clients the catalog moved.
func (r *Refresher) OnRefresh(fn func(stored int)) {
	if r == nil {
		return
	}
	r.onRefresh = fn
}

func (r *Refresher) Refresh(ctx context.Context) error {
	if r == nil || r.ingest == nil {
		return fmt.Errorf("refresher is not initialized")
	}
	if len(r.feeds) == 0 {
		return nil
	}

	pool := NewPool(r.workers, len(r.feeds))
	if r.rps > 0 {
		pool.SetRateLimit(r.rps)
	}
	results := pool.Run(ctx)

	for _, f := range r.feeds {
		feed := f
		pool.Submit(feed.Name(), func(ctx context.Context) ([]job.Posting, error) {
			return feed.Fetch(ctx)
		})
	}
	pool.Close()

	var stored, failed int
	for res := range results {
		if res.Err != nil {
			failed++
			r.logf("[Feeds] %s: fetch failed: %v", res.Feed, res.Err)
			continue
		}
		for _, p := range res.Postings {
			if p.ID == "" || p.Title == "" {
				continue
			}
			if err := r.ingest.Upsert(ctx, p); err != nil {
				r.logf("[Feeds] %s: store %s: %v", res.Feed, p.ID, err)
				continue
			}
			stored++
		}
	}

	r.logf("[Feeds] refresh done: %d stored, %d feeds failed", stored, failed)

	if stored > 0 && r.onRefresh != nil {
		r.onRefresh(stored)
	}
	if stored == 0 && failed == len(r.feeds) {
		return fmt.Errorf("all %d feeds failed", failed)
	}
	return nil
}

func (r *Refresher) logf(format string, args ...any) {
	if r == nil || r.logger == nil {
		return
	}
	r.logger.Printf(format, args...)
}
