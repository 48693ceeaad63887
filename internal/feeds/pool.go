package feeds

import (
	"context"
	"sync"
	"time"

	"whitekola/internal/domain/job"
)

// Task fetches one batch of postings.
type Task func(ctx context.Context) ([]job.Posting, error)

// Result carries the outcome of one task: the feed it came from, the
// postings it produced, and the fetch error if any.
type Result struct {
	Feed     string
	Postings []job.Posting
	Err      error
}

// Pool runs feed fetches on a bounded set of workers with an optional
// global rate limit, so a refresh with many sources does not hammer them
// all at once.
type Pool struct {
	workers int
	tasks   chan poolItem
	wg      sync.WaitGroup
	mu      sync.RWMutex
	rate    <-chan time.Time
	ticker  *time.Ticker
}

type poolItem struct {
	feed string
	task Task
}

func NewPool(workers, buffer int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &Pool{
		workers: workers,
		tasks:   make(chan poolItem, buffer),
	}
}

// SetRateLimit caps task starts at rps per second across all workers.
// rps <= 0 removes the limit.
func (p *Pool) SetRateLimit(rps int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
		p.rate = nil
	}
	p.mu.Unlock()
	if rps <= 0 {
		return
	}
	t := time.NewTicker(time.Second / time.Duration(rps))
	p.mu.Lock()
	p.ticker = t
	p.rate = t.C
	p.mu.Unlock()
}

func (p *Pool) Submit(feed string, t Task) {
	if p == nil || t == nil {
		return
	}
	p.tasks <- poolItem{feed: feed, task: t}
}

func (p *Pool) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
		p.rate = nil
	}
	p.mu.Unlock()
	close(p.tasks)
}

// Run starts the workers and returns the result stream. The stream closes
// once Close has been called and all submitted tasks have finished.
func (p *Pool) Run(ctx context.Context) <-chan Result {
	out := make(chan Result, 16)
	if p == nil {
		close(out)
		return out
	}

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case it, ok := <-p.tasks:
					if !ok {
						return
					}
					if it.task == nil {
						continue
					}
					p.mu.RLock()
					rate := p.rate
					p.mu.RUnlock()
					if rate != nil {
						select {
						case <-ctx.Done():
							return
						case <-rate:
						}
					}
					postings, err := it.task(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result{Feed: it.feed, Postings: postings, Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}
