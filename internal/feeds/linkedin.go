package feeds

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"whitekola/internal/domain/job"
)

// LinkedInFeed scrapes the public (unauthenticated) LinkedIn job search
// listing for Cameroon and emits external postings that deep-link back to
// LinkedIn for the actual application.
type LinkedInFeed struct {
	base    string
	host    string
	keyword string
	limit   int
}

// NewLinkedInFeed builds a feed rooted at base (normally
// "https://www.linkedin.com"). keyword narrows the search; empty means all
// jobs. limit caps the number of postings per fetch.
func NewLinkedInFeed(base, keyword string, limit int) (*LinkedInFeed, error) {
	if base == "" {
		base = "https://www.linkedin.com"
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse feed base url: %w", err)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("feed base url %q has no host", base)
	}
	if limit <= 0 {
		limit = 25
	}
	return &LinkedInFeed{
		base:    strings.TrimRight(base, "/"),
		host:    u.Hostname(),
		keyword: keyword,
		limit:   limit,
	}, nil
}

func (f *LinkedInFeed) Name() string { return "linkedin" }

func (f *LinkedInFeed) Fetch(ctx context.Context) ([]job.Posting, error) {
	if f == nil {
		return nil, fmt.Errorf("nil feed")
	}

	c := colly.NewCollector(
		colly.AllowedDomains(f.host),
	)
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 2, Delay: 400 * time.Millisecond, RandomDelay: 750 * time.Millisecond})

	postings := make([]job.Posting, 0, f.limit)

	c.OnHTML("div.base-card", func(e *colly.HTMLElement) {
		if len(postings) >= f.limit {
			return
		}
		title := strings.TrimSpace(e.ChildText("h3.base-search-card__title"))
		company := strings.TrimSpace(e.ChildText("h4.base-search-card__subtitle"))
		location := strings.TrimSpace(e.ChildText("span.job-search-card__location"))
		link := strings.TrimSpace(e.ChildAttr("a.base-card__full-link", "href"))
		if title == "" || link == "" {
			return
		}
		abs := e.Request.AbsoluteURL(link)
		if abs == "" {
			abs = link
		}

		postedAt := time.Now().UTC()
		if dt := strings.TrimSpace(e.ChildAttr("time", "datetime")); dt != "" {
			if ts, err := time.Parse("2006-01-02", dt); err == nil {
				postedAt = ts.UTC()
			}
		}

		postings = append(postings, job.Posting{
			ID:              stableID("li", abs),
			Title:           title,
			Company:         company,
			Location:        location,
			JobType:         job.TypeOnsite,
			Sector:          "General",
			PostedAt:        postedAt,
			ApplicationType: job.ApplicationExternal,
			ApplicationLink: normalizeURL(abs),
			IsExternal:      true,
			Source:          "LinkedIn",
		})
	})

	var reqErr error
	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})
	c.OnRequest(func(r *colly.Request) {
		for k, v := range httpHeaders() {
			r.Headers.Set(k, v)
		}
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.Visit(f.searchURL()); err != nil {
		return nil, err
	}
	c.Wait()
	if reqErr != nil {
		return nil, reqErr
	}

	return postings, nil
}

func (f *LinkedInFeed) searchURL() string {
	q := url.Values{}
	q.Set("location", "Cameroon")
	if f.keyword != "" {
		q.Set("keywords", f.keyword)
	}
	return f.base + "/jobs/search?" + q.Encode()
}

// stableID derives a deterministic posting ID from a listing URL so that
// re-fetching the same listing overwrites the previous document instead of
// duplicating it.
func stableID(prefix, rawURL string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(normalizeURL(rawURL)))
	return fmt.Sprintf("%s-%x", prefix, h.Sum64())
}

func normalizeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return strings.TrimSpace(raw)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return strings.TrimRight(u.String(), "/")
}
