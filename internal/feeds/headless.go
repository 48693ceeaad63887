package feeds

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"whitekola/internal/domain/job"
)

// HeadlessFeed drives a headless Chrome against boards that render their
// listings with client-side scripts, where a plain HTTP fetch sees an empty
// shell. It collects listing links matching pathHint and emits external
// postings that point back to the board.
type HeadlessFeed struct {
	name     string
	base     string
	listPath string
	pathHint string
	limit    int
}

func NewHeadlessFeed(name, base, listPath, pathHint string, limit int) (*HeadlessFeed, error) {
	if name == "" || base == "" || pathHint == "" {
		return nil, fmt.Errorf("headless feed needs a name, base url and path hint")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("parse feed base url: %w", err)
	}
	if limit <= 0 {
		limit = 30
	}
	return &HeadlessFeed{
		name:     name,
		base:     strings.TrimRight(base, "/"),
		listPath: listPath,
		pathHint: pathHint,
		limit:    limit,
	}, nil
}

func (f *HeadlessFeed) Name() string {
	if f == nil {
		return "headless"
	}
	return f.name
}

func (f *HeadlessFeed) Fetch(ctx context.Context) ([]job.Posting, error) {
	if f == nil {
		return nil, fmt.Errorf("nil feed")
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(httpHeaders()["User-Agent"]),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, 25*time.Second)
	defer reqCancel()

	type link struct {
		Href  string `json:"href"`
		Label string `json:"label"`
	}
	var links []link
	script := fmt.Sprintf(`Array.from(document.querySelectorAll('a[href]'))
		.filter(a => a.getAttribute('href') && a.getAttribute('href').includes(%q))
		.map(a => ({href: a.getAttribute('href'), label: a.textContent.trim()}))`, f.pathHint)

	err := chromedp.Run(reqCtx,
		chromedp.Navigate(f.base+f.listPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.EvaluateAsDevTools(script, &links),
	)
	if err != nil {
		return nil, fmt.Errorf("headless fetch %s: %w", f.name, err)
	}

	now := time.Now().UTC()
	seen := map[string]struct{}{}
	out := make([]job.Posting, 0, f.limit)
	for _, l := range links {
		if len(out) >= f.limit {
			break
		}
		href := strings.TrimSpace(l.Href)
		if href == "" || l.Label == "" {
			continue
		}
		if strings.HasPrefix(href, "/") {
			href = f.base + href
		} else if !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://") {
			continue
		}
		norm := normalizeURL(href)
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}

		out = append(out, job.Posting{
			ID:              stableID(f.name, norm),
			Title:           l.Label,
			Location:        "Cameroon",
			JobType:         job.TypeOnsite,
			Sector:          "General",
			PostedAt:        now,
			ApplicationType: job.ApplicationExternal,
			ApplicationLink: norm,
			IsExternal:      true,
			Source:          f.name,
		})
	}
	return out, nil
}
