package feeds

import (
	"context"

	"whitekola/internal/domain/job"
)

// Feed produces job postings from one upstream source. Implementations must
// be safe to call repeatedly; the refresher upserts by posting ID, so a feed
// should emit stable IDs for the same upstream listing.
type Feed interface {
	Name() string
	Fetch(ctx context.Context) ([]job.Posting, error)
}

func httpHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9,fr;q=0.8",
	}
}
