package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"whitekola/internal/domain/job"
)

const listingPage = `<!DOCTYPE html>
<html><body>
<div class="base-card">
  <a class="base-card__full-link" href="/jobs/view/backend-engineer-at-acme-1111"></a>
  <h3 class="base-search-card__title">Backend Engineer</h3>
  <h4 class="base-search-card__subtitle">Acme Corp</h4>
  <span class="job-search-card__location">Douala, Littoral, Cameroon</span>
  <time class="job-search-card__listdate" datetime="2025-06-10">3 days ago</time>
</div>
<div class="base-card">
  <a class="base-card__full-link" href="/jobs/view/accountant-at-globex-2222?refId=abc"></a>
  <h3 class="base-search-card__title">Accountant</h3>
  <h4 class="base-search-card__subtitle">Globex</h4>
  <span class="job-search-card__location">Yaoundé, Centre, Cameroon</span>
</div>
<div class="base-card">
  <a class="base-card__full-link" href="/jobs/view/missing-title-3333"></a>
  <h4 class="base-search-card__subtitle">NoTitle Inc</h4>
</div>
</body></html>`

func TestLinkedInFeedFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(listingPage))
	}))
	defer srv.Close()

	f, err := NewLinkedInFeed(srv.URL, "engineer", 10)
	if err != nil {
		t.Fatalf("new feed: %v", err)
	}

	got, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 postings (card without title skipped), got %d", len(got))
	}

	first := got[0]
	if first.Title != "Backend Engineer" || first.Company != "Acme Corp" {
		t.Fatalf("unexpected first posting: %+v", first)
	}
	if first.Location != "Douala, Littoral, Cameroon" {
		t.Fatalf("unexpected location: %q", first.Location)
	}
	if !first.IsExternal || first.ApplicationType != job.ApplicationExternal {
		t.Fatal("scraped postings must be external")
	}
	if first.PostedAt.Format("2006-01-02") != "2025-06-10" {
		t.Fatalf("expected postedAt from datetime attr, got %v", first.PostedAt)
	}

	second := got[1]
	if second.ApplicationLink == "" || second.ApplicationLink[len(second.ApplicationLink)-4:] != "2222" {
		t.Fatalf("expected query-stripped application link, got %q", second.ApplicationLink)
	}
	if first.ID == second.ID {
		t.Fatal("distinct listings must get distinct ids")
	}
}

func TestLinkedInFeedStableIDs(t *testing.T) {
	a := stableID("li", "https://example.com/jobs/view/1111?tracking=x")
	b := stableID("li", "https://example.com/jobs/view/1111")
	if a != b {
		t.Fatalf("query params must not change the id: %s vs %s", a, b)
	}
	c := stableID("li", "https://example.com/jobs/view/2222")
	if a == c {
		t.Fatal("different listings must hash differently")
	}
}

func TestLinkedInFeedServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f, err := NewLinkedInFeed(srv.URL, "", 10)
	if err != nil {
		t.Fatalf("new feed: %v", err)
	}
	if _, err := f.Fetch(context.Background()); err == nil {
		t.Fatal("expected error on HTTP failure")
	}
}
