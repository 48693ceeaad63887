package job

import (
	"testing"
	"time"
)

func TestLess_PriorityBeatsRecency(t *testing.T) {
	now := time.Now()
	older := Posting{IsPriority: true, PostedAt: now.Add(-48 * time.Hour)}
	newer := Posting{IsPriority: false, PostedAt: now}

	if !Less(older, newer) {
		t.Fatalf("expected priority posting to order first despite being older")
	}
	if Less(newer, older) {
		t.Fatalf("non-priority posting must not order before a priority one")
	}
}

func TestLess_SamePriorityNewestFirst(t *testing.T) {
	now := time.Now()
	a := Posting{PostedAt: now}
	b := Posting{PostedAt: now.Add(-time.Hour)}

	if !Less(a, b) {
		t.Fatalf("expected newer posting first")
	}
	if Less(b, a) {
		t.Fatalf("older posting must not order before a newer one")
	}
}

func TestSort_Idempotent(t *testing.T) {
	now := time.Now()
	items := []Posting{
		{ID: "a", PostedAt: now.Add(-3 * time.Hour)},
		{ID: "b", IsPriority: true, PostedAt: now.Add(-5 * time.Hour)},
		{ID: "c", PostedAt: now.Add(-1 * time.Hour)},
		{ID: "d", IsPriority: true, PostedAt: now.Add(-2 * time.Hour)},
	}

	Sort(items)
	first := make([]string, 0, len(items))
	for _, p := range items {
		first = append(first, p.ID)
	}

	Sort(items)
	for i, p := range items {
		if p.ID != first[i] {
			t.Fatalf("re-sort changed order at %d: %s != %s", i, p.ID, first[i])
		}
	}

	want := []string{"d", "b", "c", "a"}
	for i, id := range want {
		if items[i].ID != id {
			t.Fatalf("position %d: got %s, want %s", i, items[i].ID, id)
		}
	}
}

func TestFilter_Matches(t *testing.T) {
	p := Posting{
		Title:       "Senior Backend Engineer",
		Company:     "TechCorp Cameroon",
		Description: "Build APIs for clients across Africa.",
		Location:    "Douala, Cameroon",
		JobType:     TypeRemote,
		Sector:      "Technology",
	}

	cases := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty matches everything", Filter{}, true},
		{"location substring case-insensitive", Filter{Location: "douala"}, true},
		{"location mismatch", Filter{Location: "Yaoundé"}, false},
		{"job type exact case-insensitive", Filter{JobType: "remote"}, true},
		{"job type substring rejected", Filter{JobType: "Rem"}, false},
		{"sector substring", Filter{Sector: "tech"}, true},
		{"search hits title", Filter{Search: "backend"}, true},
		{"search hits company", Filter{Search: "techcorp"}, true},
		{"search hits description", Filter{Search: "africa"}, true},
		{"search miss", Filter{Search: "fintech"}, false},
		{"all criteria must hold", Filter{Location: "Douala", JobType: "Onsite"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.filter.Matches(p); got != tc.want {
				t.Fatalf("Matches = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFilter_Merge(t *testing.T) {
	f := Filter{Location: "Douala", JobType: "Remote"}
	empty := ""
	sector := "Design"

	got := f.Merge(FilterPatch{JobType: &empty, Sector: &sector})
	if got.Location != "Douala" {
		t.Fatalf("untouched field changed: %q", got.Location)
	}
	if got.JobType != "" {
		t.Fatalf("expected job type cleared, got %q", got.JobType)
	}
	if got.Sector != "Design" {
		t.Fatalf("expected sector set, got %q", got.Sector)
	}
}
