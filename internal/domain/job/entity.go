package job

import (
	"sort"
	"strings"
	"time"
)

type Type string

const (
	TypeRemote Type = "Remote"
	TypeHybrid Type = "Hybrid"
	TypeOnsite Type = "Onsite"
)

type ApplicationType string

const (
	ApplicationInternal ApplicationType = "internal"
	ApplicationExternal ApplicationType = "external"
)

type Posting struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Company         string          `json:"company"`
	Description     string          `json:"description"`
	Location        string          `json:"location"`
	JobType         Type            `json:"jobType"`
	Sector          string          `json:"sector"`
	Salary          string          `json:"salary,omitempty"`
	Deadline        string          `json:"deadline"`
	PostedBy        string          `json:"postedBy"`
	PostedAt        time.Time       `json:"postedAt"`
	ApplicationType ApplicationType `json:"applicationType"`
	ApplicationLink string          `json:"applicationLink"`
	IsExternal      bool            `json:"isExternal"`
	Source          string          `json:"source,omitempty"`
	IsPriority      bool            `json:"isPriority,omitempty"`
}

// Less orders priority postings ahead of non-priority ones; within the same
// priority class newer postings come first. Pairs with equal priority and
// equal PostedAt have unspecified relative order.
func Less(a, b Posting) bool {
	if a.IsPriority != b.IsPriority {
		return a.IsPriority
	}
	return a.PostedAt.After(b.PostedAt)
}

// Sort orders postings in place by the priority-then-recency rule.
func Sort(postings []Posting) {
	sort.Slice(postings, func(i, j int) bool {
		return Less(postings[i], postings[j])
	})
}

// Filter holds the catalog filter criteria. An empty string means the field
// puts no constraint on the result.
type Filter struct {
	Location string `json:"location"`
	JobType  string `json:"jobType"`
	Sector   string `json:"sector"`
	Search   string `json:"search"`
}

// Merge overlays the non-nil fields of p onto f.
type FilterPatch struct {
	Location *string
	JobType  *string
	Sector   *string
	Search   *string
}

func (f Filter) Merge(p FilterPatch) Filter {
	if p.Location != nil {
		f.Location = *p.Location
	}
	if p.JobType != nil {
		f.JobType = *p.JobType
	}
	if p.Sector != nil {
		f.Sector = *p.Sector
	}
	if p.Search != nil {
		f.Search = *p.Search
	}
	return f
}

func (f Filter) IsEmpty() bool {
	return f.Location == "" && f.JobType == "" && f.Sector == "" && f.Search == ""
}

// Matches reports whether the posting satisfies every non-empty criterion.
// Location and sector are case-insensitive substring matches, the job type
// is a case-insensitive exact match, and the free-text search matches the
// title, company, or description.
func (f Filter) Matches(p Posting) bool {
	if f.Location != "" && !containsFold(p.Location, f.Location) {
		return false
	}
	if f.JobType != "" && !strings.EqualFold(string(p.JobType), f.JobType) {
		return false
	}
	if f.Sector != "" && !containsFold(p.Sector, f.Sector) {
		return false
	}
	if f.Search != "" {
		if !containsFold(p.Title, f.Search) &&
			!containsFold(p.Company, f.Search) &&
			!containsFold(p.Description, f.Search) {
			return false
		}
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
