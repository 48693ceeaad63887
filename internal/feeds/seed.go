package feeds

import (
	"context"
	"time"

	"whitekola/internal/domain/job"
)

// SeedFeed serves the fixed set of curated Cameroon postings the platform
// ships with. It keeps the catalog useful before any external feed has run
// and gives development environments deterministic data.
type SeedFeed struct {
	now func() time.Time
}

func NewSeedFeed() *SeedFeed {
	return &SeedFeed{now: time.Now}
}

func (f *SeedFeed) Name() string { return "seed" }

func (f *SeedFeed) Fetch(ctx context.Context) ([]job.Posting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := time.Now
	if f != nil && f.now != nil {
		now = f.now
	}
	return SeedPostings(now().UTC()), nil
}

// SeedPostings returns the curated postings with timestamps positioned
// relative to ref, so the recency ordering between them stays fixed no
// matter when they are loaded.
func SeedPostings(ref time.Time) []job.Posting {
	day := 24 * time.Hour
	return []job.Posting{
		{
			ID:              "1",
			Title:           "Senior React Native Developer",
			Company:         "TechCorp Cameroon",
			Description:     "We are looking for an experienced React Native developer to join our mobile team in Douala. You will be responsible for building and maintaining cross-platform mobile applications for our clients across Africa.",
			Location:        "Douala, Cameroon",
			JobType:         job.TypeRemote,
			Sector:          "Technology",
			Salary:          "XAF 1,500,000 - 2,000,000",
			Deadline:        "2025-07-15",
			PostedBy:        "user123",
			PostedAt:        ref.Add(-3 * day),
			ApplicationType: job.ApplicationInternal,
			IsPriority:      true,
			Source:          "WhiteKola",
		},
		{
			ID:              "2",
			Title:           "UX/UI Designer",
			Company:         "DesignHub Cameroon",
			Description:     "Join our creative team as a UX/UI Designer in Yaoundé. You will create beautiful, intuitive interfaces for web and mobile applications for local and international clients.",
			Location:        "Yaoundé, Cameroon",
			JobType:         job.TypeHybrid,
			Sector:          "Design",
			Salary:          "XAF 1,200,000 - 1,800,000",
			Deadline:        "2025-07-20",
			PostedBy:        "user456",
			PostedAt:        ref.Add(-5 * day),
			ApplicationType: job.ApplicationInternal,
			IsPriority:      true,
			Source:          "WhiteKola",
		},
		{
			ID:              "3",
			Title:           "Data Scientist",
			Company:         "DataWorks Africa",
			Description:     "We are seeking a Data Scientist to analyze large datasets and build machine learning models to solve business problems for our clients in the banking and telecom sectors in Cameroon.",
			Location:        "Buea, Cameroon",
			JobType:         job.TypeOnsite,
			Sector:          "Data Science",
			Salary:          "XAF 1,800,000 - 2,500,000",
			Deadline:        "2025-07-25",
			PostedBy:        "user789",
			PostedAt:        ref.Add(-2 * day),
			ApplicationType: job.ApplicationExternal,
			ApplicationLink: "https://dataworks.com/careers",
			IsExternal:      true,
			Source:          "LinkedIn",
		},
		{
			ID:              "4",
			Title:           "Product Manager",
			Company:         "ProductLabs Cameroon",
			Description:     "Lead product development from conception to launch. Work with cross-functional teams to deliver exceptional products for the Cameroonian market.",
			Location:        "Douala, Cameroon",
			JobType:         job.TypeHybrid,
			Sector:          "Product Management",
			Salary:          "XAF 1,500,000 - 2,200,000",
			Deadline:        "2025-07-30",
			PostedBy:        "user101",
			PostedAt:        ref.Add(-1 * day),
			ApplicationType: job.ApplicationInternal,
			IsPriority:      true,
			Source:          "WhiteKola",
		},
		{
			ID:              "5",
			Title:           "DevOps Engineer",
			Company:         "CloudSystems Africa",
			Description:     "Join our DevOps team to build and maintain our cloud infrastructure. Experience with AWS, Docker, and Kubernetes required. Work with clients across Cameroon and West Africa.",
			Location:        "Limbe, Cameroon",
			JobType:         job.TypeRemote,
			Sector:          "Technology",
			Salary:          "XAF 1,700,000 - 2,300,000",
			Deadline:        "2025-08-05",
			PostedBy:        "user202",
			PostedAt:        ref.Add(-4 * day),
			ApplicationType: job.ApplicationExternal,
			ApplicationLink: "https://cloudsystems.io/jobs",
			IsExternal:      true,
			Source:          "LinkedIn",
		},
		{
			ID:              "6",
			Title:           "Marketing Manager",
			Company:         "AfriTech Solutions",
			Description:     "Lead our marketing efforts across Cameroon and neighboring countries. Develop and implement marketing strategies to increase brand awareness and drive customer acquisition.",
			Location:        "Yaoundé, Cameroon",
			JobType:         job.TypeOnsite,
			Sector:          "Marketing",
			Salary:          "XAF 1,400,000 - 2,000,000",
			Deadline:        "2025-08-10",
			PostedBy:        "user303",
			PostedAt:        ref.Add(-6 * day),
			ApplicationType: job.ApplicationInternal,
			IsPriority:      true,
			Source:          "WhiteKola",
		},
		{
			ID:              "7",
			Title:           "English Teacher",
			Company:         "International School of Cameroon",
			Description:     "Teach English to secondary school students. Develop curriculum and assessment materials. Collaborate with other teachers to create an engaging learning environment.",
			Location:        "Bamenda, Cameroon",
			JobType:         job.TypeOnsite,
			Sector:          "Education",
			Salary:          "XAF 900,000 - 1,200,000",
			Deadline:        "2025-08-15",
			PostedBy:        "user404",
			PostedAt:        ref.Add(-7 * day),
			ApplicationType: job.ApplicationExternal,
			ApplicationLink: "https://isc.edu.cm/careers",
			IsExternal:      true,
			Source:          "LinkedIn",
		},
	}
}

// Sectors and Locations back the filter pickers exposed by the HTTP layer.
var Sectors = []string{
	"Technology",
	"Design",
	"Data Science",
	"Product Management",
	"Marketing",
	"Education",
	"Finance",
	"Healthcare",
	"Agriculture",
	"Construction",
	"Hospitality",
	"Transportation",
}

var Locations = []string{
	"Douala, Cameroon",
	"Yaoundé, Cameroon",
	"Buea, Cameroon",
	"Limbe, Cameroon",
	"Bamenda, Cameroon",
	"Bafoussam, Cameroon",
	"Garoua, Cameroon",
	"Maroua, Cameroon",
}
