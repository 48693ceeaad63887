package cv

import "time"

type WorkExperience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

type Certification struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Issuer      string `json:"issuer"`
	Date        string `json:"date"`
	ExpiryDate  string `json:"expiryDate,omitempty"`
	Description string `json:"description,omitempty"`
}

type Reference struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Company  string `json:"company"`
	Position string `json:"position"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

// Document is one user's CV. A user has at most one; saves overwrite.
type Document struct {
	ID             string           `json:"id"`
	UserID         string           `json:"userId"`
	FullName       string           `json:"fullName"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	Address        string           `json:"address"`
	Summary        string           `json:"summary"`
	PhotoURL       string           `json:"photoURL"`
	WorkExperience []WorkExperience `json:"workExperience"`
	Education      []Education      `json:"education"`
	Skills         []string         `json:"skills"`
	Certifications []Certification  `json:"certifications"`
	References     []Reference      `json:"references"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}
