package user

import "errors"

var ErrNotFound = errors.New("user not found")

// User is the extended profile record kept in the document store, distinct
// from the platform account that authenticates it.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	PhotoURL string `json:"photoURL,omitempty"`
	HasCV    bool   `json:"hasCV"`
}

// Patch carries a partial profile update; nil fields are left untouched.
type Patch struct {
	Email    *string
	Username *string
	PhotoURL *string
	HasCV    *bool
}

func (u User) Apply(p Patch) User {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.PhotoURL != nil {
		u.PhotoURL = *p.PhotoURL
	}
	if p.HasCV != nil {
		u.HasCV = *p.HasCV
	}
	return u
}
