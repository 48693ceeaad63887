// Package profiles stores the extended user profile records in the
// document store's "users" collection.
package profiles

import (
	"context"
	"errors"
	"fmt"

	"whitekola/internal/docstore"
	"whitekola/internal/domain/user"
)

const Collection = "users"

type Repository struct {
	docs docstore.Store
}

func NewRepository(docs docstore.Store) *Repository {
	return &Repository{docs: docs}
}

func (r *Repository) Get(ctx context.Context, id string) (user.User, error) {
	if r == nil || r.docs == nil {
		return user.User{}, fmt.Errorf("nil profile repository")
	}
	var u user.User
	if err := r.docs.Get(ctx, Collection, id, &u); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *Repository) Save(ctx context.Context, u user.User) error {
	if r == nil || r.docs == nil {
		return fmt.Errorf("nil profile repository")
	}
	if u.ID == "" {
		return fmt.Errorf("profile without id")
	}
	_, err := r.docs.Create(ctx, Collection, u, u.ID)
	return err
}
