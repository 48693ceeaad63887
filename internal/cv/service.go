// Package cv stores CV documents and exports them as hosted HTML.
package cv

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"whitekola/internal/blobstore"
	"whitekola/internal/docstore"
	"whitekola/internal/domain/user"
)

const Collection = "cvs"

var ErrNotFound = errors.New("cv not found")

// Profiles is the slice of the profile repository the CV flow needs to
// flip the HasCV flag.
type Profiles interface {
	Get(ctx context.Context, id string) (user.User, error)
	Save(ctx context.Context, u user.User) error
}

type Service struct {
	docs     docstore.Store
	blobs    blobstore.Store
	profiles Profiles
	logger   *log.Logger
}

func NewService(docs docstore.Store, blobs blobstore.Store, profiles Profiles, logger *log.Logger) *Service {
	return &Service{docs: docs, blobs: blobs, profiles: profiles, logger: logger}
}

// Save upserts the user's CV. The document is keyed by user, so saving
// twice overwrites. The first successful save flips the profile's HasCV
// flag; this is the only flow allowed to set it.
func (s *Service) Save(ctx context.Context, doc Document) (Document, error) {
	if s == nil || s.docs == nil {
		return Document{}, fmt.Errorf("cv service is not initialized")
	}
	if doc.UserID == "" {
		return Document{}, fmt.Errorf("cv has no user")
	}
	if doc.FullName == "" {
		return Document{}, fmt.Errorf("cv has no name")
	}

	now := time.Now().UTC()
	if doc.ID == "" {
		doc.ID = uuid.NewString()
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	var prev Document
	if err := s.docs.Get(ctx, Collection, s.docID(doc.UserID), &prev); err == nil {
		doc.ID = prev.ID
		doc.CreatedAt = prev.CreatedAt
	} else if !errors.Is(err, docstore.ErrNotFound) {
		return Document{}, fmt.Errorf("load existing cv: %w", err)
	}

	if _, err := s.docs.Create(ctx, Collection, doc, s.docID(doc.UserID)); err != nil {
		return Document{}, fmt.Errorf("save cv: %w", err)
	}

	s.markHasCV(ctx, doc)
	return doc, nil
}

// Delete removes the user's CV and clears the profile's HasCV flag.
func (s *Service) Delete(ctx context.Context, userID string) error {
	if s == nil || s.docs == nil {
		return fmt.Errorf("cv service is not initialized")
	}
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}
	if err := s.docs.Delete(ctx, Collection, s.docID(userID)); err != nil {
		return fmt.Errorf("delete cv: %w", err)
	}

	if s.profiles == nil {
		return nil
	}
	u, err := s.profiles.Get(ctx, userID)
	if err != nil || !u.HasCV {
		return nil
	}
	u.HasCV = false
	if err := s.profiles.Save(ctx, u); err != nil && s.logger != nil {
		s.logger.Printf("[CV] clear hasCV for %s: %v", userID, err)
	}
	return nil
}

// Get returns the user's CV.
func (s *Service) Get(ctx context.Context, userID string) (Document, error) {
	if s == nil || s.docs == nil {
		return Document{}, fmt.Errorf("cv service is not initialized")
	}
	var doc Document
	if err := s.docs.Get(ctx, Collection, s.docID(userID), &doc); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return Document{}, ErrNotFound
		}
		return Document{}, fmt.Errorf("load cv: %w", err)
	}
	return doc, nil
}

// Export renders the CV to HTML and uploads it to blob storage, returning
// the public URL.
func (s *Service) Export(ctx context.Context, userID string) (string, error) {
	if s == nil || s.blobs == nil {
		return "", fmt.Errorf("cv service is not initialized")
	}
	doc, err := s.Get(ctx, userID)
	if err != nil {
		return "", err
	}

	html, err := RenderHTML(doc)
	if err != nil {
		return "", err
	}

	path := fmt.Sprintf("cvs/%s/cv.html", userID)
	url, err := s.blobs.Upload(ctx, path, html, "text/html; charset=utf-8")
	if err != nil {
		return "", fmt.Errorf("upload cv export: %w", err)
	}
	return url, nil
}

func (s *Service) docID(userID string) string {
	return "user-" + userID
}

func (s *Service) markHasCV(ctx context.Context, doc Document) {
	if s.profiles == nil {
		return
	}
	u, err := s.profiles.Get(ctx, doc.UserID)
	switch {
	case err == nil:
		if u.HasCV {
			return
		}
		u.HasCV = true
	case errors.Is(err, user.ErrNotFound):
		// A first save can land before any profile document exists.
		// Create a minimal record so the flag survives session rebuilds.
		u = user.User{
			ID:       doc.UserID,
			Email:    doc.Email,
			Username: doc.FullName,
			HasCV:    true,
		}
	default:
		if s.logger != nil {
			s.logger.Printf("[CV] load profile %s: %v", doc.UserID, err)
		}
		return
	}
	if err := s.profiles.Save(ctx, u); err != nil && s.logger != nil {
		s.logger.Printf("[CV] mark hasCV for %s: %v", doc.UserID, err)
	}
}
