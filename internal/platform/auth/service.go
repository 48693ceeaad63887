package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"whitekola/internal/pkg/jwt"
)

// Backend plays the role of the hosted authentication service: credential
// verification, account creation, and token issuance. Clients obtained via
// NewClient carry their own session-change stream.
type Backend struct {
	accounts Repository
	jwt      jwt.Service
}

func NewBackend(accounts Repository, jwtSvc jwt.Service) *Backend {
	return &Backend{accounts: accounts, jwt: jwtSvc}
}

type Tokens struct {
	Access  string
	Refresh string
}

func (b *Backend) SignIn(ctx context.Context, email, password string) (Identity, Tokens, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return Identity{}, Tokens{}, ErrInvalidCredentials
	}

	acct, err := b.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return Identity{}, Tokens{}, ErrInvalidCredentials
		}
		return Identity{}, Tokens{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return Identity{}, Tokens{}, ErrInvalidCredentials
	}

	toks, err := b.issueTokens(acct)
	if err != nil {
		return Identity{}, Tokens{}, ErrInternal
	}
	return acct.identity(), toks, nil
}

func (b *Backend) SignUp(ctx context.Context, email, password, displayName string) (Identity, Tokens, error) {
	email = normalizeEmail(email)
	if email == "" {
		return Identity{}, Tokens{}, ErrInvalidInput
	}
	if !isValidPassword(password) {
		return Identity{}, Tokens{}, ErrInvalidInput
	}

	exists, err := b.accounts.ExistsByEmail(ctx, email)
	if err != nil {
		return Identity{}, Tokens{}, ErrInternal
	}
	if exists {
		return Identity{}, Tokens{}, ErrEmailAlreadyInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Identity{}, Tokens{}, ErrInternal
	}

	acct := Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(displayName),
	}

	if err := b.accounts.Create(ctx, acct); err != nil {
		exists, exErr := b.accounts.ExistsByEmail(ctx, email)
		if exErr == nil && exists {
			return Identity{}, Tokens{}, ErrEmailAlreadyInUse
		}
		return Identity{}, Tokens{}, ErrInternal
	}

	toks, err := b.issueTokens(acct)
	if err != nil {
		return Identity{}, Tokens{}, ErrInternal
	}
	return acct.identity(), toks, nil
}

// IdentityByID resolves the identity behind a validated token subject.
func (b *Backend) IdentityByID(ctx context.Context, id uuid.UUID) (Identity, error) {
	acct, err := b.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return Identity{}, ErrAccountNotFound
		}
		return Identity{}, ErrInternal
	}
	return acct.identity(), nil
}

func (b *Backend) issueTokens(acct Account) (Tokens, error) {
	access, err := b.jwt.GenerateAccessToken(acct.ID, acct.Email)
	if err != nil {
		return Tokens{}, err
	}
	refresh, err := b.jwt.GenerateRefreshToken(acct.ID)
	if err != nil {
		return Tokens{}, err
	}
	return Tokens{Access: access, Refresh: refresh}, nil
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return strings.ToLower(email)
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}
