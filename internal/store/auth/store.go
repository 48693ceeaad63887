// Package auth holds the client-session authentication state: who is
// signed in, whether session resolution is still in flight, and the last
// credential error.
package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"whitekola/internal/domain/user"
	"whitekola/internal/kvstore"
	platformauth "whitekola/internal/platform/auth"
)

// SessionClient is the slice of the auth backend the store depends on.
type SessionClient interface {
	SignIn(ctx context.Context, email, password string) (platformauth.Identity, platformauth.Tokens, error)
	SignUp(ctx context.Context, email, password, displayName string) (platformauth.Identity, platformauth.Tokens, error)
	SignOut(ctx context.Context) error
	OnSessionChange(h func(*platformauth.Identity)) func()
}

// ProfileStore resolves extended profile records by platform identity id.
type ProfileStore interface {
	Get(ctx context.Context, id string) (user.User, error)
}

type State struct {
	User            *user.User `json:"user"`
	IsAuthenticated bool       `json:"isAuthenticated"`
	IsLoading       bool       `json:"-"`
	Err             string     `json:"-"`
}

type Store struct {
	client   SessionClient
	profiles ProfileStore
	kv       kvstore.Store
	key      string
	logger   *log.Logger

	mu      sync.Mutex
	state   State
	gen     uint64
	subs    map[int]func(State)
	nextSub int
}

// New builds a store bound to the given persistence key and restores any
// previously stored session snapshot. kv may be nil when persistence is
// not wanted.
func New(client SessionClient, profiles ProfileStore, kv kvstore.Store, key string, logger *log.Logger) *Store {
	s := &Store{
		client:   client,
		profiles: profiles,
		kv:       kv,
		key:      key,
		logger:   logger,
		subs:     make(map[int]func(State)),
	}
	s.load()
	return s
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) SetUser(u *user.User) {
	s.mutate(func(st *State) {
		st.User = cloneUser(u)
	})
}

func (s *Store) SetIsAuthenticated(v bool) {
	s.mutate(func(st *State) {
		st.IsAuthenticated = v
	})
}

func (s *Store) SetIsLoading(v bool) {
	s.mutate(func(st *State) {
		st.IsLoading = v
	})
}

func (s *Store) SetError(msg string) {
	s.mutate(func(st *State) {
		st.Err = msg
	})
}

// UpdateUser merges the patch into the current user record. Without a
// signed-in user it does nothing.
func (s *Store) UpdateUser(p user.Patch) {
	s.mutate(func(st *State) {
		if st.User == nil {
			return
		}
		merged := st.User.Apply(p)
		st.User = &merged
	})
}

// Logout clears the user and the authenticated flag. Error and loading are
// deliberately left as they are.
func (s *Store) Logout() {
	s.mutate(func(st *State) {
		st.User = nil
		st.IsAuthenticated = false
	})
}

// Login signs in through the backend. Credential failures are stored as a
// readable message and returned so the caller can react.
func (s *Store) Login(ctx context.Context, email, password string) (platformauth.Tokens, error) {
	s.mutate(func(st *State) {
		st.IsLoading = true
		st.Err = ""
	})

	ident, toks, err := s.client.SignIn(ctx, email, password)
	if err != nil {
		s.mutate(func(st *State) {
			st.Err = loginErrorMessage(err)
			st.IsLoading = false
		})
		return platformauth.Tokens{}, err
	}

	s.adoptIdentityIfUnresolved(ident)
	s.mutate(func(st *State) {
		st.IsLoading = false
	})
	return toks, nil
}

// Register creates an account and signs it in, mirroring Login's error
// handling.
func (s *Store) Register(ctx context.Context, email, password, username string) (platformauth.Tokens, error) {
	s.mutate(func(st *State) {
		st.IsLoading = true
		st.Err = ""
	})

	ident, toks, err := s.client.SignUp(ctx, email, password, username)
	if err != nil {
		s.mutate(func(st *State) {
			st.Err = registerErrorMessage(err)
			st.IsLoading = false
		})
		return platformauth.Tokens{}, err
	}

	s.adoptIdentityIfUnresolved(ident)
	s.mutate(func(st *State) {
		st.IsLoading = false
	})
	return toks, nil
}

// InitSession subscribes to the backend's session-change stream and keeps
// local state in sync with it. Each notification resolves the extended
// profile; a missing profile is replaced by a minimal synthesized user.
// The returned function releases the subscription; the caller must invoke
// it on teardown.
func (s *Store) InitSession(ctx context.Context) func() {
	return s.client.OnSessionChange(func(ident *platformauth.Identity) {
		s.resolveSession(ctx, ident)
	})
}

func (s *Store) resolveSession(ctx context.Context, ident *platformauth.Identity) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.state.IsLoading = true
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(st)

	if ident == nil {
		s.applyResolution(gen, func(st *State) {
			st.User = nil
			st.IsAuthenticated = false
		})
		return
	}

	profile, err := s.profiles.Get(ctx, ident.ID.String())
	switch {
	case err == nil:
		s.applyResolution(gen, func(st *State) {
			st.User = &profile
			st.IsAuthenticated = true
		})
	case errors.Is(err, user.ErrNotFound):
		synthesized := synthesizeUser(*ident)
		s.applyResolution(gen, func(st *State) {
			st.User = &synthesized
			st.IsAuthenticated = true
		})
	default:
		if s.logger != nil {
			s.logger.Printf("[Auth] profile fetch failed id=%s err=%v", ident.ID, err)
		}
		s.applyResolution(gen, func(st *State) {
			st.User = nil
			st.IsAuthenticated = false
			st.Err = "Failed to load profile"
		})
	}
}

// applyResolution commits a session resolution only if no newer
// notification has superseded it, so a stale fetch never overwrites a
// fresher state.
func (s *Store) applyResolution(gen uint64, apply func(*State)) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	apply(&s.state)
	s.state.IsLoading = false
	st := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(st)
	s.notify(st)
}

// Subscribe registers a listener called after every state change. The
// returned function removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) adoptIdentityIfUnresolved(ident platformauth.Identity) {
	s.mu.Lock()
	if s.state.User != nil {
		s.mu.Unlock()
		return
	}
	synthesized := synthesizeUser(ident)
	s.state.User = &synthesized
	s.state.IsAuthenticated = true
	st := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(st)
	s.notify(st)
}

func (s *Store) mutate(apply func(*State)) {
	s.mu.Lock()
	apply(&s.state)
	st := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(st)
	s.notify(st)
}

func (s *Store) snapshotLocked() State {
	st := s.state
	st.User = cloneUser(s.state.User)
	return st
}

func (s *Store) notify(st State) {
	s.mu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}

// BindPersistence attaches the durable snapshot key once the signed-in
// user id is known (it is not available before login completes) and writes
// the current state under it.
func (s *Store) BindPersistence(kv kvstore.Store, key string) {
	s.mu.Lock()
	s.kv = kv
	s.key = key
	st := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(st)
}

func (s *Store) load() {
	if s.kv == nil || s.key == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var st State
	hit, err := s.kv.GetJSON(ctx, s.key, &st)
	if err != nil || !hit {
		return
	}

	s.mu.Lock()
	s.state.User = st.User
	s.state.IsAuthenticated = st.IsAuthenticated
	s.mu.Unlock()
}

func (s *Store) persist(st State) {
	if s.kv == nil || s.key == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.kv.SetJSON(ctx, s.key, st); err != nil && s.logger != nil {
		s.logger.Printf("[Auth] persist failed key=%s err=%v", s.key, err)
	}
}

// synthesizeUser builds the minimal profile adopted when no extended
// record exists yet: username falls back to the email local-part.
func synthesizeUser(ident platformauth.Identity) user.User {
	username := strings.TrimSpace(ident.DisplayName)
	if username == "" {
		username = emailLocalPart(ident.Email)
	}
	return user.User{
		ID:       ident.ID.String(),
		Email:    ident.Email,
		Username: username,
		PhotoURL: ident.PhotoURL,
		HasCV:    false,
	}
}

func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

func cloneUser(u *user.User) *user.User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}

func loginErrorMessage(err error) string {
	switch {
	case errors.Is(err, platformauth.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, platformauth.ErrAccountNotFound):
		return "User not found"
	default:
		return "Login failed"
	}
}

func registerErrorMessage(err error) string {
	switch {
	case errors.Is(err, platformauth.ErrEmailAlreadyInUse):
		return "Email already in use"
	case errors.Is(err, platformauth.ErrInvalidInput):
		return "Invalid email or password"
	default:
		return "Registration failed"
	}
}
