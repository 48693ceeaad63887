// Package session holds the per-user state containers the HTTP and
// websocket layers read from. Each signed-in user gets one Session with
// its own auth, chat and settings stores; the job catalog store is shared
// across all users and lives outside this package.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"whitekola/internal/assistant"
	"whitekola/internal/kvstore"
	platformauth "whitekola/internal/platform/auth"
	"whitekola/internal/profiles"
	authstore "whitekola/internal/store/auth"
	chatstore "whitekola/internal/store/chat"
	settingsstore "whitekola/internal/store/settings"
)

// Session bundles one user's stores. Close releases the auth store's
// session subscription.
type Session struct {
	UserID   string
	Auth     *authstore.Store
	Chat     *chatstore.Store
	Settings *settingsstore.Store
	Client   *platformauth.Client

	closeOnce sync.Once
	unsub     func()
}

func (s *Session) Close() {
	if s == nil {
		return
	}
	s.closeOnce.Do(func() {
		if s.unsub != nil {
			s.unsub()
		}
	})
}

type Manager struct {
	backend   *platformauth.Backend
	profiles  *profiles.Repository
	completer assistant.Completer
	kv        kvstore.Store
	logger    *log.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(backend *platformauth.Backend, profiles *profiles.Repository, completer assistant.Completer, kv kvstore.Store, logger *log.Logger) *Manager {
	return &Manager{
		backend:   backend,
		profiles:  profiles,
		completer: completer,
		kv:        kv,
		logger:    logger,
		sessions:  make(map[string]*Session),
	}
}

// Session returns the container for userID, building it on first use.
// The auth store is subscribed to its client's session stream and the
// client is adopted into the identity carried by the user's token, so the
// stores resolve the profile immediately.
func (m *Manager) Session(ctx context.Context, ident platformauth.Identity) *Session {
	if m == nil {
		return nil
	}
	key := ident.ID.String()

	m.mu.Lock()
	if s, ok := m.sessions[key]; ok {
		m.mu.Unlock()
		return s
	}
	m.mu.Unlock()

	// Token claims only carry id and email; pull the full identity back
	// from the backend so a rebuilt session keeps its display name.
	if ident.DisplayName == "" {
		if full, err := m.backend.IdentityByID(ctx, ident.ID); err == nil {
			ident = full
		}
	}

	client := m.backend.NewClient()
	auth := authstore.New(client, m.profiles, m.kv, "auth-storage:"+key, m.logger)
	chat := chatstore.New(m.completer, m.logger)
	chat.Greet()
	settings := settingsstore.New(m.kv, "settings-storage:"+key, m.logger)

	s := &Session{
		Auth:     auth,
		Chat:     chat,
		Settings: settings,
		Client:   client,
	}
	s.unsub = auth.InitSession(ctx)
	client.Adopt(ident)

	return m.register(s, key)
}

// Login authenticates through a fresh container's auth store, so the
// store's error policy runs in the production path, then registers the
// container under the signed-in user.
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, platformauth.Tokens, error) {
	if m == nil {
		return nil, platformauth.Tokens{}, platformauth.ErrInternal
	}
	s := m.newUnboundSession(ctx)

	toks, err := s.Auth.Login(ctx, email, password)
	if err != nil {
		s.Close()
		return nil, platformauth.Tokens{}, err
	}
	return m.bind(s, toks)
}

// Register mirrors Login for account creation.
func (m *Manager) Register(ctx context.Context, email, password, displayName string) (*Session, platformauth.Tokens, error) {
	if m == nil {
		return nil, platformauth.Tokens{}, platformauth.ErrInternal
	}
	s := m.newUnboundSession(ctx)

	toks, err := s.Auth.Register(ctx, email, password, displayName)
	if err != nil {
		s.Close()
		return nil, platformauth.Tokens{}, err
	}
	return m.bind(s, toks)
}

// newUnboundSession builds a container whose persistence key is not yet
// known; Login/Register bind it once the user id is resolved.
func (m *Manager) newUnboundSession(ctx context.Context) *Session {
	client := m.backend.NewClient()
	auth := authstore.New(client, m.profiles, nil, "", m.logger)
	chat := chatstore.New(m.completer, m.logger)
	chat.Greet()

	s := &Session{Auth: auth, Chat: chat, Client: client}
	s.unsub = auth.InitSession(ctx)
	return s
}

func (m *Manager) bind(s *Session, toks platformauth.Tokens) (*Session, platformauth.Tokens, error) {
	st := s.Auth.State()
	if st.User == nil {
		s.Close()
		return nil, platformauth.Tokens{}, platformauth.ErrInternal
	}
	key := st.User.ID
	s.Auth.BindPersistence(m.kv, "auth-storage:"+key)
	s.Settings = settingsstore.New(m.kv, "settings-storage:"+key, m.logger)

	return m.register(s, key), toks, nil
}

// register installs the container under key, handing back the existing one
// if a concurrent request won the race.
func (m *Manager) register(s *Session, key string) *Session {
	s.UserID = key
	m.mu.Lock()
	if existing, ok := m.sessions[key]; ok {
		m.mu.Unlock()
		s.Close()
		return existing
	}
	m.sessions[key] = s
	m.mu.Unlock()
	return s
}

// Drop tears down and forgets the container for userID. Used on logout.
func (m *Manager) Drop(userID string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	s := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()
	s.Close()

	if m.kv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := m.kv.Delete(ctx, "auth-storage:"+userID); err != nil && m.logger != nil {
			m.logger.Printf("[Session] drop persisted auth state %s: %v", userID, err)
		}
	}
}

// Len reports how many sessions are live.
func (m *Manager) Len() int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
