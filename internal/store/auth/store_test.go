package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"whitekola/internal/domain/user"
	platformauth "whitekola/internal/platform/auth"
)

type fakeClient struct {
	identity  *platformauth.Identity
	signInErr error
	signUpErr error
	handlers  []func(*platformauth.Identity)
}

func (f *fakeClient) SignIn(_ context.Context, email, _ string) (platformauth.Identity, platformauth.Tokens, error) {
	if f.signInErr != nil {
		return platformauth.Identity{}, platformauth.Tokens{}, f.signInErr
	}
	ident := platformauth.Identity{ID: uuid.New(), Email: email}
	if f.identity != nil {
		ident = *f.identity
	}
	f.emit(&ident)
	return ident, platformauth.Tokens{Access: "a", Refresh: "r"}, nil
}

func (f *fakeClient) SignUp(_ context.Context, email, _, displayName string) (platformauth.Identity, platformauth.Tokens, error) {
	if f.signUpErr != nil {
		return platformauth.Identity{}, platformauth.Tokens{}, f.signUpErr
	}
	ident := platformauth.Identity{ID: uuid.New(), Email: email, DisplayName: displayName}
	f.emit(&ident)
	return ident, platformauth.Tokens{Access: "a", Refresh: "r"}, nil
}

func (f *fakeClient) SignOut(_ context.Context) error {
	f.emit(nil)
	return nil
}

func (f *fakeClient) OnSessionChange(h func(*platformauth.Identity)) func() {
	f.handlers = append(f.handlers, h)
	h(f.identity)
	return func() { f.handlers = nil }
}

func (f *fakeClient) emit(ident *platformauth.Identity) {
	for _, h := range f.handlers {
		h(ident)
	}
}

type fakeProfiles struct {
	byID map[string]user.User
	err  error
}

func (f *fakeProfiles) Get(_ context.Context, id string) (user.User, error) {
	if f.err != nil {
		return user.User{}, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func TestInitSession_NoIdentityIsAnonymous(t *testing.T) {
	s := New(&fakeClient{}, &fakeProfiles{}, nil, "", nil)

	unsubscribe := s.InitSession(context.Background())
	defer unsubscribe()

	st := s.State()
	if st.User != nil || st.IsAuthenticated {
		t.Fatalf("expected anonymous state, got %+v", st)
	}
	if st.IsLoading {
		t.Fatalf("loading must be cleared after resolution")
	}
}

func TestInitSession_ProfileFound(t *testing.T) {
	id := uuid.New()
	client := &fakeClient{identity: &platformauth.Identity{ID: id, Email: "jane@example.com"}}
	profilesStore := &fakeProfiles{byID: map[string]user.User{
		id.String(): {ID: id.String(), Email: "jane@example.com", Username: "Jane", HasCV: true},
	}}
	s := New(client, profilesStore, nil, "", nil)

	unsubscribe := s.InitSession(context.Background())
	defer unsubscribe()

	st := s.State()
	if st.User == nil || !st.IsAuthenticated {
		t.Fatalf("expected authenticated state, got %+v", st)
	}
	if st.User.Username != "Jane" || !st.User.HasCV {
		t.Fatalf("expected adopted profile, got %+v", st.User)
	}
}

func TestInitSession_ProfileMissingSynthesizesUser(t *testing.T) {
	id := uuid.New()
	client := &fakeClient{identity: &platformauth.Identity{ID: id, Email: "amina.k@example.cm"}}
	s := New(client, &fakeProfiles{}, nil, "", nil)

	unsubscribe := s.InitSession(context.Background())
	defer unsubscribe()

	st := s.State()
	if st.User == nil || !st.IsAuthenticated {
		t.Fatalf("expected authenticated state, got %+v", st)
	}
	if st.User.Username != "amina.k" {
		t.Fatalf("expected username from email local-part, got %q", st.User.Username)
	}
	if st.User.HasCV {
		t.Fatalf("synthesized user must start without a CV")
	}
}

func TestInitSession_DisplayNameWinsOverLocalPart(t *testing.T) {
	id := uuid.New()
	client := &fakeClient{identity: &platformauth.Identity{ID: id, Email: "amina.k@example.cm", DisplayName: "Amina"}}
	s := New(client, &fakeProfiles{}, nil, "", nil)

	unsubscribe := s.InitSession(context.Background())
	defer unsubscribe()

	if got := s.State().User.Username; got != "Amina" {
		t.Fatalf("expected display name, got %q", got)
	}
}

func TestInitSession_FetchErrorClearsUser(t *testing.T) {
	id := uuid.New()
	client := &fakeClient{identity: &platformauth.Identity{ID: id, Email: "jane@example.com"}}
	s := New(client, &fakeProfiles{err: errors.New("boom")}, nil, "", nil)

	unsubscribe := s.InitSession(context.Background())
	defer unsubscribe()

	st := s.State()
	if st.User != nil || st.IsAuthenticated {
		t.Fatalf("expected anonymous state after fetch error, got %+v", st)
	}
	if st.Err == "" {
		t.Fatalf("expected recorded error")
	}
	if st.IsLoading {
		t.Fatalf("loading must be cleared after failed resolution")
	}
}

func TestInitSession_SignOutClearsState(t *testing.T) {
	id := uuid.New()
	client := &fakeClient{identity: &platformauth.Identity{ID: id, Email: "jane@example.com"}}
	s := New(client, &fakeProfiles{}, nil, "", nil)

	unsubscribe := s.InitSession(context.Background())
	defer unsubscribe()

	if !s.State().IsAuthenticated {
		t.Fatalf("precondition: signed in")
	}

	if err := client.SignOut(context.Background()); err != nil {
		t.Fatalf("sign out: %v", err)
	}

	st := s.State()
	if st.User != nil || st.IsAuthenticated {
		t.Fatalf("expected cleared state after sign-out event, got %+v", st)
	}
}

func TestLogin_InvalidCredentialsStoresError(t *testing.T) {
	client := &fakeClient{signInErr: platformauth.ErrInvalidCredentials}
	s := New(client, &fakeProfiles{}, nil, "", nil)

	_, err := s.Login(context.Background(), "jane@example.com", "wrong")
	if !errors.Is(err, platformauth.ErrInvalidCredentials) {
		t.Fatalf("expected credential error returned, got %v", err)
	}

	st := s.State()
	if st.Err != "Invalid email or password" {
		t.Fatalf("expected stored message, got %q", st.Err)
	}
	if st.IsLoading {
		t.Fatalf("loading must be cleared after failure")
	}
	if st.IsAuthenticated {
		t.Fatalf("must stay unauthenticated")
	}
}

func TestLogin_WithoutSubscriptionAdoptsIdentity(t *testing.T) {
	s := New(&fakeClient{}, &fakeProfiles{}, nil, "", nil)

	toks, err := s.Login(context.Background(), "jane@example.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if toks.Access == "" || toks.Refresh == "" {
		t.Fatalf("expected tokens")
	}

	st := s.State()
	if st.User == nil || !st.IsAuthenticated {
		t.Fatalf("expected signed-in state, got %+v", st)
	}
	if st.User.Username != "jane" {
		t.Fatalf("expected username from local-part, got %q", st.User.Username)
	}
}

func TestUpdateUser_NoopWithoutUser(t *testing.T) {
	s := New(&fakeClient{}, &fakeProfiles{}, nil, "", nil)

	name := "Ghost"
	s.UpdateUser(user.Patch{Username: &name})
	if s.State().User != nil {
		t.Fatalf("patch without user must be a no-op")
	}
}

func TestUpdateUser_MergesFields(t *testing.T) {
	s := New(&fakeClient{}, &fakeProfiles{}, nil, "", nil)
	s.SetUser(&user.User{ID: "u1", Email: "jane@example.com", Username: "Jane"})

	hasCV := true
	s.UpdateUser(user.Patch{HasCV: &hasCV})

	st := s.State()
	if !st.User.HasCV {
		t.Fatalf("expected HasCV merged")
	}
	if st.User.Username != "Jane" {
		t.Fatalf("untouched field changed: %q", st.User.Username)
	}
}

func TestLogout_KeepsErrorAndLoading(t *testing.T) {
	s := New(&fakeClient{}, &fakeProfiles{}, nil, "", nil)
	s.SetUser(&user.User{ID: "u1"})
	s.SetIsAuthenticated(true)
	s.SetError("stale error")
	s.SetIsLoading(true)

	s.Logout()

	st := s.State()
	if st.User != nil || st.IsAuthenticated {
		t.Fatalf("expected user and flag cleared, got %+v", st)
	}
	if st.Err != "stale error" || !st.IsLoading {
		t.Fatalf("logout must not touch error or loading, got %+v", st)
	}
}

func TestStaleResolutionDoesNotOverwriteNewer(t *testing.T) {
	// Two interleaved resolutions: the older one resolves last and must be
	// discarded by the generation guard.
	idOld := uuid.New()
	idNew := uuid.New()
	s := New(&fakeClient{}, &fakeProfiles{byID: map[string]user.User{
		idNew.String(): {ID: idNew.String(), Email: "new@example.com", Username: "New"},
		idOld.String(): {ID: idOld.String(), Email: "old@example.com", Username: "Old"},
	}}, nil, "", nil)

	s.mu.Lock()
	s.gen++
	oldGen := s.gen
	s.gen++
	newGen := s.gen
	s.mu.Unlock()

	newUser := user.User{ID: idNew.String(), Username: "New"}
	s.applyResolution(newGen, func(st *State) {
		st.User = &newUser
		st.IsAuthenticated = true
	})

	oldUser := user.User{ID: idOld.String(), Username: "Old"}
	s.applyResolution(oldGen, func(st *State) {
		st.User = &oldUser
	})

	if got := s.State().User.Username; got != "New" {
		t.Fatalf("stale resolution overwrote newer state: %q", got)
	}
}
