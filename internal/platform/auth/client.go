package auth

import (
	"context"
	"sync"
)

// Client is one signed-in surface onto the backend, analogous to an app
// instance holding its own auth-state stream. SignIn, SignUp, and SignOut
// mutate the client's session and notify every registered handler with the
// new identity, or nil after sign-out.
type Client struct {
	backend *Backend

	mu       sync.Mutex
	identity *Identity
	handlers map[int]func(*Identity)
	nextID   int
}

func (b *Backend) NewClient() *Client {
	return &Client{
		backend:  b,
		handlers: make(map[int]func(*Identity)),
	}
}

func (c *Client) SignIn(ctx context.Context, email, password string) (Identity, Tokens, error) {
	ident, toks, err := c.backend.SignIn(ctx, email, password)
	if err != nil {
		return Identity{}, Tokens{}, err
	}
	c.setIdentity(&ident)
	return ident, toks, nil
}

func (c *Client) SignUp(ctx context.Context, email, password, displayName string) (Identity, Tokens, error) {
	ident, toks, err := c.backend.SignUp(ctx, email, password, displayName)
	if err != nil {
		return Identity{}, Tokens{}, err
	}
	c.setIdentity(&ident)
	return ident, toks, nil
}

func (c *Client) SignOut(ctx context.Context) error {
	_ = ctx
	c.setIdentity(nil)
	return nil
}

// Adopt installs an already-authenticated identity without re-verifying
// credentials, used when a session is rebuilt from a validated token.
func (c *Client) Adopt(ident Identity) {
	c.setIdentity(&ident)
}

// OnSessionChange registers a handler for session-change notifications and
// immediately delivers the current state. The returned function releases
// the subscription.
func (c *Client) OnSessionChange(h func(*Identity)) func() {
	if h == nil {
		return func() {}
	}

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.handlers[id] = h
	current := c.identity
	c.mu.Unlock()

	h(cloneIdentity(current))

	return func() {
		c.mu.Lock()
		delete(c.handlers, id)
		c.mu.Unlock()
	}
}

func (c *Client) setIdentity(ident *Identity) {
	c.mu.Lock()
	c.identity = ident
	hs := make([]func(*Identity), 0, len(c.handlers))
	for _, h := range c.handlers {
		hs = append(hs, h)
	}
	c.mu.Unlock()

	for _, h := range hs {
		h(cloneIdentity(ident))
	}
}

func cloneIdentity(ident *Identity) *Identity {
	if ident == nil {
		return nil
	}
	cp := *ident
	return &cp
}
