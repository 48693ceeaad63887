// Package chat keeps one linear assistant conversation per user and
// mediates calls to the completion endpoint.
package chat

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"whitekola/internal/assistant"
	"whitekola/internal/domain/chat"
)

// SystemPrompt is prepended to every completion request. It never appears
// in the transcript itself.
const SystemPrompt = "You are a helpful career assistant specializing in the Cameroon job market. Provide advice on job searching, CV writing, interview preparation, and career development specifically for professionals in Cameroon. Include specific information about industries, companies, and job opportunities in Cameroon when relevant."

// Greeting opens a fresh conversation.
const Greeting = "Hello! I am your AI career assistant. How can I help you today with your career in Cameroon?"

// fallbackReply stands in for the assistant when the completion call fails.
const fallbackReply = "I'm sorry, I encountered an error processing your request. Please try again later."

type State struct {
	Messages  []chat.Message
	IsLoading bool
}

// Store owns a single conversation. Sends are serialized: a second
// SendUserMessage blocks until the first completion resolves, so the
// transcript never interleaves two exchanges.
type Store struct {
	completer assistant.Completer
	logger    *log.Logger

	sendMu sync.Mutex

	mu       sync.Mutex
	messages []chat.Message
	loading  bool
	nextID   int
	subs     map[int]func(State)
	nextSub  int
}

func New(completer assistant.Completer, logger *log.Logger) *Store {
	return &Store{
		completer: completer,
		logger:    logger,
		nextID:    1,
		subs:      make(map[int]func(State)),
	}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Append adds a message to the end of the transcript and returns its
// assigned id.
func (s *Store) Append(role chat.Role, content string) string {
	s.mu.Lock()
	m := s.appendLocked(role, content)
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(st)
	return m.ID
}

// Clear empties the transcript. It does not re-seed the greeting; callers
// that want a fresh conversation call Greet afterwards.
func (s *Store) Clear() {
	s.mu.Lock()
	s.messages = nil
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(st)
}

// Greet seeds the opening assistant message.
func (s *Store) Greet() {
	s.Append(chat.RoleAssistant, Greeting)
}

// SendUserMessage appends the user's text immediately, then asks the
// completion endpoint for a reply with the persona instruction followed by
// the full transcript. A failed call appends a scripted fallback reply
// instead of surfacing the error. Loading is cleared whichever way the
// call ends.
func (s *Store) SendUserMessage(ctx context.Context, text string) {
	if s == nil || s.completer == nil {
		return
	}

	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	s.mu.Lock()
	s.appendLocked(chat.RoleUser, text)
	s.loading = true
	transcript := append([]chat.Message(nil), s.messages...)
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(st)

	request := make([]chat.Message, 0, len(transcript)+1)
	request = append(request, chat.Message{Role: chat.RoleSystem, Content: SystemPrompt})
	request = append(request, transcript...)

	reply, err := s.completer.Complete(ctx, request)
	if err != nil {
		if s.logger != nil {
			s.logger.Printf("[Chat] completion failed: %v", err)
		}
		reply = fallbackReply
	}

	s.mu.Lock()
	s.appendLocked(chat.RoleAssistant, reply)
	s.loading = false
	st = s.snapshotLocked()
	s.mu.Unlock()
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

func (s *Store) appendLocked(role chat.Role, content string) chat.Message {
	m := chat.Message{
		ID:        fmt.Sprintf("%d", s.nextID),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	s.nextID++
	s.messages = append(s.messages, m)
	return m
}

func (s *Store) snapshotLocked() State {
	return State{
		Messages:  append([]chat.Message(nil), s.messages...),
		IsLoading: s.loading,
	}
}

func (s *Store) notify(st State) {
	s.mu.Lock()
	handlers := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		handlers = append(handlers, fn)
	}
	s.mu.Unlock()
	for _, fn := range handlers {
		fn(st)
	}
}
