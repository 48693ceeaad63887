// Package settings holds user-facing preference state with write-through
// persistence to durable key-value storage.
package settings

import (
	"context"
	"log"
	"sync"
	"time"

	"whitekola/internal/kvstore"
)

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageFrench  Language = "fr"
)

type State struct {
	DarkMode bool     `json:"darkMode"`
	Language Language `json:"language"`
}

type Store struct {
	kv     kvstore.Store
	key    string
	logger *log.Logger

	mu      sync.Mutex
	state   State
	subs    map[int]func(State)
	nextSub int
}

// New builds a store bound to a storage key and restores any previously
// persisted state from it.
func New(kv kvstore.Store, key string, logger *log.Logger) *Store {
	s := &Store{
		kv:     kv,
		key:    key,
		logger: logger,
		state:  State{Language: LanguageEnglish},
		subs:   make(map[int]func(State)),
	}
	s.load()
	return s
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) ToggleDarkMode() {
	s.mu.Lock()
	s.state.DarkMode = !s.state.DarkMode
	st := s.state
	s.mu.Unlock()

	s.persist(st)
	s.notify(st)
}

func (s *Store) SetLanguage(lang Language) {
	if lang != LanguageEnglish && lang != LanguageFrench {
		return
	}

	s.mu.Lock()
	s.state.Language = lang
	st := s.state
	s.mu.Unlock()

	s.persist(st)
	s.notify(st)
}

// Subscribe registers a listener called after every mutation. The returned
// function removes it.
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

func (s *Store) load() {
	if s.kv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var st State
	hit, err := s.kv.GetJSON(ctx, s.key, &st)
	if err != nil {
		if s.logger != nil {
			s.logger.Printf("[Settings] load failed key=%s err=%v", s.key, err)
		}
		return
	}
	if !hit {
		return
	}
	if st.Language != LanguageEnglish && st.Language != LanguageFrench {
		st.Language = LanguageEnglish
	}

	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Persistence is fire-and-forget: a failed write is logged and the
// in-memory state stands.
func (s *Store) persist(st State) {
	if s.kv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.kv.SetJSON(ctx, s.key, st); err != nil && s.logger != nil {
		s.logger.Printf("[Settings] persist failed key=%s err=%v", s.key, err)
	}
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
