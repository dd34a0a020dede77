// Package store keeps completed studies for the lifetime of the process so
// the export endpoints can re-serve them. Nothing is persisted: a restart
// forgets every study, which is the intended scope.
package store

import (
	"errors"
	"sync"

	"fiscal_impact/pkg/core/study"
)

// ErrNotFound is returned when no study exists for an ID.
var ErrNotFound = errors.New("store: study not found")

// SessionStore is an in-memory, mutex-guarded study registry.
type SessionStore struct {
	mu      sync.RWMutex
	studies map[string]*study.Study
	lastID  string
}

func NewSessionStore() *SessionStore {
	return &SessionStore{studies: make(map[string]*study.Study)}
}

// Put registers a completed study and marks it as the latest.
func (s *SessionStore) Put(st *study.Study) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.studies[st.ID] = st
	s.lastID = st.ID
}

// Get returns the study with the given ID.
func (s *SessionStore) Get(id string) (*study.Study, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.studies[id]
	if !ok {
		return nil, ErrNotFound
	}
	return st, nil
}

// Latest returns the most recently stored study. The export route accepts
// "latest" in place of an ID and resolves it here.
func (s *SessionStore) Latest() (*study.Study, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastID == "" {
		return nil, ErrNotFound
	}
	return s.studies[s.lastID], nil
}
