package datagrid

import (
	"errors"
	"sort"
	"sync"
)

// ErrGridNotFound is returned for unknown or closed grid sessions.
var ErrGridNotFound = errors.New("datagrid: grid session not found")

type session struct {
	mu   sync.Mutex
	grid *Grid
}

// SessionStore keeps live grids by id and serializes access to each one.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*session)}
}

// Add stores g under its id.
func (s *SessionStore) Add(g *Grid) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[g.ID()] = &session{grid: g}
	return g.ID()
}

// With runs fn while holding the session lock.
func (s *SessionStore) With(id string, fn func(*Grid) error) error {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return ErrGridNotFound
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.grid == nil {
		return ErrGridNotFound
	}
	return fn(sess.grid)
}

// Remove tears the grid down and forgets it.
func (s *SessionStore) Remove(id string) bool {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return false
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.grid != nil {
		sess.grid.Teardown()
		sess.grid = nil
	}
	return true
}

// IDs lists the live session ids in sorted order.
func (s *SessionStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
