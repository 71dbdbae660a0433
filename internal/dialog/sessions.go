package dialog

import (
	"sync"

	"github.com/google/uuid"
)

// Sessions keeps conversation state per session id. Unknown ids start with
// empty state, so callers never need to register a session first.
type Sessions struct {
	mu     sync.Mutex
	states map[string]State
}

// NewSessions creates an empty session store.
func NewSessions() *Sessions {
	return &Sessions{states: make(map[string]State)}
}

// Mint returns a fresh session id.
func (s *Sessions) Mint() string {
	return uuid.New().String()
}

// Get returns a copy of the state for id. A session that was never seen
// returns the zero state.
func (s *Sessions) Get(id string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[id]
}

// Put stores state for id.
func (s *Sessions) Put(id string, st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[id] = st
}

// Reset drops the state for id.
func (s *Sessions) Reset(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, id)
}

// Len returns the number of sessions with stored state.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}
