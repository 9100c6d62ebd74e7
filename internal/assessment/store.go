package assessment

import (
	"sync"

	"github.com/RaheesAhmed/growthcompass/internal/errors"
)

var ErrSessionNotFound = errors.NewSentinel("assessment session not found")

type storeEntry struct {
	mu      sync.Mutex
	session *Session
}

// Store keeps the live questionnaire sessions in memory, keyed by session ID.
//
// Session state is owned by one respondent, but the host may deliver
// concurrent submissions for the same session (a double-click race). Do
// serializes transitions per session so a race cannot skip or duplicate a
// question. Different sessions do not block each other.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*storeEntry
}

func NewStore() *Store {
	return &Store{entries: map[string]*storeEntry{}}
}

// Put registers a session, replacing any previous session with the same ID.
func (s *Store) Put(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[session.ID()] = &storeEntry{session: session}
}

// Do runs fn with exclusive access to the session.
func (s *Store) Do(id string, fn func(*Session) error) error {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.session)
}

// Delete discards a session, typically after its responses have been handed
// off for plan generation.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}
