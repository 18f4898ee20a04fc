package assistant

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSessionNotFound indicates that no conversation exists for a session id.
var ErrSessionNotFound = errors.New("conversation session not found")

// Store defines the persistence contract for conversation state. The session
// map must be safe for concurrent use across distinct sessions; turns within
// one session are serialized by the Assistant.
type Store interface {
	// Get returns the conversation for the given session id.
	Get(ctx context.Context, sessionID string) (*Conversation, error)
	// Set saves the conversation under the given session id.
	Set(ctx context.Context, sessionID string, conv *Conversation) error
	// Clear removes the conversation for the given session id.
	Clear(ctx context.Context, sessionID string) error
}

// MemoryStore is the default in-process Store implementation.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Conversation
}

// NewMemoryStore returns an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Conversation)}
}

// Get returns the stored conversation or ErrSessionNotFound when absent.
func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	return conv, nil
}

// Set saves the conversation and stamps its update time.
func (s *MemoryStore) Set(ctx context.Context, sessionID string, conv *Conversation) error {
	conv.UpdatedAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sessionID] = conv
	return nil
}

// Clear removes the conversation for the given session id.
func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// Sweep evicts sessions idle for longer than ttl and reports how many were
// removed.
func (s *MemoryStore) Sweep(ttl time.Duration) int {
	cutoff := time.Now().UTC().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, conv := range s.sessions {
		if conv.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}

	return removed
}
