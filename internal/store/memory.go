package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/tycoon/strategy-engine/internal/model"
)

// MemoryStore implements Store with in-memory maps. Used for testing
// and development. Not suitable for production (no persistence).
type MemoryStore struct {
	mu        sync.RWMutex
	sessions  map[string]*model.Session
	decisions []model.DecisionRecord
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*model.Session),
	}
}

func (s *MemoryStore) CreateSession(_ context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return fmt.Errorf("session %s already exists", session.ID)
	}

	// Store a copy to avoid external mutation.
	copy := *session
	s.sessions[session.ID] = &copy
	return nil
}

func (s *MemoryStore) GetSession(_ context.Context, id string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s not found", id)
	}
	copy := *sess
	return &copy, nil
}

func (s *MemoryStore) ListSessions(_ context.Context) ([]model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]model.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, *sess)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	return sessions, nil
}

func (s *MemoryStore) UpdateSessionStatus(_ context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return fmt.Errorf("session %s not found", id)
	}
	sess.Status = status
	return nil
}

func (s *MemoryStore) InsertDecision(_ context.Context, record *model.DecisionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.decisions = append(s.decisions, *record)
	return nil
}

func (s *MemoryStore) GetDecisionsBySession(_ context.Context, sessionID string) ([]model.DecisionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []model.DecisionRecord
	for _, d := range s.decisions {
		if d.SessionID == sessionID {
			result = append(result, d)
		}
	}
	return result, nil
}
