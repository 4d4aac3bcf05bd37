package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tycoon/strategy-engine/internal/model"
)

// CachedStore wraps a primary Store (PostgreSQL) with a Redis read-through
// cache. Session lookups happen on every decision call, so they are the
// hot path worth caching; ledger writes invalidate the session's history.
type CachedStore struct {
	primary Store
	rdb     *redis.Client
	ttl     time.Duration
}

// NewCachedStore creates a cached wrapper around a primary store.
func NewCachedStore(primary Store, rdb *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{
		primary: primary,
		rdb:     rdb,
		ttl:     ttl,
	}
}

// --- Write-through (write to primary, invalidate or refresh cache) ---

func (s *CachedStore) CreateSession(ctx context.Context, sess *model.Session) error {
	if err := s.primary.CreateSession(ctx, sess); err != nil {
		return err
	}
	s.cacheSession(ctx, sess)
	return nil
}

func (s *CachedStore) UpdateSessionStatus(ctx context.Context, id, status string) error {
	if err := s.primary.UpdateSessionStatus(ctx, id, status); err != nil {
		return err
	}
	// Invalidate; next read re-populates.
	s.rdb.Del(ctx, sessionKey(id))
	return nil
}

func (s *CachedStore) InsertDecision(ctx context.Context, record *model.DecisionRecord) error {
	if err := s.primary.InsertDecision(ctx, record); err != nil {
		return err
	}
	s.rdb.Del(ctx, historyKey(record.SessionID))
	return nil
}

// --- Read-through (check cache first) ---

func (s *CachedStore) GetSession(ctx context.Context, id string) (*model.Session, error) {
	data, err := s.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err == nil {
		var sess model.Session
		if json.Unmarshal(data, &sess) == nil {
			return &sess, nil
		}
	}

	sess, err := s.primary.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cacheSession(ctx, sess)
	return sess, nil
}

func (s *CachedStore) GetDecisionsBySession(ctx context.Context, sessionID string) ([]model.DecisionRecord, error) {
	data, err := s.rdb.Get(ctx, historyKey(sessionID)).Bytes()
	if err == nil {
		var decisions []model.DecisionRecord
		if json.Unmarshal(data, &decisions) == nil {
			return decisions, nil
		}
	}

	decisions, err := s.primary.GetDecisionsBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(decisions); err == nil {
		s.rdb.Set(ctx, historyKey(sessionID), data, s.ttl)
	}
	return decisions, nil
}

// --- Passthrough (not cached) ---

func (s *CachedStore) ListSessions(ctx context.Context) ([]model.Session, error) {
	return s.primary.ListSessions(ctx)
}

// --- Cache helpers ---

func (s *CachedStore) cacheSession(ctx context.Context, sess *model.Session) {
	if data, err := json.Marshal(sess); err == nil {
		s.rdb.Set(ctx, sessionKey(sess.ID), data, s.ttl)
	}
}

func sessionKey(id string) string { return fmt.Sprintf("session:%s", id) }
func historyKey(id string) string { return fmt.Sprintf("history:%s", id) }
