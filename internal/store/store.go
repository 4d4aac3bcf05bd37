// Package store defines the persistence interface for the strategy engine.
// Implementations include PostgreSQL (source of truth), Redis (read-through
// cache), and in-memory (for testing).
package store

import (
	"context"

	"github.com/tycoon/strategy-engine/internal/model"
)

// Store persists play sessions and the immutable decision ledger.
// PostgreSQL is the source of truth; Redis provides a read-through cache
// layer for the session lookups made on every decision call.
type Store interface {
	// --- Session operations ---

	// CreateSession persists a new session.
	CreateSession(ctx context.Context, session *model.Session) error

	// GetSession retrieves a session by its ID.
	GetSession(ctx context.Context, id string) (*model.Session, error)

	// ListSessions returns all sessions, newest first.
	ListSessions(ctx context.Context) ([]model.Session, error)

	// UpdateSessionStatus transitions a session between active and closed.
	UpdateSessionStatus(ctx context.Context, id, status string) error

	// --- Immutable decision ledger ---

	// InsertDecision appends an immutable decision record.
	InsertDecision(ctx context.Context, record *model.DecisionRecord) error

	// GetDecisionsBySession returns all decisions for a session in order.
	GetDecisionsBySession(ctx context.Context, sessionID string) ([]model.DecisionRecord, error)
}
