package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tycoon/strategy-engine/internal/model"
)

// PostgresStore implements Store using PostgreSQL as the source of truth.
// Fractional valuation metrics are stored as NUMERIC for exact precision;
// params and position lists are stored as JSONB.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) CreateSession(ctx context.Context, sess *model.Session) error {
	params, err := json.Marshal(sess.Params)
	if err != nil {
		return fmt.Errorf("marshal session params: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO sessions (id, player_id, params, status, created_at)
		 VALUES ($1, $2, $3::JSONB, $4, $5)`,
		sess.ID, sess.PlayerID, string(params), sess.Status, sess.CreatedAt,
	)
	return err
}

func (s *PostgresStore) GetSession(ctx context.Context, id string) (*model.Session, error) {
	var sess model.Session
	var params []byte

	err := s.pool.QueryRow(ctx,
		`SELECT id, player_id, params, status, created_at
		 FROM sessions WHERE id = $1`, id).
		Scan(&sess.ID, &sess.PlayerID, &params, &sess.Status, &sess.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}

	if err := json.Unmarshal(params, &sess.Params); err != nil {
		return nil, fmt.Errorf("decode session %s params: %w", id, err)
	}
	return &sess, nil
}

func (s *PostgresStore) ListSessions(ctx context.Context) ([]model.Session, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, player_id, params, status, created_at
		 FROM sessions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		var sess model.Session
		var params []byte
		if err := rows.Scan(&sess.ID, &sess.PlayerID, &params, &sess.Status, &sess.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(params, &sess.Params); err != nil {
			return nil, fmt.Errorf("decode session %s params: %w", sess.ID, err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

func (s *PostgresStore) UpdateSessionStatus(ctx context.Context, id, status string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE sessions SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("session %s not found", id)
	}
	return nil
}

func (s *PostgresStore) InsertDecision(ctx context.Context, d *model.DecisionRecord) error {
	positions, err := json.Marshal(d.Positions)
	if err != nil {
		return fmt.Errorf("marshal decision positions: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO decisions (id, session_id, kind, position, outcome, bid, positions, net_worth, relative_ept, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7::JSONB, $8::NUMERIC, $9::NUMERIC, $10)`,
		d.ID, d.SessionID, d.Kind, d.Position, d.Outcome, d.Bid,
		string(positions), d.NetWorth.String(), d.RelativeEPT.String(),
		d.CreatedAt,
	)
	return err
}

func (s *PostgresStore) GetDecisionsBySession(ctx context.Context, sessionID string) ([]model.DecisionRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, session_id, kind, position, outcome, bid, positions,
		        net_worth::TEXT, relative_ept::TEXT, created_at
		 FROM decisions WHERE session_id = $1 ORDER BY created_at`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decisions []model.DecisionRecord
	for rows.Next() {
		var d model.DecisionRecord
		var positions []byte
		var netWorth, relEPT string

		if err := rows.Scan(&d.ID, &d.SessionID, &d.Kind, &d.Position, &d.Outcome,
			&d.Bid, &positions, &netWorth, &relEPT, &d.CreatedAt); err != nil {
			return nil, err
		}

		if err := json.Unmarshal(positions, &d.Positions); err != nil {
			return nil, fmt.Errorf("decode decision %s positions: %w", d.ID, err)
		}
		d.NetWorth, _ = decimal.NewFromString(netWorth)
		d.RelativeEPT, _ = decimal.NewFromString(relEPT)

		decisions = append(decisions, d)
	}
	return decisions, rows.Err()
}
