// Package strategy implements the decision procedures for a single agent
// in a four-player board economy: purchase, auction bidding, trade
// acceptance and generation, build ordering, jail, and mortgage policy.
//
// Every procedure is a pure function of an immutable game snapshot and the
// engine's parameter bundle. Nothing here performs I/O, blocks, or retains
// state between calls; concurrent decision calls over the same engine are
// safe.
package strategy

import (
	"github.com/tycoon/strategy-engine/internal/board"
	"github.com/tycoon/strategy-engine/internal/model"
	"github.com/tycoon/strategy-engine/internal/valuation"
)

// Engine makes decisions over a shared read-only board model with a fixed
// parameter bundle. Construct one per Params configuration; construction
// is cheap.
type Engine struct {
	board  *board.Board
	vals   *valuation.Engine
	params model.Params
}

// NewEngine creates a decision engine. Params are typically
// model.DefaultParams(), optionally overridden per session.
func NewEngine(b *board.Board, params model.Params) *Engine {
	return &Engine{
		board:  b,
		vals:   valuation.NewEngine(b),
		params: params,
	}
}

// Params returns the engine's parameter bundle.
func (e *Engine) Params() model.Params { return e.params }

// Valuation returns the engine's valuation engine, shared with callers
// that want the metrics behind a decision.
func (e *Engine) Valuation() *valuation.Engine { return e.vals }

// blockThreat reports whether acquiring pos would complete some opponent's
// monopoly of g, and whether the acting player is the sole blocker: no
// other opponent both lacks the position and already holds a piece of the
// group, i.e. nobody else can step in to block instead.
//
// At most one opponent can be one property short of a given group, since
// every member is owned by at most one player.
func (e *Engine) blockThreat(state model.GameState, pos int, g board.Group) (threat, sole bool) {
	groupMembers := e.board.Members(g)

	for i := range state.Opponents {
		opp := &state.Opponents[i]
		if !e.board.HasMonopoly(opp.Properties.With(pos), g) {
			continue
		}

		otherBlockers := 0
		for j := range state.Opponents {
			other := &state.Opponents[j]
			if other == opp || other.Properties.Contains(pos) {
				continue
			}
			for _, member := range groupMembers {
				if other.Properties.Contains(member) {
					otherBlockers++
					break
				}
			}
		}
		return true, otherBlockers == 0
	}
	return false, false
}
