// Package valuation derives economic metrics from game snapshots: net
// worth, expected rent earnings per turn (EPT), relative EPT versus the
// field, and aggregate monopoly quality.
//
// EPT deliberately models only two development levels — base rent, or the
// doubled monopoly rent when the owner holds the full group — and ignores
// houses that are actually built. The downstream decision thresholds were
// calibrated against this simplification; correcting it here would shift
// every tuned comparison. Known approximation, not a bug.
package valuation

import (
	"github.com/tycoon/strategy-engine/internal/board"
	"github.com/tycoon/strategy-engine/internal/model"
)

// Engine computes valuation metrics against a shared read-only Board. It
// is stateless: snapshots are passed as arguments, never stored.
type Engine struct {
	board *board.Board
}

// NewEngine creates a valuation engine over the given board model.
func NewEngine(b *board.Board) *Engine {
	return &Engine{board: b}
}

// NetWorth is cash plus property value: half price for mortgaged holdings,
// full price otherwise, plus built houses at the group's construction cost.
// The mortgage half-value truncates toward zero.
func (e *Engine) NetWorth(p model.PlayerState) int {
	worth := p.Cash
	for pos := range p.Properties {
		price := e.board.Price(pos)
		if p.Mortgaged.Contains(pos) {
			worth += price / 2
			continue
		}
		worth += price
		houses := p.Houses[pos]
		if g, ok := e.board.GroupOf(pos); ok && houses > 0 {
			worth += houses * e.board.HouseCost(g)
		}
	}
	return worth
}

// EPT is the expected rent income per turn from a property set:
//
//	Σ landingProbability(pos) × rent(pos, level) × numOpponents
//
// where level is 1 (monopoly rent) when the set holds the position's full
// group and 0 otherwise.
func (e *Engine) EPT(owned model.PositionSet, numOpponents int) float64 {
	var total float64
	for pos := range owned {
		g, ok := e.board.GroupOf(pos)
		if !ok {
			continue
		}
		level := 0
		if e.board.HasMonopoly(owned, g) {
			level = 1
		}
		rent := e.board.Rent(pos, level)
		total += e.board.LandingProbability(pos) * float64(rent) * float64(numOpponents)
	}
	return total
}

// RelativeEPT is own EPT minus the population-average EPT. Each player's
// EPT uses that player's own opponent count (total players − 1). Positive
// means gaining ground on the field.
func (e *Engine) RelativeEPT(state model.GameState) float64 {
	numPlayers := 1 + len(state.Opponents)
	myEPT := e.EPT(state.Self.Properties, len(state.Opponents))

	total := myEPT
	for _, opp := range state.Opponents {
		total += e.EPT(opp.Properties, numPlayers-1)
	}

	average := total / float64(numPlayers)
	return myEPT - average
}

// MonopolyQuality sums the calibrated quality weights of every group fully
// contained in the property set. Partially owned groups contribute nothing;
// quality is additive across disjoint complete groups.
func (e *Engine) MonopolyQuality(props model.PositionSet) float64 {
	var q float64
	for _, g := range e.board.Groups() {
		if e.board.HasMonopoly(props, g) {
			q += e.board.Quality(g)
		}
	}
	return q
}
