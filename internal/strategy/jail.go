package strategy

import "github.com/tycoon/strategy-engine/internal/model"

// ShouldPayJailFee decides whether to pay the fee to leave jail. With a
// monopoly in hand the agent needs mobility to collect rent; otherwise it
// pays only late in the game, once board-wide development crosses the
// threshold. Early on, jail is free parking with no opportunity cost.
func (e *Engine) ShouldPayJailFee(state model.GameState) bool {
	player := state.Self

	for _, g := range e.board.Groups() {
		if e.board.HasMonopoly(player.Properties, g) {
			return true
		}
	}

	totalHouses := 0
	for _, h := range player.Houses {
		totalHouses += h
	}
	for _, opp := range state.Opponents {
		for _, h := range opp.Houses {
			totalHouses += h
		}
	}
	return totalHouses > e.params.LateGameHouses
}
