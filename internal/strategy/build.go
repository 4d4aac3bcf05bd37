package strategy

import (
	"github.com/tycoon/strategy-engine/internal/board"
	"github.com/tycoon/strategy-engine/internal/model"
)

// buildPriority orders groups by return on investment at three houses,
// best first. Orange leads at 3.48%; brown trails despite being cheap.
var buildPriority = []board.Group{
	board.Orange, board.Red, board.DarkBlue, board.Yellow,
	board.Green, board.Pink, board.LightBlue, board.Brown,
}

// ShouldBuildHouse reports whether one house can and should be built on
// the position right now: the group is developable and fully owned, the
// bank has houses left, cash stays above reserve plus buffer, the even
// building rule holds (the position is among the least developed in its
// group), and the position is below the four-house pre-hotel cap.
func (e *Engine) ShouldBuildHouse(state model.GameState, position int) bool {
	player := state.Self

	g, ok := e.board.GroupOf(position)
	if !ok || !e.board.Developable(g) {
		return false
	}
	if !e.board.HasMonopoly(player.Properties, g) {
		return false
	}
	if state.HousesAvailable <= 0 {
		return false
	}
	if player.Cash-e.board.HouseCost(g) < e.params.MinCashReserve+e.params.BuildBuffer {
		return false
	}

	minHouses := -1
	for _, pos := range e.board.Members(g) {
		if h := player.Houses[pos]; minHouses < 0 || h < minHouses {
			minHouses = h
		}
	}
	current := player.Houses[position]
	if current > minHouses {
		return false
	}
	return current < 4
}

// BuildablePositions returns every position worth building on right now,
// ordered by group ROI priority and board order within each group.
func (e *Engine) BuildablePositions(state model.GameState) []int {
	player := state.Self
	var buildable []int

	for _, g := range buildPriority {
		if !e.board.HasMonopoly(player.Properties, g) {
			continue
		}
		for _, pos := range e.board.Members(g) {
			if e.ShouldBuildHouse(state, pos) {
				buildable = append(buildable, pos)
			}
		}
	}
	return buildable
}
