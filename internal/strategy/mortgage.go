package strategy

import (
	"sort"

	"github.com/tycoon/strategy-engine/internal/model"
)

// unmortgageRate is principal (50%) plus 10% interest on face price.
const unmortgageRate = 0.55

// MortgagePlan selects properties to mortgage, in order, until the raised
// total meets amountNeeded. Candidates are owned, unmortgaged, house-free
// properties; non-monopoly holdings go first, lowest group quality first,
// so complete monopolies are the last thing pawned.
func (e *Engine) MortgagePlan(state model.GameState, amountNeeded int) []int {
	player := state.Self

	type candidate struct {
		pos      int
		value    int
		monopoly bool
		quality  float64
	}

	var candidates []candidate
	for _, pos := range player.Properties.Sorted() {
		if player.Mortgaged.Contains(pos) || player.Houses[pos] > 0 {
			continue
		}

		c := candidate{pos: pos, value: e.board.Price(pos) / 2}
		if g, ok := e.board.GroupOf(pos); ok {
			c.monopoly = e.board.HasMonopoly(player.Properties, g)
			c.quality = e.board.Quality(g)
		}
		candidates = append(candidates, c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].monopoly != candidates[j].monopoly {
			return !candidates[i].monopoly
		}
		return candidates[i].quality < candidates[j].quality
	})

	var plan []int
	raised := 0
	for _, c := range candidates {
		if raised >= amountNeeded {
			break
		}
		plan = append(plan, c.pos)
		raised += c.value
	}
	return plan
}

// ShouldUnmortgage decides whether to pay off the mortgage on a position.
// The payoff costs 55% of face price; it is only worth it when cash stays
// comfortably above reserve and the property belongs to a complete
// monopoly, where the unmortgaged rent actually matters.
func (e *Engine) ShouldUnmortgage(state model.GameState, position int) bool {
	player := state.Self

	if !player.Mortgaged.Contains(position) {
		return false
	}

	cost := int(float64(e.board.Price(position)) * unmortgageRate)
	if player.Cash-cost < e.params.MinCashReserve+e.params.UnmortgageBuffer {
		return false
	}

	if g, ok := e.board.GroupOf(position); ok && e.board.HasMonopoly(player.Properties, g) {
		return true
	}
	return false
}
