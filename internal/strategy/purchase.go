package strategy

import "github.com/tycoon/strategy-engine/internal/model"

// ShouldBuy decides whether to buy the landed-on property at the given
// price. Declining sends the property to auction.
//
// Branch order matters and first true wins: hard affordability floor,
// trivial accept for groupless squares, unconditional accept on own
// monopoly completion, blocking an opponent's completion, and finally a
// comfort-buffer check for discretionary purchases.
func (e *Engine) ShouldBuy(state model.GameState, position, price int) bool {
	player := state.Self

	if player.Cash-price < e.params.MinCashReserve {
		return false
	}

	g, ok := e.board.GroupOf(position)
	if !ok {
		return true
	}

	if e.board.HasMonopoly(player.Properties.With(position), g) {
		return true
	}

	if threat, sole := e.blockThreat(state, position, g); threat {
		if !e.params.SmartBlocking || sole {
			return true
		}
	}

	return player.Cash-price >= e.params.MinCashReserve+e.params.PurchaseBuffer
}
