package strategy

import "github.com/tycoon/strategy-engine/internal/model"

// Monopoly-completion and blocking multipliers on the auction ceiling.
// Paying a 5% premium over face value dominates in self-play; 50% more is
// worth it to complete a monopoly, 30% more to deny one.
const (
	completionMultiplier = 1.5
	blockingMultiplier   = 1.3

	// fallbackAuctionPrice anchors the ceiling for positions missing from
	// the price table.
	fallbackAuctionPrice = 100
)

// AuctionBid returns the bid to place against currentBid for the contested
// position, or 0 to pass.
//
// The ceiling is face price plus premium, scaled up for own monopoly
// completion or (else) sole-blocker denial, then clamped by the mortgage
// debt headroom: min(absolute debt cap, net worth × debt ratio) minus debt
// already outstanding. The returned bid is always a small step above the
// current bid, never a jump to the ceiling — the ceiling bounds exposure,
// the increment throttles escalation.
func (e *Engine) AuctionBid(state model.GameState, position, currentBid int) int {
	player := state.Self

	price := e.board.Price(position)
	if price == 0 {
		price = fallbackAuctionPrice
	}
	ceiling := int(float64(price) * (1 + e.params.BidPremium))

	if g, ok := e.board.GroupOf(position); ok {
		if e.board.HasMonopoly(player.Properties.With(position), g) {
			ceiling = int(float64(ceiling) * completionMultiplier)
		} else if threat, sole := e.blockThreat(state, position, g); threat {
			if !e.params.SmartBlocking || sole {
				ceiling = int(float64(ceiling) * blockingMultiplier)
			}
		}
	}

	netWorth := e.vals.NetWorth(player)
	maxDebt := min(e.params.MaxAbsoluteDebt, int(float64(netWorth)*e.params.MaxDebtRatio))

	currentDebt := 0
	for pos := range player.Mortgaged {
		currentDebt += e.board.Price(pos) / 2
	}

	affordable := player.Cash + (maxDebt - currentDebt) - e.params.MinCashReserve
	ceiling = min(ceiling, affordable)

	if ceiling <= currentBid {
		return 0
	}
	return min(currentBid+e.params.BidIncrement, ceiling)
}
