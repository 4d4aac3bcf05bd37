package strategy

import "github.com/tycoon/strategy-engine/internal/model"

// EvaluateTrade decides whether to accept an offer addressed to the acting
// player.
//
// When the trade creates or completes a monopoly on either side, the
// quality filter applies: reject when the proposer's post-trade monopoly
// quality exceeds ours by more than MaxQualityRatio, accept when ours is
// at least MinQualityRatio of theirs, demand cash above the threshold when
// they gain a monopoly and we do not, and accept the residual case. The
// rejection check runs before the acceptance check; not every
// monopoly-completing offer is worth taking.
//
// When neither side gains a monopoly, the call falls back to an EPT
// comparison: accept on an EPT gain, or on equal EPT with positive net
// cash.
func (e *Engine) EvaluateTrade(state model.GameState, offer model.TradeOffer) bool {
	player := state.Self

	myPropsAfter := player.Properties.
		Difference(offer.PropertiesRequested).
		Union(offer.PropertiesOffered)
	myCashAfter := player.Cash + offer.CashOffered - offer.CashRequested

	if myCashAfter < e.params.MinCashReserve {
		return false
	}

	var proposer *model.PlayerState
	for i := range state.Opponents {
		if state.Opponents[i].ID == offer.FromPlayer {
			proposer = &state.Opponents[i]
			break
		}
	}
	if proposer == nil {
		return false
	}

	theirPropsAfter := proposer.Properties.
		Difference(offer.PropertiesOffered).
		Union(offer.PropertiesRequested)

	ourQuality := e.vals.MonopolyQuality(myPropsAfter)
	theirQuality := e.vals.MonopolyQuality(theirPropsAfter)
	ourQualityBefore := e.vals.MonopolyQuality(player.Properties)
	theirQualityBefore := e.vals.MonopolyQuality(proposer.Properties)

	weGainMonopoly := ourQuality > ourQualityBefore
	theyGainMonopoly := theirQuality > theirQualityBefore

	netCash := offer.CashOffered - offer.CashRequested

	if !weGainMonopoly && !theyGainMonopoly {
		eptBefore := e.vals.EPT(player.Properties, len(state.Opponents))
		eptAfter := e.vals.EPT(myPropsAfter, len(state.Opponents))
		return eptAfter > eptBefore || (eptAfter == eptBefore && netCash > 0)
	}

	if theirQuality > ourQuality*e.params.MaxQualityRatio {
		return false
	}
	if ourQuality >= theirQuality*e.params.MinQualityRatio {
		return true
	}
	if theyGainMonopoly && !weGainMonopoly {
		return netCash > e.params.TradeCashThreshold
	}
	return true
}

// ProposeTrades generates monopoly-seeking 1-for-1 swap offers. For each
// group the acting player partially owns, it looks for the missing pieces
// in opponents' hands, and offers back a property the opponent partially
// collects, balancing the face-price difference with cash toward whichever
// side gives the cheaper property.
//
// Each candidate is screened through EvaluateTrade on its mirror: only
// offers the acting player would accept from the other side are emitted.
// Groups iterate in canonical board order, so the output is deterministic.
func (e *Engine) ProposeTrades(state model.GameState) []model.TradeOffer {
	player := state.Self
	var offers []model.TradeOffer

	for _, g := range e.board.Groups() {
		var ownedInGroup, needed []int
		for _, pos := range e.board.Members(g) {
			if player.Properties.Contains(pos) {
				ownedInGroup = append(ownedInGroup, pos)
			} else {
				needed = append(needed, pos)
			}
		}
		if len(ownedInGroup) == 0 || len(needed) == 0 {
			continue
		}

		for _, neededPos := range needed {
			for i := range state.Opponents {
				opp := &state.Opponents[i]
				if !opp.Properties.Contains(neededPos) {
					continue
				}

				// What do they collect that we hold?
				for _, theirGroup := range e.board.Groups() {
					theirOwned := 0
					giveBack := -1
					for _, pos := range e.board.Members(theirGroup) {
						if opp.Properties.Contains(pos) {
							theirOwned++
						}
						if giveBack < 0 && player.Properties.Contains(pos) {
							giveBack = pos
						}
					}
					if theirOwned == 0 || giveBack < 0 {
						continue
					}

					offer := model.TradeOffer{
						FromPlayer:          player.ID,
						ToPlayer:            opp.ID,
						PropertiesOffered:   model.NewPositionSet(giveBack),
						PropertiesRequested: model.NewPositionSet(neededPos),
					}

					// Balance the face-price difference with cash.
					diff := e.board.Price(neededPos) - e.board.Price(giveBack)
					if diff > 0 {
						offer.CashOffered = diff
					} else {
						offer.CashRequested = -diff
					}

					if e.EvaluateTrade(state, offer.Mirror()) {
						offers = append(offers, offer)
					}
				}
			}
		}
	}
	return offers
}
