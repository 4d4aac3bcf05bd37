// Package model defines the core domain types shared across the strategy
// engine. Game snapshots are value objects: the engine never mutates one,
// every hypothetical ("post-trade", "post-purchase") is a freshly derived
// copy.
package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PlayerState is the observed state of one player at a decision point.
// Cash may only go negative inside hypothetical post-trade evaluation; a
// persisted snapshot never carries negative cash.
type PlayerState struct {
	ID         string      `json:"id"`
	Cash       int         `json:"cash"`
	Properties PositionSet `json:"properties"`
	Mortgaged  PositionSet `json:"mortgaged"`
	Houses     map[int]int `json:"houses,omitempty"` // position → house count, 5 = hotel
	Position   int         `json:"position"`
	InJail     bool        `json:"in_jail"`
}

// GameState is a complete snapshot assembled by the state-acquisition
// collaborator once per decision cycle. The engine never retains one
// across calls.
type GameState struct {
	Self            PlayerState   `json:"self"`
	Opponents       []PlayerState `json:"opponents"`
	CurrentTurn     string        `json:"current_turn"`
	TurnNumber      int           `json:"turn_number"`
	HousesAvailable int           `json:"houses_available"`
	HotelsAvailable int           `json:"hotels_available"`
}

// TradeOffer is a proposed exchange of properties and cash.
type TradeOffer struct {
	FromPlayer          string      `json:"from_player"`
	ToPlayer            string      `json:"to_player"`
	PropertiesOffered   PositionSet `json:"properties_offered"`
	PropertiesRequested PositionSet `json:"properties_requested"`
	CashOffered         int         `json:"cash_offered"`
	CashRequested       int         `json:"cash_requested"`
}

// Mirror returns the same exchange seen from the recipient's side: parties
// swapped, offered and requested swapped. An offer is only worth proposing
// if its mirror would be accepted by the engine's own evaluation logic.
func (o TradeOffer) Mirror() TradeOffer {
	return TradeOffer{
		FromPlayer:          o.ToPlayer,
		ToPlayer:            o.FromPlayer,
		PropertiesOffered:   o.PropertiesRequested.Clone(),
		PropertiesRequested: o.PropertiesOffered.Clone(),
		CashOffered:         o.CashRequested,
		CashRequested:       o.CashOffered,
	}
}

// Params are the tunable decision constants. Defaults reproduce the
// tournament-calibrated configuration; sessions may override them.
type Params struct {
	// BidPremium is the auction ceiling premium over face value.
	BidPremium float64 `json:"bid_premium"`
	// BidIncrement is the fixed step above the current bid.
	BidIncrement int `json:"bid_increment"`
	// MaxDebtRatio caps mortgage debt as a fraction of net worth.
	MaxDebtRatio float64 `json:"max_debt_ratio"`
	// MaxAbsoluteDebt is the hard cap on total mortgage debt.
	MaxAbsoluteDebt int `json:"max_absolute_debt"`
	// MinCashReserve is the cash floor kept after any spend.
	MinCashReserve int `json:"min_cash_reserve"`
	// PurchaseBuffer is the extra cushion over the reserve required for a
	// discretionary purchase.
	PurchaseBuffer int `json:"purchase_buffer"`
	// BuildBuffer is the cushion over the reserve required after buying a
	// house.
	BuildBuffer int `json:"build_buffer"`
	// UnmortgageBuffer is the cushion over the reserve required after
	// paying off a mortgage.
	UnmortgageBuffer int `json:"unmortgage_buffer"`
	// SmartBlocking pays blocking premiums only when this player is the
	// sole remaining blocker of an opponent monopoly.
	SmartBlocking bool `json:"smart_blocking"`
	// MinQualityRatio accepts a trade when own post-trade monopoly quality
	// is at least this fraction of the counterparty's.
	MinQualityRatio float64 `json:"min_quality_ratio"`
	// MaxQualityRatio rejects a trade when the counterparty's post-trade
	// quality exceeds own quality by more than this factor.
	MaxQualityRatio float64 `json:"max_quality_ratio"`
	// TradeCashThreshold is the net cash required to accept a trade that
	// hands the counterparty a monopoly without gaining one.
	TradeCashThreshold int `json:"trade_cash_threshold"`
	// LateGameHouses is the total board-wide house count past which paying
	// the jail fee is always worth it.
	LateGameHouses int `json:"late_game_houses"`
}

// DefaultParams returns the calibrated defaults.
func DefaultParams() Params {
	return Params{
		BidPremium:         0.05,
		BidIncrement:       10,
		MaxDebtRatio:       0.15,
		MaxAbsoluteDebt:    400,
		MinCashReserve:     75,
		PurchaseBuffer:     100,
		BuildBuffer:        50,
		UnmortgageBuffer:   100,
		SmartBlocking:      true,
		MinQualityRatio:    0.85,
		MaxQualityRatio:    1.40,
		TradeCashThreshold: 200,
		LateGameHouses:     10,
	}
}

// Validate rejects parameter bundles that would make the decision rules
// degenerate.
func (p Params) Validate() error {
	if p.BidPremium < 0 {
		return fmt.Errorf("bid_premium must be >= 0, got %v", p.BidPremium)
	}
	if p.BidIncrement <= 0 {
		return fmt.Errorf("bid_increment must be > 0, got %d", p.BidIncrement)
	}
	if p.MaxDebtRatio < 0 || p.MaxDebtRatio > 1 {
		return fmt.Errorf("max_debt_ratio must be in [0,1], got %v", p.MaxDebtRatio)
	}
	if p.MaxAbsoluteDebt < 0 {
		return fmt.Errorf("max_absolute_debt must be >= 0, got %d", p.MaxAbsoluteDebt)
	}
	if p.MinCashReserve < 0 {
		return fmt.Errorf("min_cash_reserve must be >= 0, got %d", p.MinCashReserve)
	}
	if p.MinQualityRatio <= 0 || p.MaxQualityRatio <= 0 {
		return fmt.Errorf("quality ratios must be > 0, got min=%v max=%v",
			p.MinQualityRatio, p.MaxQualityRatio)
	}
	if p.MinQualityRatio > p.MaxQualityRatio {
		return fmt.Errorf("min_quality_ratio %v exceeds max_quality_ratio %v",
			p.MinQualityRatio, p.MaxQualityRatio)
	}
	return nil
}

// Session represents one bot play session. Decisions are recorded against
// a session, and the session's Params bundle governs every decision made
// within it: configuration travels with the entity, not the process.
type Session struct {
	ID        string    `json:"id" db:"id"`
	PlayerID  string    `json:"player_id" db:"player_id"`
	Params    Params    `json:"params" db:"params"`
	Status    string    `json:"status" db:"status"` // "active", "closed"
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Decision kinds recorded in the ledger.
const (
	KindPurchase       = "purchase"
	KindAuction        = "auction"
	KindTradeEval      = "trade_eval"
	KindTradeProposals = "trade_proposals"
	KindBuild          = "build"
	KindJail           = "jail"
	KindMortgage       = "mortgage"
	KindUnmortgage     = "unmortgage"
)

// Decision outcomes recorded in the ledger.
const (
	OutcomeAccept = "accept"
	OutcomeReject = "reject"
	OutcomeBid    = "bid"
	OutcomePass   = "pass"
	OutcomePlan   = "plan"
)

// DecisionRecord is an immutable ledger entry for one decision call. Once
// created, these are never modified or deleted. NetWorth and RelativeEPT
// capture the valuation metrics at decision time.
type DecisionRecord struct {
	ID          string          `json:"id" db:"id"`
	SessionID   string          `json:"session_id" db:"session_id"`
	Kind        string          `json:"kind" db:"kind"`
	Position    int             `json:"position,omitempty" db:"position"`
	Outcome     string          `json:"outcome" db:"outcome"`
	Bid         int             `json:"bid,omitempty" db:"bid"`
	Positions   []int           `json:"positions,omitempty" db:"positions"`
	NetWorth    decimal.Decimal `json:"net_worth" db:"net_worth"`
	RelativeEPT decimal.Decimal `json:"relative_ept" db:"relative_ept"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}
