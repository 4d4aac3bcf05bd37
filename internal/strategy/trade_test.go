package strategy

import (
	"testing"

	"github.com/tycoon/strategy-engine/internal/model"
)

// --- Quality filter tests ---

func TestEvaluateTrade_RejectsLopsidedQuality(t *testing.T) {
	e := newTestEngine()
	// Their side completes green (1.30), ours brown (0.85); 1.30 exceeds
	// 0.85 × 1.40, so the trade hands over too much.
	state := testState(
		testPlayer("self", 500, 1, 31),
		testPlayer("opp1", 500, 3, 32, 34),
	)
	offer := model.TradeOffer{
		FromPlayer:          "opp1",
		ToPlayer:            "self",
		PropertiesOffered:   model.NewPositionSet(3),
		PropertiesRequested: model.NewPositionSet(31),
	}

	if e.EvaluateTrade(state, offer) {
		t.Error("green for brown is outside the quality ratio, must reject")
	}
}

func TestEvaluateTrade_AcceptsFavorableQuality(t *testing.T) {
	e := newTestEngine()
	// The mirror image: we complete green, they complete brown.
	state := testState(
		testPlayer("self", 500, 1, 31),
		testPlayer("opp1", 500, 3, 32, 34),
	)
	offer := model.TradeOffer{
		FromPlayer:          "opp1",
		ToPlayer:            "self",
		PropertiesOffered:   model.NewPositionSet(32, 34),
		PropertiesRequested: model.NewPositionSet(1),
	}

	if !e.EvaluateTrade(state, offer) {
		t.Error("green for brown in our favor should be accepted")
	}
}

func TestEvaluateTrade_TheyGainOnlyNeedsCash(t *testing.T) {
	e := newTestEngine()
	// We hold orange complete plus a stray green; they complete green with
	// it. Inside the quality ratios, the cash threshold decides.
	state := testState(
		testPlayer("self", 500, 16, 18, 19, 34),
		testPlayer("opp1", 500, 31, 32),
	)
	offer := model.TradeOffer{
		FromPlayer:          "opp1",
		ToPlayer:            "self",
		PropertiesOffered:   model.NewPositionSet(),
		PropertiesRequested: model.NewPositionSet(34),
		CashOffered:         250,
	}

	if !e.EvaluateTrade(state, offer) {
		t.Error("cash above the threshold should buy the monopoly piece")
	}

	offer.CashOffered = 150
	if e.EvaluateTrade(state, offer) {
		t.Error("cash below the threshold must not buy the monopoly piece")
	}
}

// --- EPT fallback tests ---

func TestEvaluateTrade_EPTGainAccepted(t *testing.T) {
	e := newTestEngine()
	// No monopolies in sight; position 24 earns far more per turn than 1.
	state := testState(
		testPlayer("self", 500, 1),
		testPlayer("opp1", 500, 24),
	)
	offer := model.TradeOffer{
		FromPlayer:          "opp1",
		ToPlayer:            "self",
		PropertiesOffered:   model.NewPositionSet(24),
		PropertiesRequested: model.NewPositionSet(1),
	}

	if !e.EvaluateTrade(state, offer) {
		t.Error("strict EPT improvement should be accepted")
	}
}

func TestEvaluateTrade_EPTLossRejected(t *testing.T) {
	e := newTestEngine()
	state := testState(
		testPlayer("self", 500, 24),
		testPlayer("opp1", 500, 1),
	)
	offer := model.TradeOffer{
		FromPlayer:          "opp1",
		ToPlayer:            "self",
		PropertiesOffered:   model.NewPositionSet(1),
		PropertiesRequested: model.NewPositionSet(24),
	}

	if e.EvaluateTrade(state, offer) {
		t.Error("EPT downgrade with no sweetener must be rejected")
	}
}

func TestEvaluateTrade_EqualEPTDecidedByCash(t *testing.T) {
	e := newTestEngine()
	state := testState(
		testPlayer("self", 500, 1),
		testPlayer("opp1", 500, 24),
	)
	pureCash := model.TradeOffer{
		FromPlayer:          "opp1",
		ToPlayer:            "self",
		PropertiesOffered:   model.NewPositionSet(),
		PropertiesRequested: model.NewPositionSet(),
		CashOffered:         50,
	}

	if !e.EvaluateTrade(state, pureCash) {
		t.Error("free cash at unchanged EPT should be accepted")
	}

	pureCash.CashOffered = 0
	if e.EvaluateTrade(state, pureCash) {
		t.Error("a no-op trade should be declined")
	}
}

// --- Guard tests ---

func TestEvaluateTrade_UnknownProposerRejected(t *testing.T) {
	e := newTestEngine()
	state := testState(
		testPlayer("self", 500, 1),
		testPlayer("opp1", 500, 24),
	)
	offer := model.TradeOffer{
		FromPlayer:          "ghost",
		ToPlayer:            "self",
		PropertiesOffered:   model.NewPositionSet(24),
		PropertiesRequested: model.NewPositionSet(1),
	}

	if e.EvaluateTrade(state, offer) {
		t.Error("offers from unknown players must be rejected")
	}
}

func TestEvaluateTrade_ReserveBreachRejected(t *testing.T) {
	e := newTestEngine()
	// Post-trade cash of 100 - 50 = 50 is below the 75 reserve, no matter
	// how good the properties are.
	state := testState(
		testPlayer("self", 100, 1),
		testPlayer("opp1", 500, 24),
	)
	offer := model.TradeOffer{
		FromPlayer:          "opp1",
		ToPlayer:            "self",
		PropertiesOffered:   model.NewPositionSet(24),
		PropertiesRequested: model.NewPositionSet(),
		CashRequested:       50,
	}

	if e.EvaluateTrade(state, offer) {
		t.Error("trades draining cash below the reserve must be rejected")
	}
}

// --- Proposal generation tests ---

func TestProposeTrades_MutualCompletionSwap(t *testing.T) {
	e := newTestEngine()
	// We are one short of orange, the opponent two short of green; we hold
	// their missing 31, they hold our missing 19.
	state := testState(
		testPlayer("self", 500, 16, 18, 31),
		testPlayer("opp1", 500, 19, 32, 34),
	)

	offers := e.ProposeTrades(state)
	if len(offers) == 0 {
		t.Fatal("the mutual completion swap should be found")
	}

	found := false
	for _, o := range offers {
		if o.PropertiesOffered.Contains(31) && o.PropertiesRequested.Contains(19) {
			found = true
			if o.ToPlayer != "opp1" {
				t.Errorf("expected offer to opp1, got %s", o.ToPlayer)
			}
			// 19 costs 200, 31 costs 300: the 100 difference flows back.
			if o.CashRequested != 100 || o.CashOffered != 0 {
				t.Errorf("expected 100 cash requested, got offered=%d requested=%d",
					o.CashOffered, o.CashRequested)
			}
		}
	}
	if !found {
		t.Errorf("expected a 31-for-19 swap among %d offers", len(offers))
	}
}

func TestProposeTrades_MirrorConsistency(t *testing.T) {
	e := newTestEngine()
	state := testState(
		testPlayer("self", 500, 16, 18, 31),
		testPlayer("opp1", 500, 19, 32, 34),
	)

	// Every emitted offer must survive its own evaluation from the other
	// side; proposing something we would refuse is incoherent.
	for _, o := range e.ProposeTrades(state) {
		if !e.EvaluateTrade(state, o.Mirror()) {
			t.Errorf("emitted offer fails its mirror evaluation: %+v", o)
		}
	}
}

func TestProposeTrades_NothingToSeek(t *testing.T) {
	e := newTestEngine()
	// Complete groups generate no wants.
	state := testState(
		testPlayer("self", 500, 1, 3),
		testPlayer("opp1", 500, 24),
	)

	if offers := e.ProposeTrades(state); len(offers) != 0 {
		t.Errorf("expected no proposals, got %d", len(offers))
	}
}
