package strategy

import "testing"

// --- Bid stepping tests ---

func TestAuctionBid_StepsAboveCurrentBid(t *testing.T) {
	e := newTestEngine()
	state := testState(testPlayer("self", 1500))

	// Ceiling on a neutral 200-face property is 210; plenty of room.
	bid := e.AuctionBid(state, 19, 100)
	if bid != 110 {
		t.Errorf("expected current bid + increment = 110, got %d", bid)
	}
}

func TestAuctionBid_NeverJumpsToCeiling(t *testing.T) {
	e := newTestEngine()
	state := testState(testPlayer("self", 1500))

	bid := e.AuctionBid(state, 19, 0)
	if bid != 10 {
		t.Errorf("opening bid should be one increment, got %d", bid)
	}
}

func TestAuctionBid_CapsAtCeiling(t *testing.T) {
	e := newTestEngine()
	state := testState(testPlayer("self", 1500))

	// Ceiling 210; a bid of 205 + 10 would overshoot it.
	bid := e.AuctionBid(state, 19, 205)
	if bid != 210 {
		t.Errorf("bid should be capped at the 210 ceiling, got %d", bid)
	}
}

func TestAuctionBid_PassesAtCeiling(t *testing.T) {
	e := newTestEngine()
	state := testState(testPlayer("self", 1500))

	if bid := e.AuctionBid(state, 19, 210); bid != 0 {
		t.Errorf("expected pass once the ceiling is reached, got %d", bid)
	}
}

// --- Ceiling scaling tests ---

func TestAuctionBid_CompletionRaisesCeiling(t *testing.T) {
	e := newTestEngine()
	// Holding 16 and 18, winning 19 completes orange: ceiling 210 × 1.5.
	state := testState(testPlayer("self", 1500, 16, 18))

	bid := e.AuctionBid(state, 19, 310)
	if bid != 315 {
		t.Errorf("expected bid capped at completion ceiling 315, got %d", bid)
	}
	if bid := e.AuctionBid(state, 19, 315); bid != 0 {
		t.Errorf("expected pass above completion ceiling, got %d", bid)
	}
}

func TestAuctionBid_BlockingRaisesCeiling(t *testing.T) {
	e := newTestEngine()
	// The opponent completes orange with 19; 210 < blocking ceiling ≤ 273.
	state := testState(
		testPlayer("self", 1500),
		testPlayer("opp1", 500, 16, 18),
	)

	bid := e.AuctionBid(state, 19, 250)
	if bid == 0 {
		t.Fatal("sole blocker should keep bidding past the plain ceiling")
	}
	if bid != 260 {
		t.Errorf("expected 260, got %d", bid)
	}
}

// --- Debt headroom tests ---

func TestAuctionBid_ClampedByDebtHeadroom(t *testing.T) {
	e := newTestEngine()
	// Net worth 100: headroom is a sliver, affordable ceiling well under
	// the face-price ceiling of 210.
	state := testState(testPlayer("self", 100))

	bid := e.AuctionBid(state, 19, 0)
	if bid != 10 {
		t.Errorf("small opening bid still fits the clamped ceiling, got %d", bid)
	}
	if bid := e.AuctionBid(state, 19, 50); bid != 0 {
		t.Errorf("expected pass once bidding exceeds debt headroom, got %d", bid)
	}
}

func TestAuctionBid_ExistingMortgageDebtReducesHeadroom(t *testing.T) {
	e := newTestEngine()

	unencumbered := testPlayer("self", 200, 37, 39)
	bidFree := e.AuctionBid(testState(unencumbered), 19, 200)

	// Same holdings, but 39 already mortgaged for 200: the outstanding
	// debt eats the entire headroom.
	encumbered := testPlayer("self", 200, 37, 39)
	encumbered.Mortgaged.Add(39)
	bidDebt := e.AuctionBid(testState(encumbered), 19, 200)

	if bidFree == 0 {
		t.Fatal("unencumbered player should still have bidding room at 200")
	}
	if bidDebt != 0 {
		t.Errorf("outstanding mortgage debt should force a pass, got %d", bidDebt)
	}
}

func TestAuctionBid_CeilingMonotonicInPrice(t *testing.T) {
	e := newTestEngine()
	// Deep pockets so the debt clamp never binds.
	state := testState(testPlayer("self", 5000))

	// A bid of 63 exhausts the 60-face ceiling but leaves room under the
	// 400-face ceiling.
	if bid := e.AuctionBid(state, 1, 63); bid != 0 {
		t.Errorf("expected pass at the cheap property's ceiling, got %d", bid)
	}
	if bid := e.AuctionBid(state, 39, 63); bid != 73 {
		t.Errorf("expected 73 under the expensive property's ceiling, got %d", bid)
	}
}

// --- Fallback price ---

func TestAuctionBid_UnknownPositionUsesFallbackPrice(t *testing.T) {
	e := newTestEngine()
	state := testState(testPlayer("self", 1500))

	// Position 7 has no face price; the 100 anchor gives ceiling 105.
	bid := e.AuctionBid(state, 7, 100)
	if bid != 105 {
		t.Errorf("expected bid capped at fallback ceiling 105, got %d", bid)
	}
	if bid := e.AuctionBid(state, 7, 105); bid != 0 {
		t.Errorf("expected pass above fallback ceiling, got %d", bid)
	}
}
