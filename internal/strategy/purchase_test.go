package strategy

import "testing"

// --- Reserve floor tests ---

func TestShouldBuy_RejectsBelowReserve(t *testing.T) {
	e := newTestEngine()
	state := testState(testPlayer("self", 100))

	// 100 - 200 leaves us insolvent; the floor rejects before anything else.
	if e.ShouldBuy(state, 19, 200) {
		t.Error("purchase below the cash reserve must be rejected")
	}
}

func TestShouldBuy_RejectsAtReserveBoundary(t *testing.T) {
	e := newTestEngine()
	// 274 - 200 = 74, one short of the 75 reserve.
	state := testState(testPlayer("self", 274))
	if e.ShouldBuy(state, 19, 200) {
		t.Error("74 remaining is below the 75 reserve")
	}
}

// --- Groupless squares ---

func TestShouldBuy_GrouplessAlwaysAccepted(t *testing.T) {
	e := newTestEngine()
	state := testState(testPlayer("self", 300))

	// Position 7 carries no group; any affordable offer is taken.
	if !e.ShouldBuy(state, 7, 100) {
		t.Error("groupless purchase above reserve should be accepted")
	}
}

// --- Monopoly completion ---

func TestShouldBuy_CompletesOwnMonopoly(t *testing.T) {
	e := newTestEngine()
	// 300 - 200 = 100 fails the discretionary buffer (needs 175), but
	// completing orange is unconditional above the floor.
	state := testState(testPlayer("self", 300, 16, 18))

	if !e.ShouldBuy(state, 19, 200) {
		t.Error("monopoly completion should override the comfort buffer")
	}
}

// --- Blocking ---

func TestShouldBuy_BlocksOpponentCompletion(t *testing.T) {
	e := newTestEngine()
	// Same cash position as the completion test, but the monopoly at stake
	// is the opponent's.
	state := testState(
		testPlayer("self", 300),
		testPlayer("opp1", 500, 16, 18),
	)

	if !e.ShouldBuy(state, 19, 200) {
		t.Error("sole blocker should buy to deny the monopoly")
	}
}

// --- Discretionary buffer ---

func TestShouldBuy_BufferBoundary(t *testing.T) {
	e := newTestEngine()

	// 380 - 200 = 180 ≥ 75 + 100: comfortable.
	if !e.ShouldBuy(testState(testPlayer("self", 380)), 19, 200) {
		t.Error("purchase with full buffer should be accepted")
	}

	// 370 - 200 = 170 < 175: too tight.
	if e.ShouldBuy(testState(testPlayer("self", 370)), 19, 200) {
		t.Error("purchase inside the buffer should be declined")
	}
}

func TestShouldBuy_MonotonicInCash(t *testing.T) {
	e := newTestEngine()

	// Once accepted at some cash level, more cash never flips the decision.
	accepted := false
	for cash := 0; cash <= 1000; cash += 25 {
		buy := e.ShouldBuy(testState(testPlayer("self", cash)), 19, 200)
		if accepted && !buy {
			t.Fatalf("accept at lower cash but reject at %d", cash)
		}
		accepted = accepted || buy
	}
	if !accepted {
		t.Error("expected acceptance somewhere below cash 1000")
	}
}
