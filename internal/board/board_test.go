package board

import (
	"math"
	"testing"

	"github.com/tycoon/strategy-engine/internal/model"
)

// --- Membership tests ---

func TestGroupOf_Property(t *testing.T) {
	b := New()
	g, ok := b.GroupOf(19)
	if !ok {
		t.Fatal("position 19 should belong to a group")
	}
	if g != Orange {
		t.Errorf("expected orange, got %s", g)
	}
}

func TestGroupOf_NonProperty(t *testing.T) {
	b := New()
	// Chance, GO, jail and the tax squares carry no group.
	for _, pos := range []int{0, 2, 4, 7, 10, 17, 20, 22, 30, 33, 36, 38} {
		if _, ok := b.GroupOf(pos); ok {
			t.Errorf("position %d should not belong to a group", pos)
		}
	}
}

func TestMembers_ReturnsCopy(t *testing.T) {
	b := New()
	first := b.Members(Orange)
	first[0] = -1
	second := b.Members(Orange)
	if second[0] != 16 {
		t.Errorf("Members must not expose internal state: got %v", second)
	}
}

func TestGroups_CanonicalOrder(t *testing.T) {
	b := New()
	groups := b.Groups()
	if len(groups) != 10 {
		t.Fatalf("expected 10 groups, got %d", len(groups))
	}
	if groups[0] != Brown || groups[3] != Orange || groups[9] != Utility {
		t.Errorf("unexpected group order: %v", groups)
	}
}

// --- Price and rent tests ---

func TestPrice_UnknownPositionIsZero(t *testing.T) {
	b := New()
	if p := b.Price(7); p != 0 {
		t.Errorf("non-property should price 0, got %d", p)
	}
}

func TestRent_LevelClamping(t *testing.T) {
	b := New()

	if r := b.Rent(39, 6); r != 2000 {
		t.Errorf("expected hotel rent 2000, got %d", r)
	}
	// Above-schedule levels clamp to the hotel tier.
	if r := b.Rent(39, 10); r != 2000 {
		t.Errorf("expected clamped hotel rent 2000, got %d", r)
	}
	// Negative levels clamp to base rent.
	if r := b.Rent(39, -1); r != 50 {
		t.Errorf("expected clamped base rent 50, got %d", r)
	}
}

func TestRent_UnknownPositionIsZero(t *testing.T) {
	b := New()
	if r := b.Rent(7, 3); r != 0 {
		t.Errorf("unknown position should rent 0, got %d", r)
	}
}

// --- Calibration table tests ---

func TestLandingProbability_Tabulated(t *testing.T) {
	b := New()
	if p := b.LandingProbability(24); math.Abs(p-0.0316) > 1e-12 {
		t.Errorf("expected 0.0316 for position 24, got %v", p)
	}
	// Jail probability includes just-visiting occupancy.
	if p := b.LandingProbability(10); math.Abs(p-0.062) > 1e-12 {
		t.Errorf("expected 0.062 for jail, got %v", p)
	}
}

func TestLandingProbability_Default(t *testing.T) {
	b := New()
	if p := b.LandingProbability(23); p != DefaultLandingProbability {
		t.Errorf("untabulated square should use default, got %v", p)
	}
}

func TestQuality_UnknownGroupDefault(t *testing.T) {
	b := New()
	if q := b.Quality(Group("teal")); q != DefaultQuality {
		t.Errorf("unknown group should use default quality, got %v", q)
	}
}

func TestHouseCost_UnknownGroupDefault(t *testing.T) {
	b := New()
	if c := b.HouseCost(Group("teal")); c != DefaultHouseCost {
		t.Errorf("unknown group should use default house cost, got %d", c)
	}
}

func TestDevelopable(t *testing.T) {
	b := New()
	if !b.Developable(Orange) {
		t.Error("color groups should be developable")
	}
	if b.Developable(Railroad) || b.Developable(Utility) {
		t.Error("railroads and utilities must not be developable")
	}
}

// --- Monopoly tests ---

func TestHasMonopoly(t *testing.T) {
	b := New()

	if !b.HasMonopoly(model.NewPositionSet(16, 18, 19), Orange) {
		t.Error("full group should be a monopoly")
	}
	if b.HasMonopoly(model.NewPositionSet(16, 18), Orange) {
		t.Error("partial group must not be a monopoly")
	}
	// Extra holdings do not break the check.
	if !b.HasMonopoly(model.NewPositionSet(1, 16, 18, 19, 39), Orange) {
		t.Error("superset should still be a monopoly")
	}
}

func TestHasMonopoly_UnknownGroupVacuouslyTrue(t *testing.T) {
	b := New()
	// No members means nothing is missing. Callers guard on GroupOf first.
	if !b.HasMonopoly(model.NewPositionSet(), Group("teal")) {
		t.Error("unknown group should be vacuously true")
	}
}
