// Package board holds the static economic model of the 40-square board:
// property groups, face prices, rent schedules, steady-state landing
// probabilities, and the empirically calibrated group quality weights.
//
// Landing probabilities come from a Markov-chain analysis of the board
// structure; quality multipliers come from win rates over 500+ simulated
// games and are not derivable from price. Both are calibration data, loaded
// once and never mutated.
//
// Every lookup is total: unknown positions and groups degrade to documented
// neutral defaults instead of failing.
package board

import "github.com/tycoon/strategy-engine/internal/model"

// Group identifies a set of positions that share a quality weight and
// construction cost: one of the eight color groups, the railroads, or the
// utilities.
type Group string

const (
	Brown     Group = "brown"
	LightBlue Group = "lightBlue"
	Pink      Group = "pink"
	Orange    Group = "orange"
	Red       Group = "red"
	Yellow    Group = "yellow"
	Green     Group = "green"
	DarkBlue  Group = "darkBlue"
	Railroad  Group = "railroad"
	Utility   Group = "utility"
)

// Defaults returned for positions/groups missing from the tables.
const (
	// DefaultLandingProbability is used for squares the Markov analysis
	// did not tabulate individually.
	DefaultLandingProbability = 0.025

	// DefaultQuality is the neutral quality weight for unknown groups.
	DefaultQuality = 1.0

	// DefaultHouseCost is the fallback construction cost for unknown groups.
	DefaultHouseCost = 100
)

// boardOrder is the canonical group iteration order (board order). All
// deterministic iteration over groups uses this.
var boardOrder = []Group{
	Brown, LightBlue, Pink, Orange, Red, Yellow, Green, DarkBlue,
	Railroad, Utility,
}

var members = map[Group][]int{
	Brown:     {1, 3},
	LightBlue: {6, 8, 9},
	Pink:      {11, 13, 14},
	Orange:    {16, 18, 19},
	Red:       {21, 23, 24},
	Yellow:    {26, 27, 29},
	Green:     {31, 32, 34},
	DarkBlue:  {37, 39},
	Railroad:  {5, 15, 25, 35},
	Utility:   {12, 28},
}

// quality holds win-rate-calibrated weights. Orange is the baseline (best
// ROI); brown wins only 30.2% of the time despite its low price.
var quality = map[Group]float64{
	Brown:     0.85,
	LightBlue: 0.95,
	Pink:      0.95,
	Orange:    1.00,
	Red:       1.05,
	Yellow:    1.20,
	Green:     1.30,
	DarkBlue:  1.15,
	Railroad:  1.00,
	Utility:   0.90,
}

var houseCost = map[Group]int{
	Brown:     50,
	LightBlue: 50,
	Pink:      100,
	Orange:    100,
	Red:       150,
	Yellow:    150,
	Green:     200,
	DarkBlue:  200,
}

var prices = map[int]int{
	1: 60, 3: 60,
	6: 100, 8: 100, 9: 120,
	11: 140, 13: 140, 14: 160,
	16: 180, 18: 180, 19: 200,
	21: 220, 23: 220, 24: 240,
	26: 260, 27: 260, 29: 280,
	31: 300, 32: 300, 34: 320,
	37: 350, 39: 400,
	5: 200, 15: 200, 25: 200, 35: 200,
	12: 150, 28: 150,
}

// rents[pos] = [base, monopoly, 1 house, 2, 3, 4, hotel]. Always 7 entries.
var rents = map[int][7]int{
	1:  {2, 4, 10, 30, 90, 160, 250},
	3:  {4, 8, 20, 60, 180, 320, 450},
	6:  {6, 12, 30, 90, 270, 400, 550},
	8:  {6, 12, 30, 90, 270, 400, 550},
	9:  {8, 16, 40, 100, 300, 450, 600},
	11: {10, 20, 50, 150, 450, 625, 750},
	13: {10, 20, 50, 150, 450, 625, 750},
	14: {12, 24, 60, 180, 500, 700, 900},
	16: {14, 28, 70, 200, 550, 750, 950},
	18: {14, 28, 70, 200, 550, 750, 950},
	19: {16, 32, 80, 220, 600, 800, 1000},
	21: {18, 36, 90, 250, 700, 875, 1050},
	23: {18, 36, 90, 250, 700, 875, 1050},
	24: {20, 40, 100, 300, 750, 925, 1100},
	26: {22, 44, 110, 330, 800, 975, 1150},
	27: {22, 44, 110, 330, 800, 975, 1150},
	29: {24, 48, 120, 360, 850, 1025, 1200},
	31: {26, 52, 130, 390, 900, 1100, 1275},
	32: {26, 52, 130, 390, 900, 1100, 1275},
	34: {28, 56, 150, 450, 1000, 1200, 1400},
	37: {35, 70, 175, 500, 1100, 1300, 1500},
	39: {50, 100, 200, 600, 1400, 1700, 2000},
}

// landingProb holds steady-state probabilities for the most-landed squares.
// Jail (10) includes both in-jail and just-visiting occupancy.
var landingProb = map[int]float64{
	24: 0.0316,
	0:  0.0312,
	21: 0.0305,
	25: 0.0303,
	10: 0.062,
	5:  0.0289,
	15: 0.0286,
	35: 0.0280,
}

// Board is the immutable lookup model. Construct once with New and share
// by reference; it is safe for unsynchronized concurrent reads.
type Board struct {
	groupOf map[int]Group
}

// New builds a Board from the embedded calibration tables.
func New() *Board {
	groupOf := make(map[int]Group)
	for _, g := range boardOrder {
		for _, pos := range members[g] {
			groupOf[pos] = g
		}
	}
	return &Board{groupOf: groupOf}
}

// Groups returns the groups in canonical board order.
func (b *Board) Groups() []Group {
	out := make([]Group, len(boardOrder))
	copy(out, boardOrder)
	return out
}

// GroupOf returns the group owning a position. ok is false for squares
// that are not properties.
func (b *Board) GroupOf(pos int) (Group, bool) {
	g, ok := b.groupOf[pos]
	return g, ok
}

// Price returns the face price of a position, or 0 if it is not a property.
func (b *Board) Price(pos int) int {
	return prices[pos]
}

// Rent returns the rent of a position at a development level
// (0=unimproved, 1=monopoly, 2-5=houses, 6=hotel). Levels at or above the
// schedule length clamp to the hotel tier; unknown positions rent 0.
func (b *Board) Rent(pos, level int) int {
	sched, ok := rents[pos]
	if !ok {
		return 0
	}
	if level < 0 {
		level = 0
	}
	if level >= len(sched) {
		level = len(sched) - 1
	}
	return sched[level]
}

// LandingProbability returns the steady-state probability of landing on a
// square, falling back to DefaultLandingProbability for untabulated squares.
func (b *Board) LandingProbability(pos int) float64 {
	if p, ok := landingProb[pos]; ok {
		return p
	}
	return DefaultLandingProbability
}

// Members returns the positions in a group, empty for unknown groups.
// The returned slice is a copy; callers may reorder it freely.
func (b *Board) Members(g Group) []int {
	src := members[g]
	out := make([]int, len(src))
	copy(out, src)
	return out
}

// Quality returns the calibrated win-rate weight of a group
// (DefaultQuality for unknown groups).
func (b *Board) Quality(g Group) float64 {
	if q, ok := quality[g]; ok {
		return q
	}
	return DefaultQuality
}

// HouseCost returns the per-house construction cost for a group
// (DefaultHouseCost for groups without a tabulated cost).
func (b *Board) HouseCost(g Group) int {
	if c, ok := houseCost[g]; ok {
		return c
	}
	return DefaultHouseCost
}

// Developable reports whether houses can be built on a group. Railroads
// and utilities take no improvements.
func (b *Board) Developable(g Group) bool {
	_, ok := houseCost[g]
	return ok
}

// HasMonopoly reports whether owned contains every member of the group.
// An unknown group has no members, so the check is vacuously true; decision
// code guards on the position actually belonging to a group first.
func (b *Board) HasMonopoly(owned model.PositionSet, g Group) bool {
	for _, pos := range members[g] {
		if !owned.Contains(pos) {
			return false
		}
	}
	return true
}
