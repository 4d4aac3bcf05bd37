package model

import (
	"encoding/json"
	"sort"
)

// PositionSet is an unordered set of board positions. Its JSON form is a
// sorted array, so snapshots serialize deterministically. The zero value
// (nil map) is a valid empty set for reads; use NewPositionSet before
// adding. Per-player sets are always constructed fresh, never shared.
type PositionSet map[int]struct{}

// NewPositionSet builds a set from the given positions.
func NewPositionSet(positions ...int) PositionSet {
	s := make(PositionSet, len(positions))
	for _, p := range positions {
		s[p] = struct{}{}
	}
	return s
}

// Contains reports set membership.
func (s PositionSet) Contains(pos int) bool {
	_, ok := s[pos]
	return ok
}

// Add inserts a position.
func (s PositionSet) Add(pos int) {
	s[pos] = struct{}{}
}

// Len returns the number of positions in the set.
func (s PositionSet) Len() int {
	return len(s)
}

// Clone returns an independent copy.
func (s PositionSet) Clone() PositionSet {
	out := make(PositionSet, len(s))
	for p := range s {
		out[p] = struct{}{}
	}
	return out
}

// With returns a copy that also contains pos. The receiver is unchanged.
func (s PositionSet) With(pos int) PositionSet {
	out := s.Clone()
	out[pos] = struct{}{}
	return out
}

// Union returns a new set containing every position in either set.
func (s PositionSet) Union(other PositionSet) PositionSet {
	out := s.Clone()
	for p := range other {
		out[p] = struct{}{}
	}
	return out
}

// Difference returns a new set with other's positions removed.
func (s PositionSet) Difference(other PositionSet) PositionSet {
	out := make(PositionSet, len(s))
	for p := range s {
		if !other.Contains(p) {
			out[p] = struct{}{}
		}
	}
	return out
}

// Sorted returns the positions in ascending order.
func (s PositionSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s PositionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array of positions.
func (s *PositionSet) UnmarshalJSON(data []byte) error {
	var positions []int
	if err := json.Unmarshal(data, &positions); err != nil {
		return err
	}
	*s = NewPositionSet(positions...)
	return nil
}
