package agent

import (
	"math/bits"

	"github.com/jthies73/hanabi/engine"
)

// ColorSet is a bitmask of colors: bit c is set if color c is possible.
type ColorSet uint8

// RankSet is a bitmask of ranks: bit r-1 is set if rank r is possible.
type RankSet uint8

const (
	AllColors ColorSet = 1<<engine.NumColors - 1
	AllRanks  RankSet  = 1<<engine.NumRanks - 1
)

// ColorSetOf returns the set holding exactly the given colors.
func ColorSetOf(cs ...engine.Color) ColorSet {
	var s ColorSet
	for _, c := range cs {
		s = s.Add(c)
	}
	return s
}

// RankSetOf returns the set holding exactly the given ranks.
func RankSetOf(rs ...engine.Rank) RankSet {
	var s RankSet
	for _, r := range rs {
		s = s.Add(r)
	}
	return s
}

func (s ColorSet) Has(c engine.Color) bool { return s&(1<<c) != 0 }
func (s ColorSet) Add(c engine.Color) ColorSet { return s | 1<<c }
func (s ColorSet) Remove(c engine.Color) ColorSet { return s &^ (1 << c) }
func (s ColorSet) Len() int { return bits.OnesCount8(uint8(s)) }
func (s ColorSet) IsEmpty() bool { return s == 0 }
func (s RankSet) Has(r engine.Rank) bool { return r.Valid() && s&(1<<(r-1)) != 0 }
func (s RankSet) Add(r engine.Rank) RankSet { return s | 1<<(r-1) }
func (s RankSet) Remove(r engine.Rank) RankSet { return s &^ (1 << (r - 1)) }
func (s RankSet) Len() int { return bits.OnesCount8(uint8(s)) }
func (s RankSet) IsEmpty() bool { return s == 0 }

// Only returns the single member of s, or false if s has zero or several.
func (s ColorSet) Only() (engine.Color, bool) {
	if s.Len() != 1 {
		return 0, false
	}
	return engine.Color(bits.TrailingZeros8(uint8(s))), true
}

// Only returns the single member of s, or false if s has zero or several.
func (s RankSet) Only() (engine.Rank, bool) {
	if s.Len() != 1 {
		return engine.NoRank, false
	}
	return engine.Rank(bits.TrailingZeros8(uint8(s)) + 1), true
}

// Values lists the members in board order.
func (s ColorSet) Values() []engine.Color {
	out := make([]engine.Color, 0, s.Len())
	for _, c := range engine.Colors {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Values lists the members in ascending order.
func (s RankSet) Values() []engine.Rank {
	out := make([]engine.Rank, 0, s.Len())
	for r := engine.MinRank; r <= engine.MaxRank; r++ {
		if s.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

// identityCounts tallies cards by engine.IdentityIndex.
type identityCounts [engine.NumColors * engine.NumRanks]uint8

// exhausted reports whether every copy of (c, r) is accounted for.
func (n *identityCounts) exhausted(c engine.Color, r engine.Rank) bool {
	return int(n[engine.IdentityIndex(c, r)]) >= engine.CopiesOf(r)
}
