package agent

import "github.com/jthies73/hanabi/engine"

// Knowledge is what a player has deduced about one slot of their own hand.
// ColorClues and RankClues record positive hints for display only.
type Knowledge struct {
	Colors     ColorSet
	Ranks      RankSet
	Clued      bool
	ColorClues ColorSet
	RankClues  RankSet
}

// Unknown returns a maximally uncertain slot.
func Unknown() Knowledge {
	return Knowledge{Colors: AllColors, Ranks: AllRanks}
}

// Certain reports whether both color and rank are known.
func (k Knowledge) Certain() bool { return k.Colors.Len() == 1 && k.Ranks.Len() == 1 }

// Identity returns the slot's card if it is certain.
func (k Knowledge) Identity() (engine.Color, engine.Rank, bool) {
	c, okC := k.Colors.Only()
	r, okR := k.Ranks.Only()
	return c, r, okC && okR
}

// Possible reports whether (c, r) is still consistent with the slot.
func (k Knowledge) Possible(c engine.Color, r engine.Rank) bool {
	return k.Colors.Has(c) && k.Ranks.Has(r)
}

// Contains reports whether card's identity is still possible.
func (k Knowledge) Contains(card engine.Card) bool { return k.Possible(card.Color, card.Rank) }

// MaybePlayable reports whether any still-possible identity is playable now.
func (k Knowledge) MaybePlayable(pub *engine.PublicState) bool {
	for _, c := range k.Colors.Values() {
		next, ok := pub.NextNeeded(c)
		if ok && k.Ranks.Has(next) {
			return true
		}
	}
	return false
}

// KnownPlayable reports whether the slot is certain and playable now.
func (k Knowledge) KnownPlayable(pub *engine.PublicState) bool {
	c, r, ok := k.Identity()
	return ok && pub.IsPlayableIdentity(c, r)
}

func (k Knowledge) touchColor(c engine.Color) Knowledge {
	k.Colors = ColorSetOf(c)
	k.Clued = true
	k.ColorClues = k.ColorClues.Add(c)
	return k
}

func (k Knowledge) touchRank(r engine.Rank) Knowledge {
	k.Ranks = RankSetOf(r)
	k.Clued = true
	k.RankClues = k.RankClues.Add(r)
	return k
}

// excludeColor removes c unless that would leave no color.
func (k Knowledge) excludeColor(c engine.Color) Knowledge {
	if next := k.Colors.Remove(c); !next.IsEmpty() {
		k.Colors = next
	}
	return k
}

// excludeRank removes r unless that would leave no rank.
func (k Knowledge) excludeRank(r engine.Rank) Knowledge {
	if next := k.Ranks.Remove(r); !next.IsEmpty() {
		k.Ranks = next
	}
	return k
}
