package agent

import "github.com/jthies73/hanabi/engine"

// Choose picks one action for t's player from their own view. Rules are
// tried in order and the first that applies wins:
//
//  1. play a slot known to be playable
//  2. play the leftmost clued slot that might be playable
//  3. save a critical card on a teammate's chop with a color hint
//  4. hint a teammate's playable card
//  5. discard the rightmost unclued slot (rightmost slot if all are clued)
//
// The result is not guaranteed to be legal: rule 5 applies even at the clue
// cap, where the caller is expected to fall back.
func Choose(t *Tracker, pub *engine.PublicState) engine.Action {
	me := t.PlayerID
	slots := t.Slots[:t.SlotsLen]

	for i, k := range slots {
		if k.KnownPlayable(pub) {
			return engine.PlayCard{Player: me, Index: i}
		}
	}

	for i, k := range slots {
		if k.Clued && k.MaybePlayable(pub) {
			return engine.PlayCard{Player: me, Index: i}
		}
	}

	if pub.ClueTokens > 0 {
		if h, ok := saveClue(me, pub); ok {
			return h
		}
		if h, ok := playClue(me, pub); ok {
			return h
		}
	}

	return engine.DiscardCard{Player: me, Index: chop(slots)}
}

// saveClue looks at every teammate's chop, their rightmost card, and hints
// its color if it is the last live copy of a card still needed.
func saveClue(me uint8, pub *engine.PublicState) (engine.Action, bool) {
	for _, h := range pub.Others {
		if len(h.Cards) == 0 {
			continue
		}
		c := h.Cards[len(h.Cards)-1]
		if IsCritical(c, pub) {
			return engine.HintColor{Player: me, Target: h.Player, Color: c.Color}, true
		}
	}
	return nil, false
}

// playClue hints the first playable card found in teammates' hands: by
// color for ranks up to 3, by rank above that.
func playClue(me uint8, pub *engine.PublicState) (engine.Action, bool) {
	for _, h := range pub.Others {
		for _, c := range h.Cards {
			if !pub.IsPlayable(c) {
				continue
			}
			if c.Rank <= 3 {
				return engine.HintColor{Player: me, Target: h.Player, Color: c.Color}, true
			}
			return engine.HintRank{Player: me, Target: h.Player, Rank: c.Rank}, true
		}
	}
	return nil, false
}

// IsCritical reports whether c is still needed and every other copy of it
// has been discarded.
func IsCritical(c engine.Card, pub *engine.PublicState) bool {
	next, ok := pub.NextNeeded(c.Color)
	if !ok || c.Rank < next {
		return false
	}
	return pub.DiscardedCount(c.Color, c.Rank) >= engine.CopiesOf(c.Rank)-1
}

// chop returns the rightmost unclued slot, or the rightmost slot.
func chop(slots []Knowledge) int {
	for i := len(slots) - 1; i >= 0; i-- {
		if !slots[i].Clued {
			return i
		}
	}
	return max(len(slots)-1, 0)
}
