// Package agent implements per-player belief tracking and the heuristic
// policy that autonomous players use to pick their actions.
package agent

import "github.com/jthies73/hanabi/engine"

// Tracker holds what one player knows about their own hand, one Knowledge
// per slot in hand order. It is a flat value type and is owned by exactly
// one player; it is never shared with the engine or other players.
type Tracker struct {
	PlayerID uint8
	Slots    [engine.MaxHandSize]Knowledge
	SlotsLen uint8
}

// NewTracker returns a tracker for player with handSize unknown slots.
func NewTracker(playerID uint8, handSize int) Tracker {
	t := Tracker{PlayerID: playerID}
	t.UpdateHandSize(handSize)
	return t
}

// Len returns the number of tracked slots.
func (t *Tracker) Len() int { return int(t.SlotsLen) }

// Knowledge returns a copy of the tracked slots.
func (t *Tracker) Knowledge() []Knowledge {
	out := make([]Knowledge, t.SlotsLen)
	copy(out, t.Slots[:t.SlotsLen])
	return out
}

// At returns the knowledge for slot i, or false if i is out of range.
func (t *Tracker) At(i int) (Knowledge, bool) {
	if i < 0 || i >= int(t.SlotsLen) {
		return Knowledge{}, false
	}
	return t.Slots[i], true
}

// UpdateFromAction folds one successfully applied action into the tracker.
// pub must be this player's view after the action.
//
// For hints to this player, hinted lists the touched slots. A nil hinted
// means the caller could not compute them; every slot that could hold the
// hinted value is then treated as touched and no negative information is
// drawn.
func (t *Tracker) UpdateFromAction(a engine.Action, pub *engine.PublicState, hinted []int) {
	switch a := a.(type) {
	case engine.HintColor:
		if a.Target == t.PlayerID {
			t.applyHint(hinted,
				func(k Knowledge) bool { return k.Colors.Has(a.Color) },
				func(k Knowledge) Knowledge { return k.touchColor(a.Color) },
				func(k Knowledge) Knowledge { return k.excludeColor(a.Color) })
		}
	case engine.HintRank:
		if a.Target == t.PlayerID {
			t.applyHint(hinted,
				func(k Knowledge) bool { return k.Ranks.Has(a.Rank) },
				func(k Knowledge) Knowledge { return k.touchRank(a.Rank) },
				func(k Knowledge) Knowledge { return k.excludeRank(a.Rank) })
		}
	case engine.PlayCard:
		if a.Player == t.PlayerID {
			t.replaceSlot(a.Index)
		}
	case engine.DiscardCard:
		if a.Player == t.PlayerID {
			t.replaceSlot(a.Index)
		}
	}

	t.pruneVisible(pub)
}

// applyHint narrows every slot from one hint.
func (t *Tracker) applyHint(hinted []int, maybe func(Knowledge) bool, touch, exclude func(Knowledge) Knowledge) {
	if hinted == nil {
		for i := uint8(0); i < t.SlotsLen; i++ {
			if maybe(t.Slots[i]) {
				t.Slots[i] = touch(t.Slots[i])
			}
		}
		return
	}

	var touched [engine.MaxHandSize]bool
	for _, i := range hinted {
		if i >= 0 && i < int(t.SlotsLen) {
			touched[i] = true
		}
	}
	for i := uint8(0); i < t.SlotsLen; i++ {
		if touched[i] {
			t.Slots[i] = touch(t.Slots[i])
		} else {
			t.Slots[i] = exclude(t.Slots[i])
		}
	}
}

// replaceSlot drops slot idx and appends a fresh unknown slot for the
// replacement card. Out-of-range indices are ignored.
func (t *Tracker) replaceSlot(idx int) {
	if idx < 0 || idx >= int(t.SlotsLen) {
		return
	}
	copy(t.Slots[idx:t.SlotsLen], t.Slots[idx+1:t.SlotsLen])
	t.Slots[t.SlotsLen-1] = Unknown()
}

// UpdateHandSize truncates or pads the tracker to n slots. It is called with
// the true hand size, which shrinks once the deck is empty.
func (t *Tracker) UpdateHandSize(n int) {
	n = max(0, min(n, engine.MaxHandSize))
	for i := int(t.SlotsLen); i < n; i++ {
		t.Slots[i] = Unknown()
	}
	for i := n; i < int(t.SlotsLen); i++ {
		t.Slots[i] = Knowledge{}
	}
	t.SlotsLen = uint8(n)
}

// visibleCounts tallies every card this player can see: other hands, the
// discard pile, and one copy of each rank 1..k per color on the board.
func visibleCounts(pub *engine.PublicState) identityCounts {
	var n identityCounts
	for _, h := range pub.Others {
		for _, c := range h.Cards {
			n[c.Index()]++
		}
	}
	for _, c := range pub.Discards {
		n[c.Index()]++
	}
	for _, col := range engine.Colors {
		for r := engine.MinRank; r <= pub.Board[col]; r++ {
			n[engine.IdentityIndex(col, r)]++
		}
	}
	return n
}

// pruneVisible removes colors (ranks) for which every still-possible
// identity is fully accounted for elsewhere. A slot whose result would be
// empty is left unchanged.
func (t *Tracker) pruneVisible(pub *engine.PublicState) {
	if pub == nil {
		return
	}
	seen := visibleCounts(pub)
	for i := uint8(0); i < t.SlotsLen; i++ {
		k := t.Slots[i]
		var colors ColorSet
		var ranks RankSet
		for _, c := range k.Colors.Values() {
			for _, r := range k.Ranks.Values() {
				if !seen.exhausted(c, r) {
					colors = colors.Add(c)
					ranks = ranks.Add(r)
				}
			}
		}
		if colors.IsEmpty() || ranks.IsEmpty() {
			continue
		}
		k.Colors, k.Ranks = colors, ranks
		t.Slots[i] = k
	}
}
