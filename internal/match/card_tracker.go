// internal/match/card_tracker.go
package match

import (
	"github.com/google/uuid"

	"github.com/jthies73/hanabi/engine"
)

// CardTracker gives every physical card a UUID for event payloads. Cards
// carry a deck serial that never changes as they move between deck, hands,
// discard pile and board, so one table indexed by serial is enough.
type CardTracker struct {
	ids [engine.DeckSize]uuid.UUID
}

// NewCardTracker assigns a fresh UUID to every deck serial.
func NewCardTracker() CardTracker {
	var t CardTracker
	for i := range t.ids {
		t.ids[i] = uuid.New()
	}
	return t
}

// ID returns the UUID of c, or uuid.Nil for an empty card.
func (t *CardTracker) ID(c engine.Card) uuid.UUID {
	if c.IsEmpty() || int(c.Serial) >= len(t.ids) {
		return uuid.Nil
	}
	return t.ids[c.Serial]
}

// Describe converts c into its payload form. idx is the hand slot, or -1.
func (t *CardTracker) Describe(c engine.Card, idx int) *EventCard {
	ec := &EventCard{
		ID:    t.ID(c),
		Color: c.Color.String(),
		Rank:  int(c.Rank),
		card:  c,
	}
	if idx >= 0 {
		ec.Idx = &idx
	}
	return ec
}
