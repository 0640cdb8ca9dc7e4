// internal/match/view.go
package match

import (
	"github.com/google/uuid"

	"github.com/jthies73/hanabi/engine"
)

// ViewPlayer is one seat as seen by the viewer. Hand is empty for the
// viewer's own seat; only its size is known.
type ViewPlayer struct {
	Seat          uint8        `json:"seat"`
	Name          string       `json:"name"`
	Bot           bool         `json:"bot"`
	HandSize      int          `json:"handSize"`
	IsCurrentTurn bool         `json:"isCurrentTurn"`
	Hand          []*EventCard `json:"hand,omitempty"`
}

// View is the game as one seat may see it.
type View struct {
	MatchID       uuid.UUID                     `json:"matchId"`
	Viewer        uint8                         `json:"viewer"`
	Turn          int                           `json:"turn"`
	Board         [engine.NumColors]engine.Rank `json:"board"`
	ClueTokens    int                           `json:"clueTokens"`
	FuseTokens    int                           `json:"fuseTokens"`
	DeckSize      int                           `json:"deckSize"`
	TurnsLeft     int                           `json:"turnsLeft"`
	CurrentPlayer uint8                         `json:"currentPlayer"`
	GameOver      bool                          `json:"gameOver"`
	Score         int                           `json:"score"`
	Discards      []*EventCard                  `json:"discards"`
	Players       []ViewPlayer                  `json:"players"`
}

// ViewFor returns the view of player. It never contains the player's own
// cards.
func (m *Match) ViewFor(player uint8) View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.viewFor(player)
}

// viewFor assumes the lock is held.
func (m *Match) viewFor(player uint8) View {
	g := m.engine.State()
	pub := g.PublicState(player)

	v := View{
		MatchID:       m.ID,
		Viewer:        player,
		Turn:          int(g.TurnNumber),
		Board:         pub.Board,
		ClueTokens:    pub.ClueTokens,
		FuseTokens:    pub.FuseTokens,
		DeckSize:      pub.DeckSize,
		TurnsLeft:     pub.TurnsLeft,
		CurrentPlayer: pub.CurrentPlayer,
		GameOver:      pub.GameOver,
		Score:         pub.Score(),
		Discards:      make([]*EventCard, 0, len(pub.Discards)),
		Players:       make([]ViewPlayer, len(m.Seats)),
	}
	for _, c := range pub.Discards {
		v.Discards = append(v.Discards, m.cards.Describe(c, -1))
	}

	for i, s := range m.Seats {
		seat := uint8(i)
		vp := ViewPlayer{
			Seat:          seat,
			Name:          s.Name,
			Bot:           !s.Human,
			HandSize:      g.HandLen(seat),
			IsCurrentTurn: seat == pub.CurrentPlayer && !pub.GameOver,
		}
		if hand, ok := pub.Hand(seat); ok {
			vp.Hand = make([]*EventCard, len(hand))
			for j, c := range hand {
				vp.Hand[j] = m.cards.Describe(c, j)
			}
		}
		v.Players[i] = vp
	}
	return v
}
