package engine

import "slices"

// OtherHand is a hand visible to the viewer.
type OtherHand struct {
	Player uint8
	Cards  []Card
}

// PublicState is what one player may legally see: every hand but their own,
// the size of their own hand, and all shared information.
type PublicState struct {
	Viewer        uint8
	NumPlayers    int
	MyHandSize    int
	Others        []OtherHand // ordered by player id
	Discards      []Card
	Board         [NumColors]Rank
	ClueTokens    int
	FuseTokens    int
	DeckSize      int
	CurrentPlayer uint8
	TurnsLeft     int // -1 until the deck runs out
	GameOver      bool
	History       []Action
}

// PublicState projects g for viewer. The result shares no memory with g.
func (g *GameState) PublicState(viewer uint8) PublicState {
	pub := PublicState{
		Viewer:        viewer,
		NumPlayers:    g.NumPlayers(),
		MyHandSize:    g.HandLen(viewer),
		Discards:      g.Discards(),
		Board:         g.Board,
		ClueTokens:    int(g.ClueTokens),
		FuseTokens:    int(g.FuseTokens),
		DeckSize:      g.DeckLen(),
		CurrentPlayer: g.CurrentPlayer,
		TurnsLeft:     int(g.TurnsLeft),
		GameOver:      g.IsGameOver(),
		History:       slices.Clone(g.History),
	}
	for _, p := range g.Opponents(viewer) {
		pub.Others = append(pub.Others, OtherHand{Player: p, Cards: g.Hand(p)})
	}
	return pub
}

// Hand returns the visible hand of player, or false for the viewer's own
// hand and unknown players.
func (s *PublicState) Hand(player uint8) ([]Card, bool) {
	for _, h := range s.Others {
		if h.Player == player {
			return h.Cards, true
		}
	}
	return nil, false
}

// NextNeeded returns the rank that would be played next on color.
func (s *PublicState) NextNeeded(c Color) (Rank, bool) { return s.Board[c].Next() }

// IsPlayable reports whether card would succeed if played now.
func (s *PublicState) IsPlayable(card Card) bool { return isPlayable(s.Board, card) }

// IsPlayableIdentity is IsPlayable for a bare (color, rank) pair.
func (s *PublicState) IsPlayableIdentity(c Color, r Rank) bool {
	return isPlayable(s.Board, Card{Color: c, Rank: r})
}

// DiscardedCount returns how many copies of (c, r) are in the discard pile.
func (s *PublicState) DiscardedCount(c Color, r Rank) int {
	n := 0
	for _, d := range s.Discards {
		if d.Color == c && d.Rank == r {
			n++
		}
	}
	return n
}

// Score mirrors GameState.Score from public information.
func (s *PublicState) Score() int {
	if s.FuseTokens >= MaxFuseTokens {
		return 0
	}
	total := 0
	for _, r := range s.Board {
		total += int(r)
	}
	return total
}
