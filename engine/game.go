// Package engine implements the Hanabi rules.
//
// GameState is a flat value type: every field except History is a fixed
// array or scalar, so a snapshot is a plain struct copy. Transitions never
// modify their receiver; they return the next snapshot.
package engine

import (
	"math/rand/v2"
	"slices"
)

// PlayerState holds one player's hand in slot order. Slot order is
// significant: new cards are appended at the end.
type PlayerState struct {
	Hand    [MaxHandSize]Card
	HandLen uint8
}

// Cards returns a copy of the occupied hand slots.
func (p *PlayerState) Cards() []Card {
	return slices.Clone(p.Hand[:p.HandLen])
}

// removeAt deletes the card at idx, shifting later slots left.
func (p *PlayerState) removeAt(idx int) Card {
	c := p.Hand[idx]
	copy(p.Hand[idx:p.HandLen], p.Hand[idx+1:p.HandLen])
	p.HandLen--
	p.Hand[p.HandLen] = EmptyCard
	return c
}

func (p *PlayerState) push(c Card) {
	p.Hand[p.HandLen] = c
	p.HandLen++
}

// GameState holds the complete, authoritative state of one game.
type GameState struct {
	Players     [MaxPlayers]PlayerState
	Deck        [DeckSize]Card
	DeckPos     uint8 // index of the next card to draw
	DiscardPile [DeckSize]Card
	DiscardLen  uint8
	Board       [NumColors]Rank

	ClueTokens    uint8
	FuseTokens    uint8
	CurrentPlayer uint8
	TurnNumber    uint16
	TurnsLeft     int8 // -1 until the deck runs out
	Flags         uint16

	History []Action
	Rules   Rules
}

// ---------------------------------------------------------------------------
// Flags bitfield
// ---------------------------------------------------------------------------

const (
	FlagGameOver uint16 = 1 << 0
	FlagExploded uint16 = 1 << 1 // ended on the last fuse
)

func (g *GameState) IsGameOver() bool { return g.Flags&FlagGameOver != 0 }

// Exploded reports whether the game ended because the fuses ran out.
func (g *GameState) Exploded() bool { return g.Flags&FlagExploded != 0 }

// ---------------------------------------------------------------------------
// NewGame and Deal
// ---------------------------------------------------------------------------

// NewDeck returns the 50 cards of a standard deck in canonical order,
// serials assigned 0..49.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, c := range Colors {
		for r := MinRank; r <= MaxRank; r++ {
			for range CopiesOf(r) {
				deck = append(deck, NewCard(c, r, uint8(len(deck))))
			}
		}
	}
	return deck
}

// NewGame shuffles a standard deck with rng and deals it.
// A player count outside [2,5] panics.
func NewGame(rules Rules, rng *rand.Rand) GameState {
	deck := NewDeck()
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return NewGameFromDeck(rules, deck)
}

// NewGameFromDeck deals from deck in the given order: the first card dealt
// goes to player 0, the next to player 1, and so on. deck must hold exactly
// DeckSize cards.
func NewGameFromDeck(rules Rules, deck []Card) GameState {
	rules.validate()
	if len(deck) != DeckSize {
		panic("engine: deck must contain 50 cards")
	}

	var g GameState
	g.Rules = rules
	copy(g.Deck[:], deck)
	for p := range g.Players {
		for i := range g.Players[p].Hand {
			g.Players[p].Hand[i] = EmptyCard
		}
	}
	for i := range g.DiscardPile {
		g.DiscardPile[i] = EmptyCard
	}
	g.ClueTokens = MaxClueTokens
	g.TurnsLeft = -1
	g.Deal()
	return g
}

// Deal distributes HandSize cards to each player in turn order.
func (g *GameState) Deal() {
	n := g.Rules.NumPlayers
	for c := uint8(0); c < g.Rules.handSize(); c++ {
		for p := uint8(0); p < n; p++ {
			g.Players[p].push(g.draw())
		}
	}
}

// draw removes the front card from the deck.
func (g *GameState) draw() Card {
	c := g.Deck[g.DeckPos]
	g.Deck[g.DeckPos] = EmptyCard
	g.DeckPos++
	return c
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// NumPlayers returns the number of seats in this game.
func (g *GameState) NumPlayers() int { return int(g.Rules.NumPlayers) }

// HandSize returns the number of cards dealt to each player.
func (g *GameState) HandSize() int { return int(g.Rules.handSize()) }

// DeckLen returns the number of undrawn cards.
func (g *GameState) DeckLen() int { return DeckSize - int(g.DeckPos) }

// HandLen returns the number of cards in the given player's hand.
func (g *GameState) HandLen(player uint8) int {
	if !g.HasPlayer(player) {
		return 0
	}
	return int(g.Players[player].HandLen)
}

// Hand returns a copy of the given player's hand.
func (g *GameState) Hand(player uint8) []Card {
	if !g.HasPlayer(player) {
		return nil
	}
	return g.Players[player].Cards()
}

// Discards returns a copy of the discard pile, oldest first.
func (g *GameState) Discards() []Card {
	return slices.Clone(g.DiscardPile[:g.DiscardLen])
}

// HasPlayer reports whether player is a seat in this game.
func (g *GameState) HasPlayer(player uint8) bool { return player < g.Rules.NumPlayers }

// NextPlayer returns the next player after current in turn order.
func (g *GameState) NextPlayer(current uint8) uint8 {
	return (current + 1) % g.Rules.NumPlayers
}

// Opponents returns all player indices except the given player, in id order.
func (g *GameState) Opponents(player uint8) []uint8 {
	n := g.Rules.NumPlayers
	opps := make([]uint8, 0, n-1)
	for i := uint8(0); i < n; i++ {
		if i != player {
			opps = append(opps, i)
		}
	}
	return opps
}

// NextNeeded returns the rank that would be played next on color.
func (g *GameState) NextNeeded(c Color) (Rank, bool) { return g.Board[c].Next() }

// IsPlayable reports whether card would succeed if played now.
func (g *GameState) IsPlayable(card Card) bool { return isPlayable(g.Board, card) }

func isPlayable(board [NumColors]Rank, card Card) bool {
	next, ok := board[card.Color].Next()
	return ok && card.Rank == next
}

// Phase reports the lifecycle phase.
func (g *GameState) Phase() Phase {
	switch {
	case g.IsGameOver():
		return PhaseGameOver
	case g.TurnsLeft >= 0:
		return PhaseCountdown
	}
	return PhaseInProgress
}

// Conserved returns deck + hands + discard + board progress, which is always
// DeckSize for a reachable state.
func (g *GameState) Conserved() int {
	total := g.DeckLen() + int(g.DiscardLen)
	for p := uint8(0); p < g.Rules.NumPlayers; p++ {
		total += int(g.Players[p].HandLen)
	}
	for _, r := range g.Board {
		total += int(r)
	}
	return total
}

// ---------------------------------------------------------------------------
// Snapshot Undo (Save / Restore)
// ---------------------------------------------------------------------------

// Snapshot is a complete value-copy of GameState.
type Snapshot GameState

// Save returns a snapshot of the current game state.
func (g *GameState) Save() Snapshot {
	s := Snapshot(*g)
	s.History = slices.Clone(g.History)
	return s
}

// Restore replaces the game state with the given snapshot.
func (g *GameState) Restore(s Snapshot) {
	*g = GameState(s)
	g.History = slices.Clone(s.History)
}
