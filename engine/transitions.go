package engine

import (
	"fmt"
	"slices"
)

// Apply validates a and returns the state that results from it.
// g itself is left untouched, on success and on error.
func (g *GameState) Apply(a Action) (GameState, error) {
	if err := Validate(a, g); err != nil {
		return *g, err
	}

	next := *g
	switch a := a.(type) {
	case PlayCard:
		next.play(a.Player, a.Index)
	case DiscardCard:
		next.discard(a.Player, a.Index)
	case HintColor, HintRank:
		next.ClueTokens--
	default:
		return *g, fmt.Errorf("unhandled action %T", a)
	}

	next.History = append(slices.Clip(g.History), a)
	next.CurrentPlayer = next.NextPlayer(a.Actor())
	next.TurnNumber++
	next.checkGameEnd()
	return next, nil
}

// play moves the card at idx onto the board if it extends its color,
// otherwise into the discard pile at the cost of a fuse.
func (g *GameState) play(player uint8, idx int) {
	card := g.Players[player].removeAt(idx)
	if g.IsPlayable(card) {
		g.Board[card.Color] = card.Rank
		if card.Rank == MaxRank && g.ClueTokens < MaxClueTokens {
			g.ClueTokens++
		}
	} else {
		g.pushDiscard(card)
		g.FuseTokens++
	}
	g.replenish(player)
}

// discard moves the card at idx to the discard pile and regains a clue.
func (g *GameState) discard(player uint8, idx int) {
	card := g.Players[player].removeAt(idx)
	g.pushDiscard(card)
	if g.ClueTokens < MaxClueTokens {
		g.ClueTokens++
	}
	g.replenish(player)
}

func (g *GameState) pushDiscard(c Card) {
	g.DiscardPile[g.DiscardLen] = c
	g.DiscardLen++
}

// replenish draws one card for player if the deck is not empty.
func (g *GameState) replenish(player uint8) {
	if g.DeckLen() > 0 {
		g.Players[player].push(g.draw())
	}
}
