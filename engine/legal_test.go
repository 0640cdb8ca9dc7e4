package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	base := func(t *testing.T) GameState { return newStackedGame(t, twoPlayerHands()) }

	tests := []struct {
		name   string
		setup  func(g *GameState)
		action Action
		want   error
	}{
		{"play in range", nil, PlayCard{Player: 0, Index: 4}, nil},
		{"play past end", nil, PlayCard{Player: 0, Index: 5}, ErrInvalidIndex},
		{"play negative", nil, PlayCard{Player: 0, Index: -1}, ErrInvalidIndex},
		{"discard at cap", nil, DiscardCard{Player: 0, Index: 0}, ErrMaxClueTokens},
		{"discard below cap", func(g *GameState) { g.ClueTokens = 7 }, DiscardCard{Player: 0, Index: 0}, nil},
		{"discard bad index", func(g *GameState) { g.ClueTokens = 7 }, DiscardCard{Player: 0, Index: 9}, ErrInvalidIndex},
		{"hint ok", nil, HintRank{Player: 0, Target: 1, Rank: 4}, nil},
		{"hint without clues", func(g *GameState) { g.ClueTokens = 0 }, HintRank{Player: 0, Target: 1, Rank: 4}, ErrNoClueTokens},
		{"hint self", nil, HintColor{Player: 0, Target: 0, Color: ColorRed}, ErrSelfHint},
		{"hint missing target", nil, HintColor{Player: 0, Target: 3, Color: ColorRed}, ErrPlayerNotFound},
		// Scenario E: player 1 holds no blue card.
		{"hint empty", nil, HintColor{Player: 0, Target: 1, Color: ColorBlue}, ErrEmptyHint},
		{"hint bad rank", nil, HintRank{Player: 0, Target: 1, Rank: 7}, ErrEmptyHint},
		{"unknown actor", nil, PlayCard{Player: 4, Index: 0}, ErrPlayerNotFound},
		{"out of turn", nil, PlayCard{Player: 1, Index: 0}, ErrOutOfTurn},
		{"game over", func(g *GameState) { g.Flags |= FlagGameOver }, PlayCard{Player: 0, Index: 0}, ErrGameOver},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := base(t)
			if tc.setup != nil {
				tc.setup(&g)
			}
			before := g.Save()

			err := Validate(tc.action, &g)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
			assert.Equal(t, GameState(before), g, "validate must not mutate state")
		})
	}
}

// Scenario E through the engine: the rejected hint leaves state unchanged.
func TestEmptyHintLeavesStateUnchanged(t *testing.T) {
	e := NewEngineFromState(newStackedGame(t, twoPlayerHands()))
	before := e.State()

	over, err := e.ExecuteAction(HintColor{Player: 0, Target: 1, Color: ColorBlue})
	require.ErrorIs(t, err, ErrEmptyHint)
	assert.False(t, over)
	assert.Equal(t, before, e.State())
}

func TestHintValidationOrder(t *testing.T) {
	g := newStackedGame(t, twoPlayerHands())
	g.ClueTokens = 0

	// No clues is reported before self-hint and empty-hint.
	assert.ErrorIs(t, Validate(HintColor{Player: 0, Target: 0, Color: ColorBlue}, &g), ErrNoClueTokens)
	g.ClueTokens = 1
	assert.ErrorIs(t, Validate(HintColor{Player: 0, Target: 0, Color: ColorBlue}, &g), ErrSelfHint)
}

func TestLegalActions(t *testing.T) {
	g := newStackedGame(t, twoPlayerHands())

	legal := g.LegalActionsList(0)
	for _, a := range legal {
		assert.NoError(t, Validate(a, &g), "%s", a)
		_, isDiscard := a.(DiscardCard)
		assert.False(t, isDiscard, "no discards at the clue cap")
	}
	// 5 plays, color hints for yellow and green, rank hints for 1–4.
	assert.Len(t, legal, 5+2+4)

	assert.Zero(t, g.LegalActions(1), "player 1 is not on turn")

	g.ClueTokens = 0
	legal = g.LegalActionsList(0)
	assert.Len(t, legal, 10, "plays and discards only")

	g.Flags |= FlagGameOver
	assert.Empty(t, g.LegalActionsList(0))
}
