package engine

// Full-game property tests. Random legal play is driven through the public
// API only: NewEngine, ExecuteAction, LegalActions, State.

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playRandomGame runs one game to completion with uniformly random legal
// actions, calling check after every action.
func playRandomGame(t *testing.T, players int, seed uint64, check func(prev, next GameState, a Action)) GameState {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, 0))
	e := NewEngine(DefaultRules(players), rng)

	for steps := 0; !e.IsOver(); steps++ {
		require.Less(t, steps, 200, "game did not terminate")
		legal := e.LegalActions()
		require.NotEmpty(t, legal, "no legal action in a running game")

		prev := e.State()
		a := legal[rng.IntN(len(legal))]
		_, err := e.ExecuteAction(a)
		require.NoError(t, err, "legal action %s rejected", a)
		check(prev, e.State(), a)
	}
	return e.State()
}

func TestRandomGamesHoldInvariants(t *testing.T) {
	for players := MinPlayers; players <= MaxPlayers; players++ {
		for seed := uint64(0); seed < 40; seed++ {
			final := playRandomGame(t, players, seed, func(prev, next GameState, a Action) {
				// Card conservation.
				assert.Equal(t, DeckSize, next.Conserved())

				// Token bounds.
				assert.LessOrEqual(t, next.ClueTokens, uint8(MaxClueTokens))
				assert.LessOrEqual(t, next.FuseTokens, uint8(MaxFuseTokens))

				// Turn rotation.
				assert.Equal(t, (prev.CurrentPlayer+1)%uint8(players), next.CurrentPlayer)

				// Fuses only rise through misplays, by exactly one.
				if _, isPlay := a.(PlayCard); !isPlay {
					assert.Equal(t, prev.FuseTokens, next.FuseTokens)
				}
				assert.LessOrEqual(t, next.FuseTokens-prev.FuseTokens, uint8(1))

				// Board runs stay contiguous and never shrink.
				for c := range next.Board {
					assert.GreaterOrEqual(t, next.Board[c], prev.Board[c])
					assert.LessOrEqual(t, next.Board[c]-prev.Board[c], Rank(1))
				}

				assert.Len(t, next.History, len(prev.History)+1)
			})

			// Score law.
			if final.FuseTokens >= MaxFuseTokens {
				assert.Equal(t, 0, final.Score())
			} else {
				assert.Equal(t, final.BoardTotal(), final.Score())
			}
			assert.LessOrEqual(t, final.Score(), MaxScore)
		}
	}
}

func TestPublicStateNeverShowsOwnHand(t *testing.T) {
	playRandomGame(t, 4, 11, func(_, next GameState, _ Action) {
		for viewer := uint8(0); viewer < 4; viewer++ {
			pub := next.PublicState(viewer)
			assert.Equal(t, next.HandLen(viewer), pub.MyHandSize)
			_, visible := pub.Hand(viewer)
			assert.False(t, visible)
			require.Len(t, pub.Others, 3)
			for i, h := range pub.Others {
				assert.NotEqual(t, viewer, h.Player)
				if i > 0 {
					assert.Less(t, pub.Others[i-1].Player, h.Player, "others ordered by id")
				}
				assert.Equal(t, next.Hand(h.Player), h.Cards)
			}
			assert.Equal(t, next.DeckLen(), pub.DeckSize)
		}
	})
}

func TestPublicStateIsDetached(t *testing.T) {
	g := newStackedGame(t, twoPlayerHands())
	g = mustApply(t, g, HintColor{Player: 0, Target: 1, Color: ColorGreen})
	pub := g.PublicState(0)

	pub.Others[0].Cards[0] = card(ColorWhite, 5)
	pub.History[0] = PlayCard{}
	assert.True(t, g.Hand(1)[0].SameIdentity(card(ColorYellow, 3)))
	assert.Equal(t, HintColor{Player: 0, Target: 1, Color: ColorGreen}, g.History[0])
}
