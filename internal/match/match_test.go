package match

import (
	"context"
	"io"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jthies73/hanabi/engine"
)

// mockBroadcaster captures match events for assertions.
type mockBroadcaster struct {
	mu     sync.Mutex
	events []Event
}

func (mb *mockBroadcaster) broadcastFn(ev Event) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.events = append(mb.events, ev)
}

func (mb *mockBroadcaster) ofType(t EventType) []Event {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	var out []Event
	for _, ev := range mb.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

func (mb *mockBroadcaster) last() Event {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	return mb.events[len(mb.events)-1]
}

// scriptedInput plays a fixed list of actions and then quits.
type scriptedInput struct {
	actions []engine.Action
	views   []View
}

func (s *scriptedInput) NextAction(_ context.Context, v View) (engine.Action, error) {
	s.views = append(s.views, v)
	if len(s.actions) == 0 {
		return nil, ErrQuit
	}
	a := s.actions[0]
	s.actions = s.actions[1:]
	return a, nil
}

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// setupTestMatch creates a match with a mock broadcaster attached.
func setupTestMatch(t *testing.T, players, humanSeat int, input HumanInput) (*Match, *mockBroadcaster) {
	t.Helper()
	m, err := New(Options{
		Players:   players,
		HumanSeat: humanSeat,
		Rng:       rand.New(rand.NewPCG(42, 0)),
		Logger:    quietLogger(),
	}, input)
	require.NoError(t, err)
	mb := &mockBroadcaster{}
	m.BroadcastFn = mb.broadcastFn
	return m, mb
}

func TestNewValidatesOptions(t *testing.T) {
	_, err := New(Options{Players: 1, HumanSeat: -1}, nil)
	assert.Error(t, err)
	_, err = New(Options{Players: 6, HumanSeat: -1}, nil)
	assert.Error(t, err)
	_, err = New(Options{Players: 3, HumanSeat: 3}, &scriptedInput{})
	assert.Error(t, err)
	_, err = New(Options{Players: 3, HumanSeat: 0}, nil)
	assert.Error(t, err, "a human seat needs an input")

	m, err := New(Options{Players: 4, HumanSeat: 2, Logger: quietLogger()}, &scriptedInput{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bot0", "Bot1", "you", "Bot3"}, m.Names())
	assert.True(t, m.Seats[2].Human)
	assert.Nil(t, m.bots[2])
	assert.NotEqual(t, uuid.Nil, m.ID)
}

func TestBotsOnlyMatchRunsToEnd(t *testing.T) {
	for players := engine.MinPlayers; players <= engine.MaxPlayers; players++ {
		m, mb := setupTestMatch(t, players, -1, nil)
		var ended []Result
		m.OnGameEnd = func(id uuid.UUID, r Result) {
			assert.Equal(t, m.ID, id)
			ended = append(ended, r)
		}

		res, err := m.Run(context.Background())
		require.NoError(t, err)

		g := m.State()
		assert.True(t, g.IsGameOver())
		assert.Equal(t, g.Score(), res.Score)
		assert.Equal(t, g.Exploded(), res.Exploded)
		assert.False(t, res.Quit)
		require.Len(t, ended, 1)
		assert.Equal(t, res, ended[0])

		last := mb.last()
		assert.Equal(t, EventGameEnd, last.Type)
		require.NotNil(t, last.Result)
		assert.Equal(t, res, *last.Result)
		assert.Len(t, mb.ofType(EventTurn), res.Turns)
	}
}

func TestBotBeliefsStaySound(t *testing.T) {
	m, _ := setupTestMatch(t, 4, -1, nil)
	ctx := context.Background()
	for {
		over, err := m.Step(ctx)
		require.NoError(t, err)

		g := m.State()
		for p, b := range m.bots {
			hand := g.Hand(uint8(p))
			beliefs := b.Beliefs()
			require.Len(t, beliefs, len(hand), "bot %d tracks its hand size", p)
			for i, c := range hand {
				require.True(t, beliefs[i].Contains(c), "bot %d slot %d excludes %s", p, i, c)
			}
		}
		if over {
			break
		}
	}
}

func TestHumanInvalidActionIsReprompted(t *testing.T) {
	in := &scriptedInput{actions: []engine.Action{
		engine.PlayCard{Player: 0, Index: 9},
		engine.DiscardCard{Player: 0, Index: 0}, // clue tokens are full
		engine.PlayCard{Player: 0, Index: 0},
	}}
	m, mb := setupTestMatch(t, 2, 0, in)
	played := m.State().Hand(0)[0]

	over, err := m.Step(context.Background())
	require.NoError(t, err)
	assert.False(t, over)

	invalid := mb.ofType(EventInvalidAction)
	require.Len(t, invalid, 2)
	assert.Contains(t, invalid[0].Message, engine.ErrInvalidIndex.Error())
	assert.Contains(t, invalid[1].Message, engine.ErrMaxClueTokens.Error())
	assert.Len(t, in.views, 3)

	ev := mb.last()
	assert.Contains(t, []EventType{EventPlay, EventMisplay}, ev.Type)
	require.NotNil(t, ev.Card)
	assert.Equal(t, played, ev.Card.Card())
	require.NotNil(t, ev.Card.Idx)
	assert.Equal(t, 0, *ev.Card.Idx)
	assert.Equal(t, uint8(1), m.State().CurrentPlayer)
}

func TestHintEventCarriesTouchedSlots(t *testing.T) {
	in := &scriptedInput{}
	m, mb := setupTestMatch(t, 3, 0, in)
	target := m.State().Hand(2)
	hint := engine.HintRank{Player: 0, Target: 2, Rank: target[1].Rank}
	in.actions = []engine.Action{hint}

	_, err := m.Step(context.Background())
	require.NoError(t, err)

	g := m.State()
	ev := mb.last()
	assert.Equal(t, EventHint, ev.Type)
	require.NotNil(t, ev.Target)
	assert.Equal(t, uint8(2), *ev.Target)
	assert.Equal(t, target[1].Rank.String(), ev.Hint)
	assert.Contains(t, ev.Indices, 1)
	assert.Equal(t, engine.HintedIndices(&g, hint), ev.Indices)
	assert.Equal(t, engine.MaxClueTokens-1, int(g.ClueTokens))
}

// dealDeck returns a full deck that deals hands round-robin, player 0 first.
func dealDeck(t *testing.T, hands [][]engine.Card) []engine.Card {
	t.Helper()
	pool := engine.NewDeck()
	take := func(want engine.Card) engine.Card {
		for i, c := range pool {
			if c.SameIdentity(want) {
				pool = append(pool[:i], pool[i+1:]...)
				return c
			}
		}
		t.Fatalf("dealDeck: no copy of %s left", want)
		return engine.EmptyCard
	}
	var deck []engine.Card
	for slot := range hands[0] {
		for _, h := range hands {
			deck = append(deck, take(h[slot]))
		}
	}
	return append(deck, pool...)
}

func TestBotHintsInsteadOfDiscardingAtClueCap(t *testing.T) {
	c := func(col engine.Color, r engine.Rank) engine.Card { return engine.NewCard(col, r, 0) }
	// Nothing in Bot1's hand is playable or critical, so Bot0 wants to
	// discard with all clue tokens in hand.
	hands := [][]engine.Card{
		{c(engine.ColorRed, 3), c(engine.ColorYellow, 4), c(engine.ColorGreen, 2), c(engine.ColorBlue, 3), c(engine.ColorWhite, 4)},
		{c(engine.ColorRed, 2), c(engine.ColorYellow, 3), c(engine.ColorGreen, 4), c(engine.ColorBlue, 2), c(engine.ColorWhite, 3)},
	}
	m, err := New(Options{Players: 2, HumanSeat: -1, Logger: quietLogger(), Deck: dealDeck(t, hands)}, nil)
	require.NoError(t, err)
	mb := &mockBroadcaster{}
	m.BroadcastFn = mb.broadcastFn

	over, err := m.Step(context.Background())
	require.NoError(t, err)
	assert.False(t, over)

	var types []EventType
	for _, ev := range mb.events {
		types = append(types, ev.Type)
	}
	assert.Equal(t, []EventType{EventTurn, EventInvalidAction, EventHint}, types)

	invalid := mb.ofType(EventInvalidAction)
	require.Len(t, invalid, 1)
	assert.Contains(t, invalid[0].Message, engine.ErrMaxClueTokens.Error())

	hint := mb.last()
	assert.Equal(t, uint8(0), hint.Player)
	require.NotNil(t, hint.Target)
	assert.Equal(t, uint8(1), *hint.Target)

	g := m.State()
	assert.Equal(t, engine.MaxClueTokens-1, int(g.ClueTokens))
	assert.Zero(t, g.FuseTokens, "no blind play")
	assert.Len(t, g.Hand(0), 5)
}

func TestNewRejectsShortDeck(t *testing.T) {
	_, err := New(Options{Players: 2, HumanSeat: -1, Deck: engine.NewDeck()[:10]}, nil)
	assert.Error(t, err)
}

func TestHumanQuitEndsMatch(t *testing.T) {
	m, mb := setupTestMatch(t, 2, 0, &scriptedInput{})
	called := false
	m.OnGameEnd = func(uuid.UUID, Result) { called = true }

	res, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Quit)
	assert.Equal(t, 0, res.Turns)
	assert.True(t, called)
	assert.Equal(t, EventGameEnd, mb.last().Type)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	m, _ := setupTestMatch(t, 3, -1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint16(0), m.State().TurnNumber)
}

func TestBotDelayHonoursContext(t *testing.T) {
	m, _ := setupTestMatch(t, 2, -1, nil)
	m.botDelay = time.Hour
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := m.Step(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQueriesAreAnsweredBeforeBotTurns(t *testing.T) {
	in := &scriptedInput{}
	m, mb := setupTestMatch(t, 3, 0, in)
	// Hint bot 1 first so its dump is not all unknown.
	in.actions = []engine.Action{engine.HintRank{Player: 0, Target: 1, Rank: m.State().Hand(1)[0].Rank}}
	_, err := m.Step(context.Background())
	require.NoError(t, err)

	m.Queries() <- 1
	m.Queries() <- 0
	_, err = m.Step(context.Background())
	require.NoError(t, err)

	answers := mb.ofType(EventBeliefs)
	require.Len(t, answers, 1, "one query per bot turn")
	assert.Equal(t, uint8(1), answers[0].Player)
	dump, err := m.Beliefs(1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(answers[0].Message, "Card 0: "))
	assert.Contains(t, answers[0].Message, "Clued")
	assert.NotEmpty(t, dump)

	_, err = m.Step(context.Background())
	require.NoError(t, err)
	invalid := mb.ofType(EventInvalidAction)
	require.Len(t, invalid, 1)
	assert.Equal(t, ErrOwnBeliefs.Error(), invalid[0].Message)
}

func TestBeliefsErrors(t *testing.T) {
	m, _ := setupTestMatch(t, 3, 1, &scriptedInput{})
	_, err := m.Beliefs(1)
	assert.ErrorIs(t, err, ErrOwnBeliefs)
	_, err = m.Beliefs(5)
	assert.True(t, errors.Is(err, engine.ErrPlayerNotFound))

	dump, err := m.Beliefs(2)
	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(dump, "\n"))
}

func TestViewHidesOwnHand(t *testing.T) {
	m, _ := setupTestMatch(t, 3, 0, &scriptedInput{})
	g := m.State()

	v := m.ViewFor(0)
	assert.Equal(t, m.ID, v.MatchID)
	assert.Equal(t, engine.MaxClueTokens, v.ClueTokens)
	assert.Equal(t, engine.DeckSize-15, v.DeckSize)
	assert.Equal(t, -1, v.TurnsLeft)
	require.Len(t, v.Players, 3)

	me := v.Players[0]
	assert.Nil(t, me.Hand)
	assert.Equal(t, 5, me.HandSize)
	assert.True(t, me.IsCurrentTurn)
	assert.False(t, me.Bot)

	other := v.Players[2]
	assert.True(t, other.Bot)
	require.Len(t, other.Hand, 5)
	for i, ec := range other.Hand {
		assert.Equal(t, g.Hand(2)[i], ec.Card())
		assert.Equal(t, m.cards.ID(g.Hand(2)[i]), ec.ID)
		assert.Equal(t, i, *ec.Idx)
	}

	again := m.ViewFor(0)
	assert.Equal(t, v.Players[1].Hand[0].ID, again.Players[1].Hand[0].ID, "card ids are stable")
}

func TestCardTracker(t *testing.T) {
	tr := NewCardTracker()
	seen := make(map[uuid.UUID]bool)
	for _, c := range engine.NewDeck() {
		id := tr.ID(c)
		require.NotEqual(t, uuid.Nil, id)
		require.False(t, seen[id], "duplicate id for %s", c)
		seen[id] = true
	}
	assert.Equal(t, uuid.Nil, tr.ID(engine.EmptyCard))

	ec := tr.Describe(engine.NewCard(engine.ColorBlue, 4, 7), -1)
	assert.Equal(t, "Blue", ec.Color)
	assert.Equal(t, 4, ec.Rank)
	assert.Nil(t, ec.Idx)
}
