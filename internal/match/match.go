// Package match runs one game of Hanabi between a human seat and bot seats,
// keeping each bot's beliefs in step with the engine and publishing events.
package match

import (
	"context"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/jthies73/hanabi/engine"
	"github.com/jthies73/hanabi/engine/agent"
)

var (
	// ErrQuit is returned by a HumanInput to end the match early.
	ErrQuit = errors.New("player quit")
	// ErrNotABot is returned when querying the beliefs of a human seat.
	ErrNotABot = errors.New("player is not a bot")
	// ErrOwnBeliefs is returned when the human queries their own seat.
	ErrOwnBeliefs = errors.New("you cannot query your own knowledge")
)

// HumanInput supplies the human seat's actions. Implementations block until
// the player has decided or ctx is done.
type HumanInput interface {
	NextAction(ctx context.Context, view View) (engine.Action, error)
}

// Seat describes who sits at a position.
type Seat struct {
	Name  string
	Human bool
}

// Options configures a new Match.
type Options struct {
	Players   int
	HumanSeat int // -1 for a bots-only match
	Rng       *rand.Rand
	Logger    *logrus.Entry
	BotDelay  time.Duration // pause before each bot action
	Deck      []engine.Card // fixed deal order; nil shuffles with Rng
}

// Match owns one engine and the bots playing in it.
type Match struct {
	ID    uuid.UUID
	Seats []Seat

	engine    *engine.Engine
	bots      []*agent.Bot // nil at the human seat
	cards     CardTracker
	human     HumanInput
	humanSeat int

	queries  chan int
	botDelay time.Duration
	log      *logrus.Entry
	mu       sync.Mutex

	// BroadcastFn receives every event. It runs under the match lock and
	// must not call back into the Match.
	BroadcastFn func(ev Event)
	OnGameEnd   OnGameEndFunc
}

// New deals a game. human may be nil when opts.HumanSeat is -1.
func New(opts Options, human HumanInput) (*Match, error) {
	if opts.Players < engine.MinPlayers || opts.Players > engine.MaxPlayers {
		return nil, errors.Errorf("player count %d out of range [%d,%d]", opts.Players, engine.MinPlayers, engine.MaxPlayers)
	}
	if opts.HumanSeat < -1 || opts.HumanSeat >= opts.Players {
		return nil, errors.Errorf("human seat %d out of range", opts.HumanSeat)
	}
	if opts.HumanSeat >= 0 && human == nil {
		return nil, errors.New("human seat requires an input")
	}
	if opts.Deck != nil && len(opts.Deck) != engine.DeckSize {
		return nil, errors.Errorf("deck has %d cards, want %d", len(opts.Deck), engine.DeckSize)
	}
	rng := opts.Rng
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	rules := engine.DefaultRules(opts.Players)
	var eng *engine.Engine
	if opts.Deck != nil {
		eng = engine.NewEngineFromState(engine.NewGameFromDeck(rules, opts.Deck))
	} else {
		eng = engine.NewEngine(rules, rng)
	}

	id, _ := uuid.NewRandom()
	m := &Match{
		ID:        id,
		Seats:     make([]Seat, opts.Players),
		engine:    eng,
		bots:      make([]*agent.Bot, opts.Players),
		cards:     NewCardTracker(),
		human:     human,
		humanSeat: opts.HumanSeat,
		queries:   make(chan int, 8),
		botDelay:  opts.BotDelay,
		log:       logger.WithField("game", id.String()[:8]),
	}
	handSize := engine.StandardHandSize(opts.Players)
	for i := range m.Seats {
		if i == opts.HumanSeat {
			m.Seats[i] = Seat{Name: "you", Human: true}
			continue
		}
		m.Seats[i] = Seat{Name: "Bot" + strconv.Itoa(i)}
		m.bots[i] = agent.NewBot(uint8(i), handSize)
	}
	m.log.WithField("players", opts.Players).Debug("Match created")
	return m, nil
}

// Names returns the seat names indexed by player id.
func (m *Match) Names() []string {
	names := make([]string, len(m.Seats))
	for i, s := range m.Seats {
		names[i] = s.Name
	}
	return names
}

// Queries returns the side channel for belief queries. Each value is a
// seat; the answer is broadcast as EventBeliefs before the next bot acts.
func (m *Match) Queries() chan<- int { return m.queries }

// Beliefs returns the belief dump of a bot seat.
func (m *Match) Beliefs(player uint8) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.beliefs(player)
}

func (m *Match) beliefs(player uint8) (string, error) {
	if int(player) >= len(m.Seats) {
		return "", errors.Wrapf(engine.ErrPlayerNotFound, "seat %d", player)
	}
	if int(player) == m.humanSeat {
		return "", ErrOwnBeliefs
	}
	b := m.bots[player]
	if b == nil {
		return "", errors.Wrapf(ErrNotABot, "seat %d", player)
	}
	return b.Describe(), nil
}

// Score returns the current score.
func (m *Match) Score() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine.Score()
}

// State returns a copy of the full game state.
func (m *Match) State() engine.GameState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine.State()
}

// Run plays until the game ends, the human quits or ctx is done.
func (m *Match) Run(ctx context.Context) (Result, error) {
	for {
		over, err := m.Step(ctx)
		if errors.Is(err, ErrQuit) {
			m.log.Info("Human player quit")
			return m.finish(true), nil
		}
		if err != nil {
			return Result{}, err
		}
		if over {
			return m.finish(false), nil
		}
	}
}

// Step plays one turn and reports whether the game is over.
func (m *Match) Step(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	m.mu.Lock()
	if m.engine.IsOver() {
		m.mu.Unlock()
		return true, nil
	}
	actor := m.engine.CurrentPlayer()
	view := m.viewFor(m.observer(actor))
	m.fire(Event{Type: EventTurn, Turn: view.Turn, Player: actor, View: &view})
	bot := m.bots[actor]
	m.mu.Unlock()

	var (
		a   engine.Action
		err error
	)
	if bot == nil {
		a, err = m.humanAction(ctx, actor)
	} else {
		a, err = m.botAction(ctx, actor, bot)
	}
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.apply(a); err != nil {
		return false, err
	}
	return m.engine.IsOver(), nil
}

// observer is the seat whose view accompanies turn events.
func (m *Match) observer(actor uint8) uint8 {
	if m.humanSeat >= 0 {
		return uint8(m.humanSeat)
	}
	return actor
}

// humanAction prompts until the human supplies a legal action.
func (m *Match) humanAction(ctx context.Context, actor uint8) (engine.Action, error) {
	for {
		m.mu.Lock()
		view := m.viewFor(actor)
		m.mu.Unlock()

		a, err := m.human.NextAction(ctx, view)
		if err != nil {
			return nil, err
		}

		m.mu.Lock()
		g := m.engine.State()
		verr := engine.Validate(a, &g)
		if verr != nil {
			m.fire(Event{Type: EventInvalidAction, Turn: int(g.TurnNumber), Player: actor, Message: verr.Error()})
		}
		m.mu.Unlock()
		if verr == nil {
			return a, nil
		}
	}
}

// botAction answers pending queries, waits out the bot delay and lets the
// bot decide. A bot action that fails validation is replaced by
// fallbackAction.
func (m *Match) botAction(ctx context.Context, actor uint8, bot *agent.Bot) (engine.Action, error) {
	m.pollQueries()

	if m.botDelay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.botDelay):
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	g := m.engine.State()
	pub := g.PublicState(actor)
	a := bot.Decide(&pub)
	if err := engine.Validate(a, &g); err != nil {
		m.log.WithFields(logrus.Fields{
			"turn":   g.TurnNumber,
			"player": actor,
			"action": a.String(),
		}).WithError(err).Warn("Bot chose an illegal action, falling back")
		m.fire(Event{Type: EventInvalidAction, Turn: int(g.TurnNumber), Player: actor, Message: err.Error()})
		a = fallbackAction(&g, actor)
	}
	return a, nil
}

// fallbackAction returns the first legal hint, or the first legal action if
// no hint is legal. A bot only lands here when it wanted to discard at the
// clue cap, where any hint is free.
func fallbackAction(g *engine.GameState, actor uint8) engine.Action {
	legal := g.LegalActionsList(actor)
	for _, a := range legal {
		if _, ok := a.(engine.Hint); ok {
			return a
		}
	}
	return legal[0]
}

// pollQueries answers at most one pending query without blocking.
func (m *Match) pollQueries() {
	select {
	case p := <-m.queries:
		m.mu.Lock()
		defer m.mu.Unlock()
		m.answerQuery(p)
	default:
	}
}

func (m *Match) answerQuery(p int) {
	turn := int(m.engine.State().TurnNumber)
	if p < 0 || p >= len(m.Seats) {
		m.fire(Event{Type: EventInvalidAction, Turn: turn, Message: errors.Wrapf(engine.ErrPlayerNotFound, "seat %d", p).Error()})
		return
	}
	dump, err := m.beliefs(uint8(p))
	if err != nil {
		m.fire(Event{Type: EventInvalidAction, Turn: turn, Player: uint8(p), Message: err.Error()})
		return
	}
	m.fire(Event{Type: EventBeliefs, Turn: turn, Player: uint8(p), Message: dump})
}

// apply executes a validated action, updates every bot and publishes the
// outcome. Assumes the lock is held.
func (m *Match) apply(a engine.Action) error {
	before := m.engine.State()
	actor := a.Actor()

	var hinted []int
	var moved engine.Card
	idx := -1
	switch act := a.(type) {
	case engine.Hint:
		hinted = engine.HintedIndices(&before, act)
	case engine.PlayCard:
		idx = act.Index
	case engine.DiscardCard:
		idx = act.Index
	}
	if idx >= 0 && idx < before.HandLen(actor) {
		moved = before.Hand(actor)[idx]
	}

	if _, err := m.engine.ExecuteAction(a); err != nil {
		return errors.Wrapf(err, "apply %s", a)
	}
	after := m.engine.State()

	for p, b := range m.bots {
		if b == nil {
			continue
		}
		pub := after.PublicState(uint8(p))
		b.Observe(a, &pub, hinted)
	}

	ev := Event{Turn: int(before.TurnNumber), Player: actor}
	switch act := a.(type) {
	case engine.PlayCard:
		ev.Type = EventPlay
		if after.Board[moved.Color] == before.Board[moved.Color] {
			ev.Type = EventMisplay
		}
		ev.Card = m.cards.Describe(moved, idx)
	case engine.DiscardCard:
		ev.Type = EventDiscard
		ev.Card = m.cards.Describe(moved, idx)
	case engine.HintColor:
		ev.Type, ev.Target, ev.Hint, ev.Indices = EventHint, &act.Target, act.Color.String(), hinted
	case engine.HintRank:
		ev.Type, ev.Target, ev.Hint, ev.Indices = EventHint, &act.Target, act.Rank.String(), hinted
	}

	m.log.WithFields(logrus.Fields{
		"turn":   before.TurnNumber,
		"player": actor,
		"action": a.String(),
	}).Debug(string(ev.Type))
	m.fire(ev)
	return nil
}

// finish publishes the result. Assumes the lock is not held.
func (m *Match) finish(quit bool) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	g := m.engine.State()
	res := Result{
		Score:    g.Score(),
		Perfect:  g.IsPerfect(),
		Exploded: g.Exploded(),
		Turns:    int(g.TurnNumber),
		Quit:     quit,
	}
	view := m.viewFor(m.observer(g.CurrentPlayer))
	m.fire(Event{Type: EventGameEnd, Turn: res.Turns, Result: &res, View: &view})
	m.log.WithFields(logrus.Fields{
		"score":    res.Score,
		"turns":    res.Turns,
		"exploded": res.Exploded,
	}).Debug("Match finished")

	if m.OnGameEnd != nil {
		m.OnGameEnd(m.ID, res)
	}
	return res
}

// fire publishes ev through BroadcastFn. Assumes the lock is held.
func (m *Match) fire(ev Event) {
	if m.BroadcastFn == nil {
		return
	}
	m.BroadcastFn(ev)
}
