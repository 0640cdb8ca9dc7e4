package engine

import "math/rand/v2"

// Engine owns the authoritative snapshot of one game and replaces it
// wholesale on every successful action. It is not safe for concurrent use;
// callers serialise access.
type Engine struct {
	state GameState
}

// NewEngine deals a new game. numPlayers outside [2,5] panics.
func NewEngine(rules Rules, rng *rand.Rand) *Engine {
	return &Engine{state: NewGame(rules, rng)}
}

// NewEngineFromState resumes from an existing snapshot.
func NewEngineFromState(g GameState) *Engine {
	e := &Engine{}
	e.state.Restore(g.Save())
	return e
}

// ExecuteAction validates and applies a. On error the state is unchanged.
// gameOver reports the state after a successful action.
func (e *Engine) ExecuteAction(a Action) (gameOver bool, err error) {
	next, err := e.state.Apply(a)
	if err != nil {
		return e.state.IsGameOver(), err
	}
	e.state = next
	return e.state.IsGameOver(), nil
}

// State returns a copy of the full, unredacted state.
func (e *Engine) State() GameState {
	s := e.state.Save()
	return GameState(s)
}

// PublicState returns the view of player.
func (e *Engine) PublicState(player uint8) PublicState { return e.state.PublicState(player) }

// Score returns the current score.
func (e *Engine) Score() int { return e.state.Score() }

// IsOver reports whether the game has ended.
func (e *Engine) IsOver() bool { return e.state.IsGameOver() }

// CurrentPlayer returns the seat that must act next.
func (e *Engine) CurrentPlayer() uint8 { return e.state.CurrentPlayer }

// NumPlayers returns the number of seats.
func (e *Engine) NumPlayers() int { return e.state.NumPlayers() }

// LegalActions returns the legal actions for the current player.
func (e *Engine) LegalActions() []Action { return e.state.LegalActionsList(e.state.CurrentPlayer) }
