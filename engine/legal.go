package engine

import (
	"errors"
	"fmt"
)

// Validation errors. Every error returned by Validate or Apply wraps one of
// these; compare with errors.Is.
var (
	ErrInvalidIndex   = errors.New("invalid card index")
	ErrMaxClueTokens  = errors.New("cannot discard when at max clue tokens")
	ErrNoClueTokens   = errors.New("no clue tokens available")
	ErrSelfHint       = errors.New("cannot hint yourself")
	ErrPlayerNotFound = errors.New("player not found")
	ErrEmptyHint      = errors.New("cannot give empty hint")
	ErrGameOver       = errors.New("game is over")
	ErrOutOfTurn      = errors.New("not your turn")
)

// Validate checks whether a may be applied to g. It never modifies g.
func Validate(a Action, g *GameState) error {
	if g.IsGameOver() {
		return ErrGameOver
	}
	actor := a.Actor()
	if !g.HasPlayer(actor) {
		return fmt.Errorf("%w: actor %d", ErrPlayerNotFound, actor)
	}
	if actor != g.CurrentPlayer {
		return fmt.Errorf("%w: player %d acted on player %d's turn", ErrOutOfTurn, actor, g.CurrentPlayer)
	}

	switch a := a.(type) {
	case PlayCard:
		return validIndex(g, actor, a.Index)
	case DiscardCard:
		if err := validIndex(g, actor, a.Index); err != nil {
			return err
		}
		if g.ClueTokens >= MaxClueTokens {
			return ErrMaxClueTokens
		}
		return nil
	case HintColor:
		return validHint(g, a)
	case HintRank:
		if !a.Rank.Valid() {
			return fmt.Errorf("%w: rank %d", ErrEmptyHint, a.Rank)
		}
		return validHint(g, a)
	}
	return fmt.Errorf("unhandled action %T", a)
}

func validIndex(g *GameState, player uint8, idx int) error {
	if idx < 0 || idx >= g.HandLen(player) {
		return fmt.Errorf("%w: %d (hand has %d cards)", ErrInvalidIndex, idx, g.HandLen(player))
	}
	return nil
}

func validHint(g *GameState, h Hint) error {
	if g.ClueTokens == 0 {
		return ErrNoClueTokens
	}
	target := h.TargetPlayer()
	if target == h.Actor() {
		return ErrSelfHint
	}
	if !g.HasPlayer(target) {
		return fmt.Errorf("%w: target %d", ErrPlayerNotFound, target)
	}
	if len(HintedIndices(g, h)) == 0 {
		return fmt.Errorf("%w: player %d holds no matching card", ErrEmptyHint, target)
	}
	return nil
}

// HintedIndices returns the slots in the target's hand that h touches,
// in ascending order. It needs full-hand visibility, so only trusted callers
// (the orchestrator, tests) can compute it.
func HintedIndices(g *GameState, h Hint) []int {
	target := h.TargetPlayer()
	if !g.HasPlayer(target) {
		return nil
	}
	var idx []int
	p := &g.Players[target]
	for i := uint8(0); i < p.HandLen; i++ {
		if h.Matches(p.Hand[i]) {
			idx = append(idx, int(i))
		}
	}
	return idx
}

// ---------------------------------------------------------------------------
// Legal action enumeration
// ---------------------------------------------------------------------------

// LegalActions returns a bitmask of the action indices player may take now.
// Bit i is set if DecodeAction(player, i) is legal.
func (g *GameState) LegalActions(player uint8) uint64 {
	var mask uint64
	if g.IsGameOver() || player != g.CurrentPlayer || !g.HasPlayer(player) {
		return mask
	}
	n := g.NumPlayers()
	for i := uint16(0); i < NumActions; i++ {
		a, ok := DecodeAction(player, i, n)
		if !ok {
			continue
		}
		if Validate(a, g) == nil {
			mask |= 1 << i
		}
	}
	return mask
}

// LegalActionsList returns the legal actions for player in index order.
func (g *GameState) LegalActionsList(player uint8) []Action {
	mask := g.LegalActions(player)
	var actions []Action
	n := g.NumPlayers()
	for i := uint16(0); i < NumActions; i++ {
		if mask>>i&1 == 1 {
			a, _ := DecodeAction(player, i, n)
			actions = append(actions, a)
		}
	}
	return actions
}
