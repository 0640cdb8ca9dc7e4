package engine

import "fmt"

const (
	MinPlayers    = 2
	MaxPlayers    = 5
	MaxHandSize   = 5
	DeckSize      = 50
	MaxClueTokens = 8
	MaxFuseTokens = 3
	MaxScore      = NumColors * int(MaxRank)
)

// Rules holds the per-game configuration.
type Rules struct {
	NumPlayers uint8
	HandSize   uint8 // 0 = standard size for NumPlayers
}

// DefaultRules returns the standard rules for n players. n outside [2,5]
// panics.
func DefaultRules(n int) Rules {
	if n < MinPlayers || n > MaxPlayers {
		panic(fmt.Sprintf("engine: player count %d out of range [%d,%d]", n, MinPlayers, MaxPlayers))
	}
	return Rules{NumPlayers: uint8(n)}
}

// StandardHandSize is 5 cards for up to three players and 4 otherwise.
func StandardHandSize(numPlayers int) int {
	if numPlayers <= 3 {
		return 5
	}
	return 4
}

// handSize returns the effective hand size.
func (r *Rules) handSize() uint8 {
	if r.HandSize == 0 {
		return uint8(StandardHandSize(int(r.NumPlayers)))
	}
	return r.HandSize
}

// validate panics on a configuration the engine cannot run.
func (r *Rules) validate() {
	if r.NumPlayers < MinPlayers || r.NumPlayers > MaxPlayers {
		panic(fmt.Sprintf("engine: player count %d out of range [%d,%d]", r.NumPlayers, MinPlayers, MaxPlayers))
	}
	if h := r.handSize(); h == 0 || h > MaxHandSize || int(h)*int(r.NumPlayers) > DeckSize {
		panic(fmt.Sprintf("engine: hand size %d invalid for %d players", h, r.NumPlayers))
	}
}
