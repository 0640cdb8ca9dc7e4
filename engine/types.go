package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is one of the five Hanabi suits.
type Color uint8

const (
	ColorRed Color = iota
	ColorYellow
	ColorGreen
	ColorBlue
	ColorWhite
)

// NumColors is the number of suits in the deck.
const NumColors = 5

var colorNames = [NumColors]string{"Red", "Yellow", "Green", "Blue", "White"}

// Colors lists every color in board order.
var Colors = [NumColors]Color{ColorRed, ColorYellow, ColorGreen, ColorBlue, ColorWhite}

func (c Color) String() string {
	if int(c) < NumColors {
		return colorNames[c]
	}
	return "Color(" + strconv.Itoa(int(c)) + ")"
}

// Valid reports whether c is one of the five suits.
func (c Color) Valid() bool { return int(c) < NumColors }

// ParseColor accepts a full color name or its initial, case-insensitively.
func ParseColor(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	for i, name := range colorNames {
		lower := strings.ToLower(name)
		if s == lower || (len(s) == 1 && s[0] == lower[0]) {
			return Color(i), true
		}
	}
	return 0, false
}

// Rank is a card value in [1,5]. The zero value NoRank means "none".
type Rank uint8

const (
	NoRank  Rank = 0
	MinRank Rank = 1
	MaxRank Rank = 5
)

// NumRanks is the number of distinct ranks.
const NumRanks = 5

// NewRank converts v to a Rank. Out-of-range values are programming errors.
func NewRank(v int) Rank {
	if v < int(MinRank) || v > int(MaxRank) {
		panic(fmt.Sprintf("engine: rank %d out of range [1,5]", v))
	}
	return Rank(v)
}

// ParseRank parses a decimal rank in [1,5].
func ParseRank(s string) (Rank, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < int(MinRank) || v > int(MaxRank) {
		return NoRank, false
	}
	return Rank(v), true
}

// Next returns the successor rank, or false at MaxRank.
// The successor of NoRank is MinRank.
func (r Rank) Next() (Rank, bool) {
	if r >= MaxRank {
		return NoRank, false
	}
	return r + 1, true
}

// Valid reports whether r is in [1,5].
func (r Rank) Valid() bool { return r >= MinRank && r <= MaxRank }

func (r Rank) String() string {
	if r == NoRank {
		return "-"
	}
	return strconv.Itoa(int(r))
}

// CopiesOf returns how many cards of each color carry rank r.
func CopiesOf(r Rank) int {
	switch r {
	case 1:
		return 3
	case 2, 3, 4:
		return 2
	case 5:
		return 1
	}
	return 0
}

// Card is one physical card. Serial distinguishes cards of equal identity
// within a single game; it carries no gameplay information.
type Card struct {
	Color  Color
	Rank   Rank
	Serial uint8
}

// EmptyCard represents the absence of a card.
var EmptyCard = Card{Color: 0xFF, Rank: NoRank, Serial: 0xFF}

// NewCard constructs a card of the given identity.
func NewCard(c Color, r Rank, serial uint8) Card {
	return Card{Color: c, Rank: r, Serial: serial}
}

// IsEmpty reports whether c is the EmptyCard sentinel.
func (c Card) IsEmpty() bool { return c.Rank == NoRank }

// SameIdentity reports whether both cards share color and rank.
func (c Card) SameIdentity(o Card) bool { return c.Color == o.Color && c.Rank == o.Rank }

// Index maps the card identity to a dense index in [0, NumColors*NumRanks).
func (c Card) Index() int { return IdentityIndex(c.Color, c.Rank) }

// IdentityIndex maps (color, rank) to a dense index in [0, NumColors*NumRanks).
func IdentityIndex(c Color, r Rank) int { return int(c)*NumRanks + int(r) - 1 }

func (c Card) String() string {
	if c.IsEmpty() {
		return "--"
	}
	return c.Color.String() + " " + c.Rank.String()
}

// Short returns a two-character form such as "R3".
func (c Card) Short() string {
	if c.IsEmpty() {
		return "--"
	}
	return c.Color.String()[:1] + c.Rank.String()
}

// Phase describes where the game is in its lifecycle.
type Phase uint8

const (
	PhaseInProgress Phase = iota
	PhaseCountdown        // deck exhausted, final round running
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseInProgress:
		return "in progress"
	case PhaseCountdown:
		return "endgame countdown"
	case PhaseGameOver:
		return "game over"
	}
	return "unknown"
}
