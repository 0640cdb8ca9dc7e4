// internal/match/events.go
package match

import (
	"github.com/google/uuid"

	"github.com/jthies73/hanabi/engine"
)

// OnGameEndFunc is called once when a match finishes.
type OnGameEndFunc func(matchID uuid.UUID, result Result)

// EventType identifies an Event.
type EventType string

const (
	EventTurn          EventType = "turn"           // A player is about to act; carries the observer's view.
	EventPlay          EventType = "play"           // A card was played onto the board.
	EventMisplay       EventType = "misplay"        // A played card did not fit and cost a fuse.
	EventDiscard       EventType = "discard"        // A card was discarded for a clue token.
	EventHint          EventType = "hint"           // A hint was given; carries the touched slots.
	EventInvalidAction EventType = "invalid_action" // An action was rejected.
	EventBeliefs       EventType = "beliefs"        // Answer to a belief query.
	EventGameEnd       EventType = "game_end"       // The match is over; carries the result.
)

// EventCard identifies a card within an Event payload.
type EventCard struct {
	ID    uuid.UUID `json:"id"`
	Color string    `json:"color"`
	Rank  int       `json:"rank"`
	Idx   *int      `json:"idx,omitempty"` // hand slot, if relevant

	card engine.Card
}

// Card returns the engine card this payload describes.
func (c *EventCard) Card() engine.Card { return c.card }

// Event is the structure broadcast for every state change.
type Event struct {
	Type    EventType  `json:"type"`
	Turn    int        `json:"turn"`
	Player  uint8      `json:"player"`           // acting or queried seat
	Target  *uint8     `json:"target,omitempty"` // hinted seat
	Card    *EventCard `json:"card,omitempty"`
	Hint    string     `json:"hint,omitempty"`    // color name or rank
	Indices []int      `json:"indices,omitempty"` // slots touched by a hint
	Message string     `json:"message,omitempty"`
	Result  *Result    `json:"result,omitempty"`
	View    *View      `json:"view,omitempty"`
}

// Result summarises a finished match.
type Result struct {
	Score    int  `json:"score"`
	Perfect  bool `json:"perfect"`
	Exploded bool `json:"exploded"`
	Turns    int  `json:"turns"`
	Quit     bool `json:"quit,omitempty"` // ended early by the human
}
