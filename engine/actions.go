package engine

import "fmt"

// ActionKind identifies an Action variant.
type ActionKind uint8

const (
	KindPlay ActionKind = iota
	KindDiscard
	KindHintColor
	KindHintRank
)

func (k ActionKind) String() string {
	switch k {
	case KindPlay:
		return "play"
	case KindDiscard:
		return "discard"
	case KindHintColor:
		return "hint_color"
	case KindHintRank:
		return "hint_rank"
	}
	return "unknown"
}

// Action is one of PlayCard, DiscardCard, HintColor or HintRank.
// The set is closed; switch on the concrete type to handle each variant.
type Action interface {
	Actor() uint8
	Kind() ActionKind
	String() string
	isAction()
}

// Hint is the capability shared by HintColor and HintRank.
type Hint interface {
	Action
	TargetPlayer() uint8
	Matches(c Card) bool
}

// PlayCard plays the card at Index from the actor's hand.
type PlayCard struct {
	Player uint8
	Index  int
}

// DiscardCard discards the card at Index from the actor's hand.
type DiscardCard struct {
	Player uint8
	Index  int
}

// HintColor tells Target which of their cards are Color.
type HintColor struct {
	Player uint8
	Target uint8
	Color  Color
}

// HintRank tells Target which of their cards are Rank.
type HintRank struct {
	Player uint8
	Target uint8
	Rank   Rank
}

func (PlayCard) isAction()    {}
func (DiscardCard) isAction() {}
func (HintColor) isAction()   {}
func (HintRank) isAction()    {}

func (a PlayCard) Actor() uint8    { return a.Player }
func (a DiscardCard) Actor() uint8 { return a.Player }
func (a HintColor) Actor() uint8   { return a.Player }
func (a HintRank) Actor() uint8    { return a.Player }

func (PlayCard) Kind() ActionKind    { return KindPlay }
func (DiscardCard) Kind() ActionKind { return KindDiscard }
func (HintColor) Kind() ActionKind   { return KindHintColor }
func (HintRank) Kind() ActionKind    { return KindHintRank }

func (a HintColor) TargetPlayer() uint8 { return a.Target }
func (a HintRank) TargetPlayer() uint8  { return a.Target }

func (a HintColor) Matches(c Card) bool { return !c.IsEmpty() && c.Color == a.Color }
func (a HintRank) Matches(c Card) bool  { return !c.IsEmpty() && c.Rank == a.Rank }

func (a PlayCard) String() string {
	return fmt.Sprintf("player %d plays card %d", a.Player, a.Index)
}

func (a DiscardCard) String() string {
	return fmt.Sprintf("player %d discards card %d", a.Player, a.Index)
}

func (a HintColor) String() string {
	return fmt.Sprintf("player %d hints player %d: %s", a.Player, a.Target, a.Color)
}

func (a HintRank) String() string {
	return fmt.Sprintf("player %d hints player %d: %s", a.Player, a.Target, a.Rank)
}

// ---------------------------------------------------------------------------
// Action indices
// ---------------------------------------------------------------------------
//
// Indices are relative to the acting player:
//
//	0–4    Play(slot)
//	5–9    Discard(slot)
//	10–29  HintColor(offset*5 + color), offset = target distance - 1
//	30–49  HintRank(offset*5 + rank-1)
//
// Total: 50, so a legal-action set fits in one uint64.

const (
	ActionBasePlay      uint16 = 0
	ActionBaseDiscard   uint16 = ActionBasePlay + MaxHandSize
	ActionBaseHintColor uint16 = ActionBaseDiscard + MaxHandSize
	ActionBaseHintRank  uint16 = ActionBaseHintColor + (MaxPlayers-1)*NumColors
	NumActions          uint16 = ActionBaseHintRank + (MaxPlayers-1)*NumRanks
)

// targetOffset returns the seat distance from actor to target, minus one.
func targetOffset(actor, target uint8, numPlayers int) uint16 {
	n := numPlayers
	return uint16((int(target) - int(actor) - 1 + n) % n)
}

// EncodeAction maps a to its index relative to its actor.
func EncodeAction(a Action, numPlayers int) uint16 {
	switch a := a.(type) {
	case PlayCard:
		return ActionBasePlay + uint16(a.Index)
	case DiscardCard:
		return ActionBaseDiscard + uint16(a.Index)
	case HintColor:
		return ActionBaseHintColor + targetOffset(a.Player, a.Target, numPlayers)*NumColors + uint16(a.Color)
	case HintRank:
		return ActionBaseHintRank + targetOffset(a.Player, a.Target, numPlayers)*NumRanks + uint16(a.Rank-1)
	}
	panic(fmt.Sprintf("engine: unknown action %T", a))
}

// DecodeAction is the inverse of EncodeAction for the given actor.
func DecodeAction(actor uint8, idx uint16, numPlayers int) (Action, bool) {
	target := func(offset uint16) uint8 {
		return uint8((int(actor) + 1 + int(offset)) % numPlayers)
	}
	switch {
	case idx < ActionBaseDiscard:
		return PlayCard{Player: actor, Index: int(idx - ActionBasePlay)}, true
	case idx < ActionBaseHintColor:
		return DiscardCard{Player: actor, Index: int(idx - ActionBaseDiscard)}, true
	case idx < ActionBaseHintRank:
		off := idx - ActionBaseHintColor
		if int(off/NumColors) >= numPlayers-1 {
			return nil, false
		}
		return HintColor{Player: actor, Target: target(off / NumColors), Color: Color(off % NumColors)}, true
	case idx < NumActions:
		off := idx - ActionBaseHintRank
		if int(off/NumRanks) >= numPlayers-1 {
			return nil, false
		}
		return HintRank{Player: actor, Target: target(off / NumRanks), Rank: Rank(off%NumRanks) + 1}, true
	}
	return nil, false
}
