package agent

import "github.com/jthies73/hanabi/engine"

// Bot is an autonomous player: a private Tracker plus the Choose policy.
type Bot struct {
	tracker Tracker
}

// NewBot returns a bot for player holding handSize unknown cards.
func NewBot(player uint8, handSize int) *Bot {
	return &Bot{tracker: NewTracker(player, handSize)}
}

// Player returns the bot's seat.
func (b *Bot) Player() uint8 { return b.tracker.PlayerID }

// Observe folds a successfully applied action into the bot's beliefs and
// resynchronises the slot count with pub.MyHandSize. pub is the bot's own
// view after the action; hinted is as for Tracker.UpdateFromAction.
func (b *Bot) Observe(a engine.Action, pub *engine.PublicState, hinted []int) {
	b.tracker.UpdateFromAction(a, pub, hinted)
	b.tracker.UpdateHandSize(pub.MyHandSize)
}

// Decide returns the bot's next action.
func (b *Bot) Decide(pub *engine.PublicState) engine.Action {
	return Choose(&b.tracker, pub)
}

// Beliefs returns a copy of the bot's per-slot knowledge.
func (b *Bot) Beliefs() []Knowledge { return b.tracker.Knowledge() }

// Describe renders the bot's beliefs, one line per slot.
func (b *Bot) Describe() string { return Describe(b.tracker.Knowledge()) }
