// Package command parses the line commands typed at the interactive prompt.
package command

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/jthies73/hanabi/engine"
)

// Kind identifies what a parsed line asks for.
type Kind uint8

const (
	KindAction Kind = iota // play, discard or hint
	KindQuery              // dump a bot's beliefs
	KindHelp
	KindQuit
)

var (
	ErrEmpty          = errors.New("empty command")
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("wrong number of arguments")
	ErrBadIndex       = errors.New("invalid card index")
	ErrUnknownPlayer  = errors.New("unknown player")
	ErrBadClue        = errors.New("invalid clue")
)

// Command is one parsed line.
type Command struct {
	Kind   Kind
	Action engine.Action // set for KindAction
	Player uint8         // set for KindQuery
}

// Entry describes one command for help output.
type Entry struct {
	Name  string
	Alias string
	Args  string
	Desc  string
}

// Help lists every command in help order.
var Help = []Entry{
	{"play", "p", "<index>", "Play card at index"},
	{"discard", "d", "<index>", "Discard card at index"},
	{"hint", "h", "<player> <color|rank>", "Give a hint, e.g. 'hint Bot1 red' or 'hint Bot2 3'"},
	{"query", "", "<player>", "Show what a bot believes about its own cards"},
	{"help", "?", "", "Show commands"},
	{"quit", "q", "", "Exit the game"},
}

// Parser turns input lines into commands on behalf of one seat.
type Parser struct {
	Actor uint8
	Names []string // seat names, indexed by player id
}

// NewParser returns a parser for actor in a game with the given seat names.
func NewParser(actor uint8, names []string) *Parser {
	return &Parser{Actor: actor, Names: names}
}

// Parse reads one line. Slot indices are 0-based.
func (p *Parser) Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrEmpty
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "play", "p", "discard", "d":
		if len(args) != 1 {
			return Command{}, errors.Wrapf(ErrUsage, "usage: %s <index>", name)
		}
		idx, err := strconv.Atoi(args[0])
		if err != nil || idx < 0 {
			return Command{}, errors.Wrapf(ErrBadIndex, "%q", args[0])
		}
		if name[0] == 'p' {
			return Command{Kind: KindAction, Action: engine.PlayCard{Player: p.Actor, Index: idx}}, nil
		}
		return Command{Kind: KindAction, Action: engine.DiscardCard{Player: p.Actor, Index: idx}}, nil

	case "hint", "h":
		if len(args) != 2 {
			return Command{}, errors.Wrapf(ErrUsage, "usage: %s <player> <color|rank>", name)
		}
		target, err := p.Player(args[0])
		if err != nil {
			return Command{}, err
		}
		if c, ok := engine.ParseColor(args[1]); ok {
			return Command{Kind: KindAction, Action: engine.HintColor{Player: p.Actor, Target: target, Color: c}}, nil
		}
		if r, ok := engine.ParseRank(args[1]); ok {
			return Command{Kind: KindAction, Action: engine.HintRank{Player: p.Actor, Target: target, Rank: r}}, nil
		}
		return Command{}, errors.Wrapf(ErrBadClue, "%q: use a color (red, yellow, green, blue, white) or a rank (1-5)", args[1])

	case "query":
		if len(args) != 1 {
			return Command{}, errors.Wrap(ErrUsage, "usage: query <player>")
		}
		target, err := p.Player(args[0])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: KindQuery, Player: target}, nil

	case "help", "?":
		return Command{Kind: KindHelp}, nil
	case "quit", "q", "exit":
		return Command{Kind: KindQuit}, nil
	}
	return Command{}, errors.Wrapf(ErrUnknownCommand, "%q, type 'help' for a list of commands", name)
}

// Player resolves a seat by name or number.
func (p *Parser) Player(s string) (uint8, error) {
	for i, n := range p.Names {
		if strings.EqualFold(n, s) {
			return uint8(i), nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n < len(p.Names) {
		return uint8(n), nil
	}
	return 0, errors.Wrapf(ErrUnknownPlayer, "%q", s)
}
