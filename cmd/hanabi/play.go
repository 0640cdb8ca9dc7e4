package main

import (
	"bufio"
	"context"
	"flag"
	"io"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/peterh/liner"
	"github.com/pkg/errors"

	"github.com/jthies73/hanabi/engine"
	"github.com/jthies73/hanabi/internal/command"
	"github.com/jthies73/hanabi/internal/config"
	"github.com/jthies73/hanabi/internal/match"
	"github.com/jthies73/hanabi/internal/render"
)

func runPlay(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	fs.IntVar(&cfg.Players, "players", cfg.Players, "number of players (2-5)")
	fs.IntVar(&cfg.HumanSeat, "seat", cfg.HumanSeat, "your seat; -1 to watch bots play")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "deal seed (0 picks one)")
	delay := fs.Duration("delay", time.Second, "pause before each bot action")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return errors.Wrap(err, "parse flags")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	seed := resolveSeed(cfg.Seed)
	in := &lineInput{}
	var human match.HumanInput
	if cfg.HumanSeat >= 0 {
		human = in
	}
	m, err := match.New(match.Options{
		Players:   cfg.Players,
		HumanSeat: cfg.HumanSeat,
		Rng:       rand.New(rand.NewPCG(seed, 0)),
		Logger:    log.WithField("mode", "play"),
		BotDelay:  *delay,
	}, human)
	if err != nil {
		return err
	}

	r := render.New(os.Stdout, m.Names())
	m.BroadcastFn = func(ev match.Event) {
		switch ev.Type {
		case match.EventTurn:
			r.State(*ev.View)
			if int(ev.Player) == cfg.HumanSeat {
				render.C.Prompt.Println("Your turn! Enter a command (type 'help' for a list):")
			}
		case match.EventGameEnd:
			r.State(*ev.View)
		default:
			r.Event(ev)
		}
	}

	render.C.Header.Println("--- HANABI ---")
	if human != nil {
		line := liner.NewLiner()
		defer line.Close()
		line.SetCtrlCAborts(true)
		in.line, in.m, in.r = line, m, r
		in.parser = command.NewParser(uint8(cfg.HumanSeat), m.Names())
		r.Help()
	} else {
		render.C.Info.Println("Watching bots. Type 'query <player>' and Enter to see a bot's beliefs.")
		go forwardQueries(ctx, os.Stdin, m)
	}

	res, err := m.Run(ctx)
	if err != nil {
		return err
	}
	r.GameOver(res)
	return nil
}

// lineInput reads the human's commands from the terminal. Queries and help
// are answered in place; only game actions are returned to the match.
type lineInput struct {
	line   *liner.State
	parser *command.Parser
	m      *match.Match
	r      *render.Renderer
}

func (in *lineInput) NextAction(ctx context.Context, _ match.View) (engine.Action, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		input, err := in.line.Prompt("> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil, match.ErrQuit
			}
			return nil, errors.Wrap(err, "read command")
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		in.line.AppendHistory(input)

		cmd, err := in.parser.Parse(input)
		if err != nil {
			in.r.Error(err.Error())
			continue
		}
		switch cmd.Kind {
		case command.KindAction:
			return cmd.Action, nil
		case command.KindQuery:
			dump, err := in.m.Beliefs(cmd.Player)
			if err != nil {
				in.r.Error(err.Error())
				continue
			}
			in.r.Beliefs(in.parser.Names[cmd.Player], dump)
		case command.KindHelp:
			in.r.Help()
		case command.KindQuit:
			render.C.Info.Println("Thanks for playing!")
			return nil, match.ErrQuit
		}
	}
}

// forwardQueries reads query commands while bots play and hands them to the
// match, which answers them between turns.
func forwardQueries(ctx context.Context, r io.Reader, m *match.Match) {
	parser := command.NewParser(0, m.Names())
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		cmd, err := parser.Parse(sc.Text())
		if err != nil || cmd.Kind != command.KindQuery {
			continue
		}
		select {
		case m.Queries() <- int(cmd.Player):
		case <-ctx.Done():
			return
		}
	}
}
