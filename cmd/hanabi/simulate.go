package main

import (
	"context"
	"flag"
	"os"

	"github.com/pkg/errors"

	"github.com/jthies73/hanabi/internal/config"
	"github.com/jthies73/hanabi/internal/render"
	"github.com/jthies73/hanabi/internal/sim"
)

func runSimulate(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	fs.IntVar(&cfg.SimGames, "games", cfg.SimGames, "number of games")
	fs.IntVar(&cfg.Players, "players", cfg.Players, "players per game (2-5)")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "base seed; game i uses seed+i (0 picks one)")
	fs.IntVar(&cfg.SimWorkers, "workers", cfg.SimWorkers, "parallel games")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return errors.Wrap(err, "parse flags")
	}
	cfg.HumanSeat = -1
	if err := cfg.Validate(); err != nil {
		return err
	}

	render.C.Header.Printf("--- Simulating %d games with %d players ---\n", cfg.SimGames, cfg.Players)
	s, err := sim.Run(ctx, sim.Options{
		Games:   cfg.SimGames,
		Players: cfg.Players,
		Seed:    resolveSeed(cfg.Seed),
		Workers: cfg.SimWorkers,
		Logger:  log.WithField("mode", "simulate"),
	})
	if err != nil {
		return errors.Wrap(err, "simulation")
	}
	render.Summary(os.Stdout, s)
	return nil
}
