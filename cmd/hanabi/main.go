// Command hanabi plays Hanabi against bots or runs batch simulations.
//
// Usage:
//
//	hanabi [play] [-players n] [-seat i] [-seed s] [-delay d]
//	hanabi simulate [-games n] [-players n] [-seed s] [-workers w]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jthies73/hanabi/internal/config"
	"github.com/jthies73/hanabi/internal/render"
)

var log = logrus.New()

func main() {
	cfg, err := config.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "hanabi: %v\n", err)
		os.Exit(2)
	}
	log.SetLevel(cfg.LogLevel)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, ForceColors: !cfg.NoColor})
	render.SetNoColor(cfg.NoColor)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	args := os.Args[1:]
	cmd := "play"
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "play":
		err = runPlay(ctx, *cfg, args)
	case "simulate", "sim":
		err = runSimulate(ctx, *cfg, args)
	case "help":
		printUsage()
		return
	default:
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		log.WithError(err).Error("hanabi failed")
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  hanabi [play] [-players n] [-seat i] [-seed s] [-delay d]")
	fmt.Fprintln(os.Stderr, "  hanabi simulate [-games n] [-players n] [-seed s] [-workers w]")
	fmt.Fprintln(os.Stderr, "Settings may also come from HANABI_* variables or a .env file.")
}

// resolveSeed replaces a zero seed with one from the clock and logs it so
// the game can be replayed.
func resolveSeed(seed uint64) uint64 {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.WithField("seed", seed).Info("Using seed")
	return seed
}
