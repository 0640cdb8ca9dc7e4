// Package sim plays batches of bot-only games and aggregates their scores.
package sim

import (
	"context"
	"math/rand/v2"
	"runtime"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jthies73/hanabi/engine"
	"github.com/jthies73/hanabi/internal/match"
)

// Options configures a batch.
type Options struct {
	Games   int
	Players int
	Seed    uint64 // game i is dealt from Seed+i
	Workers int    // <= 0 uses one worker per CPU
	Logger  *logrus.Entry
}

// Summary aggregates the results of a batch.
type Summary struct {
	Games      int
	Players    int
	Mean       float64
	Min        int
	Max        int
	Perfect    int
	Explosions int
	Histogram  [engine.MaxScore + 1]int // games per final score
	Scores     []int                    // in game order
}

// Run plays opts.Games games in parallel. Results depend only on Seed, not
// on the worker count.
func Run(ctx context.Context, opts Options) (Summary, error) {
	if opts.Games < 1 {
		return Summary{}, errors.Errorf("games must be positive, got %d", opts.Games)
	}
	if opts.Players < engine.MinPlayers || opts.Players > engine.MaxPlayers {
		return Summary{}, errors.Errorf("player count %d out of range [%d,%d]", opts.Players, engine.MinPlayers, engine.MaxPlayers)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	results := make([]match.Result, opts.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range opts.Games {
		g.Go(func() error {
			m, err := match.New(match.Options{
				Players:   opts.Players,
				HumanSeat: -1,
				Rng:       rand.New(rand.NewPCG(opts.Seed+uint64(i), 0)),
				Logger:    logger.WithField("sim", i),
			}, nil)
			if err != nil {
				return err
			}
			res, err := m.Run(ctx)
			if err != nil {
				return errors.Wrapf(err, "game %d", i)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	s := Summarize(results)
	s.Players = opts.Players
	logger.WithFields(logrus.Fields{
		"games":   s.Games,
		"players": s.Players,
		"mean":    s.Mean,
	}).Info("Simulation finished")
	return s, nil
}

// Summarize aggregates finished games.
func Summarize(results []match.Result) Summary {
	s := Summary{Games: len(results), Scores: make([]int, len(results))}
	if len(results) == 0 {
		return s
	}
	s.Min = engine.MaxScore
	total := 0
	for i, r := range results {
		s.Scores[i] = r.Score
		s.Histogram[r.Score]++
		total += r.Score
		s.Min = min(s.Min, r.Score)
		s.Max = max(s.Max, r.Score)
		if r.Perfect {
			s.Perfect++
		}
		if r.Exploded {
			s.Explosions++
		}
	}
	s.Mean = float64(total) / float64(len(results))
	return s
}
