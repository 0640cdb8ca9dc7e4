// Package config loads runtime settings from a .env file and HANABI_*
// environment variables.
package config

import (
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/jthies73/hanabi/engine"
)

// Environment variable names.
const (
	EnvPlayers    = "HANABI_PLAYERS"
	EnvSeed       = "HANABI_SEED"
	EnvHumanSeat  = "HANABI_HUMAN_SEAT"
	EnvLogLevel   = "HANABI_LOG_LEVEL"
	EnvSimGames   = "HANABI_SIM_GAMES"
	EnvSimWorkers = "HANABI_SIM_WORKERS"
	EnvNoColor    = "HANABI_NO_COLOR"
)

// Config holds settings shared by the play and simulate commands.
type Config struct {
	Players    int
	Seed       uint64 // 0 picks a seed from the clock
	HumanSeat  int    // -1 for bots only
	LogLevel   logrus.Level
	SimGames   int
	SimWorkers int
	NoColor    bool
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Players:    3,
		HumanSeat:  0,
		LogLevel:   logrus.InfoLevel,
		SimGames:   100,
		SimWorkers: 4,
	}
}

var (
	cfg      *Config
	loadOnce sync.Once
	loadErr  error
)

// Get loads the configuration from ".env" and the environment on first use
// and returns the cached result afterwards.
func Get() (*Config, error) {
	loadOnce.Do(func() {
		cfg, loadErr = Load(".env")
	})
	return cfg, loadErr
}

// Load reads the given .env files, if they exist, and then the process
// environment. Variables already set in the environment win over the files.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, "failed to load %s", f)
		}
	}

	c := Default()
	var err error
	if c.Players, err = intVar(EnvPlayers, c.Players); err != nil {
		return nil, err
	}
	if c.HumanSeat, err = intVar(EnvHumanSeat, c.HumanSeat); err != nil {
		return nil, err
	}
	if c.SimGames, err = intVar(EnvSimGames, c.SimGames); err != nil {
		return nil, err
	}
	if c.SimWorkers, err = intVar(EnvSimWorkers, c.SimWorkers); err != nil {
		return nil, err
	}
	if v, ok := os.LookupEnv(EnvSeed); ok && v != "" {
		if c.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return nil, errors.Wrapf(err, "invalid %s", EnvSeed)
		}
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		if c.LogLevel, err = logrus.ParseLevel(v); err != nil {
			return nil, errors.Wrapf(err, "invalid %s", EnvLogLevel)
		}
	}
	if v, ok := os.LookupEnv(EnvNoColor); ok && v != "" {
		if c.NoColor, err = strconv.ParseBool(v); err != nil {
			return nil, errors.Wrapf(err, "invalid %s", EnvNoColor)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Players < engine.MinPlayers || c.Players > engine.MaxPlayers {
		return errors.Errorf("players must be between %d and %d, got %d", engine.MinPlayers, engine.MaxPlayers, c.Players)
	}
	if c.HumanSeat < -1 || c.HumanSeat >= c.Players {
		return errors.Errorf("human seat %d out of range for %d players", c.HumanSeat, c.Players)
	}
	if c.SimGames < 1 {
		return errors.Errorf("simulation needs at least one game, got %d", c.SimGames)
	}
	if c.SimWorkers < 1 {
		return errors.Errorf("simulation needs at least one worker, got %d", c.SimWorkers)
	}
	return nil
}

func intVar(name string, def int) (int, error) {
	v, ok := os.LookupEnv(name)
	if !ok || strings.TrimSpace(v) == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", name)
	}
	return n, nil
}
