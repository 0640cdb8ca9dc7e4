package main

import (
	"context"
	"io"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jthies73/hanabi/internal/match"
)

func TestForwardQueries(t *testing.T) {
	log.SetOutput(io.Discard)
	m, err := match.New(match.Options{Players: 3, HumanSeat: -1, Rng: rand.New(rand.NewPCG(3, 0)), Logger: log.WithField("test", t.Name())}, nil)
	require.NoError(t, err)
	var answered []uint8
	m.BroadcastFn = func(ev match.Event) {
		if ev.Type == match.EventBeliefs {
			answered = append(answered, ev.Player)
		}
	}

	forwardQueries(context.Background(), strings.NewReader("query Bot1\nplay 0\nnonsense\nquery 2\n"), m)
	for range 2 {
		_, err := m.Step(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, []uint8{1, 2}, answered)
}

func TestResolveSeedKeepsExplicitSeed(t *testing.T) {
	log.SetOutput(io.Discard)
	assert.Equal(t, uint64(77), resolveSeed(77))
	assert.NotZero(t, resolveSeed(0))
}
