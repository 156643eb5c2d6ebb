package main

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSimulation(seed int64) simulation {
	cfg := config.Default()
	cfg.Table.Decks = 6
	cfg.Table.ReshuffleBelow = 78
	return simulation{
		cfg:     cfg,
		rounds:  200,
		workers: 3,
		seats:   2,
		seed:    seed,
		logger:  log.New(io.Discard),
	}
}

func TestSimulationIsReproducible(t *testing.T) {
	t.Parallel()
	a, err := testSimulation(42).run(context.Background())
	require.NoError(t, err)
	b, err := testSimulation(42).run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 200, a.Rounds)
	require.NoError(t, a.Validate())
	assert.GreaterOrEqual(t, a.Hands, 400)
	assert.Equal(t, a.SumNet, b.SumNet)
	assert.Equal(t, a.Values, b.Values)
}

func TestSimulationStopsOnCancel(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := testSimulation(1).run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPrintResults(t *testing.T) {
	t.Parallel()
	stats, err := testSimulation(7).run(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	printResults(&buf, stats, time.Second)
	assert.Contains(t, buf.String(), "=== 200 ROUNDS")
	assert.Contains(t, buf.String(), "95% CI")
	assert.NotContains(t, buf.String(), "Warning")
}
