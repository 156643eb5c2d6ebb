package main

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/display"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/ledger"
	"github.com/lox/blackjack/internal/store"
	"github.com/lox/blackjack/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPrompt(t *testing.T, cards string) (*prompt, *bytes.Buffer) {
	t.Helper()
	p, out, _ := newTimedPrompt(t, game.Timing{}, cards)
	return p, out
}

func newTimedPrompt(t *testing.T, timing game.Timing, cards string) (*prompt, *bytes.Buffer, *quartz.Mock) {
	t.Helper()
	cfg := game.DefaultConfig()
	cfg.Seats = 2
	cfg.ReshuffleBelow = 0
	cfg.Timing = timing
	shoe := deck.NewStackedShoe(deck.MustParseCards(cards)...)
	logger := log.New(io.Discard)
	engine, err := game.NewEngine(cfg, game.WithShoe(shoe), game.WithLogger(logger))
	require.NoError(t, err)

	var out bytes.Buffer
	clock := quartz.NewMock(t)
	sess := table.New(engine, ledger.New(100), store.NewMemory(0), clock, logger,
		table.Limits{MinBet: 5, MaxBet: 50})
	return &prompt{
		session: sess,
		view:    display.New(&out, false),
		out:     &out,
		hints:   true,
	}, &out, clock
}

func TestPromptPlaysARound(t *testing.T) {
	t.Parallel()
	p, out := newPrompt(t, "10h Ks 9c 7d")
	ctx := context.Background()

	for _, line := range []string{"bet 10", "deal", "stand"} {
		quit, err := p.exec(ctx, line)
		require.NoError(t, err, line)
		require.False(t, quit)
	}
	assert.Equal(t, game.PhaseSettlement, p.session.Engine().Phase())
	assert.Equal(t, 110, p.session.Player().Balance)

	_, err := p.exec(ctx, "stats")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "$110")
	assert.Contains(t, out.String(), "Last 1 rounds: 1 won, 0 lost, 0 pushed, net +10")
}

func TestPromptRecoversFromEmptyShoe(t *testing.T) {
	t.Parallel()
	p, _ := newPrompt(t, "10h Ks 9c 7d")
	ctx := context.Background()

	for _, line := range []string{"bet 10", "deal", "stand"} {
		_, err := p.exec(ctx, line)
		require.NoError(t, err)
	}

	// the stake stays on the seat; four cards are not enough for a second round
	_, err := p.exec(ctx, "deal")
	require.ErrorIs(t, err, deck.ErrShoeEmpty)
	assert.Equal(t, game.PhaseAborted, p.session.Engine().Phase())

	_, err = p.exec(ctx, "deal")
	require.NoError(t, err)
	assert.Equal(t, game.PhasePlayerTurn, p.session.Engine().Phase())
}

func TestPromptRejectsBadInput(t *testing.T) {
	t.Parallel()
	p, _ := newPrompt(t, "10h Ks 9c 7d")
	ctx := context.Background()

	_, err := p.exec(ctx, "deal")
	assert.EqualError(t, err, "place a bet first")

	_, err = p.exec(ctx, "bet 2 60")
	assert.ErrorIs(t, err, table.ErrInvalidBet)

	_, err = p.exec(ctx, "bet 0 10")
	assert.Error(t, err)

	_, err = p.exec(ctx, "topup")
	assert.Error(t, err)

	_, err = p.exec(ctx, "fold")
	assert.ErrorContains(t, err, "unknown command")

	quit, err := p.exec(ctx, "  ")
	assert.NoError(t, err)
	assert.False(t, quit)

	quit, err = p.exec(ctx, "QUIT")
	assert.NoError(t, err)
	assert.True(t, quit)
}

func TestPromptBetsAndClears(t *testing.T) {
	t.Parallel()
	p, _ := newPrompt(t, "10h Ks 9c 7d")
	ctx := context.Background()
	engine := p.session.Engine()

	for _, line := range []string{"bet 10", "bet 2 15", "b 2 5"} {
		_, err := p.exec(ctx, line)
		require.NoError(t, err, line)
	}
	assert.Equal(t, 10, engine.Bet(0))
	assert.Equal(t, 20, engine.Bet(1))

	_, err := p.exec(ctx, "clear 2")
	require.NoError(t, err)
	assert.Equal(t, 0, engine.Bet(1))

	_, err = p.exec(ctx, "clear")
	require.NoError(t, err)
	assert.Equal(t, 0, engine.Bet(0))

	_, err = p.exec(ctx, "topup 50")
	require.NoError(t, err)
	assert.Equal(t, 150, p.session.Player().Balance)
}

func TestBetArgs(t *testing.T) {
	t.Parallel()
	seat, amount, err := betArgs([]string{"25"})
	require.NoError(t, err)
	assert.Equal(t, 0, seat)
	assert.Equal(t, 25, amount)

	seat, amount, err = betArgs([]string{"3", "10"})
	require.NoError(t, err)
	assert.Equal(t, 2, seat)
	assert.Equal(t, 10, amount)

	_, _, err = betArgs(nil)
	assert.Error(t, err)
	_, _, err = betArgs([]string{"x"})
	assert.Error(t, err)
}
