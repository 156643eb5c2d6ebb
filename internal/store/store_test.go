package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(round int) ledger.Entry {
	return ledger.Entry{
		ID:          fmt.Sprintf("round-%d", round),
		Round:       round,
		PlayedAt:    time.UnixMilli(int64(1_700_000_000_000 + round*1000)).UTC(),
		Hands:       1,
		Outcome:     game.PlayerWin,
		Net:         10,
		Wagered:     10,
		DealerValue: 19,
		Balance:     1000 + 10*round,
	}
}

// backends opens every persistent backend in a fresh directory
func backends(t *testing.T, limit int) map[string]Store {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	js, err := Open(ctx, Options{Driver: DriverJSON, Path: filepath.Join(dir, "stats", "player.json"), HistoryLimit: limit})
	require.NoError(t, err)
	sq, err := Open(ctx, Options{Driver: DriverSQLite, Path: filepath.Join(dir, "db", "player.db"), HistoryLimit: limit})
	require.NoError(t, err)
	mem, err := Open(ctx, Options{Driver: DriverNone, HistoryLimit: limit})
	require.NoError(t, err)

	stores := map[string]Store{"json": js, "sqlite": sq, "memory": mem}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestPlayerRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for name, s := range backends(t, 10) {
		t.Run(name, func(t *testing.T) {
			_, found, err := s.LoadPlayer(ctx)
			require.NoError(t, err)
			assert.False(t, found)

			p, err := LoadOrCreate(ctx, s, 500)
			require.NoError(t, err)
			assert.Equal(t, 500, p.Balance)

			p.ApplyHand(game.HandResult{Bet: 10, Outcome: game.PlayerWin, Blackjack: true})
			require.NoError(t, s.SavePlayer(ctx, p))
			p.ApplyHand(game.HandResult{Bet: 10, Outcome: game.DealerWin})
			require.NoError(t, s.SavePlayer(ctx, p))

			loaded, found, err := s.LoadPlayer(ctx)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, *p, *loaded)
		})
	}
}

func TestHistoryIsCapped(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for name, s := range backends(t, 3) {
		t.Run(name, func(t *testing.T) {
			for round := 1; round <= 5; round++ {
				require.NoError(t, s.AppendHistory(ctx, entry(round)))
			}

			all, err := s.History(ctx, 0)
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, []int{3, 4, 5}, []int{all[0].Round, all[1].Round, all[2].Round})
			assert.Equal(t, entry(5), all[2])

			last, err := s.History(ctx, 2)
			require.NoError(t, err)
			require.Len(t, last, 2)
			assert.Equal(t, 4, last[0].Round)
		})
	}
}

func TestZeroLimitKeepsDefaultHistory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()

	sq, err := NewSQLite(ctx, filepath.Join(dir, "player.db"), 0, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })
	js, err := NewJSON(filepath.Join(dir, "player.json"), 0, nil)
	require.NoError(t, err)

	for name, s := range map[string]Store{"sqlite": sq, "json": js, "memory": NewMemory(0)} {
		t.Run(name, func(t *testing.T) {
			for round := 1; round <= 3; round++ {
				require.NoError(t, s.AppendHistory(ctx, entry(round)))
			}
			all, err := s.History(ctx, 0)
			require.NoError(t, err)
			assert.Len(t, all, 3)
		})
	}
}

func TestReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for name, s := range backends(t, 10) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.SavePlayer(ctx, ledger.New(100)))
			require.NoError(t, s.AppendHistory(ctx, entry(1)))
			require.NoError(t, s.Reset(ctx))
			require.NoError(t, s.Reset(ctx), "reset twice is fine")

			_, found, err := s.LoadPlayer(ctx)
			require.NoError(t, err)
			assert.False(t, found)
			history, err := s.History(ctx, 0)
			require.NoError(t, err)
			assert.Empty(t, history)
		})
	}
}

func TestJSONHistoryFileName(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	s, err := NewJSON(filepath.Join(dir, "player_stats.json"), 10, nil)
	require.NoError(t, err)
	require.NoError(t, s.AppendHistory(context.Background(), entry(1)))

	_, err = os.Stat(filepath.Join(dir, "player_stats_history.json"))
	assert.NoError(t, err)
}

func TestJSONCorruptFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "player.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	s, err := Open(context.Background(), Options{Driver: DriverJSON, Path: path})
	require.NoError(t, err)
	_, _, err = s.LoadPlayer(context.Background())
	assert.Error(t, err)
}

func TestOpenUnknownDriver(t *testing.T) {
	t.Parallel()
	_, err := Open(context.Background(), Options{Driver: "postgres"})
	assert.Error(t, err)
}
