package statistics

import (
	"testing"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/ledger"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	t.Parallel()
	p := ledger.Player{
		Balance:    990,
		TotalHands: 3,
		Wins:       1,
		Losses:     2,
		Blackjacks: 1,
		TotalWon:   15,
		TotalLost:  25,
	}
	s := Summarize(p)

	assert.Equal(t, 33.33, s.WinRate)
	assert.Equal(t, 66.67, s.LossRate)
	assert.Equal(t, 0.0, s.PushRate)
	assert.Equal(t, -10, s.NetProfit)
	assert.Equal(t, -4, s.AvgPerHand, "average floors toward negative")
	assert.Equal(t, 0.5, s.WinLoss)
	assert.Equal(t, 990, s.Balance)
}

func TestSummarizeEmpty(t *testing.T) {
	t.Parallel()
	s := Summarize(ledger.Player{Balance: 1000})
	assert.Zero(t, s.WinRate)
	assert.Zero(t, s.AvgPerHand)
	assert.Zero(t, s.WinLoss)
}

func TestSessionStats(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Session{}, SessionStats(nil))

	s := SessionStats([]ledger.Entry{
		{Hands: 1, Outcome: game.PlayerWin, Net: 15},
		{Hands: 2, Outcome: game.DealerWin, Net: -20},
		{Hands: 1, Outcome: game.Push},
		{Hands: 1, Outcome: game.PlayerWin, Net: 10},
	})
	assert.Equal(t, 4, s.Rounds)
	assert.Equal(t, 5, s.Hands)
	assert.Equal(t, 2, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.Equal(t, 1, s.Pushes)
	assert.Equal(t, 5, s.TotalMoney)
	assert.Equal(t, 50.0, s.WinRate)
}
