package statistics

import (
	"math"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/ledger"
)

// Summary is the derived view of a player's lifetime record. Rates are
// percentages rounded to two decimals.
type Summary struct {
	TotalHands int     `json:"total_hands"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	Pushes     int     `json:"pushes"`
	Blackjacks int     `json:"blackjacks"`
	WinRate    float64 `json:"win_rate"`
	LossRate   float64 `json:"loss_rate"`
	PushRate   float64 `json:"push_rate"`
	MoneyWon   int     `json:"total_money_won"`
	MoneyLost  int     `json:"total_money_lost"`
	NetProfit  int     `json:"net_profit"`
	AvgPerHand int     `json:"avg_per_hand"`
	WinLoss    float64 `json:"w_l_ratio"`
	Balance    int     `json:"balance"`
}

// Summarize derives the summary of a player's record
func Summarize(p ledger.Player) Summary {
	s := Summary{
		TotalHands: p.TotalHands,
		Wins:       p.Wins,
		Losses:     p.Losses,
		Pushes:     p.Pushes,
		Blackjacks: p.Blackjacks,
		MoneyWon:   p.TotalWon,
		MoneyLost:  p.TotalLost,
		NetProfit:  p.TotalWon - p.TotalLost,
		Balance:    p.Balance,
	}
	if p.TotalHands > 0 {
		s.WinRate = percent(p.Wins, p.TotalHands)
		s.LossRate = percent(p.Losses, p.TotalHands)
		s.PushRate = percent(p.Pushes, p.TotalHands)
		s.AvgPerHand = floorDiv(s.NetProfit, p.TotalHands)
	}
	if p.Losses > 0 {
		s.WinLoss = round2(float64(p.Wins) / float64(p.Losses))
	}
	return s
}

// Session summarizes recent history entries
type Session struct {
	Rounds     int     `json:"rounds"`
	Hands      int     `json:"hands"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	Pushes     int     `json:"pushes"`
	TotalMoney int     `json:"total_money"`
	WinRate    float64 `json:"win_rate"`
}

// SessionStats summarizes entries by their overall round outcome
func SessionStats(entries []ledger.Entry) Session {
	var s Session
	for _, e := range entries {
		s.Rounds++
		s.Hands += e.Hands
		s.TotalMoney += e.Net
		switch e.Outcome {
		case game.PlayerWin:
			s.Wins++
		case game.DealerWin:
			s.Losses++
		case game.Push:
			s.Pushes++
		}
	}
	if s.Rounds > 0 {
		s.WinRate = percent(s.Wins, s.Rounds)
	}
	return s
}

func percent(n, total int) float64 {
	return round2(float64(n) / float64(total) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// floorDiv rounds toward negative infinity
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
