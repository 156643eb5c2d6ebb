// Package ledger keeps the player's bankroll and lifetime statistics and
// applies settled rounds to them. The engine never touches money; this is
// where stakes turn into balance changes.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lox/blackjack/internal/game"
)

// DefaultBalance is the bankroll a new player starts with
const DefaultBalance = 1000

var ErrInvalidAmount = errors.New("amount must be positive")

// Player is the bankroll and cumulative record of the person at the table.
// Every seat they bet on settles into the same Player.
type Player struct {
	Balance        int `json:"balance"`
	InitialBalance int `json:"initial_balance"`
	TotalHands     int `json:"total_hands"`
	Wins           int `json:"wins"`
	Losses         int `json:"losses"`
	Pushes         int `json:"pushes"`
	Blackjacks     int `json:"blackjacks"`
	TotalWagered   int `json:"total_wagered"`
	TotalWon       int `json:"total_won"`
	TotalLost      int `json:"total_lost"`
}

// New creates a player holding balance
func New(balance int) *Player {
	return &Player{Balance: balance, InitialBalance: balance}
}

// CanAfford reports whether the balance covers amount
func (p *Player) CanAfford(amount int) bool {
	return amount <= p.Balance
}

// Payout returns the balance change for one settled hand, insurance
// included. A win pays the stake, or one and a half times the stake for a
// blackjack; a loss costs the stake; a push costs nothing.
func Payout(h game.HandResult) int {
	net := 0
	switch h.Outcome {
	case game.PlayerWin:
		if h.Blackjack {
			net = h.Stake() * 3 / 2
		} else {
			net = h.Stake()
		}
	case game.DealerWin:
		net = -h.Stake()
	}
	if h.InsuranceStake > 0 {
		if h.InsuranceWon {
			net += 2 * h.InsuranceStake
		} else {
			net -= h.InsuranceStake
		}
	}
	return net
}

// ApplyHand settles one hand into the balance and statistics and returns
// the balance change.
func (p *Player) ApplyHand(h game.HandResult) int {
	net := Payout(h)
	p.TotalHands++
	p.TotalWagered += h.Bet + h.InsuranceStake
	switch h.Outcome {
	case game.PlayerWin:
		p.Wins++
	case game.DealerWin:
		p.Losses++
	case game.Push:
		p.Pushes++
	}
	if h.Blackjack {
		p.Blackjacks++
	}
	if net > 0 {
		p.TotalWon += net
	} else {
		p.TotalLost -= net
	}
	p.Balance += net
	return net
}

// Apply settles every hand of a round and returns the history entry for it
func (p *Player) Apply(r game.RoundResult, at time.Time) Entry {
	e := Entry{
		ID:          uuid.NewString(),
		Round:       r.Round,
		PlayedAt:    at,
		Outcome:     r.Overall,
		DealerValue: r.DealerValue,
	}
	for _, h := range r.Hands {
		e.Net += p.ApplyHand(h)
		e.Hands++
		e.Wagered += h.Bet + h.InsuranceStake
		if h.Blackjack {
			e.Blackjacks++
		}
	}
	e.Balance = p.Balance
	return e
}

// EarnMoney tops the balance up without touching the statistics
func (p *Player) EarnMoney(amount int) error {
	if amount <= 0 {
		return fmt.Errorf("top up %d: %w", amount, ErrInvalidAmount)
	}
	p.Balance += amount
	return nil
}

// NetProfit returns the balance won or lost since the player started
func (p *Player) NetProfit() int {
	return p.Balance - p.InitialBalance
}

// WinRate returns the share of hands won as a percentage
func (p *Player) WinRate() float64 {
	if p.TotalHands == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.TotalHands) * 100
}

// ResetStats clears the statistics but keeps the balance
func (p *Player) ResetStats() {
	*p = Player{Balance: p.Balance, InitialBalance: p.InitialBalance}
}

// Entry is one settled round in the player's history
type Entry struct {
	ID          string       `json:"id"`
	Round       int          `json:"round"`
	PlayedAt    time.Time    `json:"played_at"`
	Hands       int          `json:"hands"`
	Outcome     game.Outcome `json:"outcome"`
	Net         int          `json:"net"`
	Wagered     int          `json:"wagered"`
	Blackjacks  int          `json:"blackjacks"`
	DealerValue int          `json:"dealer_value"`
	Balance     int          `json:"balance"`
}
