// Package table runs a blackjack session: one engine, the player's ledger
// and the store that keeps them, paced by a clock.
package table

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/ledger"
	"github.com/lox/blackjack/internal/store"
)

// ErrInvalidBet is returned for stakes outside the table limits or beyond
// what the player can cover.
var ErrInvalidBet = errors.New("invalid bet")

// ErrInsufficientFunds is returned when a double, split or insurance would
// put more at risk than the balance covers.
var ErrInsufficientFunds = errors.New("insufficient funds")

const persistTimeout = 5 * time.Second

// Limits are the table's betting limits
type Limits struct {
	MinBet int
	MaxBet int
}

// Session couples an engine to the player's ledger. The engine decides
// outcomes; the session validates money and settles each round into the
// ledger exactly once.
type Session struct {
	engine *game.Engine
	player *ledger.Player
	store  store.Store
	clock  quartz.Clock
	logger *log.Logger
	limits Limits

	lastTick  time.Time
	settled   bool
	lastEntry *ledger.Entry
}

// New creates a session. A nil store keeps nothing; a nil logger discards.
func New(engine *game.Engine, player *ledger.Player, st store.Store, clock quartz.Clock, logger *log.Logger, limits Limits) *Session {
	if st == nil {
		st = store.NewMemory(0)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		engine:   engine,
		player:   player,
		store:    st,
		clock:    clock,
		logger:   logger.WithPrefix("table"),
		limits:   limits,
		lastTick: clock.Now(),
	}
}

// Engine returns the underlying engine
func (s *Session) Engine() *game.Engine { return s.engine }

// Player returns the player's ledger
func (s *Session) Player() *ledger.Player { return s.player }

// Limits returns the betting limits
func (s *Session) Limits() Limits { return s.limits }

// Snapshot captures the table for rendering
func (s *Session) Snapshot() game.Snapshot { return s.engine.Snapshot() }

// LastEntry returns the history entry of the most recently settled round
func (s *Session) LastEntry() (ledger.Entry, bool) {
	if s.lastEntry == nil {
		return ledger.Entry{}, false
	}
	return *s.lastEntry, true
}

// History returns up to n recent rounds from the store
func (s *Session) History(ctx context.Context, n int) ([]ledger.Entry, error) {
	return s.store.History(ctx, n)
}

// staked returns the stakes waiting for the next deal across every seat
func (s *Session) staked() int {
	total := 0
	for i := range s.engine.Config().Seats {
		total += s.engine.Bet(i)
	}
	return total
}

// committed returns what the current round has at risk: hand bets plus
// insurance.
func (s *Session) committed() int {
	total := 0
	for _, idx := range s.engine.ActiveSeats() {
		for _, h := range s.engine.SeatHands(idx) {
			total += h.Bet
		}
		total += s.engine.SeatInsurance(idx).Stake
	}
	return total
}

// PlaceBet adds amount to a seat's stake. The stake may not exceed the
// table maximum and all stakes together may not exceed the balance.
func (s *Session) PlaceBet(seat, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount %d must be positive", ErrInvalidBet, amount)
	}
	if seat < 0 || seat >= s.engine.Config().Seats {
		return fmt.Errorf("%w: no seat %d", ErrInvalidBet, seat)
	}
	stake := s.engine.Bet(seat) + amount
	if stake > s.limits.MaxBet {
		return fmt.Errorf("%w: stake %d above table maximum %d", ErrInvalidBet, stake, s.limits.MaxBet)
	}
	if !s.player.CanAfford(s.staked() + amount) {
		return fmt.Errorf("%w: stakes of %d exceed balance %d", ErrInvalidBet, s.staked()+amount, s.player.Balance)
	}
	s.engine.PlaceBet(seat, amount)
	return nil
}

// ClearBet removes a seat's stake
func (s *Session) ClearBet(seat int) {
	s.engine.ClearBet(seat)
}

// ClearBets removes every stake
func (s *Session) ClearBets() {
	for i := range s.engine.Config().Seats {
		s.engine.ClearBet(i)
	}
}

// validateStakes checks the stakes about to be dealt
func (s *Session) validateStakes() error {
	for i := range s.engine.Config().Seats {
		if bet := s.engine.Bet(i); bet > 0 && bet < s.limits.MinBet {
			return fmt.Errorf("%w: seat %d stake %d below table minimum %d", ErrInvalidBet, i, bet, s.limits.MinBet)
		}
	}
	if total := s.staked(); !s.player.CanAfford(total) {
		return fmt.Errorf("%w: stakes of %d exceed balance %d", ErrInvalidBet, total, s.player.Balance)
	}
	return nil
}

// CanDeal reports whether the stakes on the table may be dealt
func (s *Session) CanDeal() bool {
	return s.engine.CanDeal() && s.validateStakes() == nil
}

// Deal validates the stakes and deals the round
func (s *Session) Deal() error {
	if !s.engine.CanDeal() {
		return nil
	}
	if err := s.validateStakes(); err != nil {
		return err
	}
	s.lastTick = s.clock.Now()
	return s.after(s.engine.Deal())
}

// The methods below pass straight through to the engine. Actions settle
// the round into the ledger once it reaches Settlement.

// CurrentTurn returns the seat and hand awaiting a decision
func (s *Session) CurrentTurn() (game.PlayerTurn, bool) { return s.engine.CurrentTurn() }

// SeatHands returns the hands played from a seat
func (s *Session) SeatHands(seat int) []game.SeatHand { return s.engine.SeatHands(seat) }

// DealerUpCard returns the dealer's face-up card
func (s *Session) DealerUpCard() (deck.Card, bool) { return s.engine.DealerUpCard() }

// CanHit reports whether the current hand may draw
func (s *Session) CanHit() bool { return s.engine.CanHit() }

// CanStand reports whether the current hand may stand
func (s *Session) CanStand() bool { return s.engine.CanStand() }

// CanSurrender reports whether surrender is still open
func (s *Session) CanSurrender() bool { return s.engine.CanSurrender() }

// CanDeclineInsurance reports whether an insurance offer is waiting
func (s *Session) CanDeclineInsurance() bool { return s.engine.CanDeclineInsurance() }

// Hit draws a card to the current hand
func (s *Session) Hit() error { return s.after(s.engine.Hit()) }

// Stand ends the current hand
func (s *Session) Stand() error { return s.after(s.engine.Stand()) }

// Surrender gives up the current hand for half its bet
func (s *Session) Surrender() error { return s.after(s.engine.Surrender()) }

// DeclineInsurance turns down the insurance offer
func (s *Session) DeclineInsurance() error { return s.after(s.engine.DeclineInsurance()) }

// currentBet returns the bet on the hand awaiting a decision
func (s *Session) currentBet() int {
	turn, ok := s.engine.CurrentTurn()
	if !ok {
		return 0
	}
	hands := s.engine.SeatHands(turn.Seat)
	if turn.Hand >= len(hands) {
		return 0
	}
	return hands[turn.Hand].Bet
}

// CanDouble reports whether the engine allows a double and the balance
// covers the extra bet.
func (s *Session) CanDouble() bool {
	return s.engine.CanDouble() && s.player.CanAfford(s.committed()+s.currentBet())
}

// CanSplit reports whether the engine allows a split and the balance covers
// the second hand.
func (s *Session) CanSplit() bool {
	return s.engine.CanSplit() && s.player.CanAfford(s.committed()+s.currentBet())
}

// CanTakeInsurance reports whether insurance is offered and affordable
func (s *Session) CanTakeInsurance() bool {
	return s.engine.CanTakeInsurance() && s.player.CanAfford(s.committed()+s.currentBet()/2)
}

// Double doubles the current hand. It fails with ErrInsufficientFunds when
// the balance cannot cover the extra bet.
func (s *Session) Double() error {
	if s.engine.CanDouble() && !s.CanDouble() {
		return fmt.Errorf("double: %w", ErrInsufficientFunds)
	}
	return s.after(s.engine.Double())
}

// Split splits the current pair. It fails with ErrInsufficientFunds when
// the balance cannot cover the second hand.
func (s *Session) Split() error {
	if s.engine.CanSplit() && !s.CanSplit() {
		return fmt.Errorf("split: %w", ErrInsufficientFunds)
	}
	return s.after(s.engine.Split())
}

// TakeInsurance places the insurance side bet. It fails with
// ErrInsufficientFunds when the balance cannot cover half the stake.
func (s *Session) TakeInsurance() error {
	if s.engine.CanTakeInsurance() && !s.CanTakeInsurance() {
		return fmt.Errorf("insurance: %w", ErrInsufficientFunds)
	}
	return s.after(s.engine.TakeInsurance())
}

// Tick feeds the time since the previous tick to the engine
func (s *Session) Tick() error {
	now := s.clock.Now()
	dt := now.Sub(s.lastTick)
	s.lastTick = now
	return s.after(s.engine.Update(dt))
}

// after settles the round into the ledger once the engine reaches
// Settlement.
func (s *Session) after(err error) error {
	if err != nil {
		s.logger.Warn("Round aborted", "round", s.engine.Round(), "error", err)
		return err
	}
	st, ok := s.engine.State().(game.Settlement)
	if !ok || s.settled {
		return nil
	}
	s.settled = true

	entry := s.player.Apply(st.Result, s.clock.Now())
	s.lastEntry = &entry
	s.logger.Info("Round settled",
		"round", entry.Round,
		"net", entry.Net,
		"balance", entry.Balance,
		"outcome", entry.Outcome)

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := s.store.SavePlayer(ctx, s.player); err != nil {
		return fmt.Errorf("save player: %w", err)
	}
	if err := s.store.AppendHistory(ctx, entry); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// NextRound clears the table for betting. Stakes the balance can no longer
// cover are cleared.
func (s *Session) NextRound() {
	s.engine.NewRound()
	if s.engine.Phase() != game.PhaseBetting {
		return
	}
	s.settled = false
	for i := range s.engine.Config().Seats {
		if s.staked() <= s.player.Balance {
			break
		}
		s.engine.ClearBet(i)
	}
}

// TopUp adds money to the balance and saves the player
func (s *Session) TopUp(ctx context.Context, amount int) error {
	if err := s.player.EarnMoney(amount); err != nil {
		return err
	}
	s.logger.Info("Balance topped up", "amount", amount, "balance", s.player.Balance)
	return s.store.SavePlayer(ctx, s.player)
}

// WaitingForInput reports whether the engine can only move on through a
// player call rather than the passage of time.
func (s *Session) WaitingForInput() bool {
	switch s.engine.State().(type) {
	case game.Betting, game.PlayerTurn, game.Settlement, game.Aborted:
		return true
	default:
		return false
	}
}
