package game

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
)

// Engine runs the rounds of one blackjack table. It exclusively owns the
// shoe and the dealer's hand.
type Engine struct {
	cfg    Config
	shoe   *deck.Shoe
	logger *log.Logger

	seats  []*seat
	active []int // seat indices holding a stake at deal time, ascending
	dealer Hand
	state  RoundState
	round  int

	dealerPlayed bool
	reshuffle    bool

	elapsed    time.Duration
	lastAction time.Duration
}

// NewEngine creates an engine in the Betting state
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	o := engineOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	shoe := o.shoe
	if shoe == nil {
		rng := o.rng
		if rng == nil {
			rng = randutil.New(time.Now().UnixNano())
		}
		shoe = deck.NewShoe(cfg.Decks, rng)
		shoe.Burn(cfg.BurnCards)
	}

	e := &Engine{
		cfg:    cfg,
		shoe:   shoe,
		logger: o.logger.WithPrefix("engine"),
		seats:  make([]*seat, cfg.Seats),
		state:  Betting{},
	}
	for i := range e.seats {
		e.seats[i] = &seat{index: i}
	}
	return e, nil
}

// Config returns the configuration the engine was built with
func (e *Engine) Config() Config {
	return e.cfg
}

// State returns the current round state
func (e *Engine) State() RoundState {
	return e.state
}

// Phase returns the current phase
func (e *Engine) Phase() Phase {
	return e.state.Phase()
}

// Round returns the number of rounds dealt so far
func (e *Engine) Round() int {
	return e.round
}

// Elapsed returns the total time fed through Update
func (e *Engine) Elapsed() time.Duration {
	return e.elapsed
}

// LastAction returns the elapsed time at the last state change or decision
func (e *Engine) LastAction() time.Duration {
	return e.lastAction
}

// ShoeRemaining returns how many cards are left in the shoe
func (e *Engine) ShoeRemaining() int {
	return e.shoe.Remaining()
}

// ActiveSeats returns the seats dealt into the current round, ascending
func (e *Engine) ActiveSeats() []int {
	return slices.Clone(e.active)
}

// Bet returns the stake a seat has placed for the next deal
func (e *Engine) Bet(seatIdx int) int {
	s := e.seat(seatIdx)
	if s == nil {
		return 0
	}
	return s.bet
}

// SeatHands returns copies of the hands a seat plays this round
func (e *Engine) SeatHands(seatIdx int) []SeatHand {
	s := e.seat(seatIdx)
	if s == nil {
		return nil
	}
	hands := make([]SeatHand, len(s.hands))
	for i, h := range s.hands {
		hands[i] = *h
		hands[i].Hand = h.Hand.clone()
	}
	return hands
}

// SeatInsurance returns the insurance state of a seat
func (e *Engine) SeatInsurance(seatIdx int) Insurance {
	s := e.seat(seatIdx)
	if s == nil {
		return Insurance{}
	}
	return s.insurance
}

// DealerUpCard returns the dealer's face-up card once cards are dealt
func (e *Engine) DealerUpCard() (deck.Card, bool) {
	if e.dealer.Len() == 0 {
		return deck.Card{}, false
	}
	return e.dealer.Card(0), true
}

// DealerHand returns the dealer's full hand. It is only available once the
// players have finished, so the hole card cannot leak into decisions.
func (e *Engine) DealerHand() (Hand, bool) {
	if !dealerVisible(e.state) {
		return Hand{}, false
	}
	return e.dealer.clone(), true
}

// NewRound clears the table after a settled or aborted round and returns to
// Betting. Stakes stay on their seats for the next deal. The shoe is
// reshuffled when it has dropped below the cut card or the last round ran it
// dry.
func (e *Engine) NewRound() {
	switch e.state.(type) {
	case Betting, Settlement, Aborted:
	default:
		e.ignore("new_round")
		return
	}

	for _, s := range e.seats {
		s.reset()
	}
	e.active = nil
	e.dealer = Hand{}
	e.dealerPlayed = false

	if e.reshuffle || (e.cfg.ReshuffleBelow > 0 && e.shoe.Remaining() < e.cfg.ReshuffleBelow) {
		e.shoe.Reset()
		burned := e.shoe.Burn(e.cfg.BurnCards)
		e.reshuffle = false
		e.logger.Info("Shoe reshuffled", "cards", e.shoe.Remaining(), "burned", burned)
	}

	e.setState(Betting{})
}

// PlaceBet adds amount to a seat's stake for the next deal. Negative amounts
// take chips back but a stake never drops below zero. Stakes changed after
// the deal only apply to the following round.
func (e *Engine) PlaceBet(seatIdx, amount int) {
	s := e.seat(seatIdx)
	if s == nil || s.bet+amount < 0 {
		e.ignore("place_bet", "seat", seatIdx, "amount", amount)
		return
	}
	s.bet += amount
	e.logger.Debug("Bet placed", "seat", seatIdx, "amount", amount, "stake", s.bet)
}

// ClearBet removes a seat's stake
func (e *Engine) ClearBet(seatIdx int) {
	s := e.seat(seatIdx)
	if s == nil {
		e.ignore("clear_bet", "seat", seatIdx)
		return
	}
	s.bet = 0
}

// CanDeal reports whether a round can be dealt
func (e *Engine) CanDeal() bool {
	if _, ok := e.state.(Betting); !ok {
		return false
	}
	for _, s := range e.seats {
		if s.bet > 0 {
			return true
		}
	}
	return false
}

// Deal starts a round: it snapshots the seats holding a stake, deals two
// cards to each of them and to the dealer, and resolves naturals.
func (e *Engine) Deal() error {
	if !e.CanDeal() {
		e.ignore("deal")
		return nil
	}

	e.round++
	e.active = e.active[:0]
	for _, s := range e.seats {
		s.reset()
		if s.bet > 0 {
			s.active = true
			s.hands = []*SeatHand{{Bet: s.bet}}
			e.active = append(e.active, s.index)
		}
	}
	e.dealer = Hand{}
	e.dealerPlayed = false
	e.setState(Dealing{})
	e.logger.Info("Dealing round", "round", e.round, "seats", e.active)

	// one card to each seat then the dealer, twice
	for range 2 {
		for _, idx := range e.active {
			c, err := e.draw()
			if err != nil {
				return err
			}
			e.seats[idx].hands[0].Hand.Add(c)
		}
		c, err := e.draw()
		if err != nil {
			return err
		}
		e.dealer.Add(c)
	}

	for _, idx := range e.active {
		h := e.seats[idx].hands[0]
		h.Natural = h.Hand.IsBlackjack()
	}

	if e.openInsuranceWindow() {
		e.setState(Dealing{Insurance: true})
		return e.advance()
	}
	if e.resolveNaturals() {
		e.settle()
		return nil
	}
	return e.advance()
}

// Update feeds elapsed time from the driving loop and performs any
// transition whose delay has passed.
func (e *Engine) Update(dt time.Duration) error {
	if dt > 0 {
		e.elapsed += dt
	}
	return e.advance()
}

// advance runs every system-driven transition that is due
func (e *Engine) advance() error {
	for {
		since := e.elapsed - e.lastAction
		switch s := e.state.(type) {
		case Dealing:
			if since < e.cfg.Timing.InitialDeal {
				return nil
			}
			if s.Insurance {
				e.nextInsuranceSeat(0)
			} else {
				e.turnFrom(0)
			}
		case DealerReveal:
			if since < e.cfg.Timing.DealerReveal {
				return nil
			}
			if err := e.playDealer(); err != nil {
				return err
			}
		case DealerPlay:
			if since < e.cfg.Timing.DealerAction {
				return nil
			}
			e.settle()
		default:
			return nil
		}
	}
}

// resolveNaturals settles two card 21s against the dealer's hand. It reports
// whether the round is over: the dealer has blackjack or every seat does.
func (e *Engine) resolveNaturals() bool {
	dealerBJ := e.dealer.IsBlackjack()
	allDone := true
	for _, idx := range e.active {
		h := e.seats[idx].hands[0]
		switch {
		case h.Natural && dealerBJ:
			h.resolve(Push)
		case h.Natural:
			h.resolve(PlayerWin)
		case dealerBJ:
			h.resolve(DealerWin)
		default:
			allDone = false
		}
	}
	if dealerBJ || allDone {
		e.logger.Info("Round ended on naturals", "round", e.round, "dealer_blackjack", dealerBJ)
		return true
	}
	return false
}

func (e *Engine) draw() (deck.Card, error) {
	c, err := e.shoe.DrawOne()
	if err != nil {
		return deck.Card{}, e.abort(err)
	}
	return c, nil
}

// abort ends the round without outcomes; the next NewRound reshuffles
func (e *Engine) abort(err error) error {
	e.reshuffle = true
	wrapped := fmt.Errorf("round %d aborted: %w", e.round, err)
	e.setState(Aborted{Err: wrapped})
	e.logger.Error("Shoe exhausted, round aborted", "round", e.round, "error", err)
	return wrapped
}

func (e *Engine) setState(s RoundState) {
	e.state = s
	e.lastAction = e.elapsed
	e.logger.Debug("Phase changed", "phase", s.Phase(), "round", e.round)
}

func (e *Engine) markAction() {
	e.lastAction = e.elapsed
}

func (e *Engine) seat(idx int) *seat {
	if idx < 0 || idx >= len(e.seats) {
		return nil
	}
	return e.seats[idx]
}

func (e *Engine) ignore(action string, keyvals ...any) {
	args := append([]any{"action", action, "phase", e.state.Phase()}, keyvals...)
	e.logger.Debug("Ignoring action", args...)
}
