package strategy

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// Table is the part of a blackjack table the autopilot plays through. Both
// game.Engine and table.Session satisfy it.
type Table interface {
	CurrentTurn() (game.PlayerTurn, bool)
	SeatHands(seat int) []game.SeatHand
	DealerUpCard() (deck.Card, bool)

	CanDouble() bool
	CanSplit() bool
	CanSurrender() bool

	Hit() error
	Stand() error
	Double() error
	Split() error
	Surrender() error
	DeclineInsurance() error
}

// Autopilot makes every decision for the seats at a table
type Autopilot struct {
	logger *log.Logger
}

// NewAutopilot creates an autopilot; a nil logger discards output
func NewAutopilot(logger *log.Logger) *Autopilot {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Autopilot{logger: logger.WithPrefix("autopilot")}
}

// Hint returns the advice for the decision the table is waiting on
func Hint(t Table) (Decision, bool) {
	turn, ok := t.CurrentTurn()
	if !ok {
		return Decision{}, false
	}
	if turn.Insurance {
		return Decision{DeclineInsurance, "insurance loses over time"}, true
	}
	up, ok := t.DealerUpCard()
	if !ok {
		return Decision{}, false
	}
	hands := t.SeatHands(turn.Seat)
	if turn.Hand >= len(hands) {
		return Decision{}, false
	}
	return Advise(hands[turn.Hand].Hand, up, Options{
		Double:    t.CanDouble(),
		Split:     t.CanSplit(),
		Surrender: t.CanSurrender(),
	}), true
}

// Act plays the advised decision. It reports false when the table is not
// waiting on a decision.
func (a *Autopilot) Act(t Table) (bool, error) {
	d, ok := Hint(t)
	if !ok {
		return false, nil
	}
	turn, _ := t.CurrentTurn()
	a.logger.Debug("Decision", "seat", turn.Seat, "hand", turn.Hand, "action", d.Action, "reason", d.Reasoning)

	switch d.Action {
	case Stand:
		return true, t.Stand()
	case Double:
		return true, t.Double()
	case Split:
		return true, t.Split()
	case Surrender:
		return true, t.Surrender()
	case DeclineInsurance:
		return true, t.DeclineInsurance()
	default:
		return true, t.Hit()
	}
}

// maxDecisions bounds one round; every seat splitting and drawing small
// cards to 21 needs fewer than this.
const maxDecisions = 256

// PlayRound acts until the table stops waiting on decisions
func (a *Autopilot) PlayRound(t Table) error {
	for range maxDecisions {
		acted, err := a.Act(t)
		if err != nil || !acted {
			return err
		}
	}
	return errors.New("autopilot made no progress")
}
