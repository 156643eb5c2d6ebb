package game

import (
	"time"

	"github.com/lox/blackjack/internal/deck"
)

// Snapshot is a read-only copy of the table for renderers and clients
type Snapshot struct {
	Round         int
	State         RoundState
	Seats         []SeatView
	ActiveSeats   []int
	Dealer        DealerView
	ShoeRemaining int
	Elapsed       time.Duration
}

// Phase returns the phase of the captured state
func (s Snapshot) Phase() Phase {
	return s.State.Phase()
}

// Turn returns the decision the table is waiting on, if any
func (s Snapshot) Turn() (PlayerTurn, bool) {
	pt, ok := s.State.(PlayerTurn)
	return pt, ok
}

// Result returns the settled result, if the round is settled
func (s Snapshot) Result() (RoundResult, bool) {
	st, ok := s.State.(Settlement)
	return st.Result, ok
}

// SeatView is one seat slot. Slots that were not dealt in are present with
// Active unset.
type SeatView struct {
	Index     int
	Active    bool
	Bet       int
	Hands     []SeatHand
	Insurance Insurance
}

// DealerView shows the dealer's cards as far as they may be seen
type DealerView struct {
	UpCard   deck.Card
	HasCards bool
	Revealed bool
	cards    []deck.Card
}

// Cards returns the dealer's full hand once revealed, otherwise just the
// up-card.
func (d DealerView) Cards() []deck.Card {
	if !d.HasCards {
		return nil
	}
	if !d.Revealed {
		return []deck.Card{d.UpCard}
	}
	return append([]deck.Card(nil), d.cards...)
}

// Hidden returns the number of face-down dealer cards
func (d DealerView) Hidden() int {
	if !d.HasCards || d.Revealed {
		return 0
	}
	return len(d.cards) - 1
}

// Value returns the dealer total, available only once revealed
func (d DealerView) Value() (int, bool) {
	if !d.Revealed {
		return 0, false
	}
	return NewHand(d.cards...).Value(), true
}

// Snapshot captures the current table
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Round:         e.round,
		State:         e.state,
		Seats:         make([]SeatView, len(e.seats)),
		ActiveSeats:   e.ActiveSeats(),
		ShoeRemaining: e.shoe.Remaining(),
		Elapsed:       e.elapsed,
	}
	for i, s := range e.seats {
		snap.Seats[i] = SeatView{
			Index:     i,
			Active:    s.active,
			Bet:       s.bet,
			Hands:     e.SeatHands(i),
			Insurance: s.insurance,
		}
	}
	if up, ok := e.DealerUpCard(); ok {
		snap.Dealer = DealerView{
			UpCard:   up,
			HasCards: true,
			Revealed: dealerVisible(e.state),
			cards:    e.dealer.Cards(),
		}
	}
	return snap
}
