package game

import "github.com/lox/blackjack/internal/deck"

// RoundResult is the settled outcome of a round
type RoundResult struct {
	Round           int
	Hands           []HandResult
	Dealer          []deck.Card
	DealerValue     int
	DealerBlackjack bool
	DealerPlayed    bool
	// Overall is the majority outcome across hands, for display only
	Overall Outcome
}

// HandResult is the settled outcome of one seat hand
type HandResult struct {
	Seat        int
	Hand        int
	Cards       []deck.Card
	Value       int
	Bet         int
	Outcome     Outcome
	Blackjack   bool
	Doubled     bool
	Surrendered bool
	Split       bool

	// insurance is recorded on the seat's first hand
	InsuranceStake int
	InsuranceWon   bool
}

// Stake returns the amount at risk on the hand: the bet, or half of it
// for a surrender.
func (r HandResult) Stake() int {
	if r.Surrendered {
		return halfStake(r.Bet)
	}
	return r.Bet
}

// Settle settles the round without waiting for the dealer delay. It is a
// no-op outside DealerPlay, so a round is only ever settled once.
func (e *Engine) Settle() {
	if _, ok := e.state.(DealerPlay); !ok {
		e.ignore("settle")
		return
	}
	e.settle()
}

// settle compares every unresolved hand with the dealer and enters
// Settlement.
func (e *Engine) settle() {
	dealerValue := e.dealer.Value()
	dealerBust := e.dealer.IsBust()

	for _, idx := range e.active {
		for _, h := range e.seats[idx].hands {
			if h.Result != Pending {
				continue
			}
			v := h.Hand.Value()
			switch {
			case dealerBust || v > dealerValue:
				h.resolve(PlayerWin)
			case dealerValue > v:
				h.resolve(DealerWin)
			default:
				h.resolve(Push)
			}
		}
	}

	result := e.result()
	e.setState(Settlement{Result: result})
	e.logger.Info("Round settled",
		"round", e.round,
		"dealer", e.dealer.String(),
		"hands", len(result.Hands),
		"overall", result.Overall)
}

func (e *Engine) result() RoundResult {
	dealerBJ := e.dealer.IsBlackjack()
	r := RoundResult{
		Round:           e.round,
		Dealer:          e.dealer.Cards(),
		DealerValue:     e.dealer.Value(),
		DealerBlackjack: dealerBJ,
		DealerPlayed:    e.dealerPlayed,
	}
	for _, idx := range e.active {
		s := e.seats[idx]
		for i, h := range s.hands {
			hr := HandResult{
				Seat:        idx,
				Hand:        i,
				Cards:       h.Hand.Cards(),
				Value:       h.Hand.Value(),
				Bet:         h.Bet,
				Outcome:     h.Result,
				Blackjack:   h.Natural,
				Doubled:     h.Doubled,
				Surrendered: h.Surrendered,
				Split:       h.FromSplit,
			}
			if i == 0 && s.insurance.Taken {
				hr.InsuranceStake = s.insurance.Stake
				hr.InsuranceWon = dealerBJ
			}
			r.Hands = append(r.Hands, hr)
		}
	}
	r.Overall = overall(r.Hands)
	return r
}

// overall picks the majority of wins versus losses; ties are a push
func overall(hands []HandResult) Outcome {
	wins, losses := 0, 0
	for _, h := range hands {
		switch h.Outcome {
		case PlayerWin:
			wins++
		case DealerWin:
			losses++
		}
	}
	switch {
	case wins > losses:
		return PlayerWin
	case losses > wins:
		return DealerWin
	default:
		return Push
	}
}
