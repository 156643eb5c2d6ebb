package game

// turn returns the seat and hand awaiting a decision
func (e *Engine) turn() (PlayerTurn, *seat, *SeatHand, bool) {
	pt, ok := e.state.(PlayerTurn)
	if !ok {
		return PlayerTurn{}, nil, nil, false
	}
	s := e.seats[pt.Seat]
	return pt, s, s.hands[pt.Hand], true
}

// CurrentTurn returns the seat and hand index awaiting a decision
func (e *Engine) CurrentTurn() (PlayerTurn, bool) {
	pt, ok := e.state.(PlayerTurn)
	return pt, ok
}

// CanHit reports whether the current hand may draw
func (e *Engine) CanHit() bool {
	pt, _, h, ok := e.turn()
	return ok && !pt.Insurance && !h.Done
}

// CanStand reports whether the current hand may stand
func (e *Engine) CanStand() bool {
	return e.CanHit()
}

// CanDouble reports whether the current hand may double down: it must
// still hold its first two cards.
func (e *Engine) CanDouble() bool {
	pt, _, h, ok := e.turn()
	if !ok || pt.Insurance || h.Done || h.Hand.Len() != 2 {
		return false
	}
	return !h.FromSplit || e.cfg.Rules.DoubleAfterSplit
}

// CanSplit reports whether the current seat may split: one unsplit hand of
// two cards with equal value. Split hands never split again.
func (e *Engine) CanSplit() bool {
	pt, s, h, ok := e.turn()
	return ok && !pt.Insurance && !h.Done && len(s.hands) == 1 && h.Hand.IsPair()
}

// CanSurrender reports whether surrender is still open: only as the seat's
// very first decision.
func (e *Engine) CanSurrender() bool {
	if !e.cfg.Rules.Surrender {
		return false
	}
	pt, s, h, ok := e.turn()
	return ok && !pt.Insurance && !h.Done && len(s.hands) == 1 && h.Hand.Len() == 2
}

// CanTakeInsurance reports whether the current seat is being offered insurance
func (e *Engine) CanTakeInsurance() bool {
	pt, s, _, ok := e.turn()
	return ok && pt.Insurance && s.insurance.Offered && !s.insurance.Decided
}

// CanDeclineInsurance mirrors CanTakeInsurance
func (e *Engine) CanDeclineInsurance() bool {
	return e.CanTakeInsurance()
}

// Hit draws one card to the current hand. A bust loses the hand and moves
// play on.
func (e *Engine) Hit() error {
	if !e.CanHit() {
		e.ignore("hit")
		return nil
	}
	pt, _, h, _ := e.turn()

	c, err := e.draw()
	if err != nil {
		return err
	}
	h.Hand.Add(c)
	e.markAction()
	e.logger.Debug("Hit", "seat", pt.Seat, "hand", pt.Hand, "card", c, "value", h.Hand.Value())

	if h.Hand.IsBust() {
		h.resolve(DealerWin)
		e.logger.Debug("Bust", "seat", pt.Seat, "hand", pt.Hand, "value", h.Hand.Value())
		e.nextTurn()
	}
	return e.advance()
}

// Stand ends the current hand
func (e *Engine) Stand() error {
	if !e.CanStand() {
		e.ignore("stand")
		return nil
	}
	pt, _, h, _ := e.turn()
	h.Done = true
	e.logger.Debug("Stand", "seat", pt.Seat, "hand", pt.Hand, "value", h.Hand.Value())
	e.nextTurn()
	return e.advance()
}

// Double doubles the current hand's bet, draws exactly one card and ends
// the hand whatever that card is.
func (e *Engine) Double() error {
	if !e.CanDouble() {
		e.ignore("double")
		return nil
	}
	pt, _, h, _ := e.turn()

	c, err := e.draw()
	if err != nil {
		return err
	}
	h.Bet *= 2
	h.Doubled = true
	h.Hand.Add(c)
	if h.Hand.IsBust() {
		h.resolve(DealerWin)
	} else {
		h.Done = true
	}
	e.logger.Debug("Double", "seat", pt.Seat, "hand", pt.Hand, "card", c, "bet", h.Bet, "value", h.Hand.Value())
	e.nextTurn()
	return e.advance()
}

// Split moves the second card of the current pair into a sibling hand with
// the same bet, deals a fresh card to each, and continues on the first.
func (e *Engine) Split() error {
	if !e.CanSplit() {
		e.ignore("split")
		return nil
	}
	pt, s, h, _ := e.turn()

	sibling := &SeatHand{
		Hand:      NewHand(h.Hand.removeLast()),
		Bet:       h.Bet,
		FromSplit: true,
	}
	h.FromSplit = true
	s.hands = append(s.hands, sibling)

	for _, hand := range []*SeatHand{h, sibling} {
		c, err := e.draw()
		if err != nil {
			return err
		}
		hand.Hand.Add(c)
	}
	e.setState(PlayerTurn{Seat: pt.Seat, Hand: 0})
	e.logger.Debug("Split", "seat", pt.Seat, "first", h.Hand.String(), "second", sibling.Hand.String())
	return nil
}

// Surrender gives up the seat's hand for half its bet. The seat's path ends
// immediately; it does not wait for the dealer.
func (e *Engine) Surrender() error {
	if !e.CanSurrender() {
		e.ignore("surrender")
		return nil
	}
	pt, _, h, _ := e.turn()
	h.Surrendered = true
	h.resolve(DealerWin)
	e.logger.Debug("Surrender", "seat", pt.Seat, "forfeit", halfStake(h.Bet))
	e.nextTurn()
	return e.advance()
}

// TakeInsurance places the insurance side bet, half the seat's original
// stake. It is paid at settlement.
func (e *Engine) TakeInsurance() error {
	if !e.CanTakeInsurance() {
		e.ignore("take_insurance")
		return nil
	}
	pt, s, h, _ := e.turn()
	s.insurance.Decided = true
	s.insurance.Taken = true
	s.insurance.Stake = halfStake(h.Bet)
	e.logger.Debug("Insurance taken", "seat", pt.Seat, "stake", s.insurance.Stake)
	e.nextInsuranceSeat(e.position(pt.Seat) + 1)
	return e.advance()
}

// DeclineInsurance turns the insurance offer down
func (e *Engine) DeclineInsurance() error {
	if !e.CanDeclineInsurance() {
		e.ignore("decline_insurance")
		return nil
	}
	pt, s, _, _ := e.turn()
	s.insurance.Decided = true
	e.logger.Debug("Insurance declined", "seat", pt.Seat)
	e.nextInsuranceSeat(e.position(pt.Seat) + 1)
	return e.advance()
}

// openInsuranceWindow offers insurance to every seat without a natural when
// the dealer shows an ace. It reports whether any offer was made.
func (e *Engine) openInsuranceWindow() bool {
	if !e.cfg.Rules.Insurance || !e.dealer.Card(0).IsAce() {
		return false
	}
	offered := false
	for _, idx := range e.active {
		s := e.seats[idx]
		if !s.hands[0].Natural {
			s.insurance.Offered = true
			offered = true
		}
	}
	return offered
}

// nextInsuranceSeat moves the insurance offer to the next undecided seat
// from position pos. Once every seat has decided, naturals are resolved and
// play begins.
func (e *Engine) nextInsuranceSeat(pos int) {
	for _, idx := range e.active[pos:] {
		ins := e.seats[idx].insurance
		if ins.Offered && !ins.Decided {
			e.setState(PlayerTurn{Seat: idx, Insurance: true})
			return
		}
	}
	if e.resolveNaturals() {
		e.settle()
		return
	}
	e.turnFrom(0)
}

// nextTurn moves past the current hand: to the seat's split sibling if it is
// still open, otherwise to the next seat.
func (e *Engine) nextTurn() {
	pt := e.state.(PlayerTurn)
	s := e.seats[pt.Seat]
	for i := pt.Hand + 1; i < len(s.hands); i++ {
		if !s.hands[i].Done {
			e.setState(PlayerTurn{Seat: pt.Seat, Hand: i})
			return
		}
	}
	e.turnFrom(e.position(pt.Seat) + 1)
}

// turnFrom hands the turn to the first open hand at or after active
// position pos, or ends the players' turns.
func (e *Engine) turnFrom(pos int) {
	for _, idx := range e.active[pos:] {
		for i, h := range e.seats[idx].hands {
			if !h.Done {
				e.setState(PlayerTurn{Seat: idx, Hand: i})
				return
			}
		}
	}
	e.endPlayerTurns()
}

// endPlayerTurns reveals the dealer, unless every hand was settled without
// needing the dealer's cards (surrenders and naturals).
func (e *Engine) endPlayerTurns() {
	for _, idx := range e.active {
		for _, h := range e.seats[idx].hands {
			if !h.Surrendered && !h.Natural {
				e.setState(DealerReveal{})
				return
			}
		}
	}
	e.settle()
}

// position returns the index of a seat within the active seats
func (e *Engine) position(seatIdx int) int {
	for i, idx := range e.active {
		if idx == seatIdx {
			return i
		}
	}
	return len(e.active)
}
