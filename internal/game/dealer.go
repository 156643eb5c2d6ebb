package game

// DealerStandsOn is the total the dealer stops drawing at. The dealer stands
// on every 17, soft or hard.
const DealerStandsOn = 17

// DealerShouldHit is the fixed dealer policy: draw while under 17.
func DealerShouldHit(h Hand) bool {
	return h.Value() < DealerStandsOn
}

// PlayDealer draws the dealer's hand out without waiting for the reveal
// delay. It is a no-op outside DealerReveal.
func (e *Engine) PlayDealer() error {
	if _, ok := e.state.(DealerReveal); !ok {
		e.ignore("dealer_play")
		return nil
	}
	if err := e.playDealer(); err != nil {
		return err
	}
	return e.advance()
}

func (e *Engine) playDealer() error {
	for DealerShouldHit(e.dealer) {
		c, err := e.draw()
		if err != nil {
			return err
		}
		e.dealer.Add(c)
		e.logger.Debug("Dealer draws", "card", c, "value", e.dealer.Value())
	}
	e.dealerPlayed = true
	e.setState(DealerPlay{DealerValue: e.dealer.Value()})
	e.logger.Debug("Dealer stands", "hand", e.dealer.String())
	return nil
}
