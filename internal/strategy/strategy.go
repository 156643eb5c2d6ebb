// Package strategy gives basic-strategy advice for a blackjack hand. The
// chart assumes a dealer who stands on all 17s, double after split, and
// late surrender.
package strategy

import (
	"strconv"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// Action is a player decision
type Action int

const (
	Hit Action = iota
	Stand
	Double
	Split
	Surrender
	DeclineInsurance
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Double:
		return "double"
	case Split:
		return "split"
	case Surrender:
		return "surrender"
	case DeclineInsurance:
		return "decline insurance"
	default:
		return "unknown"
	}
}

// Options lists the decisions currently allowed
type Options struct {
	Double    bool
	Split     bool
	Surrender bool
}

// Decision is an action and the reason it was chosen
type Decision struct {
	Action    Action
	Reasoning string
}

// Advise returns the basic-strategy play for hand against the dealer's
// up-card.
func Advise(hand game.Hand, up deck.Card, opts Options) Decision {
	d := up.Value()
	total := hand.Value()

	if opts.Surrender && !hand.IsSoft() && !isPairOf(hand, 8) {
		if (total == 16 && d >= 9) || (total == 15 && d == 10) {
			return Decision{Surrender, "hard " + strconv.Itoa(total) + " against " + up.Rank.String()}
		}
	}

	if opts.Split && hand.IsPair() {
		if dec, ok := pair(hand.Card(0), d); ok {
			return dec
		}
	}

	if hand.IsSoft() {
		return soft(total, d, opts.Double)
	}
	return hard(total, d, opts.Double)
}

func pair(c deck.Card, d int) (Decision, bool) {
	split := func(why string) (Decision, bool) { return Decision{Split, why}, true }
	switch c.Value() {
	case 11:
		return split("always split aces")
	case 8:
		return split("always split eights")
	case 9:
		if d <= 9 && d != 7 {
			return split("nines against " + strconv.Itoa(d))
		}
	case 7:
		if d <= 7 {
			return split("sevens against " + strconv.Itoa(d))
		}
	case 6:
		if d <= 6 {
			return split("sixes against " + strconv.Itoa(d))
		}
	case 4:
		if d == 5 || d == 6 {
			return split("fours against " + strconv.Itoa(d))
		}
	case 3, 2:
		if d <= 7 {
			return split("small pair against " + strconv.Itoa(d))
		}
	}
	return Decision{}, false
}

func soft(total, d int, canDouble bool) Decision {
	double := func(fallback Action) Decision {
		if canDouble {
			return Decision{Double, "soft " + strconv.Itoa(total) + " doubles against " + strconv.Itoa(d)}
		}
		return Decision{fallback, "soft " + strconv.Itoa(total) + ", double not allowed"}
	}
	switch {
	case total >= 20:
		return Decision{Stand, "soft " + strconv.Itoa(total)}
	case total == 19:
		if d == 6 {
			return double(Stand)
		}
		return Decision{Stand, "soft 19"}
	case total == 18:
		switch {
		case d >= 3 && d <= 6:
			return double(Stand)
		case d <= 8:
			return Decision{Stand, "soft 18 against " + strconv.Itoa(d)}
		default:
			return Decision{Hit, "soft 18 against " + strconv.Itoa(d)}
		}
	case total == 17:
		if d >= 3 && d <= 6 {
			return double(Hit)
		}
	case total >= 15:
		if d >= 4 && d <= 6 {
			return double(Hit)
		}
	default:
		if d == 5 || d == 6 {
			return double(Hit)
		}
	}
	return Decision{Hit, "soft " + strconv.Itoa(total) + " against " + strconv.Itoa(d)}
}

func hard(total, d int, canDouble bool) Decision {
	double := func() Decision {
		if canDouble {
			return Decision{Double, strconv.Itoa(total) + " doubles against " + strconv.Itoa(d)}
		}
		return Decision{Hit, strconv.Itoa(total) + ", double not allowed"}
	}
	switch {
	case total >= 17:
		return Decision{Stand, "hard " + strconv.Itoa(total)}
	case total >= 13:
		if d <= 6 {
			return Decision{Stand, "dealer " + strconv.Itoa(d) + " is likely to bust"}
		}
	case total == 12:
		if d >= 4 && d <= 6 {
			return Decision{Stand, "dealer " + strconv.Itoa(d) + " is likely to bust"}
		}
	case total == 11:
		return double()
	case total == 10:
		if d <= 9 {
			return double()
		}
	case total == 9:
		if d >= 3 && d <= 6 {
			return double()
		}
	}
	return Decision{Hit, "hard " + strconv.Itoa(total) + " against " + strconv.Itoa(d)}
}

func isPairOf(h game.Hand, value int) bool {
	return h.IsPair() && h.Card(0).Value() == value
}
