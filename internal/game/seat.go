package game

import "fmt"

// Outcome is the settled result of a hand
type Outcome int

const (
	Pending Outcome = iota
	PlayerWin
	DealerWin
	Push
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case PlayerWin:
		return "player_win"
	case DealerWin:
		return "dealer_win"
	case Push:
		return "push"
	default:
		return "unknown"
	}
}

// MarshalText encodes the outcome by name
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText decodes an outcome name
func (o *Outcome) UnmarshalText(text []byte) error {
	parsed, err := ParseOutcome(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// ParseOutcome parses the name written by Outcome.String
func ParseOutcome(s string) (Outcome, error) {
	for _, o := range []Outcome{Pending, PlayerWin, DealerWin, Push} {
		if o.String() == s {
			return o, nil
		}
	}
	return Pending, fmt.Errorf("unknown outcome %q", s)
}

// SeatHand is one hand played from a seat. A seat plays a single hand
// unless it splits, in which case it plays two.
type SeatHand struct {
	Hand        Hand
	Bet         int
	Result      Outcome
	Doubled     bool
	Surrendered bool
	FromSplit   bool
	Natural     bool
	Done        bool
}

// resolve fixes the hand's result and takes it out of play
func (h *SeatHand) resolve(o Outcome) {
	h.Result = o
	h.Done = true
}

// Insurance tracks a seat's insurance side bet for the round
type Insurance struct {
	Offered bool
	Decided bool
	Taken   bool
	Stake   int
}

// seat is one betting position. Every slot at the table always exists;
// active is false for slots that had no stake when the round was dealt.
type seat struct {
	index     int
	bet       int // stake for the next deal
	active    bool
	hands     []*SeatHand
	insurance Insurance
}

func (s *seat) reset() {
	s.active = false
	s.hands = nil
	s.insurance = Insurance{}
}

func halfStake(bet int) int {
	return bet / 2
}
