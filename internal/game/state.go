package game

// Phase names the state of a round for logging and display
type Phase int

const (
	PhaseBetting Phase = iota
	PhaseDealing
	PhasePlayerTurn
	PhaseDealerReveal
	PhaseDealerPlay
	PhaseSettlement
	PhaseAborted
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseBetting:
		return "betting"
	case PhaseDealing:
		return "dealing"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseDealerReveal:
		return "dealer_reveal"
	case PhaseDealerPlay:
		return "dealer_play"
	case PhaseSettlement:
		return "settlement"
	case PhaseAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// RoundState is the closed set of states a round can be in. Each variant
// carries only the data that is meaningful in that state.
type RoundState interface {
	Phase() Phase
	roundState()
}

// Betting accepts stakes for the next deal
type Betting struct{}

// Dealing holds the freshly dealt cards on the table until the deal delay
// passes. Insurance is set when the dealer shows an ace and an insurance
// window opens before naturals are resolved.
type Dealing struct {
	Insurance bool
}

// PlayerTurn waits for a decision from the hand at Seat/Hand. While
// Insurance is set, the only decision accepted is taking or declining
// insurance.
type PlayerTurn struct {
	Seat      int
	Hand      int
	Insurance bool
}

// DealerReveal waits for the reveal delay before the dealer draws
type DealerReveal struct{}

// DealerPlay holds the dealer's finished hand until settlement
type DealerPlay struct {
	DealerValue int
}

// Settlement carries the round's final results
type Settlement struct {
	Result RoundResult
}

// Aborted marks a round that could not complete. Err wraps deck.ErrShoeEmpty.
type Aborted struct {
	Err error
}

func (Betting) Phase() Phase      { return PhaseBetting }
func (Dealing) Phase() Phase      { return PhaseDealing }
func (PlayerTurn) Phase() Phase   { return PhasePlayerTurn }
func (DealerReveal) Phase() Phase { return PhaseDealerReveal }
func (DealerPlay) Phase() Phase   { return PhaseDealerPlay }
func (Settlement) Phase() Phase   { return PhaseSettlement }
func (Aborted) Phase() Phase      { return PhaseAborted }

func (Betting) roundState()      {}
func (Dealing) roundState()      {}
func (PlayerTurn) roundState()   {}
func (DealerReveal) roundState() {}
func (DealerPlay) roundState()   {}
func (Settlement) roundState()   {}
func (Aborted) roundState()      {}

// dealerVisible reports whether the dealer's full hand may be read
func dealerVisible(s RoundState) bool {
	switch s.(type) {
	case DealerReveal, DealerPlay, Settlement:
		return true
	default:
		return false
	}
}
