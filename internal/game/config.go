package game

import (
	"fmt"
	"time"
)

// Config is the immutable table setup an Engine is built with
type Config struct {
	Decks int // decks in the shoe
	Seats int // betting positions at the table

	// BurnCards are discarded after every shuffle
	BurnCards int
	// ReshuffleBelow is the cut card: a new round reshuffles the shoe when
	// fewer cards remain. Zero never reshuffles between rounds.
	ReshuffleBelow int

	Rules  Rules
	Timing Timing
}

// Rules toggles optional player decisions
type Rules struct {
	Insurance        bool
	Surrender        bool
	DoubleAfterSplit bool
}

// Timing holds the delays between system-driven transitions
type Timing struct {
	InitialDeal  time.Duration // Dealing -> PlayerTurn
	DealerReveal time.Duration // DealerReveal -> DealerPlay
	DealerAction time.Duration // DealerPlay -> Settlement
}

// DefaultConfig returns a single deck, five seat table with every rule on
func DefaultConfig() Config {
	return Config{
		Decks:          1,
		Seats:          5,
		ReshuffleBelow: 13,
		Rules: Rules{
			Insurance:        true,
			Surrender:        true,
			DoubleAfterSplit: true,
		},
		Timing: Timing{
			InitialDeal:  time.Second,
			DealerReveal: time.Second,
			DealerAction: 500 * time.Millisecond,
		},
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.Decks < 1 {
		return fmt.Errorf("decks must be at least 1, got %d", c.Decks)
	}
	if c.Seats < 1 {
		return fmt.Errorf("seats must be at least 1, got %d", c.Seats)
	}
	if c.BurnCards < 0 {
		return fmt.Errorf("burn cards must not be negative, got %d", c.BurnCards)
	}
	if c.ReshuffleBelow < 0 {
		return fmt.Errorf("reshuffle threshold must not be negative, got %d", c.ReshuffleBelow)
	}
	if c.Timing.InitialDeal < 0 || c.Timing.DealerReveal < 0 || c.Timing.DealerAction < 0 {
		return fmt.Errorf("timing delays must not be negative")
	}
	return nil
}
