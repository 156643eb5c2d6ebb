package game

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/deck"
)

// Option configures an Engine during creation.
type Option func(*engineOptions)

type engineOptions struct {
	rng    *rand.Rand
	shoe   *deck.Shoe
	logger *log.Logger
}

// WithRNG shuffles the engine's shoe with rng. Use a seeded RNG for
// reproducible sessions.
func WithRNG(rng *rand.Rand) Option {
	return func(o *engineOptions) { o.rng = rng }
}

// WithShoe uses a prepared shoe instead of building one. It takes
// precedence over WithRNG and ignores Config.Decks.
func WithShoe(shoe *deck.Shoe) Option {
	return func(o *engineOptions) { o.shoe = shoe }
}

// WithLogger sets the logger the engine reports to
func WithLogger(logger *log.Logger) Option {
	return func(o *engineOptions) { o.logger = logger }
}
