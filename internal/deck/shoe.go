package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// ErrShoeEmpty is returned when a draw asks for more cards than remain.
var ErrShoeEmpty = errors.New("shoe is empty")

// CardsPerDeck is the size of one standard deck
const CardsPerDeck = 52

// Shoe is the working stack of cards a round is dealt from. It may hold
// several 52-card decks. Cards are taken from the front.
type Shoe struct {
	decks   int
	cards   []Card
	rng     *rand.Rand
	stacked []Card // fixed order used instead of shuffling, for tests
}

// NewShoe builds a shoe of numDecks standard decks and shuffles it with rng.
func NewShoe(numDecks int, rng *rand.Rand) *Shoe {
	if numDecks < 1 {
		panic("shoe needs at least one deck")
	}
	if rng == nil {
		panic("rng is required for shoe creation")
	}
	s := &Shoe{
		decks: numDecks,
		cards: make([]Card, 0, numDecks*CardsPerDeck),
		rng:   rng,
	}
	s.fill()
	s.Shuffle()
	return s
}

// NewStackedShoe returns a shoe that deals exactly the given cards in order.
// Shuffle is a no-op and Reset restores the original order.
func NewStackedShoe(cards ...Card) *Shoe {
	stacked := make([]Card, len(cards))
	copy(stacked, cards)
	s := &Shoe{
		decks:   1,
		stacked: stacked,
	}
	s.fill()
	return s
}

func (s *Shoe) fill() {
	s.cards = s.cards[:0]
	if s.stacked != nil {
		s.cards = append(s.cards, s.stacked...)
		return
	}
	for range s.decks {
		for _, suit := range Suits {
			for _, rank := range Ranks {
				s.cards = append(s.cards, NewCard(suit, rank))
			}
		}
	}
}

// Shuffle randomizes the order of the remaining cards
func (s *Shoe) Shuffle() {
	if s.stacked != nil {
		return
	}
	s.rng.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
}

// Draw removes and returns n cards from the top of the shoe. It fails with
// ErrShoeEmpty, leaving the shoe untouched, if fewer than n remain.
func (s *Shoe) Draw(n int) ([]Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid draw count %d", n)
	}
	if n > len(s.cards) {
		return nil, fmt.Errorf("draw %d with %d remaining: %w", n, len(s.cards), ErrShoeEmpty)
	}
	drawn := make([]Card, n)
	copy(drawn, s.cards[:n])
	s.cards = s.cards[n:]
	return drawn, nil
}

// DrawOne draws a single card
func (s *Shoe) DrawOne() (Card, error) {
	cards, err := s.Draw(1)
	if err != nil {
		return Card{}, err
	}
	return cards[0], nil
}

// Burn discards up to n cards and reports how many were burned.
func (s *Shoe) Burn(n int) int {
	n = max(0, min(n, len(s.cards)))
	s.cards = s.cards[n:]
	return n
}

// Reset restores the shoe to its full size and reshuffles it
func (s *Shoe) Reset() {
	s.fill()
	s.Shuffle()
}

// Remaining returns the number of cards left in the shoe
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Size returns the number of cards in a full shoe
func (s *Shoe) Size() int {
	if s.stacked != nil {
		return len(s.stacked)
	}
	return s.decks * CardsPerDeck
}

// Decks returns the number of decks the shoe was built from
func (s *Shoe) Decks() int {
	return s.decks
}

// IsEmpty returns true if the shoe has no cards left
func (s *Shoe) IsEmpty() bool {
	return len(s.cards) == 0
}
