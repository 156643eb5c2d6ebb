package game

import (
	"strconv"
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// Blackjack is the best possible hand total
const Blackjack = 21

// Hand is an ordered sequence of cards held by a seat or the dealer.
type Hand struct {
	cards []deck.Card
}

// NewHand creates a hand holding the given cards
func NewHand(cards ...deck.Card) Hand {
	h := Hand{}
	h.Add(cards...)
	return h
}

// Add appends cards to the hand
func (h *Hand) Add(cards ...deck.Card) {
	h.cards = append(h.cards, cards...)
}

// Cards returns a copy of the cards in the hand
func (h Hand) Cards() []deck.Card {
	out := make([]deck.Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// Len returns the number of cards in the hand
func (h Hand) Len() int {
	return len(h.cards)
}

// Card returns the i-th card of the hand
func (h Hand) Card(i int) deck.Card {
	return h.cards[i]
}

// valuation counts every ace as 11, then demotes aces to 1 one at a time
// while the total is over 21. It returns the total and how many aces still
// count as 11.
func (h Hand) valuation() (total, softAces int) {
	for _, c := range h.cards {
		total += c.Value()
		if c.IsAce() {
			softAces++
		}
	}
	for total > Blackjack && softAces > 0 {
		total -= 10
		softAces--
	}
	return total, softAces
}

// Value returns the blackjack total of the hand
func (h Hand) Value() int {
	total, _ := h.valuation()
	return total
}

// IsSoft reports whether an ace is still counted as 11
func (h Hand) IsSoft() bool {
	_, soft := h.valuation()
	return soft > 0
}

// IsBlackjack reports a two card 21
func (h Hand) IsBlackjack() bool {
	return len(h.cards) == 2 && h.Value() == Blackjack
}

// IsBust reports a total over 21
func (h Hand) IsBust() bool {
	return h.Value() > Blackjack
}

// IsPair reports two cards of equal blackjack value, e.g. 8-8 or K-10
func (h Hand) IsPair() bool {
	return len(h.cards) == 2 && h.cards[0].Value() == h.cards[1].Value()
}

// removeLast takes the last card out of the hand; only splitting does this.
func (h *Hand) removeLast() deck.Card {
	last := h.cards[len(h.cards)-1]
	h.cards = h.cards[:len(h.cards)-1]
	return last
}

func (h *Hand) clone() Hand {
	return NewHand(h.cards...)
}

// String renders the hand as "A♠ K♦ (21)"
func (h Hand) String() string {
	parts := make([]string, len(h.cards))
	for i, c := range h.cards {
		parts[i] = c.String()
	}
	var b strings.Builder
	b.WriteString(strings.Join(parts, " "))
	b.WriteString(" (")
	if h.IsSoft() && h.Value() < Blackjack {
		b.WriteString("soft ")
	}
	b.WriteString(strconv.Itoa(h.Value()))
	b.WriteString(")")
	return b.String()
}
