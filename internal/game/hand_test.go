package game

import (
	"testing"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/stretchr/testify/assert"
)

func hand(s string) Hand {
	return NewHand(deck.MustParseCards(s)...)
}

func TestHandValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cards     string
		value     int
		soft      bool
		blackjack bool
		bust      bool
	}{
		{"As Kd", 21, true, true, false},
		{"Ks Qd 5h", 25, false, false, true},
		{"As Ah", 12, true, false, false},
		{"As 5d", 16, true, false, false},
		{"As 5d Kc", 16, false, false, false},
		{"As Ah 9c", 21, true, false, false},
		{"As Ah Ad Ac", 14, true, false, false},
		{"7s 7d 7c", 21, false, false, false},
		{"As 6d", 17, true, false, false},
		{"10s 6d", 16, false, false, false},
		{"", 0, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			h := hand(tt.cards)
			assert.Equal(t, tt.value, h.Value())
			assert.Equal(t, tt.soft, h.IsSoft())
			assert.Equal(t, tt.blackjack, h.IsBlackjack())
			assert.Equal(t, tt.bust, h.IsBust())
		})
	}
}

// bestTotal counts k aces as 11 or 1 and picks the largest total not over
// 21, or the smallest total when every choice busts.
func bestTotal(cards []deck.Card) int {
	base, aces := 0, 0
	for _, c := range cards {
		if c.IsAce() {
			aces++
			continue
		}
		base += c.Value()
	}
	best := -1
	for high := 0; high <= aces; high++ {
		v := base + 11*high + (aces - high)
		if v <= Blackjack && v > best {
			best = v
		}
	}
	if best < 0 {
		return base + aces
	}
	return best
}

func TestHandValueMatchesBestTotal(t *testing.T) {
	t.Parallel()
	rng := randutil.New(99)

	for i := 0; i < 2000; i++ {
		shoe := deck.NewShoe(2, rng)
		cards, err := shoe.Draw(1 + rng.IntN(7))
		if err != nil {
			t.Fatal(err)
		}
		h := NewHand(cards...)
		if got, want := h.Value(), bestTotal(cards); got != want {
			t.Fatalf("hand %s: value %d, want %d", h.String(), got, want)
		}
	}
}

func TestHandIsPair(t *testing.T) {
	t.Parallel()
	assert.True(t, hand("8s 8d").IsPair())
	assert.True(t, hand("Ks 10d").IsPair())
	assert.True(t, hand("As Ad").IsPair())
	assert.False(t, hand("8s 9d").IsPair())
	assert.False(t, hand("8s 8d 8c").IsPair())
}

func TestHandString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "A♠ K♦ (21)", hand("As Kd").String())
	assert.Equal(t, "A♠ 6♦ (soft 17)", hand("As 6d").String())
	assert.Equal(t, "K♠ Q♦ 5♥ (25)", hand("Ks Qd 5h").String())
}

func TestDealerShouldHit(t *testing.T) {
	t.Parallel()
	assert.True(t, DealerShouldHit(hand("10s 6d")))
	assert.True(t, DealerShouldHit(hand("As 5d")))
	assert.False(t, DealerShouldHit(hand("10s 7d")))
	assert.False(t, DealerShouldHit(hand("As 6d")), "soft 17 stands")
	assert.False(t, DealerShouldHit(hand("10s 6d 5c")))
}
