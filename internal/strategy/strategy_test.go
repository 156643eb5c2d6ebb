package strategy

import (
	"testing"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allowAll = Options{Double: true, Split: true, Surrender: true}

func card(s string) deck.Card {
	return deck.MustParseCards(s)[0]
}

func TestAdvise(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hand string
		up   string
		opts Options
		want Action
	}{
		{"10s 7d", "As", allowAll, Stand},
		{"10s 6d", "10h", allowAll, Surrender},
		{"10s 6d", "10h", Options{}, Hit},
		{"10s 6d", "6h", allowAll, Stand},
		{"10s 5d", "10h", allowAll, Surrender},
		{"10s 5d", "9h", allowAll, Hit},
		{"10s 2d", "3h", allowAll, Hit},
		{"10s 2d", "4h", allowAll, Stand},
		{"6s 5d", "As", allowAll, Double},
		{"6s 5d", "As", Options{}, Hit},
		{"6s 4d", "10h", allowAll, Hit},
		{"5s 4d", "3h", allowAll, Double},
		{"5s 3d", "6h", allowAll, Hit},
		{"As Ad", "10h", allowAll, Split},
		{"8s 8d", "10h", allowAll, Split},
		{"8s 8d", "10h", Options{Double: true}, Hit},
		{"Ks 10d", "6h", allowAll, Stand},
		{"9s 9d", "7h", allowAll, Stand},
		{"9s 9d", "8h", allowAll, Split},
		{"5s 5d", "6h", allowAll, Double},
		{"As 7d", "6h", allowAll, Double},
		{"As 7d", "6h", Options{}, Stand},
		{"As 7d", "8h", allowAll, Stand},
		{"As 7d", "9h", allowAll, Hit},
		{"As 6d", "2h", allowAll, Hit},
		{"As 2d", "5h", allowAll, Double},
		{"As 8d", "6h", allowAll, Double},
		{"As 9d", "6h", allowAll, Stand},
	}

	for _, tt := range tests {
		t.Run(tt.hand+" vs "+tt.up, func(t *testing.T) {
			hand := game.NewHand(deck.MustParseCards(tt.hand)...)
			got := Advise(hand, card(tt.up), tt.opts)
			assert.Equal(t, tt.want, got.Action, "reason: %s", got.Reasoning)
			assert.NotEmpty(t, got.Reasoning)
		})
	}
}

func newEngine(t *testing.T, cards string) *game.Engine {
	t.Helper()
	cfg := game.DefaultConfig()
	cfg.Seats = 2
	cfg.Timing = game.Timing{}
	shoe := deck.NewStackedShoe(deck.MustParseCards(cards)...)
	e, err := game.NewEngine(cfg, game.WithShoe(shoe))
	require.NoError(t, err)
	return e
}

func TestHint(t *testing.T) {
	t.Parallel()
	e := newEngine(t, "10s 10d 6h 7c")
	_, ok := Hint(e)
	assert.False(t, ok, "no hint while betting")

	e.PlaceBet(0, 10)
	require.NoError(t, e.Deal())
	d, ok := Hint(e)
	require.True(t, ok)
	assert.Equal(t, Surrender, d.Action, "16 against a ten")
}

func TestHintDeclinesInsurance(t *testing.T) {
	t.Parallel()
	e := newEngine(t, "10s Ad 9h 7c")
	e.PlaceBet(0, 10)
	require.NoError(t, e.Deal())

	d, ok := Hint(e)
	require.True(t, ok)
	assert.Equal(t, DeclineInsurance, d.Action)
}

func TestAutopilotPlaysRound(t *testing.T) {
	t.Parallel()
	// seat 0: 8 8 splits, seat 1: 10 9 stands, dealer: 10 7
	e := newEngine(t, "8s 10h 10d 8h 9c 7c 3d 5c 10c Ks")
	e.PlaceBet(0, 10)
	e.PlaceBet(1, 10)
	require.NoError(t, e.Deal())

	require.NoError(t, NewAutopilot(nil).PlayRound(e))

	st, ok := e.State().(game.Settlement)
	require.True(t, ok, "round settled, got %s", e.Phase())
	require.Len(t, st.Result.Hands, 3)
	assert.True(t, st.Result.Hands[0].Split)
	assert.Equal(t, game.PlayerWin, st.Result.Hands[2].Outcome)
}
