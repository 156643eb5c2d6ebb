package deck

import "testing"

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "blackjack",
			input: "As Ks",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Spades, Rank: King},
			},
		},
		{
			name:  "ten spellings",
			input: "10h Td 10♣",
			expected: []Card{
				{Suit: Hearts, Rank: Ten},
				{Suit: Diamonds, Rank: Ten},
				{Suit: Clubs, Rank: Ten},
			},
		},
		{
			name:  "low cards",
			input: "5h 4d 3c 2s",
			expected: []Card{
				{Suit: Hearts, Rank: Five},
				{Suit: Diamonds, Rank: Four},
				{Suit: Clubs, Rank: Three},
				{Suit: Spades, Rank: Two},
			},
		},
		{
			name:  "case insensitive",
			input: "as KH qD jc",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Hearts, Rank: King},
				{Suit: Diamonds, Rank: Queen},
				{Suit: Clubs, Rank: Jack},
			},
		},
		{
			name:    "invalid rank",
			input:   "Xs Ks",
			wantErr: true,
		},
		{
			name:    "invalid suit",
			input:   "Ax",
			wantErr: true,
		},
		{
			name:    "one is not a rank",
			input:   "1s",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d cards, want %d", len(got), len(tt.expected))
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("card %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestCardValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		rank Rank
		want int
	}{
		{Ace, 11},
		{Two, 2},
		{Nine, 9},
		{Ten, 10},
		{Jack, 10},
		{Queen, 10},
		{King, 10},
	}
	for _, tt := range tests {
		if got := NewCard(Hearts, tt.rank).Value(); got != tt.want {
			t.Errorf("%v value = %d, want %d", tt.rank, got, tt.want)
		}
	}
}

func TestCardString(t *testing.T) {
	t.Parallel()
	if got := NewCard(Spades, Ace).String(); got != "A♠" {
		t.Errorf("got %q", got)
	}
	if got := NewCard(Hearts, Ten).String(); got != "10♥" {
		t.Errorf("got %q", got)
	}
	if !NewCard(Diamonds, Two).IsRed() {
		t.Error("diamonds should be red")
	}
	if !NewCard(Clubs, King).IsFaceCard() || NewCard(Clubs, Ten).IsFaceCard() {
		t.Error("face card classification wrong")
	}
}
