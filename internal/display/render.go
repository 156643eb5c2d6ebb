// Package display renders table snapshots for the terminal
package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/ledger"
	"github.com/lox/blackjack/internal/statistics"
	"github.com/lox/blackjack/internal/strategy"
)

// Table renders snapshots of a blackjack table
type Table struct {
	styles *Styles
}

// New creates a table renderer writing for w
func New(w io.Writer, color bool) *Table {
	return &Table{styles: NewStyles(NewRenderer(w, color))}
}

// Render draws the dealer, every seat with a stake and the status line.
// The dealer's hole card stays hidden until the reveal.
func (t *Table) Render(snap game.Snapshot) string {
	var b strings.Builder

	b.WriteString(t.styles.Header.Render(fmt.Sprintf(" Round %d ", snap.Round)))
	b.WriteString(t.styles.Info.Render(fmt.Sprintf("  shoe %d", snap.ShoeRemaining)))
	b.WriteString("\n")
	b.WriteString(t.dealer(snap.Dealer))
	b.WriteString("\n")

	results := make(map[[2]int]game.HandResult)
	if res, ok := snap.Result(); ok {
		for _, h := range res.Hands {
			results[[2]int{h.Seat, h.Hand}] = h
		}
	}
	turn, hasTurn := snap.Turn()

	for _, seat := range snap.Seats {
		if !seat.Active {
			if seat.Bet > 0 {
				fmt.Fprintf(&b, "%s  bet $%d\n", t.styles.Label.Render(seatName(seat.Index)), seat.Bet)
			}
			continue
		}
		for i, h := range seat.Hands {
			name := seatName(seat.Index)
			if len(seat.Hands) > 1 {
				name += fmt.Sprintf(" hand %d", i+1)
			}
			fmt.Fprintf(&b, "%s  bet $%d  %s %s",
				t.styles.Label.Render(name), h.Bet, t.Cards(h.Hand.Cards()), HandLabel(h.Hand))
			if h.Doubled {
				b.WriteString(" doubled")
			}
			if h.Surrendered {
				b.WriteString(" surrendered")
			}
			if r, ok := results[[2]int{seat.Index, i}]; ok {
				b.WriteString("  ")
				b.WriteString(t.result(r))
			}
			if hasTurn && !turn.Insurance && turn.Seat == seat.Index && turn.Hand == i {
				b.WriteString(t.styles.Turn.Render(" <-"))
			}
			b.WriteString("\n")
		}
		if seat.Insurance.Taken {
			fmt.Fprintf(&b, "  insured $%d\n", seat.Insurance.Stake)
		}
	}

	b.WriteString(t.styles.Warning.Render(Status(snap)))
	return b.String()
}

// Cards formats cards with colors, e.g. "[A♠ K♦]"
func (t *Table) Cards(cards []deck.Card) string {
	formatted := make([]string, 0, len(cards))
	for _, card := range cards {
		if card.IsRed() {
			formatted = append(formatted, t.styles.RedCard.Render(card.String()))
		} else {
			formatted = append(formatted, t.styles.BlackCard.Render(card.String()))
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

func (t *Table) dealer(d game.DealerView) string {
	label := t.styles.Label.Render("Dealer")
	if !d.HasCards {
		return label + "  -"
	}
	cards := t.Cards(d.Cards())
	if n := d.Hidden(); n > 0 {
		hidden := strings.TrimSpace(strings.Repeat("?? ", n))
		cards = strings.TrimSuffix(cards, "]") + " " + t.styles.HoleCard.Render(hidden) + "]"
		return label + "  " + cards
	}
	cards += " " + HandLabel(game.NewHand(d.Cards()...))
	return label + "  " + cards
}

func (t *Table) result(r game.HandResult) string {
	net := ledger.Payout(r)
	text := OutcomeLabel(r) + " " + signed(net)
	switch {
	case net > 0:
		return t.styles.Success.Render(text)
	case net < 0:
		return t.styles.Error.Render(text)
	default:
		return t.styles.Info.Render(text)
	}
}

// Hint renders a strategy suggestion
func (t *Table) Hint(d strategy.Decision) string {
	return t.styles.Info.Render(fmt.Sprintf("hint: %s (%s)", d.Action, d.Reasoning))
}

// Balance renders the player's bankroll line
func (t *Table) Balance(p *ledger.Player) string {
	return t.styles.Label.Render("Balance") + fmt.Sprintf("  $%d  net %s", p.Balance, signed(p.NetProfit()))
}

// Summary renders a player summary as aligned lines
func (t *Table) Summary(s statistics.Summary) string {
	rows := [][2]string{
		{"Hands", strconv.Itoa(s.TotalHands)},
		{"Wins", fmt.Sprintf("%d (%.2f%%)", s.Wins, s.WinRate)},
		{"Losses", fmt.Sprintf("%d (%.2f%%)", s.Losses, s.LossRate)},
		{"Pushes", fmt.Sprintf("%d (%.2f%%)", s.Pushes, s.PushRate)},
		{"Blackjacks", strconv.Itoa(s.Blackjacks)},
		{"Won", "$" + strconv.Itoa(s.MoneyWon)},
		{"Lost", "$" + strconv.Itoa(s.MoneyLost)},
		{"Net", signed(s.NetProfit)},
		{"Per hand", signed(s.AvgPerHand)},
		{"W/L", fmt.Sprintf("%.2f", s.WinLoss)},
		{"Balance", "$" + strconv.Itoa(s.Balance)},
	}
	var b strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&b, "%s %s\n", t.styles.Label.Render(fmt.Sprintf("%-11s", row[0])), row[1])
	}
	return b.String()
}

// HandLabel describes a hand total: "blackjack", "bust 24", "soft 17" or
// the plain value.
func HandLabel(h game.Hand) string {
	switch {
	case h.Len() == 0:
		return ""
	case h.IsBlackjack():
		return "blackjack"
	case h.IsBust():
		return "bust " + strconv.Itoa(h.Value())
	case h.IsSoft() && h.Value() < game.Blackjack:
		return "soft " + strconv.Itoa(h.Value())
	default:
		return strconv.Itoa(h.Value())
	}
}

// OutcomeLabel names a settled hand from the player's side
func OutcomeLabel(r game.HandResult) string {
	if r.Surrendered {
		return "surrender"
	}
	switch r.Outcome {
	case game.PlayerWin:
		if r.Blackjack {
			return "blackjack"
		}
		return "win"
	case game.DealerWin:
		return "lose"
	case game.Push:
		return "push"
	default:
		return "pending"
	}
}

// Status describes what the table is doing or waiting for
func Status(snap game.Snapshot) string {
	switch s := snap.State.(type) {
	case game.Betting:
		return "Place your bets"
	case game.Dealing:
		return "Dealing..."
	case game.PlayerTurn:
		name := seatName(s.Seat)
		if s.Insurance {
			return name + ": insurance? (dealer shows an ace)"
		}
		hands := snap.Seats[s.Seat].Hands
		msg := fmt.Sprintf("%s to act (hand=%d)", name, hands[s.Hand].Hand.Value())
		if len(hands) > 1 {
			msg = fmt.Sprintf("Hand %d/%d - %s", s.Hand+1, len(hands), msg)
		}
		return msg
	case game.DealerReveal:
		return "Dealer reveals..."
	case game.DealerPlay:
		return "Dealer plays"
	case game.Settlement:
		return settledStatus(s.Result)
	case game.Aborted:
		if s.Err == nil {
			return "Round aborted"
		}
		return "Round aborted: " + s.Err.Error()
	default:
		return "Waiting..."
	}
}

func settledStatus(r game.RoundResult) string {
	surrendered := len(r.Hands) > 0
	for _, h := range r.Hands {
		surrendered = surrendered && h.Surrendered
	}
	if surrendered {
		return "Surrendered, half the bet returned"
	}
	switch r.Overall {
	case game.PlayerWin:
		return "You win!"
	case game.DealerWin:
		return "Dealer wins"
	default:
		return "Push"
	}
}

func seatName(idx int) string {
	return "Seat " + strconv.Itoa(idx+1)
}

func signed(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
