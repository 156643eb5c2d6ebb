package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/display"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
	"github.com/lox/blackjack/internal/strategy"
	"github.com/lox/blackjack/internal/table"
	"github.com/sanity-io/litter"
)

type PlayCmd struct {
	Seed    int64         `default:"0" help:"RNG seed for the shoe (0 for random)"`
	Frame   time.Duration `default:"50ms" help:"Interval between engine ticks"`
	NoHints bool          `help:"Hide basic-strategy hints"`
	Dump    bool          `help:"Dump every table snapshot (debugging)"`
	LogFile string        `default:"blackjack.log" help:"Log file while the table is on screen (empty to discard)"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	// the screen belongs to the table, so logs go to a file
	logOut := io.Discard
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Error("Failed to close log file", "error", err)
			}
		}()
		logOut = f
	}
	logger := g.loggerTo(logOut, cfg)

	ctx, cancel := signalContext()
	defer cancel()

	st, player, err := openPlayer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("Failed to close store", "error", err)
		}
	}()

	seed := randutil.Seed(seedFlag(c.Seed))
	engine, err := game.NewEngine(cfg.GameConfig(),
		game.WithRNG(randutil.New(seed)),
		game.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info("Starting table", "seed", seed, "seats", cfg.Table.Seats, "balance", player.Balance, "storage", cfg.Storage.Driver)

	p := &prompt{
		session: table.New(engine, player, st, quartz.NewReal(), logger, table.Limits{
			MinBet: cfg.Table.MinBet,
			MaxBet: cfg.Table.MaxBet,
		}),
		view:  display.New(os.Stdout, !g.NoColor),
		hints: *cfg.Features.ShowHints && !c.NoHints,
		dump:  c.Dump,
	}
	model := newTableModel(ctx, p, c.Frame, logger)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("table screen: %w", err)
	}
	return nil
}

// seedFlag maps the zero flag value to "no seed given"
func seedFlag(seed int64) *int64 {
	if seed == 0 {
		return nil
	}
	return &seed
}

const helpText = `Commands:
  bet [seat] <amount>   add to a seat's stake (seat 1 if omitted)
  clear [seat]          take stakes back
  deal                  deal the round
  hit, stand, double, split, surrender
  insure, decline       answer the insurance offer
  next                  clear the table for the next round
  topup <amount>        add money to the balance
  stats                 show your record
  quit
`

// prompt dispatches the table commands typed by the player
type prompt struct {
	session *table.Session
	view    *display.Table
	out     io.Writer // help and stats output
	hints   bool
	dump    bool
}

// screen renders the table, the hint for the current decision and the
// balance.
func (p *prompt) screen() string {
	snap := p.session.Snapshot()
	var b strings.Builder
	b.WriteString(p.view.Render(snap))
	b.WriteString("\n")
	if p.dump {
		b.WriteString(litter.Options{HidePrivateFields: true, StripPackageNames: true}.Sdump(snap))
		b.WriteString("\n")
	}
	if p.hints {
		if d, ok := strategy.Hint(p.session); ok {
			b.WriteString(p.view.Hint(d))
			b.WriteString("\n")
		}
	}
	b.WriteString(p.view.Balance(p.session.Player()))
	return b.String()
}

// exec runs one command line. It reports true when the player quits.
func (p *prompt) exec(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false, nil
	}
	s := p.session
	args := fields[1:]

	switch fields[0] {
	case "q", "quit", "exit":
		return true, nil
	case "?", "help":
		fmt.Fprint(p.out, helpText)
	case "b", "bet":
		seat, amount, err := betArgs(args)
		if err != nil {
			return false, err
		}
		return false, s.PlaceBet(seat, amount)
	case "c", "clear":
		if len(args) == 0 {
			s.ClearBets()
			return false, nil
		}
		seat, err := seatArg(args[0])
		if err != nil {
			return false, err
		}
		s.ClearBet(seat)
	case "d", "deal":
		switch s.Engine().Phase() {
		case game.PhaseSettlement, game.PhaseAborted:
			s.NextRound()
		}
		if !s.Engine().CanDeal() {
			return false, errors.New("place a bet first")
		}
		return false, s.Deal()
	case "n", "next":
		s.NextRound()
	case "h", "hit":
		return false, s.Hit()
	case "s", "stand":
		return false, s.Stand()
	case "dd", "double":
		return false, s.Double()
	case "p", "split":
		return false, s.Split()
	case "r", "surrender":
		return false, s.Surrender()
	case "i", "insure", "insurance":
		return false, s.TakeInsurance()
	case "decline", "no":
		return false, s.DeclineInsurance()
	case "topup":
		if len(args) != 1 {
			return false, errors.New("usage: topup <amount>")
		}
		amount, err := strconv.Atoi(args[0])
		if err != nil {
			return false, fmt.Errorf("invalid amount %q", args[0])
		}
		return false, s.TopUp(ctx, amount)
	case "stats":
		fmt.Fprint(p.out, p.view.Summary(statistics.Summarize(*s.Player())))
		recent, err := s.History(ctx, recentRounds)
		if err != nil {
			return false, err
		}
		sess := statistics.SessionStats(recent)
		fmt.Fprintf(p.out, "Last %d rounds: %d won, %d lost, %d pushed, net %+d\n",
			sess.Rounds, sess.Wins, sess.Losses, sess.Pushes, sess.TotalMoney)
	default:
		return false, fmt.Errorf("unknown command %q, type ? for help", fields[0])
	}
	return false, nil
}

// recentRounds is the window the stats command summarises
const recentRounds = 20

// betArgs parses "<amount>" or "<seat> <amount>". Seats are numbered from 1.
func betArgs(args []string) (seat, amount int, err error) {
	switch len(args) {
	case 1:
		amount, err = strconv.Atoi(args[0])
	case 2:
		if seat, err = seatArg(args[0]); err != nil {
			return 0, 0, err
		}
		amount, err = strconv.Atoi(args[1])
	default:
		return 0, 0, errors.New("usage: bet [seat] <amount>")
	}
	if err != nil {
		return 0, 0, fmt.Errorf("invalid amount: %w", err)
	}
	return seat, amount, nil
}

func seatArg(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid seat %q", s)
	}
	return n - 1, nil
}
