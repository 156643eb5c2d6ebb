package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/ledger"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
	"github.com/lox/blackjack/internal/store"
	"github.com/lox/blackjack/internal/strategy"
	"github.com/lox/blackjack/internal/table"
	"golang.org/x/sync/errgroup"
)

type SimulateCmd struct {
	Rounds  int   `default:"100000" help:"Number of rounds to simulate"`
	Workers int   `default:"0" help:"Parallel sessions (0 for one per CPU)"`
	Seed    int64 `default:"0" help:"RNG seed (0 for random)"`
	Bet     int   `default:"0" help:"Stake per seat (0 for the table minimum)"`
	Seats   int   `default:"1" help:"Seats played each round"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	logger := g.logger(cfg)
	if !g.Debug {
		logger.SetLevel(log.WarnLevel)
	}

	ctx, cancel := signalContext()
	defer cancel()

	seed := randutil.Seed(seedFlag(c.Seed))
	sim := simulation{
		cfg:     cfg,
		rounds:  c.Rounds,
		workers: c.Workers,
		seats:   c.Seats,
		bet:     c.Bet,
		seed:    seed,
		logger:  logger,
	}
	fmt.Printf("Starting simulation: %d rounds, %d seat(s), %d deck(s) (seed: %d)\n",
		c.Rounds, sim.seatCount(), cfg.Table.Decks, seed)

	start := time.Now()
	stats, err := sim.run(ctx)
	if err != nil {
		return err
	}
	printResults(os.Stdout, stats, time.Since(start))
	return nil
}

// simulation plays rounds with the autopilot across parallel sessions
type simulation struct {
	cfg     *config.Config
	rounds  int
	workers int
	seats   int
	bet     int
	seed    int64
	logger  *log.Logger
}

func (s simulation) seatCount() int {
	return max(1, min(s.seats, s.cfg.Table.Seats))
}

// run splits the rounds across workers, each with its own engine and a
// seed derived from the simulation seed, and merges their statistics.
func (s simulation) run(ctx context.Context) (*statistics.Statistics, error) {
	workers := s.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = max(1, min(workers, s.rounds))

	results := make([]*statistics.Statistics, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		rounds := s.rounds / workers
		if w < s.rounds%workers {
			rounds++
		}
		g.Go(func() error {
			stats, err := s.worker(ctx, w, rounds)
			results[w] = stats
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := &statistics.Statistics{}
	for _, r := range results {
		total.Merge(r)
	}
	return total, nil
}

func (s simulation) worker(ctx context.Context, id, rounds int) (*statistics.Statistics, error) {
	gc := s.cfg.GameConfig()
	gc.Timing = game.Timing{}
	logger := s.logger.With("worker", id)

	engine, err := game.NewEngine(gc,
		game.WithRNG(randutil.New(randutil.Derive(s.seed, id))),
		game.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	balance := s.cfg.Table.StartingBalance
	sess := table.New(engine, ledger.New(balance), store.NewMemory(s.cfg.Storage.HistoryLimit),
		quartz.NewReal(), logger, table.Limits{MinBet: s.cfg.Table.MinBet, MaxBet: s.cfg.Table.MaxBet})
	pilot := strategy.NewAutopilot(logger)

	bet := s.bet
	if bet <= 0 {
		bet = s.cfg.Table.MinBet
	}
	seats := s.seatCount()
	// room for every seat to split and double
	need := bet * seats * 4

	stats := &statistics.Statistics{}
	for range rounds {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if sess.Player().Balance < need {
			if err := sess.TopUp(ctx, max(balance, need)); err != nil {
				return stats, err
			}
		}
		for seat := range seats {
			if engine.Bet(seat) == 0 {
				if err := sess.PlaceBet(seat, bet); err != nil {
					return stats, err
				}
			}
		}

		err := sess.Deal()
		if err == nil {
			err = pilot.PlayRound(sess)
		}
		if err != nil && !errors.Is(err, deck.ErrShoeEmpty) {
			return stats, err
		}
		if res, ok := sess.Snapshot().Result(); ok {
			stats.Add(res)
		}
		sess.NextRound()
	}
	return stats, nil
}

func printResults(w io.Writer, stats *statistics.Statistics, duration time.Duration) {
	if stats.Rounds == 0 {
		fmt.Fprintln(w, "No rounds settled")
		return
	}
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== %d ROUNDS (%d hands) in %s ===\n", stats.Rounds, stats.Hands, duration.Round(time.Millisecond))
	fmt.Fprintf(w, "Performance: %.0f rounds/sec\n", float64(stats.Rounds)/max(duration.Seconds(), 1e-9))
	fmt.Fprintf(w, "Net per round: %.4f ± %.4f SE (median %.1f)\n", stats.Mean(), stats.StdError(), stats.Median())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f]\n", low, high)
	fmt.Fprintf(w, "Return: %.3f%% of %d wagered\n", stats.ReturnRate()*100, stats.Wagered)
	fmt.Fprintf(w, "Hands: %d won, %d lost, %d pushed\n", stats.Wins, stats.Losses, stats.Pushes)
	fmt.Fprintf(w, "Blackjacks %d, doubles %d, splits %d, surrenders %d, dealer busts %d\n",
		stats.Blackjacks, stats.Doubles, stats.Splits, stats.Surrenders, stats.DealerBusts)
	if err := stats.Validate(); err != nil {
		fmt.Fprintf(w, "Warning: %v\n", err)
	}
}
