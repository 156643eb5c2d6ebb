// Package store persists the player's ledger and round history between
// sessions. Backends: JSON files, SQLite, or memory only.
package store

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/ledger"
)

// DefaultHistoryLimit is how many rounds of history are kept
const DefaultHistoryLimit = 1000

// Store loads and saves a player and their round history
type Store interface {
	// LoadPlayer returns the saved player; found is false when nothing has
	// been saved yet.
	LoadPlayer(ctx context.Context) (p *ledger.Player, found bool, err error)
	SavePlayer(ctx context.Context, p *ledger.Player) error
	// AppendHistory records a round, dropping the oldest beyond the limit
	AppendHistory(ctx context.Context, e ledger.Entry) error
	// History returns up to n of the most recent rounds, oldest first. n <= 0
	// returns everything kept.
	History(ctx context.Context, n int) ([]ledger.Entry, error)
	// Reset removes the saved player and history
	Reset(ctx context.Context) error
	Close() error
}

// Driver names a backend
type Driver string

const (
	DriverJSON   Driver = "json"
	DriverSQLite Driver = "sqlite"
	DriverNone   Driver = "none"
)

// Options selects and configures a backend
type Options struct {
	Driver       Driver
	Path         string
	HistoryLimit int
	Logger       *log.Logger
}

// Open creates the backend named by opts.Driver
func Open(ctx context.Context, opts Options) (Store, error) {
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = DefaultHistoryLimit
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	logger := opts.Logger.WithPrefix("store")

	switch opts.Driver {
	case DriverJSON, "":
		return NewJSON(opts.Path, opts.HistoryLimit, logger)
	case DriverSQLite:
		return NewSQLite(ctx, opts.Path, opts.HistoryLimit, logger)
	case DriverNone:
		return NewMemory(opts.HistoryLimit), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}

// LoadOrCreate returns the saved player, or a new one holding balance
func LoadOrCreate(ctx context.Context, s Store, balance int) (*ledger.Player, error) {
	p, found, err := s.LoadPlayer(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		return ledger.New(balance), nil
	}
	return p, nil
}

func tail(entries []ledger.Entry, n int) []ledger.Entry {
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	out := make([]ledger.Entry, len(entries))
	copy(out, entries)
	return out
}
