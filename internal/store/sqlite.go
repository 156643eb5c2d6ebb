package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/ledger"
	_ "modernc.org/sqlite"
)

// SQLite keeps the player and history in a single database file
type SQLite struct {
	db     *sql.DB
	limit  int
	logger *log.Logger
}

// NewSQLite opens (creating if needed) the database at path. ":memory:"
// gives a throwaway database.
func NewSQLite(ctx context.Context, path string, limit int, logger *log.Logger) (*SQLite, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("empty sqlite database path")
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if path != ":memory:" {
		if err := fileutil.EnsureDir(path); err != nil {
			return nil, err
		}
	}

	if logger == nil {
		logger = log.New(io.Discard)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite %s: %w", pragma, err)
		}
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Debug("SQLite store opened", "path", path)
	return &SQLite{db: db, limit: limit, logger: logger}, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`
CREATE TABLE IF NOT EXISTS player (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    balance INTEGER NOT NULL,
    initial_balance INTEGER NOT NULL,
    total_hands INTEGER NOT NULL,
    wins INTEGER NOT NULL,
    losses INTEGER NOT NULL,
    pushes INTEGER NOT NULL,
    blackjacks INTEGER NOT NULL,
    total_wagered INTEGER NOT NULL,
    total_won INTEGER NOT NULL,
    total_lost INTEGER NOT NULL,
    updated_at_ms INTEGER NOT NULL
)`,
		`
CREATE TABLE IF NOT EXISTS history (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    round INTEGER NOT NULL,
    played_at_ms INTEGER NOT NULL,
    hands INTEGER NOT NULL,
    outcome TEXT NOT NULL,
    net INTEGER NOT NULL,
    wagered INTEGER NOT NULL,
    blackjacks INTEGER NOT NULL,
    dealer_value INTEGER NOT NULL,
    balance INTEGER NOT NULL
)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite schema: %w", err)
		}
	}
	return nil
}

func (s *SQLite) LoadPlayer(ctx context.Context) (*ledger.Player, bool, error) {
	var p ledger.Player
	err := s.db.QueryRowContext(ctx, `
SELECT balance, initial_balance, total_hands, wins, losses, pushes,
       blackjacks, total_wagered, total_won, total_lost
FROM player WHERE id = 1
`).Scan(&p.Balance, &p.InitialBalance, &p.TotalHands, &p.Wins, &p.Losses, &p.Pushes,
		&p.Blackjacks, &p.TotalWagered, &p.TotalWon, &p.TotalLost)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("sqlite load player: %w", err)
	}
	return &p, true, nil
}

func (s *SQLite) SavePlayer(ctx context.Context, p *ledger.Player) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO player (
    id, balance, initial_balance, total_hands, wins, losses, pushes,
    blackjacks, total_wagered, total_won, total_lost, updated_at_ms
)
VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    balance = excluded.balance,
    initial_balance = excluded.initial_balance,
    total_hands = excluded.total_hands,
    wins = excluded.wins,
    losses = excluded.losses,
    pushes = excluded.pushes,
    blackjacks = excluded.blackjacks,
    total_wagered = excluded.total_wagered,
    total_won = excluded.total_won,
    total_lost = excluded.total_lost,
    updated_at_ms = excluded.updated_at_ms
`, p.Balance, p.InitialBalance, p.TotalHands, p.Wins, p.Losses, p.Pushes,
		p.Blackjacks, p.TotalWagered, p.TotalWon, p.TotalLost, time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("sqlite save player: %w", err)
	}
	return nil
}

func (s *SQLite) AppendHistory(ctx context.Context, e ledger.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite append history: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO history (
    id, round, played_at_ms, hands, outcome, net, wagered, blackjacks, dealer_value, balance
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, e.ID, e.Round, e.PlayedAt.UTC().UnixMilli(), e.Hands, e.Outcome.String(), e.Net,
		e.Wagered, e.Blackjacks, e.DealerValue, e.Balance); err != nil {
		return fmt.Errorf("sqlite append history: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
DELETE FROM history
WHERE seq NOT IN (SELECT seq FROM history ORDER BY seq DESC LIMIT ?)
`, s.limit); err != nil {
		return fmt.Errorf("sqlite trim history: %w", err)
	}
	return tx.Commit()
}

func (s *SQLite) History(ctx context.Context, n int) ([]ledger.Entry, error) {
	if n <= 0 {
		n = -1
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, round, played_at_ms, hands, outcome, net, wagered, blackjacks, dealer_value, balance
FROM (SELECT * FROM history ORDER BY seq DESC LIMIT ?)
ORDER BY seq ASC
`, n)
	if err != nil {
		return nil, fmt.Errorf("sqlite history: %w", err)
	}
	defer rows.Close()

	var out []ledger.Entry
	for rows.Next() {
		var (
			e        ledger.Entry
			playedAt int64
			outcome  string
		)
		if err := rows.Scan(&e.ID, &e.Round, &playedAt, &e.Hands, &outcome, &e.Net,
			&e.Wagered, &e.Blackjacks, &e.DealerValue, &e.Balance); err != nil {
			return nil, fmt.Errorf("sqlite history: %w", err)
		}
		e.PlayedAt = time.UnixMilli(playedAt).UTC()
		if e.Outcome, err = game.ParseOutcome(outcome); err != nil {
			return nil, fmt.Errorf("sqlite history %s: %w", e.ID, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite history: %w", err)
	}
	return out, nil
}

func (s *SQLite) Reset(ctx context.Context) error {
	for _, table := range []string{"player", "history"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("sqlite reset %s: %w", table, err)
		}
	}
	s.logger.Info("Stats reset")
	return nil
}

func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
