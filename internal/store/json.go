package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/ledger"
)

// JSON stores the player in one file and the history in a sibling file
// named after it ("player_stats.json" and "player_stats_history.json").
// Every write replaces the file atomically.
type JSON struct {
	mu          sync.Mutex
	playerPath  string
	historyPath string
	limit       int
	logger      *log.Logger
}

// NewJSON creates a JSON file store rooted at path
func NewJSON(path string, limit int, logger *log.Logger) (*JSON, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("empty json store path")
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if err := fileutil.EnsureDir(path); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ext := filepath.Ext(path)
	return &JSON{
		playerPath:  path,
		historyPath: strings.TrimSuffix(path, ext) + "_history" + ext,
		limit:       limit,
		logger:      logger,
	}, nil
}

func (s *JSON) LoadPlayer(context.Context) (*ledger.Player, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var p ledger.Player
	found, err := fileutil.ReadJSON(s.playerPath, &p)
	if err != nil {
		return nil, false, fmt.Errorf("json store: %w", err)
	}
	if !found {
		s.logger.Info("No saved player, starting fresh", "path", s.playerPath)
		return nil, false, nil
	}
	return &p, true, nil
}

func (s *JSON) SavePlayer(_ context.Context, p *ledger.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fileutil.WriteJSON(s.playerPath, p); err != nil {
		return fmt.Errorf("json store: %w", err)
	}
	s.logger.Debug("Player saved", "path", s.playerPath, "balance", p.Balance)
	return nil
}

func (s *JSON) AppendHistory(_ context.Context, e ledger.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.readHistory()
	if err != nil {
		return err
	}
	history = tail(append(history, e), s.limit)
	if err := fileutil.WriteJSON(s.historyPath, history); err != nil {
		return fmt.Errorf("json store: %w", err)
	}
	return nil
}

func (s *JSON) History(_ context.Context, n int) ([]ledger.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	history, err := s.readHistory()
	if err != nil {
		return nil, err
	}
	return tail(history, n), nil
}

func (s *JSON) readHistory() ([]ledger.Entry, error) {
	var history []ledger.Entry
	if _, err := fileutil.ReadJSON(s.historyPath, &history); err != nil {
		return nil, fmt.Errorf("json store: %w", err)
	}
	return history, nil
}

func (s *JSON) Reset(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, path := range []string{s.playerPath, s.historyPath} {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("json store: %w", err)
		}
	}
	s.logger.Info("Stats reset", "path", s.playerPath)
	return nil
}

func (s *JSON) Close() error { return nil }
