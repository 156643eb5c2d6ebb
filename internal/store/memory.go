package store

import (
	"context"
	"sync"

	"github.com/lox/blackjack/internal/ledger"
)

// Memory keeps everything in process; nothing survives a restart
type Memory struct {
	mu      sync.Mutex
	limit   int
	player  *ledger.Player
	history []ledger.Entry
}

// NewMemory creates an empty in-memory store
func NewMemory(limit int) *Memory {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &Memory{limit: limit}
}

func (m *Memory) LoadPlayer(context.Context) (*ledger.Player, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.player == nil {
		return nil, false, nil
	}
	p := *m.player
	return &p, true, nil
}

func (m *Memory) SavePlayer(_ context.Context, p *ledger.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.player = &cp
	return nil
}

func (m *Memory) AppendHistory(_ context.Context, e ledger.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = tail(append(m.history, e), m.limit)
	return nil
}

func (m *Memory) History(_ context.Context, n int) ([]ledger.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return tail(m.history, n), nil
}

func (m *Memory) Reset(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.player = nil
	m.history = nil
	return nil
}

func (m *Memory) Close() error { return nil }
