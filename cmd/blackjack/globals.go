package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/ledger"
	"github.com/lox/blackjack/internal/store"
)

// Globals are the flags shared by every command
type Globals struct {
	ConfigFile string `name:"config-file" short:"c" default:"${config_file}" env:"BLACKJACK_CONFIG" help:"HCL configuration file"`
	Debug      bool   `env:"BLACKJACK_DEBUG" help:"Enable debug logging"`
	NoColor    bool   `env:"BLACKJACK_NO_COLOR" help:"Disable colored output"`
	Storage    string `env:"BLACKJACK_STORAGE" help:"Override the storage driver (json, sqlite, none)"`
	Path       string `env:"BLACKJACK_PATH" help:"Override the storage path"`
}

// load reads the configuration and applies flag overrides
func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.ConfigFile)
	if err != nil {
		return nil, err
	}
	if g.Storage != "" {
		cfg.Storage.Driver = g.Storage
	}
	if g.Path != "" {
		cfg.Storage.Path = g.Path
	}
	return cfg, cfg.Validate()
}

// logger builds the command logger at the configured level
func (g *Globals) logger(cfg *config.Config) *log.Logger {
	return g.loggerTo(os.Stderr, cfg)
}

func (g *Globals) loggerTo(w io.Writer, cfg *config.Config) *log.Logger {
	level := cfg.Level()
	if g.Debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "blackjack",
	})
}

// openPlayer opens the configured store and loads the saved player
func openPlayer(ctx context.Context, cfg *config.Config, logger *log.Logger) (store.Store, *ledger.Player, error) {
	st, err := store.Open(ctx, cfg.StoreOptions(logger))
	if err != nil {
		return nil, nil, err
	}
	player, err := store.LoadOrCreate(ctx, st, cfg.Table.StartingBalance)
	if err != nil {
		_ = st.Close()
		return nil, nil, fmt.Errorf("load player: %w", err)
	}
	return st, player, nil
}

// signalContext is cancelled on interrupt signals
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
