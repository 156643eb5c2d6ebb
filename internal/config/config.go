// Package config loads the table configuration from an HCL file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/store"
)

// DefaultFile is read when no config path is given
const DefaultFile = "blackjack.hcl"

// Config is the complete configuration. Every block is optional in the file;
// after Load all of them are set.
type Config struct {
	LogLevel string    `hcl:"log_level,optional"`
	Table    *Table    `hcl:"table,block"`
	Rules    *Rules    `hcl:"rules,block"`
	Timing   *Timing   `hcl:"timing,block"`
	Storage  *Storage  `hcl:"storage,block"`
	Features *Features `hcl:"features,block"`
}

// Table holds the table limits and shoe setup
type Table struct {
	Decks           int `hcl:"decks,optional"`
	Seats           int `hcl:"seats,optional"`
	MinBet          int `hcl:"min_bet,optional"`
	MaxBet          int `hcl:"max_bet,optional"`
	StartingBalance int `hcl:"starting_balance,optional"`
	BurnCards       int `hcl:"burn_cards,optional"`
	ReshuffleBelow  int `hcl:"reshuffle_below,optional"` // 0 picks a quarter of the shoe
}

// Rules toggles optional player decisions; unset means on
type Rules struct {
	Insurance        *bool `hcl:"insurance,optional"`
	Surrender        *bool `hcl:"surrender,optional"`
	DoubleAfterSplit *bool `hcl:"double_after_split,optional"`
}

// Timing holds transition delays in seconds
type Timing struct {
	InitialDeal  *float64 `hcl:"initial_deal,optional"`
	DealerReveal *float64 `hcl:"dealer_reveal,optional"`
	DealerAction *float64 `hcl:"dealer_action,optional"`
}

// Storage selects where the player and history are kept
type Storage struct {
	Driver       string `hcl:"driver,optional"`
	Path         string `hcl:"path,optional"`
	HistoryLimit int    `hcl:"history_limit,optional"`
}

// Features toggles client conveniences
type Features struct {
	ShowHints *bool `hcl:"show_hints,optional"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads filename. A missing file yields Default().
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source, fills defaults and validates
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var c Config
	diags = gohcl.DecodeBody(file.Body, nil, &c)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Encode renders the configuration back to HCL
func (c *Config) Encode() []byte {
	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(c, f.Body())
	return f.Bytes()
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Table == nil {
		c.Table = &Table{}
	}
	if c.Table.Decks == 0 {
		c.Table.Decks = 1
	}
	if c.Table.Seats == 0 {
		c.Table.Seats = 5
	}
	if c.Table.MinBet == 0 {
		c.Table.MinBet = 5
	}
	if c.Table.MaxBet == 0 {
		c.Table.MaxBet = 1000
	}
	if c.Table.StartingBalance == 0 {
		c.Table.StartingBalance = 1000
	}
	if c.Table.ReshuffleBelow == 0 {
		c.Table.ReshuffleBelow = c.Table.Decks * deck.CardsPerDeck / 4
	}

	if c.Rules == nil {
		c.Rules = &Rules{}
	}
	setDefault(&c.Rules.Insurance, true)
	setDefault(&c.Rules.Surrender, true)
	setDefault(&c.Rules.DoubleAfterSplit, true)

	if c.Timing == nil {
		c.Timing = &Timing{}
	}
	setDefault(&c.Timing.InitialDeal, 1.0)
	setDefault(&c.Timing.DealerReveal, 1.0)
	setDefault(&c.Timing.DealerAction, 0.5)

	if c.Storage == nil {
		c.Storage = &Storage{}
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = string(store.DriverJSON)
	}
	if c.Storage.Path == "" {
		if c.Storage.Driver == string(store.DriverSQLite) {
			c.Storage.Path = "player_stats.db"
		} else {
			c.Storage.Path = "player_stats.json"
		}
	}
	if c.Storage.HistoryLimit == 0 {
		c.Storage.HistoryLimit = store.DefaultHistoryLimit
	}

	if c.Features == nil {
		c.Features = &Features{}
	}
	setDefault(&c.Features.ShowHints, true)
}

func setDefault[T any](field **T, v T) {
	if *field == nil {
		*field = &v
	}
}

// Validate checks the configuration for values the table cannot run with
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	t := c.Table
	if t.Decks < 1 || t.Decks > 8 {
		return fmt.Errorf("decks must be between 1 and 8, got %d", t.Decks)
	}
	if t.Seats < 1 || t.Seats > 7 {
		return fmt.Errorf("seats must be between 1 and 7, got %d", t.Seats)
	}
	if t.MinBet < 1 {
		return fmt.Errorf("min_bet must be positive, got %d", t.MinBet)
	}
	if t.MaxBet < t.MinBet {
		return fmt.Errorf("max_bet (%d) must be at least min_bet (%d)", t.MaxBet, t.MinBet)
	}
	if t.StartingBalance < 0 {
		return fmt.Errorf("starting_balance must not be negative, got %d", t.StartingBalance)
	}
	if t.BurnCards < 0 {
		return fmt.Errorf("burn_cards must not be negative, got %d", t.BurnCards)
	}
	shoe := t.Decks * deck.CardsPerDeck
	if t.ReshuffleBelow < 0 || t.BurnCards+t.ReshuffleBelow >= shoe {
		return fmt.Errorf("burn_cards plus reshuffle_below must leave cards to deal from a %d card shoe", shoe)
	}
	for name, v := range map[string]float64{
		"initial_deal":  *c.Timing.InitialDeal,
		"dealer_reveal": *c.Timing.DealerReveal,
		"dealer_action": *c.Timing.DealerAction,
	} {
		if v < 0 {
			return fmt.Errorf("timing %s must not be negative, got %v", name, v)
		}
	}
	switch store.Driver(c.Storage.Driver) {
	case store.DriverJSON, store.DriverSQLite, store.DriverNone:
	default:
		return fmt.Errorf("unknown storage driver %q (want json, sqlite or none)", c.Storage.Driver)
	}
	if c.Storage.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must not be negative, got %d", c.Storage.HistoryLimit)
	}
	return nil
}

// Level returns the parsed log level
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// GameConfig converts to the engine configuration
func (c *Config) GameConfig() game.Config {
	return game.Config{
		Decks:          c.Table.Decks,
		Seats:          c.Table.Seats,
		BurnCards:      c.Table.BurnCards,
		ReshuffleBelow: c.Table.ReshuffleBelow,
		Rules: game.Rules{
			Insurance:        *c.Rules.Insurance,
			Surrender:        *c.Rules.Surrender,
			DoubleAfterSplit: *c.Rules.DoubleAfterSplit,
		},
		Timing: game.Timing{
			InitialDeal:  seconds(*c.Timing.InitialDeal),
			DealerReveal: seconds(*c.Timing.DealerReveal),
			DealerAction: seconds(*c.Timing.DealerAction),
		},
	}
}

// StoreOptions converts the storage block
func (c *Config) StoreOptions(logger *log.Logger) store.Options {
	return store.Options{
		Driver:       store.Driver(c.Storage.Driver),
		Path:         c.Storage.Path,
		HistoryLimit: c.Storage.HistoryLimit,
		Logger:       logger,
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
