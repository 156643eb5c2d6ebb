package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lox/blackjack/internal/display"
	"github.com/lox/blackjack/internal/statistics"
)

type StatsCmd struct {
	Recent int  `default:"20" help:"Rounds of history to summarise"`
	JSON   bool `name:"json" help:"Print the summary as JSON"`
	Reset  bool `help:"Erase the saved player and history"`
	Clear  bool `help:"Zero the statistics but keep the balance"`
}

func (c *StatsCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	logger := g.logger(cfg)

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

	if c.Reset {
		if err := st.Reset(ctx); err != nil {
			return err
		}
		logger.Info("Player record erased", "driver", cfg.Storage.Driver, "path", cfg.Storage.Path)
		return nil
	}

	if c.Clear {
		player.ResetStats()
		if err := st.SavePlayer(ctx, player); err != nil {
			return err
		}
		logger.Info("Statistics cleared", "balance", player.Balance)
	}

	recent, err := st.History(ctx, c.Recent)
	if err != nil {
		return err
	}
	summary := statistics.Summarize(*player)
	session := statistics.SessionStats(recent)

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Summary statistics.Summary `json:"summary"`
			Recent  statistics.Session `json:"recent"`
		}{summary, session})
	}

	view := display.New(os.Stdout, !g.NoColor)
	fmt.Print(view.Summary(summary))
	fmt.Printf("\nLast %d rounds: %d hands, %d won, %d lost, %d pushed, net %+d (%.2f%% won)\n",
		session.Rounds, session.Hands, session.Wins, session.Losses, session.Pushes, session.TotalMoney, session.WinRate)
	return nil
}
