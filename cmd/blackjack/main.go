package main

import (
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/lox/blackjack/internal/config"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play at the table"`
	Simulate SimulateCmd      `cmd:"" help:"Play many rounds with basic strategy and report the results"`
	Stats    StatsCmd         `cmd:"" help:"Show the saved player statistics"`
	Config   ConfigCmd        `cmd:"" help:"Print the effective configuration"`
}

func main() {
	// a .env file is optional; it only feeds the env-tagged flags
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Single-table blackjack with basic-strategy hints and simulation"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_file": config.DefaultFile,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
