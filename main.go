package main

import (
	"context"
	"fmt"
	"os"

	"github.com/paularlott/cli"

	"github.com/fediasonin/geomerge/cmd/journal"
	"github.com/fediasonin/geomerge/cmd/merge"
	"github.com/fediasonin/geomerge/cmd/schedule"
	"github.com/fediasonin/geomerge/internal/log"
)

var (
	version = "dev"
)

func main() {
	// Initialize structured logging
	log.Configure("info", "console")

	rootCmd := &cli.Command{
		Name:        "geomerge",
		Version:     version,
		Usage:       "Merge geographic IP-range datasets into a snapshot report",
		Description: "Joins a locations table (country code to name) with a blocks table (CIDR network to country code) into one denormalized CSV with a per-row timestamp column",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:         "log-level",
				Usage:        "Log level (trace, debug, info, warn, error)",
				DefaultValue: "info",
				Global:       true,
			},
			&cli.StringFlag{
				Name:         "log-format",
				Usage:        "Log format (console, json)",
				DefaultValue: "console",
				Global:       true,
			},
		},
		PreRun: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			log.Configure(cmd.GetString("log-level"), cmd.GetString("log-format"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			merge.Command(),
			schedule.Command(),
			journal.Command(),
		},
	}

	if err := rootCmd.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
