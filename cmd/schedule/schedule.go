package schedule

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/paularlott/cli"

	"github.com/fediasonin/geomerge/internal/log"
	"github.com/fediasonin/geomerge/internal/merge"
	"github.com/fediasonin/geomerge/internal/storage"
	"github.com/fediasonin/geomerge/internal/worker"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:        "schedule",
		Usage:       "Run the merge periodically on a cron schedule",
		Description: "Re-run the merge on a cron schedule, stamping each run's output path and rows with that run's time. The output argument is a pattern: an @ is replaced with the run time, otherwise the time is inserted before the extension",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "locations", Required: true},
			&cli.StringArg{Name: "blocks", Required: true},
			&cli.StringArg{Name: "output", Required: true},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "cron",
				Usage:    "Cron schedule (standard five-field syntax, e.g. \"0 3 * * *\")",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "decimal",
				Usage: "Include numeric from/to range columns in the report",
			},
			&cli.StringFlag{
				Name:  "journal",
				Usage: "Record each run in the snapshot journal at this directory",
			},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			opts := merge.Options{
				LocationsPath: cmd.GetStringArg("locations"),
				BlocksPath:    cmd.GetStringArg("blocks"),
				OutputPath:    cmd.GetStringArg("output"),
				Decimal:       cmd.GetBool("decimal"),
			}

			var journal storage.Store
			if dir := cmd.GetString("journal"); dir != "" {
				store, err := storage.NewSQLiteStore(dir)
				if err != nil {
					return err
				}
				defer store.Close()
				journal = store
			}

			scheduler, err := worker.NewScheduler(cmd.GetString("cron"), opts, journal)
			if err != nil {
				return err
			}

			scheduler.Start()
			defer scheduler.Stop()

			log.Info("Scheduler running", "cron", cmd.GetString("cron"), "output", opts.OutputPath)

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()

			log.Info("Shutting down")
			return nil
		},
	}
}
