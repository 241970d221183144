package merge

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/paularlott/cli"
	"golang.org/x/term"

	"github.com/fediasonin/geomerge/internal/log"
	"github.com/fediasonin/geomerge/internal/merge"
	"github.com/fediasonin/geomerge/internal/model"
	"github.com/fediasonin/geomerge/internal/storage"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:        "merge",
		Usage:       "Merge locations and blocks tables into a snapshot CSV",
		Description: "Join a locations table (country code to name) with a blocks table (CIDR network to country code) and write one denormalized report with a run-level timestamp column",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "locations", Required: true},
			&cli.StringArg{Name: "blocks", Required: true},
			&cli.StringArg{Name: "output", Required: true},
			&cli.StringArg{Name: "timestamp"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "decimal",
				Usage: "Include numeric from/to range columns in the report",
			},
			&cli.StringFlag{
				Name:  "journal",
				Usage: "Record the run in the snapshot journal at this directory",
			},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			stamp, err := resolveStamp(cmd.GetStringArg("timestamp"))
			if err != nil {
				return err
			}

			opts := merge.Options{
				LocationsPath: cmd.GetStringArg("locations"),
				BlocksPath:    cmd.GetStringArg("blocks"),
				OutputPath:    cmd.GetStringArg("output"),
				Stamp:         stamp,
				Decimal:       cmd.GetBool("decimal"),
			}

			result, err := merge.Run(opts)
			if err != nil {
				return err
			}

			// The report is already in place; a journal failure is
			// logged but does not fail the run.
			if dir := cmd.GetString("journal"); dir != "" {
				if err := journalRun(dir, opts, result); err != nil {
					log.Error("Failed to record snapshot in journal", "error", err)
				}
			}
			return nil
		},
	}
}

// resolveStamp turns the optional timestamp argument into a validated
// stamp. Without an argument the operator is prompted when stdin is a
// terminal; an empty line means the current time.
func resolveStamp(arg string) (string, error) {
	if arg != "" {
		return merge.NormalizeStamp(arg)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("timestamp argument required when stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, "Snapshot timestamp (DD.MM.YYYY hh:mm:ss) [Enter = now]: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading timestamp: %w", err)
	}
	return merge.NormalizeStamp(strings.TrimSpace(line))
}

func journalRun(dir string, opts merge.Options, result *merge.Result) error {
	store, err := storage.NewSQLiteStore(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.RecordSnapshot(&model.Snapshot{
		Stamp:         opts.Stamp,
		LocationsPath: opts.LocationsPath,
		BlocksPath:    opts.BlocksPath,
		OutputPath:    opts.OutputPath,
		Rows:          result.Rows,
		Unresolved:    result.Unresolved,
		Digest:        result.Digest,
	})
}
