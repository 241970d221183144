package journal

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/paularlott/cli"

	"github.com/fediasonin/geomerge/internal/storage"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:        "journal",
		Usage:       "Snapshot journal commands",
		Description: "Inspect recorded snapshot runs",
		Commands: []*cli.Command{
			listCommand(),
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:        "list",
		Usage:       "List recorded snapshots",
		Description: "List recorded snapshot runs, newest first",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "dir", Required: true},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:         "limit",
				Usage:        "Maximum number of entries to show (0 = all)",
				DefaultValue: 20,
			},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			store, err := storage.NewSQLiteStore(cmd.GetStringArg("dir"))
			if err != nil {
				return err
			}
			defer store.Close()

			snapshots, err := store.ListSnapshots(cmd.GetInt("limit"))
			if err != nil {
				return err
			}

			if len(snapshots) == 0 {
				fmt.Println("No snapshots recorded")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTAMP\tOUTPUT\tROWS\tUNRESOLVED\tDIGEST")
			for _, s := range snapshots {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.12s\n",
					s.ID, s.Stamp, s.OutputPath, s.Rows, s.Unresolved, s.Digest)
			}
			return w.Flush()
		},
	}
}
