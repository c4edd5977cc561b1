package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/launchboard/launchboard/server/internal/config"
	"github.com/launchboard/launchboard/server/internal/dashboard"
	"github.com/launchboard/launchboard/server/internal/format"
	"github.com/launchboard/launchboard/server/internal/logging"
	"github.com/launchboard/launchboard/server/internal/store"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	data     string
	markdown bool
	verbose  bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print launch dashboard views as tables",
		Long: "report loads the launch records CSV and prints the same views the\n" +
			"dashboard server charts: the site list, outcome counts per site and\n" +
			"payload versus outcome points.",
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.Setup(cmd.ErrOrStderr(), "launchboard-report")
			if flags.verbose {
				logging.Level.Set(slog.LevelDebug)
			} else {
				logging.Level.Set(slog.LevelWarn)
			}
		},
	}
	cmd.Version = version

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.data, "data", config.DefaultDatasetPath, "path to the launch records CSV")
	pf.BoolVar(&flags.markdown, "markdown", false, "render GitHub-flavoured Markdown tables")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log dataset loading to stderr")

	cmd.AddCommand(newSitesCmd(&flags))
	cmd.AddCommand(newSummaryCmd(&flags))
	cmd.AddCommand(newScatterCmd(&flags))
	return cmd
}

func (f *rootFlags) mode() format.Mode {
	if f.markdown {
		return format.Markdown
	}
	return format.ASCII
}

// load reads the dataset named by --data.
func (f *rootFlags) load() (*store.Store, *dashboard.Controller, error) {
	st, err := store.Load(f.data)
	if err != nil {
		return nil, nil, err
	}
	return st, dashboard.New(st), nil
}
