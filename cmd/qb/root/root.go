package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"questboard/internal/ui"
)

const Version = "0.1.0"

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	dbPath     string
	backend    string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "qb",
		Short:         "Questboard: RPG quest and achievement tracker",
		Long:          "Questboard tracks boss fights, quests and training. Defeating a boss earns an achievement and its XP.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Config file (default ~/.questboard/config.yaml)")
	pf.StringVar(&opts.dbPath, "db", "", "SQLite database path (overrides storage.path and $QB_DB)")
	pf.StringVar(&opts.backend, "store", "", "Storage backend (memory|sqlite)")

	cmd.AddCommand(
		newServeCmd(opts),
		newAddCmd(opts),
		newDoCmd(opts),
		newRmCmd(opts),
		newListCmd(opts),
		newTrophiesCmd(opts),
		newStatusCmd(opts),
		newBoardCmd(opts),
		newConfigCmd(opts),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
