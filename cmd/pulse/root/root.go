package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pulsestudy/internal/ui"
)

const Version = "0.1.0"

var (
	dbPathFlag string
	verbose    bool
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pulse",
		Short:         "Pulse: local-first study dashboard",
		Long:          "Pulse keeps your tasks, notes and focus sessions in one local file and turns them into XP, ranks and an AI rating.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "SQLite file (default ~/.pulse/pulse.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")

	rootCmd.AddCommand(
		newAddCmd(),
		newDoCmd(),
		newRmCmd(),
		newPrioCmd(),
		newListCmd(),
		newNoteCmd(),
		newFocusCmd(),
		newGoalCmd(),
		newStatusCmd(),
		newRanksCmd(),
		newStatsCmd(),
		newPlanCmd(),
		newChatCmd(),
		newBoardCmd(),
		newMCPCmd(),
		newConfigCmd(),
		newProfileCmd(),
	)
	return rootCmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
