package cli

import (
	"github.com/spf13/cobra"
)

var (
	flagActor   string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "roster",
	Short: "Shared task board for humans and agents",
	Long:  "roster — a file-backed task tracker for mixed human/agent teams.\nTasks live in .roster/ next to your code; claims keep workers from colliding.",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagActor, "actor", "", "Who performs this action (default: $ROSTER_ACTOR, config, git user.name)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(claimCmd)
	rootCmd.AddCommand(releaseCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(briefCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(uiCmd)
}
