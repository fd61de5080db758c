package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:   "archive [id]",
	Short: "Archive a task (terminal, cannot be reopened)",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchive,
}

func runArchive(cmd *cobra.Command, args []string) error {
	tr, cfg, err := openTracker()
	if err != nil {
		return err
	}

	t, _, err := tr.Archive(args[0], resolveActor(cfg))
	if err != nil {
		return err
	}

	fmt.Printf("%s%s%s archived: %s\n", colorYellow, t.ShortID(), colorReset, t.Title)
	return nil
}
