package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done [id]",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runDone,
}

func runDone(cmd *cobra.Command, args []string) error {
	tr, cfg, err := openTracker()
	if err != nil {
		return err
	}

	t, _, err := tr.Done(args[0], resolveActor(cfg))
	if err != nil {
		return err
	}

	fmt.Printf("%s✓%s %s%s%s completed: %s\n",
		colorGreen, colorReset, colorYellow, t.ShortID(), colorReset, t.Title)
	return nil
}
