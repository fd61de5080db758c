package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var releaseCmd = &cobra.Command{
	Use:   "release [id]",
	Short: "Release a claimed task back to the backlog",
	Args:  cobra.ExactArgs(1),
	RunE:  runRelease,
}

func runRelease(cmd *cobra.Command, args []string) error {
	tr, cfg, err := openTracker()
	if err != nil {
		return err
	}

	t, _, err := tr.Release(args[0], resolveActor(cfg))
	if err != nil {
		return err
	}

	fmt.Printf("%s%s%s released: %s\n", colorYellow, t.ShortID(), colorReset, t.Title)
	return nil
}
