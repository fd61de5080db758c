package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var claimCmd = &cobra.Command{
	Use:   "claim [id]",
	Short: "Claim a task so others know you are on it",
	Args:  cobra.ExactArgs(1),
	RunE:  runClaim,
}

func runClaim(cmd *cobra.Command, args []string) error {
	tr, cfg, err := openTracker()
	if err != nil {
		return err
	}

	who := resolveActor(cfg)
	t, _, err := tr.Claim(args[0], who)
	if err != nil {
		return err
	}

	fmt.Printf("%s%s%s claimed by %s%s%s: %s\n",
		colorYellow, t.ShortID(), colorReset, colorCyan, who, colorReset, t.Title)
	return nil
}
