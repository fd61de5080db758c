package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var commentCmd = &cobra.Command{
	Use:   "comment [id] [text]",
	Short: "Add a comment to a task's discussion thread",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runComment,
}

func runComment(cmd *cobra.Command, args []string) error {
	tr, cfg, err := openTracker()
	if err != nil {
		return err
	}

	text := strings.Join(args[1:], " ")
	t, _, err := tr.Comment(args[0], resolveActor(cfg), text)
	if err != nil {
		return err
	}

	fmt.Printf("Commented on %s%s%s (%d in thread)\n",
		colorYellow, t.ShortID(), colorReset, len(t.Discussion))
	return nil
}
