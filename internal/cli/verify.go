package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that the event log and snapshot agree",
	Long:  "Replays the event log from the beginning and compares the result with the stored snapshot. Divergence means the store was modified outside roster.",
	RunE:  runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	tr, _, err := openTracker()
	if err != nil {
		return err
	}

	rep, err := tr.Verify()
	if err != nil {
		return err
	}

	fmt.Printf("snapshot: %d tasks (version seq %d)\n", rep.SnapshotTasks, rep.LastSeq)
	fmt.Printf("log:      %d events, %d tasks after replay\n", rep.Events, rep.ReplayedTasks)

	if rep.OK() {
		fmt.Printf("%s✓ log and snapshot agree%s\n", colorGreen, colorReset)
		return nil
	}

	fmt.Printf("%s✗ %d divergent task(s):%s\n", colorRed+colorBold, len(rep.Divergent), colorReset)
	for _, id := range rep.Divergent {
		fmt.Printf("  %s%s%s\n", colorYellow, id, colorReset)
	}
	return fmt.Errorf("store verification failed")
}
