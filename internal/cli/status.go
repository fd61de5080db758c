package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Quick project overview",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	tr, _, err := openTracker()
	if err != nil {
		return err
	}

	st, err := tr.Stats()
	if err != nil {
		return err
	}

	total := st.Backlog + st.Pending + st.Completed + st.Archived
	if total == 0 {
		fmt.Printf("No tasks. Run: %sroster add \"description\"%s\n", colorCyan, colorReset)
		return nil
	}

	fmt.Printf("%sTasks: %d total%s\n", colorBold, total, colorReset)
	fmt.Printf("  %-12s %s%d%s\n", "backlog:", colorWhite, st.Backlog, colorReset)
	fmt.Printf("  %-12s %s%d%s", "pending:", colorBlue, st.Pending, colorReset)
	if st.Claimed > 0 {
		fmt.Printf(" %s(%d claimed)%s", colorDim, st.Claimed, colorReset)
	}
	fmt.Println()
	fmt.Printf("  %-12s %s%d%s\n", "completed:", colorGreen, st.Completed, colorReset)
	fmt.Printf("  %-12s %s%d%s\n", "archived:", colorDim, st.Archived, colorReset)

	if st.Overdue > 0 || st.DueToday > 0 || st.DueThisWeek > 0 {
		fmt.Println()
		if st.Overdue > 0 {
			fmt.Printf("  %s⚠ %d overdue%s\n", colorRed+colorBold, st.Overdue, colorReset)
		}
		if st.DueToday > 0 {
			fmt.Printf("  %s%d due today%s\n", colorYellow, st.DueToday, colorReset)
		}
		if st.DueThisWeek > 0 {
			fmt.Printf("  %s%d due this week%s\n", colorDim, st.DueThisWeek, colorReset)
		}
	}
	if st.CompletedToday > 0 {
		fmt.Printf("\n  %s✓ %d completed today%s\n", colorGreen, st.CompletedToday, colorReset)
	}

	if len(st.Hot) > 0 {
		now := time.Now()
		fmt.Printf("\n%sNeeds attention%s\n", colorBold, colorReset)
		for _, r := range st.Hot {
			due := ""
			if r.IsOverdue(now) {
				due = colorRed + " (overdue)" + colorReset
			}
			fmt.Printf("  %s%-9s%s %.1f  %s%s\n",
				colorYellow, r.ShortID(), colorReset, r.Urgency, truncate(r.Title, 50), due)
		}
	}

	return nil
}
