package cli

import (
	"fmt"
	"time"

	"github.com/rosterhq/roster/internal/task"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show full task details",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	tr, _, err := openTracker()
	if err != nil {
		return err
	}

	t, err := tr.Get(args[0])
	if err != nil {
		return err
	}

	now := time.Now()

	fmt.Printf("%s%s%s %s\n", colorYellow+colorBold, t.ShortID(), colorReset, t.Title)
	fmt.Printf("%s%s%s\n", colorDim, t.ID, colorReset)
	fmt.Println()
	fmt.Printf("  %-12s %s%s%s\n", "status:", statusColor(t.Status), t.Status, colorReset)
	if t.Priority != task.PriorityNone {
		fmt.Printf("  %-12s %s%s%s\n", "priority:", priorityColor(t.Priority), t.Priority, colorReset)
	}
	if len(t.Tags) > 0 {
		fmt.Printf("  %-12s", "tags:")
		for _, tag := range t.Tags {
			fmt.Printf(" %s+%s%s", colorCyan, tag, colorReset)
		}
		fmt.Println()
	}
	if t.DueAt != nil {
		c := ""
		suffix := ""
		if t.IsOverdue(now) {
			c = colorRed + colorBold
			suffix = " (overdue)"
		}
		fmt.Printf("  %-12s %s%s%s%s\n", "due:", c, t.DueAt.Format("2006-01-02 15:04"), suffix, colorReset)
	}
	if t.IsClaimed() {
		fmt.Printf("  %-12s %s%s%s since %s\n", "claimed by:", colorCyan, t.ClaimedBy, colorReset,
			t.ClaimedAt.Format("2006-01-02 15:04"))
	}
	fmt.Printf("  %-12s %s\n", "created:", t.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("  %-12s %s\n", "updated:", t.UpdatedAt.Format("2006-01-02 15:04"))
	if t.CompletedAt != nil {
		fmt.Printf("  %-12s %s\n", "completed:", t.CompletedAt.Format("2006-01-02 15:04"))
	}

	if t.Description != "" {
		fmt.Printf("\n%sDescription%s\n  %s\n", colorBold, colorReset, t.Description)
	}

	if len(t.DependsOn) > 0 {
		fmt.Printf("\n%sDepends on%s\n", colorBold, colorReset)
		for _, dep := range t.DependsOn {
			d, err := tr.Get(dep)
			if err != nil {
				fmt.Printf("  %s%.8s%s (missing)\n", colorDim, dep, colorReset)
				continue
			}
			mark := colorRed + "○" + colorReset
			if d.Status == task.StatusCompleted {
				mark = colorGreen + "●" + colorReset
			}
			fmt.Printf("  %s %s%s%s %s\n", mark, colorYellow, d.ShortID(), colorReset, d.Title)
		}
	}

	if len(t.AcceptanceCriteria) > 0 {
		fmt.Printf("\n%sAcceptance criteria%s\n", colorBold, colorReset)
		for i, c := range t.AcceptanceCriteria {
			fmt.Printf("  %d. %s\n", i+1, c)
		}
	}

	if len(t.CodeRefs) > 0 {
		fmt.Printf("\n%sCode references%s\n", colorBold, colorReset)
		for _, r := range t.CodeRefs {
			if r.Description != "" {
				fmt.Printf("  %s%s%s — %s\n", colorCyan, r.Path, colorReset, r.Description)
			} else {
				fmt.Printf("  %s%s%s\n", colorCyan, r.Path, colorReset)
			}
		}
	}

	if len(t.Discussion) > 0 {
		fmt.Printf("\n%sDiscussion%s\n", colorBold, colorReset)
		for _, c := range t.Discussion {
			fmt.Printf("  %s%s%s %s%s%s\n", colorCyan, c.Author, colorReset,
				colorDim, c.Timestamp.Format("2006-01-02 15:04"), colorReset)
			fmt.Printf("    %s\n", c.Text)
		}
	}

	return nil
}
