package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/rosterhq/roster/internal/task"
	"github.com/rosterhq/roster/internal/tracker"
	"github.com/spf13/cobra"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the task board",
	RunE:  runBoard,
}

func runBoard(cmd *cobra.Command, args []string) error {
	tr, _, err := openTracker()
	if err != nil {
		return err
	}

	ranked, err := tr.List(tracker.Filter{All: true})
	if err != nil {
		return err
	}

	if len(ranked) == 0 {
		fmt.Printf("%sBoard is empty.%s Add a task: %sroster add \"description\"%s\n",
			colorDim, colorReset, colorCyan, colorReset)
		return nil
	}

	columns := map[task.Status][]task.Ranked{}
	for _, r := range ranked {
		columns[r.Status] = append(columns[r.Status], r)
	}

	type col struct {
		status task.Status
		label  string
		color  string
	}
	order := []col{
		{task.StatusBacklog, "BACKLOG", colorWhite},
		{task.StatusPending, "IN PROGRESS", colorBlue},
		{task.StatusCompleted, "DONE", colorGreen},
	}

	colWidth := 28
	headerLine := ""
	sepLine := ""
	for _, c := range order {
		count := len(columns[c.status])
		header := fmt.Sprintf(" %s%s%s (%d)", c.color+colorBold, c.label, colorReset, count)
		// padRight needs visible length, not byte length (ANSI codes add bytes).
		visibleLen := len(fmt.Sprintf(" %s (%d)", c.label, count))
		padding := colWidth - visibleLen
		if padding < 0 {
			padding = 0
		}
		headerLine += header + strings.Repeat(" ", padding)
		sepLine += strings.Repeat("─", colWidth)
	}
	fmt.Println(headerLine)
	fmt.Println(colorDim + sepLine + colorReset)

	maxRows := 0
	for _, c := range order {
		if len(columns[c.status]) > maxRows {
			maxRows = len(columns[c.status])
		}
	}

	now := time.Now()
	for i := 0; i < maxRows; i++ {
		line := ""
		for _, c := range order {
			cards := columns[c.status]
			if i < len(cards) {
				r := cards[i]
				idStr := r.ShortID()
				titleStr := truncate(r.Title, colWidth-len(idStr)-3)
				card := fmt.Sprintf(" %s%s%s %s", priorityColor(r.Priority), idStr, colorReset, titleStr)
				visibleLen := len(fmt.Sprintf(" %s %s", idStr, titleStr))
				padding := colWidth - visibleLen
				if padding < 0 {
					padding = 0
				}
				line += card + strings.Repeat(" ", padding)
			} else {
				line += strings.Repeat(" ", colWidth)
			}
		}
		fmt.Println(line)

		// Claimant/deadline line below each card.
		detailLine := ""
		for _, c := range order {
			cards := columns[c.status]
			if i < len(cards) {
				r := cards[i]
				detail := ""
				visibleDetail := ""
				if r.IsClaimed() {
					detail = fmt.Sprintf("    %s[%s]%s", colorCyan, r.ClaimedBy, colorReset)
					visibleDetail = fmt.Sprintf("    [%s]", r.ClaimedBy)
				}
				if r.IsOverdue(now) {
					overdue := r.DueAt.Format("Jan 2")
					detail = fmt.Sprintf("    %s⚠ due %s%s", colorRed, overdue, colorReset)
					visibleDetail = fmt.Sprintf("    . due %s", overdue)
				}
				padding := colWidth - len(visibleDetail)
				if padding < 0 {
					padding = 0
				}
				detailLine += detail + strings.Repeat(" ", padding)
			} else {
				detailLine += strings.Repeat(" ", colWidth)
			}
		}
		fmt.Println(detailLine)
	}

	// Summary line.
	overdueCount := 0
	claimedCount := 0
	for _, r := range ranked {
		if r.IsOverdue(now) {
			overdueCount++
		}
		if r.IsClaimed() {
			claimedCount++
		}
	}
	fmt.Printf("\n%s%d tasks%s", colorBold, len(ranked), colorReset)
	if n := len(columns[task.StatusCompleted]); n > 0 {
		fmt.Printf("  %s✓ %d done%s", colorGreen, n, colorReset)
	}
	if claimedCount > 0 {
		fmt.Printf("  %s● %d claimed%s", colorBlue, claimedCount, colorReset)
	}
	if overdueCount > 0 {
		fmt.Printf("  %s⚠ %d overdue%s", colorRed, overdueCount, colorReset)
	}
	fmt.Println()

	return nil
}
