package cli

import (
	"fmt"
	"time"

	"github.com/rosterhq/roster/internal/task"
	"github.com/rosterhq/roster/internal/tracker"
	"github.com/spf13/cobra"
)

var (
	lsStatus    string
	lsAll       bool
	lsPriority  string
	lsTags      []string
	lsSearch    string
	lsMine      bool
	lsUnclaimed bool
	lsReady     bool
	lsSort      string
	lsLimit     int
)

var lsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks ranked by urgency",
	RunE:    runLs,
}

func init() {
	lsCmd.Flags().StringVarP(&lsStatus, "status", "s", "", "Filter by status: backlog, pending, completed, archived")
	lsCmd.Flags().BoolVarP(&lsAll, "all", "a", false, "Include completed and archived tasks")
	lsCmd.Flags().StringVarP(&lsPriority, "priority", "p", "", "Filter by priority")
	lsCmd.Flags().StringSliceVarP(&lsTags, "tag", "t", nil, "Filter by tag (repeatable, all must match)")
	lsCmd.Flags().StringVar(&lsSearch, "search", "", "Substring match on title, description, tags")
	lsCmd.Flags().BoolVarP(&lsMine, "mine", "m", false, "Only tasks claimed by the current actor")
	lsCmd.Flags().BoolVar(&lsUnclaimed, "unclaimed", false, "Only unclaimed tasks")
	lsCmd.Flags().BoolVar(&lsReady, "ready", false, "Exclude tasks blocked by incomplete dependencies")
	lsCmd.Flags().StringVar(&lsSort, "sort", "urgency", "Sort key: urgency, due, created, priority")
	lsCmd.Flags().IntVarP(&lsLimit, "limit", "n", 0, "Max rows (0 = config default)")
}

func runLs(cmd *cobra.Command, args []string) error {
	tr, cfg, err := openTracker()
	if err != nil {
		return err
	}

	f := tracker.Filter{
		All:       lsAll,
		Tags:      lsTags,
		Search:    lsSearch,
		Unclaimed: lsUnclaimed,
		Ready:     lsReady,
		Sort:      lsSort,
		Limit:     lsLimit,
	}
	if f.Limit == 0 {
		f.Limit = cfg.ListLimit
	}
	if lsStatus != "" {
		st := task.Status(lsStatus)
		if !st.Valid() {
			return fmt.Errorf("invalid status %q", lsStatus)
		}
		f.Status = st
	}
	if lsPriority != "" {
		p, ok := task.ParsePriority(lsPriority)
		if !ok {
			return fmt.Errorf("invalid priority %q", lsPriority)
		}
		f.Priority = &p
	}
	if lsMine {
		f.ClaimedBy = resolveActor(cfg)
	}

	ranked, err := tr.List(f)
	if err != nil {
		return err
	}

	if len(ranked) == 0 {
		fmt.Printf("%sNo matching tasks.%s Add one: %sroster add \"description\"%s\n",
			colorDim, colorReset, colorCyan, colorReset)
		return nil
	}

	now := time.Now()
	fmt.Printf("%s%-9s %-6s %-9s %-45s %-12s %s%s\n",
		colorBold, "ID", "URG", "PRI", "TITLE", "CLAIMED BY", "DUE", colorReset)
	for _, r := range ranked {
		printRow(r, now)
	}
	return nil
}

func printRow(r task.Ranked, now time.Time) {
	pri := ""
	if r.Priority != task.PriorityNone {
		pri = string(r.Priority)
	}

	title := truncate(r.Title, 45)
	marker := ""
	if r.Blocked {
		marker = colorRed + " ⊘" + colorReset
	}

	dueStr := ""
	dueColor := ""
	if r.DueAt != nil {
		dueStr = r.DueAt.Format("2006-01-02")
		if r.IsOverdue(now) {
			dueColor = colorRed + colorBold
		}
	}

	fmt.Printf("%s%-9s%s %-6.1f %s%-9s%s %-45s %s%-12s%s %s%s%s%s\n",
		colorYellow, r.ShortID(), colorReset,
		r.Urgency,
		priorityColor(r.Priority), pri, colorReset,
		title,
		colorCyan, r.ClaimedBy, colorReset,
		dueColor, dueStr, colorReset,
		marker)
}
