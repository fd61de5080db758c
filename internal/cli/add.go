package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/rosterhq/roster/internal/due"
	"github.com/rosterhq/roster/internal/task"
	"github.com/rosterhq/roster/internal/tracker"
	"github.com/spf13/cobra"
)

var (
	addPriority string
	addDesc     string
	addDue      string
	addTags     []string
	addDeps     []string
	addCriteria []string
	addRefs     []string
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a task to the backlog",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "Priority: high, medium, low")
	addCmd.Flags().StringVarP(&addDesc, "desc", "d", "", "Task description")
	addCmd.Flags().StringVar(&addDue, "due", "", "Due date (\"friday\", \"in 3 days\", \"2026-09-01\", ...)")
	addCmd.Flags().StringSliceVarP(&addTags, "tag", "t", nil, "Tag (repeatable)")
	addCmd.Flags().StringSliceVar(&addDeps, "depends-on", nil, "Task id or prefix this task depends on (repeatable)")
	addCmd.Flags().StringSliceVar(&addCriteria, "criteria", nil, "Acceptance criterion (repeatable)")
	addCmd.Flags().StringSliceVar(&addRefs, "ref", nil, "Code reference as path[:description] (repeatable)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	tr, cfg, err := openTracker()
	if err != nil {
		return err
	}

	req := tracker.AddRequest{
		Title:              strings.Join(args, " "),
		Description:        addDesc,
		Tags:               addTags,
		DependsOn:          addDeps,
		AcceptanceCriteria: addCriteria,
		Actor:              resolveActor(cfg),
	}

	if addPriority != "" {
		p, ok := task.ParsePriority(addPriority)
		if !ok {
			return fmt.Errorf("invalid priority %q (want high, medium, or low)", addPriority)
		}
		req.Priority = p
	}

	if addDue != "" {
		d, err := due.Parse(addDue, time.Now())
		if err != nil {
			return err
		}
		req.DueAt = &d
	}

	for _, r := range addRefs {
		ref := task.CodeRef{Path: r}
		if path, desc, ok := strings.Cut(r, ":"); ok {
			ref = task.CodeRef{Path: path, Description: desc}
		}
		req.CodeRefs = append(req.CodeRefs, ref)
	}

	t, _, err := tr.Add(req)
	if err != nil {
		return err
	}

	fmt.Printf("Added %s%s%s: %s", colorYellow, t.ShortID(), colorReset, t.Title)
	if t.Priority != task.PriorityNone {
		fmt.Printf(" [%s]", t.Priority)
	}
	if t.DueAt != nil {
		fmt.Printf(" due %s", t.DueAt.Format("2006-01-02"))
	}
	fmt.Println()
	return nil
}
