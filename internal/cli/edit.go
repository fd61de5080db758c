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
	editTitle      string
	editDesc       string
	editPriority   string
	editDue        string
	editClearDue   bool
	editAddTags    []string
	editRemoveTags []string
	editCriteria   []string
	editRefs       []string
	editDeps       []string
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit task fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVarP(&editDesc, "desc", "d", "", "New description")
	editCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "New priority: high, medium, low, none")
	editCmd.Flags().StringVar(&editDue, "due", "", "New due date")
	editCmd.Flags().BoolVar(&editClearDue, "clear-due", false, "Remove the due date")
	editCmd.Flags().StringSliceVar(&editAddTags, "add-tag", nil, "Add a tag (repeatable)")
	editCmd.Flags().StringSliceVar(&editRemoveTags, "remove-tag", nil, "Remove a tag (repeatable)")
	editCmd.Flags().StringSliceVar(&editCriteria, "criteria", nil, "Replace acceptance criteria (repeatable)")
	editCmd.Flags().StringSliceVar(&editRefs, "ref", nil, "Add code reference as path[:description] (repeatable)")
	editCmd.Flags().StringSliceVar(&editDeps, "depends-on", nil, "Replace dependency set (repeatable)")
}

func runEdit(cmd *cobra.Command, args []string) error {
	tr, cfg, err := openTracker()
	if err != nil {
		return err
	}

	var req tracker.EditRequest
	if cmd.Flags().Changed("title") {
		req.Title = &editTitle
	}
	if cmd.Flags().Changed("desc") {
		req.Description = &editDesc
	}
	if cmd.Flags().Changed("priority") {
		p, ok := task.ParsePriority(editPriority)
		if !ok {
			return fmt.Errorf("invalid priority %q", editPriority)
		}
		req.Priority = &p
	}
	if editDue != "" {
		d, err := due.Parse(editDue, time.Now())
		if err != nil {
			return err
		}
		req.DueAt = &d
	}
	req.ClearDue = editClearDue
	req.AddTags = editAddTags
	req.RemoveTags = editRemoveTags
	if cmd.Flags().Changed("criteria") {
		req.Criteria = editCriteria
	}
	if cmd.Flags().Changed("depends-on") {
		req.DependsOn = editDeps
	}
	for _, r := range editRefs {
		ref := task.CodeRef{Path: r}
		if path, desc, ok := strings.Cut(r, ":"); ok {
			ref = task.CodeRef{Path: path, Description: desc}
		}
		req.AddRefs = append(req.AddRefs, ref)
	}

	t, _, err := tr.Edit(args[0], req, resolveActor(cfg))
	if err != nil {
		return err
	}

	fmt.Printf("Updated %s%s%s: %s\n", colorYellow, t.ShortID(), colorReset, t.Title)
	return nil
}
