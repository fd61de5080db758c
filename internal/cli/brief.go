package cli

import (
	"fmt"
	"time"

	"github.com/rosterhq/roster/internal/brief"
	"github.com/spf13/cobra"
)

var briefCmd = &cobra.Command{
	Use:   "brief [id]",
	Short: "Print a markdown work briefing for a task",
	Long:  "Renders everything known about a task as one markdown document: record, dependencies, acceptance criteria, discussion, history. Meant to be pasted into an agent's prompt or read before picking up work.",
	Args:  cobra.ExactArgs(1),
	RunE:  runBrief,
}

func runBrief(cmd *cobra.Command, args []string) error {
	tr, _, err := openTracker()
	if err != nil {
		return err
	}

	t, err := tr.Get(args[0])
	if err != nil {
		return err
	}
	snap, err := tr.Store().Load()
	if err != nil {
		return err
	}
	events, err := tr.Store().TaskEvents(t.ID)
	if err != nil {
		return err
	}

	fmt.Println(brief.New(snap, events).Build(t, time.Now()))
	return nil
}
