package cli

import (
	"fmt"

	"github.com/rosterhq/roster/internal/store"
	"github.com/spf13/cobra"
)

var eventsLimit int

var eventsCmd = &cobra.Command{
	Use:   "events [id]",
	Short: "Show the coordination log, or one task's history",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEvents,
}

func init() {
	eventsCmd.Flags().IntVarP(&eventsLimit, "limit", "n", 20, "Max events to show (project-wide view)")
}

func runEvents(cmd *cobra.Command, args []string) error {
	tr, _, err := openTracker()
	if err != nil {
		return err
	}

	var events []store.Event
	if len(args) == 1 {
		events, err = tr.TaskEvents(args[0])
	} else {
		events, err = tr.Tail(eventsLimit)
	}
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Printf("%sNo events yet.%s\n", colorDim, colorReset)
		return nil
	}

	for _, e := range events {
		printEvent(e)
	}
	return nil
}

func printEvent(e store.Event) {
	id := ""
	if e.TaskID != "" {
		id = fmt.Sprintf("%s%.8s%s ", colorYellow, e.TaskID, colorReset)
	}
	detail := eventDetail(e)
	fmt.Printf("%s%4d%s  %s  %s%-15s%s %s%s\n",
		colorDim, e.Seq, colorReset,
		e.Timestamp.Format("2006-01-02 15:04:05"),
		colorCyan, e.Actor, colorReset,
		id, detail)
}

func eventDetail(e store.Event) string {
	switch e.Kind {
	case store.KindCreated:
		if e.Payload.Task != nil {
			return fmt.Sprintf("created %q", e.Payload.Task.Title)
		}
		return "created"
	case store.KindClaimed:
		return "claimed"
	case store.KindReleased:
		return "released"
	case store.KindStatusChanged:
		return fmt.Sprintf("%s → %s", e.Payload.From, e.Payload.To)
	case store.KindArchived:
		return "archived"
	case store.KindCommented:
		if e.Payload.Comment != nil {
			return fmt.Sprintf("commented: %s", truncate(e.Payload.Comment.Text, 60))
		}
		return "commented"
	case store.KindUpdated:
		return "updated"
	case store.KindProjectCreated:
		return "project created"
	}
	return string(e.Kind)
}
