package cli

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow board activity live",
	Long:  "Tails the coordination log and prints each new event as other actors add, claim, and complete tasks. Ctrl-C to stop.",
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	tr, _, err := openTracker()
	if err != nil {
		return err
	}
	s := tr.Store()

	events, err := s.ReadLog()
	if err != nil {
		return err
	}
	var lastSeq int64
	if len(events) > 0 {
		lastSeq = events[len(events)-1].Seq
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: the snapshot rename dance can
	// briefly replace inodes and a file watch would go stale.
	if err := watcher.Add(s.Dir()); err != nil {
		return fmt.Errorf("watch %s: %w", s.Dir(), err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("%sWatching %s (seq %d). Ctrl-C to stop.%s\n", colorDim, s.Dir(), lastSeq, colorReset)

	logName := filepath.Base(s.LogPath())
	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != logName || !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			all, err := s.ReadLog()
			if err != nil {
				continue
			}
			for _, e := range all {
				if e.Seq > lastSeq {
					printEvent(e)
					lastSeq = e.Seq
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Printf("%swatch error: %v%s\n", colorRed, err, colorReset)
		}
	}
}
