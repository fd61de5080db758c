package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rosterhq/roster/internal/actor"
	"github.com/rosterhq/roster/internal/config"
	"github.com/rosterhq/roster/internal/tracker"
)

// openTracker locates the nearest .roster/ above the working directory
// and wires a tracker with the project's config.
func openTracker() (*tracker.Tracker, *config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil, err
	}
	root, err := tracker.FindRoot(cwd)
	if err != nil {
		return nil, nil, fmt.Errorf("no roster project here. Run: roster init")
	}
	dir := tracker.StateDir(root)

	cfg, err := loadConfig(dir)
	if err != nil {
		return nil, nil, err
	}

	tr := tracker.New(dir, tracker.Options{
		Logger:       newLogger(),
		Weights:      &cfg.Urgency,
		RequireClaim: cfg.RequireClaim,
	})
	return tr, cfg, nil
}

// loadConfig reads .roster/config.yaml, falling back to defaults when
// the file is absent.
func loadConfig(dir string) (*config.Config, error) {
	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.DefaultConfig(), nil
	}
	return config.Load(path)
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// resolveActor applies the identity chain for the current invocation.
func resolveActor(cfg *config.Config) string {
	return actor.Resolve(flagActor, cfg.DefaultActor)
}
