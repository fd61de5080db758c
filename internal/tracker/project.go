package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rosterhq/roster/internal/store"
)

// DirName is the per-project state directory, committed alongside the
// code it tracks.
const DirName = ".roster"

const projectFile = "project.json"

// ErrNoProject means no .roster directory was found walking up from the
// working directory.
var ErrNoProject = errors.New("not in a roster project (run 'roster init' first)")

// Project identifies one tracked project. It is created once by init,
// read and updated afterwards, never deleted.
type Project struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Status      string            `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	ModifiedAt  time.Time         `json:"modified_at"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// FindRoot walks up from start looking for a directory containing
// .roster/project.json.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", start, err)
	}
	for {
		marker := filepath.Join(dir, DirName, projectFile)
		if _, err := os.Stat(marker); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoProject
		}
		dir = parent
	}
}

// StateDir returns the .roster directory under root.
func StateDir(root string) string {
	return filepath.Join(root, DirName)
}

// LoadProject reads .roster/project.json under root.
func LoadProject(root string) (*Project, error) {
	data, err := os.ReadFile(filepath.Join(StateDir(root), projectFile))
	if err != nil {
		return nil, fmt.Errorf("read project file: %w", err)
	}
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse project file: %w", err)
	}
	return &p, nil
}

// SaveProject writes the project file atomically.
func SaveProject(root string, p *Project) error {
	p.ModifiedAt = time.Now().UTC()
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}
	dir := StateDir(root)
	tmp, err := os.CreateTemp(dir, projectFile+".tmp-")
	if err != nil {
		return fmt.Errorf("create project temp file: %w", err)
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write project file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close project temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, projectFile)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("publish project file: %w", err)
	}
	return nil
}

// InitProject scaffolds .roster/ under root: project.json, an empty
// snapshot, and the genesis event. It refuses to re-initialize an
// existing project.
func InitProject(root, name, description string) (*Project, error) {
	dir := StateDir(root)
	if _, err := os.Stat(filepath.Join(dir, projectFile)); err == nil {
		return nil, fmt.Errorf("project already initialized (%s exists)", filepath.Join(DirName, projectFile))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", DirName, err)
	}

	if name == "" {
		name = filepath.Base(root)
	}
	now := time.Now().UTC()
	p := &Project{
		ID:          strings.ToLower(strings.ReplaceAll(filepath.Base(root), " ", "-")),
		Name:        name,
		Description: description,
		Status:      "active",
		CreatedAt:   now,
		ModifiedAt:  now,
	}
	if err := SaveProject(root, p); err != nil {
		return nil, err
	}

	st := store.Open(dir, nil)
	snap, err := st.Load()
	if err != nil {
		return nil, err
	}
	if err := st.Commit(snap, &store.Event{
		Timestamp: now,
		Actor:     "system",
		Kind:      store.KindProjectCreated,
	}); err != nil {
		return nil, err
	}

	return p, nil
}
