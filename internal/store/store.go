// Package store persists roster state inside a project's .roster/
// directory: a materialized task snapshot (tasks.jsonl) and an
// append-only coordination log (events.jsonl).
//
// Multiple CLI invocations — possibly concurrent, possibly on machines
// sharing a synced directory — mutate the same files, so every write
// goes through an optimistic-concurrency commit: the snapshot carries a
// version marker, and Commit refuses to overwrite a snapshot whose
// version moved since it was read.
package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rosterhq/roster/internal/task"
)

const (
	snapshotFile = "tasks.jsonl"
	logFile      = "events.jsonl"
	lockFile     = "commit.lock"

	snapshotFormat = 1
)

var (
	// ErrNotFound means no task matched the given id or prefix.
	ErrNotFound = errors.New("task not found")

	// ErrConflict means another writer committed since the snapshot was
	// read. The caller must re-read and re-apply its transition.
	ErrConflict = errors.New("snapshot version conflict")
)

// AmbiguousError means a prefix matched more than one task.
type AmbiguousError struct {
	Prefix  string
	Matches []string // short IDs of the candidates
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("prefix %q is ambiguous: matches %s", e.Prefix, strings.Join(e.Matches, ", "))
}

// Store reads and writes the persistent state under dir (the .roster
// directory of one project). A Store holds no open files and no state
// beyond the path, so any number of them may point at the same project.
type Store struct {
	dir    string
	logger *slog.Logger
}

// Open returns a store rooted at dir. A nil logger falls back to
// slog.Default().
func Open(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dir: dir, logger: logger}
}

// Dir returns the directory the store persists into.
func (s *Store) Dir() string { return s.dir }

// LogPath returns the path of the append-only event log.
func (s *Store) LogPath() string { return filepath.Join(s.dir, logFile) }

// header is the first line of the snapshot file.
type header struct {
	Format  int   `json:"format"`
	Version int64 `json:"version"`
	LastSeq int64 `json:"last_seq"`
}

// Snapshot is the materialized current state of all tasks, stamped with
// the version it was read at. Version is the commit token: Commit only
// succeeds if the on-disk snapshot still carries the same version.
type Snapshot struct {
	Version int64
	LastSeq int64
	Tasks   map[string]*task.Task
}

// Load reads the current snapshot. A record that fails to parse is
// skipped with a warning; corruption of one task never hides the rest.
// If the event log runs ahead of the snapshot (a previous writer crashed
// between log append and snapshot rename), the surplus events are
// replayed onto the loaded state.
func (s *Store) Load() (*Snapshot, error) {
	snap := &Snapshot{Tasks: make(map[string]*task.Task)}

	f, err := os.Open(filepath.Join(s.dir, snapshotFile))
	if err != nil {
		if os.IsNotExist(err) {
			return s.reconcile(snap)
		}
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	if sc.Scan() {
		var h header
		if err := json.Unmarshal(sc.Bytes(), &h); err != nil {
			return nil, fmt.Errorf("parse snapshot header: %w", err)
		}
		snap.Version = h.Version
		snap.LastSeq = h.LastSeq
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var t task.Task
		if err := json.Unmarshal([]byte(line), &t); err != nil {
			s.logger.Warn("skipping corrupt task record", "file", snapshotFile, "error", err)
			continue
		}
		if t.ID == "" {
			s.logger.Warn("skipping task record without id", "file", snapshotFile)
			continue
		}
		snap.Tasks[t.ID] = &t
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	return s.reconcile(snap)
}

// reconcile replays log events the snapshot has not absorbed yet.
func (s *Store) reconcile(snap *Snapshot) (*Snapshot, error) {
	events, err := s.ReadLog()
	if err != nil {
		return nil, err
	}
	var applied int
	for _, ev := range events {
		if ev.Seq <= snap.LastSeq {
			continue
		}
		apply(snap.Tasks, ev)
		snap.LastSeq = ev.Seq
		applied++
	}
	if applied > 0 {
		s.logger.Warn("snapshot lagged event log, replayed surplus events",
			"events", applied, "last_seq", snap.LastSeq)
	}
	return snap, nil
}

// Find resolves an id or unique prefix to a task. Exact matches win.
// Prefix matches prefer non-archived tasks; archived tasks are only
// considered when no active task matches. More than one candidate in
// the chosen tier is an AmbiguousError rather than an arbitrary pick.
func (snap *Snapshot) Find(idOrPrefix string) (*task.Task, error) {
	if t, ok := snap.Tasks[idOrPrefix]; ok {
		return t, nil
	}

	var active, archived []*task.Task
	for _, t := range snap.Tasks {
		if !strings.HasPrefix(t.ID, idOrPrefix) {
			continue
		}
		if t.Status == task.StatusArchived {
			archived = append(archived, t)
		} else {
			active = append(active, t)
		}
	}

	candidates := active
	if len(candidates) == 0 {
		candidates = archived
	}
	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("%q: %w", idOrPrefix, ErrNotFound)
	case 1:
		return candidates[0], nil
	}

	matches := make([]string, len(candidates))
	for i, t := range candidates {
		matches[i] = t.ShortID()
	}
	sort.Strings(matches)
	return nil, &AmbiguousError{Prefix: idOrPrefix, Matches: matches}
}

// Commit atomically publishes a new snapshot and appends the events
// that describe the transition. It fails with ErrConflict if another
// writer committed after snap was loaded.
//
// Sequence numbers are allocated here, under the commit lock, so they
// are strictly increasing across all writers. The log is appended
// before the snapshot rename: if the process dies in between, Load
// detects the log running ahead and replays the difference.
func (s *Store) Commit(snap *Snapshot, events ...*Event) error {
	release, err := s.acquireLock()
	if err != nil {
		return err
	}
	defer release()

	cur, err := s.readHeader()
	if err != nil {
		return err
	}
	if cur.Version != snap.Version {
		return fmt.Errorf("expected version %d, found %d: %w", snap.Version, cur.Version, ErrConflict)
	}

	seq := snap.LastSeq
	for _, ev := range events {
		seq++
		ev.Seq = seq
	}
	if err := s.appendLog(events); err != nil {
		return err
	}

	if err := s.writeSnapshot(header{
		Format:  snapshotFormat,
		Version: snap.Version + 1,
		LastSeq: seq,
	}, snap.Tasks); err != nil {
		return err
	}

	snap.Version++
	snap.LastSeq = seq
	return nil
}

// readHeader reads just the version marker of the on-disk snapshot.
func (s *Store) readHeader() (header, error) {
	f, err := os.Open(filepath.Join(s.dir, snapshotFile))
	if err != nil {
		if os.IsNotExist(err) {
			return header{Format: snapshotFormat}, nil
		}
		return header{}, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return header{Format: snapshotFormat}, sc.Err()
	}
	var h header
	if err := json.Unmarshal(sc.Bytes(), &h); err != nil {
		return header{}, fmt.Errorf("parse snapshot header: %w", err)
	}
	return h, nil
}

// writeSnapshot writes the whole snapshot to a temp file and renames it
// into place, so a crash mid-write never exposes a torn snapshot.
func (s *Store) writeSnapshot(h header, tasks map[string]*task.Task) error {
	var buf strings.Builder
	hb, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("marshal snapshot header: %w", err)
	}
	buf.Write(hb)
	buf.WriteByte('\n')

	for _, t := range sortedTasks(tasks) {
		tb, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("marshal task %s: %w", t.ShortID(), err)
		}
		buf.Write(tb)
		buf.WriteByte('\n')
	}

	path := filepath.Join(s.dir, snapshotFile)
	tmp, err := os.CreateTemp(s.dir, snapshotFile+".tmp-")
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}
	if _, err := tmp.WriteString(buf.String()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close snapshot temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("publish snapshot: %w", err)
	}
	return nil
}

// sortedTasks orders tasks by creation time then ID so snapshot files
// diff cleanly under version control.
func sortedTasks(tasks map[string]*task.Task) []*task.Task {
	out := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
