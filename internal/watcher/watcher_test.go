package watcher

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/starford/fsk/internal/models"
)

type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(ev models.NoteEvent) {
	l.mu.Lock()
	l.events = append(l.events, ev.Kind+":"+ev.Title)
	l.mu.Unlock()
}

func (l *eventLog) has(want string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.events {
		if e == want {
			return true
		}
	}
	return false
}

func startWatcher(t *testing.T) (string, *eventLog) {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	log := &eventLog{}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go Watch(ctx, dir, logger, log.add)
	time.Sleep(100 * time.Millisecond)
	return dir, log
}

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func TestWatcher_NewNoteReported(t *testing.T) {
	dir, log := startWatcher(t)

	_ = os.WriteFile(filepath.Join(dir, "new.md"), []byte("# New"), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return log.has("created:new")
	}, "expected created:new event")
}

func TestWatcher_NewDirWatched(t *testing.T) {
	dir, log := startWatcher(t)

	subDir := filepath.Join(dir, "subdir")
	_ = os.MkdirAll(subDir, 0o755)
	time.Sleep(200 * time.Millisecond)

	_ = os.WriteFile(filepath.Join(subDir, "deep.md"), []byte("# Deep"), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return log.has("created:subdir/deep")
	}, "expected created event for note in new subdir")
}

func TestWatcher_RemoveReported(t *testing.T) {
	dir, log := startWatcher(t)

	path := filepath.Join(dir, "del.md")
	_ = os.WriteFile(path, []byte("# Delete Me"), 0o644)
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return log.has("created:del")
	}, "precondition: created event")

	_ = os.Remove(path)
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return log.has("removed:del")
	}, "expected removed:del event")
}

func TestWatcher_RenameReportsRemovedAndCreated(t *testing.T) {
	dir, log := startWatcher(t)

	_ = os.WriteFile(filepath.Join(dir, "old.md"), []byte("# Rename"), 0o644)
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return log.has("created:old")
	}, "precondition: created event")

	_ = os.Rename(filepath.Join(dir, "old.md"), filepath.Join(dir, "renamed.md"))

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return log.has("removed:old") && log.has("created:renamed")
	}, "rename should surface as removed old + created new")
}
