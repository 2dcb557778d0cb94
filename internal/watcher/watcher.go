// Package watcher observes the vault directory tree and reports note
// changes. It maintains no state beyond the watch list; events are
// observational only.
package watcher

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/fsk/internal/models"
)

// EventCallback is called for every observed note change.
type EventCallback func(ev models.NoteEvent)

// Watch starts an fsnotify watcher on the vault root and reports .md
// file changes until ctx is cancelled. New directories created at
// runtime are automatically added to the watch list.
//
// fsnotify fires Rename on the old path only; the new path arrives as a
// separate Create event when it lands inside a watched directory, so a
// rename surfaces as removed + created.
func Watch(ctx context.Context, root string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, root); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", root))

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			absPath := ev.Name

			// New directories join the watch list; notes already inside
			// them are announced as created.
			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(absPath); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, absPath); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", absPath),
							slog.String("error", addErr.Error()))
					} else {
						logger.Debug("watcher: watching new dir", slog.String("path", absPath))
					}
					announceDir(root, absPath, cb)
					continue
				}
			}

			if !strings.HasSuffix(absPath, ".md") {
				continue
			}
			title, ok := titleOf(root, absPath)
			if !ok {
				continue
			}

			switch {
			case ev.Op&fsnotify.Create != 0:
				emit(logger, cb, models.NoteEvent{Kind: "created", Title: title})
			case ev.Op&fsnotify.Write != 0:
				emit(logger, cb, models.NoteEvent{Kind: "updated", Title: title})
			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				emit(logger, cb, models.NoteEvent{Kind: "removed", Title: title})
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

func emit(logger *slog.Logger, cb EventCallback, ev models.NoteEvent) {
	logger.Debug("watcher: event", slog.String("kind", ev.Kind), slog.String("title", ev.Title))
	if cb != nil {
		cb(ev)
	}
}

// announceDir reports any .md files already present in a newly created
// directory (they were written before the directory was watched).
func announceDir(root, dir string, cb EventCallback) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		if title, ok := titleOf(root, path); ok && cb != nil {
			cb(models.NoteEvent{Kind: "created", Title: title})
		}
		return nil
	})
}

func titleOf(root, abs string) (string, bool) {
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", false
	}
	return strings.TrimSuffix(filepath.ToSlash(rel), ".md"), true
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
