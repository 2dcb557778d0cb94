package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/starford/fsk/internal/apperr"
	"github.com/starford/fsk/internal/models"
)

const noteExt = ".md"

// FS implements Vault backed by the local file system.
type FS struct {
	root string // absolute path to the vault root
	log  *slog.Logger
}

// NewFS creates a new FS vault rooted at the given directory.
// The directory must already exist.
func NewFS(root string, logger *slog.Logger) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: root is not a directory: %s", abs)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FS{root: abs, log: logger}, nil
}

// Root returns the absolute vault root path.
func (f *FS) Root() string {
	return f.root
}

// safePath resolves a relative path against the vault root and rejects
// any result that escapes it (directory traversal).
func (f *FS) safePath(rel string) (string, error) {
	if rel == "" {
		return f.root, nil
	}
	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("storage: absolute path %q: %w", rel, apperr.ErrEscapesVault)
	}
	joined := filepath.Join(f.root, cleaned)
	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("storage: resolve path: %w", err)
	}
	if !strings.HasPrefix(abs, f.root+string(os.PathSeparator)) && abs != f.root {
		return "", fmt.Errorf("storage: path %q: %w", rel, apperr.ErrEscapesVault)
	}
	return abs, nil
}

// notePath maps a title to the absolute path of its .md file.
func (f *FS) notePath(title string) (string, error) {
	if title == "" {
		return "", fmt.Errorf("storage: empty title")
	}
	return f.safePath(title + noteExt)
}

// Resolve returns the absolute path for a title; an empty title resolves
// to the vault root (the traversal root).
func (f *FS) Resolve(title string) (string, error) {
	if title == "" {
		return f.root, nil
	}
	return f.notePath(title)
}

// title converts an absolute note path back to its title.
func (f *FS) title(abs string) (string, bool) {
	rel, err := filepath.Rel(f.root, abs)
	if err != nil {
		return "", false
	}
	return strings.TrimSuffix(filepath.ToSlash(rel), noteExt), true
}

// Read returns the raw bytes of a note.
func (f *FS) Read(title string) ([]byte, error) {
	abs, err := f.notePath(title)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("storage: note %q: %w", title, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("storage: read %s: %w", title, err)
	}
	return data, nil
}

// Write atomically writes content: tmp file → fsync → rename. Parent
// directories are created as needed.
func (f *FS) Write(title string, content []byte) error {
	abs, err := f.notePath(title)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".fsk-tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("storage: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("storage: rename: %w", err)
	}
	success = true
	return nil
}

// List walks folder (relative to root) and returns every note title in
// ascending order. A folder that does not exist yields an empty result.
func (f *FS) List(folder string) ([]string, error) {
	base, err := f.safePath(folder)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(base)
	if err != nil || !info.IsDir() {
		return nil, nil
	}

	var titles []string
	skipped := 0
	_ = filepath.WalkDir(base, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			skipped++
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), noteExt) {
			return nil
		}
		if t, ok := f.title(p); ok {
			titles = append(titles, t)
		}
		return nil
	})
	if skipped > 0 {
		f.log.Debug("list: skipped unreadable entries", slog.Int("count", skipped))
	}

	// Walk order depends on the OS; sorting makes output deterministic.
	sort.Strings(titles)
	return titles, nil
}

// Search scans every note for the keyword, case-insensitively. A title
// hit is emitted without reading the file; otherwise the first matching
// content line becomes the preview. Results stay in walk order.
func (f *FS) Search(keyword string) ([]models.SearchResult, error) {
	kw := strings.ToLower(keyword)
	var results []models.SearchResult
	skipped := 0

	_ = filepath.WalkDir(f.root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			skipped++
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), noteExt) {
			return nil
		}
		title, ok := f.title(p)
		if !ok {
			return nil
		}

		if strings.Contains(strings.ToLower(title), kw) {
			results = append(results, models.SearchResult{Title: title, TitleMatch: true})
			return nil
		}

		data, err := os.ReadFile(p)
		if err != nil {
			skipped++
			return nil
		}
		for _, line := range strings.Split(string(data), "\n") {
			if strings.Contains(strings.ToLower(line), kw) {
				results = append(results, models.SearchResult{
					Title:   title,
					Preview: strings.TrimSpace(line),
				})
				break
			}
		}
		return nil
	})
	if skipped > 0 {
		f.log.Debug("search: skipped unreadable entries", slog.Int("count", skipped))
	}
	return results, nil
}

// Remove deletes the note with the given title, pruning parent
// directories left empty. When no such note exists but a folder of that
// name does, the whole folder subtree is deleted instead.
func (f *FS) Remove(title string) error {
	abs, err := f.notePath(title)
	if err != nil {
		return err
	}
	if info, statErr := os.Stat(abs); statErr == nil && !info.IsDir() {
		if err := os.Remove(abs); err != nil {
			return fmt.Errorf("storage: remove %s: %w", title, err)
		}
		f.pruneEmptyDirs(filepath.Dir(abs))
		return nil
	}

	dir, err := f.safePath(title)
	if err != nil {
		return err
	}
	if info, statErr := os.Stat(dir); statErr == nil && info.IsDir() {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("storage: remove folder %s: %w", title, err)
		}
		return nil
	}

	return fmt.Errorf("storage: remove %q: %w", title, apperr.ErrNotFound)
}

// pruneEmptyDirs removes now-empty directories walking upward from dir,
// stopping at the first non-empty directory. The vault root is never
// removed.
func (f *FS) pruneEmptyDirs(dir string) {
	for dir != f.root && strings.HasPrefix(dir, f.root+string(os.PathSeparator)) {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}

// Move renames a note within the vault, creating destination parent
// directories as needed. Rename semantics are the host OS's own; a
// cross-device source and destination fail with the underlying error.
func (f *FS) Move(oldTitle, newTitle string) error {
	absOld, err := f.notePath(oldTitle)
	if err != nil {
		return err
	}
	absNew, err := f.notePath(newTitle)
	if err != nil {
		return err
	}
	dir := filepath.Dir(absNew)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: mkdir for move: %w", err)
	}
	if err := os.Rename(absOld, absNew); err != nil {
		return fmt.Errorf("storage: move: %w", err)
	}
	return nil
}

// Export copies folder (the whole vault when empty) to dest. Existing
// destination files are overwritten; nothing is filtered out. A failed
// copy may leave a partially populated destination tree.
func (f *FS) Export(folder, dest string) error {
	src, err := f.safePath(folder)
	if err != nil {
		return err
	}
	if info, statErr := os.Stat(src); statErr != nil || !info.IsDir() {
		return fmt.Errorf("storage: export source %q: %w", folder, apperr.ErrNotFound)
	}
	if err := copyTree(src, dest); err != nil {
		return fmt.Errorf("storage: export: %w", err)
	}
	return nil
}

// Import copies the tree at src into the vault root.
func (f *FS) Import(src string) error {
	if info, statErr := os.Stat(src); statErr != nil || !info.IsDir() {
		return fmt.Errorf("storage: import source %q: %w", src, apperr.ErrNotFound)
	}
	if err := copyTree(src, f.root); err != nil {
		return fmt.Errorf("storage: import: %w", err)
	}
	return nil
}

// copyTree recursively copies every file and directory under src to dst.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(p, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
