// Package noteservice coordinates the vault, parser, and editor for the
// CLI and MCP surfaces.
package noteservice

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/starford/fsk/internal/apperr"
	"github.com/starford/fsk/internal/editor"
	"github.com/starford/fsk/internal/models"
	"github.com/starford/fsk/internal/parser"
	"github.com/starford/fsk/internal/render"
	"github.com/starford/fsk/internal/storage"
)

// Service exposes all note operations. Each operation is stateless; the
// filesystem is the sole source of truth.
type Service struct {
	vault     storage.Vault
	editorCmd string
	log       *slog.Logger
}

// New creates a note service. editorCmd is the configured fallback
// editor; EDITOR from the environment still wins at launch time.
func New(vault storage.Vault, editorCmd string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{vault: vault, editorCmd: editorCmd, log: logger}
}

// Get reads a note and enriches it with its checksum, document title,
// and tags.
func (s *Service) Get(_ context.Context, title string) (*models.NoteDetail, error) {
	data, err := s.vault.Read(title)
	if err != nil {
		return nil, err
	}
	path, err := s.vault.Resolve(title)
	if err != nil {
		return nil, err
	}
	res := parser.Parse(data)
	return &models.NoteDetail{
		Title:    title,
		Path:     path,
		Content:  string(data),
		Checksum: sum(data),
		DocTitle: res.Title,
		Tags:     res.Tags,
	}, nil
}

// Create writes a new note. It refuses to overwrite an existing one.
func (s *Service) Create(_ context.Context, title string, content []byte) error {
	if _, err := s.vault.Read(title); err == nil {
		return fmt.Errorf("note %q: %w", title, apperr.ErrAlreadyExists)
	}
	if err := s.vault.Write(title, content); err != nil {
		return err
	}
	s.log.Info("created", slog.String("title", title))
	return nil
}

// Edit opens the note in the external editor, creating parent
// directories first. It returns the absolute path that was edited.
func (s *Service) Edit(ctx context.Context, title string) (string, error) {
	path, err := s.vault.Resolve(title)
	if err != nil {
		return "", err
	}
	cmd := editor.Command(s.editorCmd)
	s.log.Debug("launching editor", slog.String("command", cmd), slog.String("path", path))
	if err := editor.Launch(ctx, cmd, path); err != nil {
		return "", err
	}
	s.log.Info("note saved", slog.String("title", title))
	return path, nil
}

// List returns the sorted titles under folder (whole vault when empty).
func (s *Service) List(_ context.Context, folder string) ([]string, error) {
	return s.vault.List(folder)
}

// Search returns keyword hits in walk order.
func (s *Service) Search(_ context.Context, keyword string) ([]models.SearchResult, error) {
	return s.vault.Search(keyword)
}

// Remove deletes a note (pruning empty parents) or a whole folder.
func (s *Service) Remove(_ context.Context, title string) error {
	if err := s.vault.Remove(title); err != nil {
		return err
	}
	s.log.Info("removed", slog.String("title", title))
	return nil
}

// Move renames a note, creating destination parents.
func (s *Service) Move(_ context.Context, oldTitle, newTitle string) error {
	if err := s.vault.Move(oldTitle, newTitle); err != nil {
		return err
	}
	s.log.Info("moved", slog.String("from", oldTitle), slog.String("to", newTitle))
	return nil
}

// Export copies folder (whole vault when empty) to dest verbatim.
func (s *Service) Export(_ context.Context, folder, dest string) error {
	return s.vault.Export(folder, dest)
}

// Import copies the tree at src into the vault.
func (s *Service) Import(_ context.Context, src string) error {
	return s.vault.Import(src)
}

// ExportHTML renders every note under folder to an .html file below
// dest, preserving the folder structure. The page title comes from the
// note's frontmatter or first heading, falling back to the note title.
func (s *Service) ExportHTML(_ context.Context, folder, dest string) error {
	titles, err := s.vault.List(folder)
	if err != nil {
		return err
	}
	for _, title := range titles {
		data, err := s.vault.Read(title)
		if err != nil {
			s.log.Warn("html export: read failed", slog.String("title", title), slog.String("error", err.Error()))
			continue
		}
		res := parser.Parse(data)
		docTitle := res.Title
		if docTitle == "" {
			docTitle = title
		}
		page, err := render.Page(docTitle, []byte(res.Body))
		if err != nil {
			return fmt.Errorf("render %s: %w", title, err)
		}
		out := filepath.Join(dest, filepath.FromSlash(title)+".html")
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return fmt.Errorf("html export: mkdir: %w", err)
		}
		if err := os.WriteFile(out, page, 0o644); err != nil {
			return fmt.Errorf("html export: write %s: %w", title, err)
		}
	}
	return nil
}

func sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
