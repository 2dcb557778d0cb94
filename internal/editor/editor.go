// Package editor launches the user's external text editor on a note file.
package editor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

const defaultEditor = "nano"

// Command returns the editor command to launch: EDITOR from the
// environment wins, then the configured command, then nano.
func Command(configured string) string {
	if env := os.Getenv("EDITOR"); env != "" {
		return env
	}
	if configured != "" {
		return configured
	}
	return defaultEditor
}

// Launch opens path in the given editor, creating parent directories
// first. The editor inherits the terminal. Success is reported only when
// the editor exits with status zero; the file content is not inspected
// afterward.
func Launch(ctx context.Context, command, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("editor: create note directory: %w", err)
	}

	cmd := exec.CommandContext(ctx, command, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor: %s: %w", command, err)
	}
	return nil
}
