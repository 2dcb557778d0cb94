package internal

import (
	"path/filepath"
	"testing"
)

func TestVaultConfig_PathRequired(t *testing.T) {
	cfg := VaultConfig{Path: ""}
	if err := cfg.Validate(); err == nil {
		t.Error("empty vault path should fail validation")
	}
}

func TestEditorConfig_CommandRequired(t *testing.T) {
	cfg := EditorConfig{Command: ""}
	if err := cfg.Validate(); err == nil {
		t.Error("empty editor command should fail validation")
	}
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Vault.Path == "" {
		t.Error("default vault path is empty")
	}
	if cfg.Editor.Command != "nano" {
		t.Errorf("default editor = %q, want nano", cfg.Editor.Command)
	}
}

func TestDefaultVaultPath_HomeSet(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	want := filepath.Join(home, ".fsk", "db")
	if got := DefaultVaultPath(); got != want {
		t.Errorf("DefaultVaultPath = %q, want %q", got, want)
	}
}

func TestDefaultVaultPath_NoHome(t *testing.T) {
	t.Setenv("HOME", "")
	if got := DefaultVaultPath(); got != filepath.Join(".", "db") {
		t.Errorf("DefaultVaultPath = %q, want ./db fallback", got)
	}
}
