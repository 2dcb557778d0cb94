// Package internal wires configuration, logging, storage, and the note
// service for the fsk CLI.
package internal

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/fsk/internal/noteservice"
	"github.com/starford/fsk/internal/storage"
	pkgconfig "github.com/starford/fsk/pkg/config"
)

// Setup loads configuration, prepares the vault directory, and wires the
// note service. The config file is optional; defaults are complete on
// their own. The vault path is resolved once here and injected
// everywhere, so no storage operation reads the environment.
func Setup(configPath string, verbose bool) (*noteservice.Service, *Config, *slog.Logger, error) {
	cfg := NewDefaultConfig()
	if configPath == "" {
		configPath = DefaultConfigPath()
	}
	if err := pkgconfig.LoadIfExists(configPath, cfg); err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.App.LogLevel
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(cfg.Vault.Path, 0o755); err != nil {
		return nil, nil, nil, fmt.Errorf("create vault dir: %w", err)
	}
	vault, err := storage.NewFS(cfg.Vault.Path, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init storage: %w", err)
	}

	logger.Debug("configuration loaded",
		slog.String("vault_path", cfg.Vault.Path),
		slog.String("editor", cfg.Editor.Command),
		slog.String("log_level", level.String()))

	svc := noteservice.New(vault, cfg.Editor.Command, logger)
	return svc, cfg, logger, nil
}
