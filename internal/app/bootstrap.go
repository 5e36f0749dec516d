package app

import (
	"log/slog"

	"rlpmon/internal/infra"
	"rlpmon/internal/infra/storage"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config  *infra.Config
	Storage *storage.Storage
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization (config, logger, DB)
func (b *Bootstrap) Initialize(configPath string) error {
	cfg, err := infra.LoadConfig(configPath)
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	b.Storage = store
	slog.Info("Database initialized", slog.String("path", cfg.Storage.Path))

	return nil
}
