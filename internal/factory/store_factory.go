package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/fuchs284/Cybersecurityproject/internal/adapters/store"
	"github.com/fuchs284/Cybersecurityproject/internal/config"
	"github.com/fuchs284/Cybersecurityproject/internal/core"
	"github.com/fuchs284/Cybersecurityproject/internal/utils"
)

// StoreFactory creates detection stores based on configuration
type StoreFactory struct {
	cfg    *config.Config
	text   *utils.TextProcessor
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, text *utils.TextProcessor, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		text:   text,
		logger: logger,
	}
}

// CreateDetectionStore creates a detection store based on the configuration
func (f *StoreFactory) CreateDetectionStore() (core.DetectionStore, error) {
	storeCfg := f.cfg.GetStore()

	switch storeCfg.Type {
	case "memory":
		return store.NewMemoryStore(f.text, f.logger, storeCfg.PreviewLength), nil
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(storeCfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return store.NewSQLiteStore(storeCfg.SQLitePath, f.text, f.logger, storeCfg.PreviewLength)
	case "mysql":
		return store.NewMySQLStore(storeCfg.MySQLDSN, f.text, f.logger, storeCfg.PreviewLength)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", storeCfg.Type)
	}
}
