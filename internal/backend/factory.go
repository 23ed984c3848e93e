package backend

import (
	"fmt"
	"log/slog"

	applog "fondos/internal/log"
	"fondos/internal/store"
)

// New creates the configured record store.
func New(cfg Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case SQLiteBackend:
		st, err := store.NewSQLite(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized sqlite record store",
			applog.FieldBackend, cfg.Type.String(),
			"db_path", cfg.SQLiteDBPath)
		return &Result{Store: st, Cleanup: st.Close}, nil

	case MemoryBackend:
		dataDir := cfg.DataDir
		if dataDir == "" {
			dataDir = "data"
		}
		st := store.NewMemoryFromDir(dataDir)
		logger.Info("Initialized memory record store",
			applog.FieldBackend, cfg.Type.String(),
			"data_directory", dataDir)
		return &Result{Store: st, Cleanup: st.Close}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}
