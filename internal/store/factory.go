package store

import (
	"fmt"

	"fjacquet/gl-analyzer/internal/config"
	"fjacquet/gl-analyzer/internal/logging"
)

// New opens the session store selected by cfg.
func New(cfg config.StoreConfig, logger logging.Logger) (SessionStore, error) {
	switch cfg.Backend {
	case "", BackendYAML:
		return NewYAMLStore(cfg.Path, logger), nil
	case BackendSQLite:
		return NewSQLiteStore(cfg.Path, logger)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Backend)
	}
}
