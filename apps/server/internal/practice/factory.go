package practice

import (
	"fmt"

	"blackjack-lite/apps/server/internal/config"
)

// NewServiceFromConfig opens the store selected by cfg.StoreMode and returns it with
// the mode name for logs.
func NewServiceFromConfig(cfg config.Config) (Service, string, error) {
	switch cfg.StoreMode {
	case config.StoreModeMemory:
		return NewMemoryService(), cfg.StoreMode, nil
	case config.StoreModeSQLite:
		s, err := NewSQLiteService(cfg.LocalDatabasePath)
		return s, cfg.StoreMode, err
	case config.StoreModePostgres:
		s, err := NewPostgresService(cfg.DatabaseURL)
		return s, cfg.StoreMode, err
	default:
		return nil, cfg.StoreMode, fmt.Errorf("invalid store mode %q", cfg.StoreMode)
	}
}
