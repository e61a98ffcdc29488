package storage

import (
	"context"
	"errors"
	"strings"

	logx "vocabpop/pkg/logx"
)

// Store is the minimal persistence API used by the app.
type Store interface {
	AppendShown(ctx context.Context, r ShownRecord) error
	RecentShown(ctx context.Context, limit int) ([]ShownRecord, error)
	Close() error
}

// Open initializes the configured store.
// It returns (nil, nil) if storage is disabled.
func Open(cfg Config, log logx.Logger) (Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" || driver == "none" {
		return nil, nil
	}
	if log.IsZero() {
		log = logx.Nop()
	}

	switch driver {
	case "file":
		return openFile(cfg, log)
	case "sqlite", "sqlite3":
		return openSQLite(cfg, log)
	default:
		return nil, errors.New("unknown storage driver: " + driver)
	}
}
