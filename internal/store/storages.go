package store

import (
	"context"
	"fmt"

	"github.com/notekeep/go-secure-notes/internal/config"
	"github.com/notekeep/go-secure-notes/internal/logger"
)

// Storages bundles the selected key-value backend with its typed field
// accessors. Exactly one backend is active per process, chosen by
// configuration.
type Storages struct {
	KV     KeyValue
	Fields *Fields

	// Badger is non-nil only when the badger backend is active; the GC
	// worker needs direct access to it.
	Badger *Badger

	closer func() error
}

// NewStorages constructs the backend named by cfg.Backend: one of
// "memory", "badger", "sqlite" or "postgres".
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	storages := &Storages{}

	switch cfg.Backend {
	case "", config.BackendMemory:
		storages.KV = NewMemory()

	case config.BackendBadger:
		badgerStore, err := NewBadger(cfg.Badger.Dir, log)
		if err != nil {
			return nil, err
		}
		storages.KV = badgerStore
		storages.Badger = badgerStore
		storages.closer = badgerStore.Close

	case config.BackendSQLite:
		sqliteStore, err := NewConnectSQLite(ctx, cfg.SQLite, log)
		if err != nil {
			return nil, err
		}
		storages.KV = sqliteStore
		storages.closer = sqliteStore.Close

	case config.BackendPostgres:
		postgresStore, err := NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		storages.KV = postgresStore
		storages.closer = postgresStore.Close

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}

	storages.Fields = NewFields(storages.KV)
	return storages, nil
}

// Close releases backend resources, if the active backend holds any.
func (s *Storages) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}
