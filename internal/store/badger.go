package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/notekeep/go-secure-notes/internal/logger"
)

// Badger is an embedded [KeyValue] backend on BadgerDB. Each logical field
// becomes a one-byte key prefix, so all six tables share one value log.
type Badger struct {
	db     *badger.DB
	logger *logger.Logger
}

// NewBadger opens (or creates) a Badger store in dir.
//
// SyncWrites is enabled: every Set must be durable and visible to later
// invocations, so buffering commits in memory is not acceptable here.
func NewBadger(dir string, log *logger.Logger) (*Badger, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	opts.SyncWrites = true
	opts.ValueLogFileSize = 1024 * 1024 * 100

	db, err := badger.Open(opts)
	if err != nil {
		log.Err(err).Str("func", "NewBadger").Str("dir", dir).Msg("error opening badger store")
		return nil, fmt.Errorf("error opening badger store: %w", err)
	}

	log.Info().Str("func", "NewBadger").Str("dir", dir).Msg("opened badger store")

	return &Badger{db: db, logger: log}, nil
}

// badgerKey prepends the field tag to the compound key.
func badgerKey(field Field, key []byte) []byte {
	out := make([]byte, 0, 1+len(key))
	out = append(out, byte(field))
	out = append(out, key...)
	return out
}

// Get implements [KeyValue]. Absent keys return (nil, nil).
func (b *Badger) Get(ctx context.Context, field Field, key []byte) ([]byte, error) {
	var value []byte

	err := b.db.View(func(txn *badger.Txn) error {
		item, getErr := txn.Get(badgerKey(field, key))
		if getErr != nil {
			return getErr
		}

		value, getErr = item.ValueCopy(nil)
		return getErr
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "Badger.Get").
			Str("field", field.String()).
			Msg("error reading from badger")
		return nil, fmt.Errorf("%w: %w", ErrGettingValue, err)
	}

	return value, nil
}

// Set implements [KeyValue].
func (b *Badger) Set(ctx context.Context, field Field, key []byte, value []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(field, key), value)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "Badger.Set").
			Str("field", field.String()).
			Msg("error writing to badger")
		return fmt.Errorf("%w: %w", ErrSettingValue, err)
	}

	return nil
}

// Has implements [KeyValue].
func (b *Badger) Has(ctx context.Context, field Field, key []byte) (bool, error) {
	err := b.db.View(func(txn *badger.Txn) error {
		_, getErr := txn.Get(badgerKey(field, key))
		return getErr
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "Badger.Has").
			Str("field", field.String()).
			Msg("error probing badger")
		return false, fmt.Errorf("%w: %w", ErrGettingValue, err)
	}

	return true, nil
}

// RunGC performs one value-log garbage collection pass. Badger returns
// ErrNoRewrite when there was nothing to collect, which is not a failure.
func (b *Badger) RunGC() error {
	err := b.db.RunValueLogGC(0.5)
	if errors.Is(err, badger.ErrNoRewrite) {
		return nil
	}
	return err
}

// Close flushes and closes the underlying store.
func (b *Badger) Close() error {
	return b.db.Close()
}
