package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/notekeep/go-secure-notes/internal/logger"
)

// SQL is a [KeyValue] backend over a single relational table
//
//	kv(field, k, v) PRIMARY KEY (field, k)
//
// shared by the Postgres and SQLite constructors. The two differ only in
// driver, placeholder format and schema bootstrap; the statements themselves
// are built with squirrel and are identical.
type SQL struct {
	db      *sql.DB
	builder sq.StatementBuilderType

	errorClassifier ErrorClassifier
	logger          *logger.Logger
}

// Get implements [KeyValue]. Absent keys return (nil, nil).
func (s *SQL) Get(ctx context.Context, field Field, key []byte) ([]byte, error) {
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Select("v").
		From("kv").
		Where(sq.Eq{"field": int16(field), "k": key}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "SQL.Get").Str("field", field.String()).Msg("failed to build select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value []byte
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "SQL.Get").
			Str("field", field.String()).
			Bool("retryable", s.errorClassifier.Classify(err) == Retryable).
			Msg("failed to execute select query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, nil
}

// Set implements [KeyValue]. It upserts: ON CONFLICT the value is replaced,
// which both Postgres and SQLite (3.24+) support with identical syntax.
func (s *SQL) Set(ctx context.Context, field Field, key []byte, value []byte) error {
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Insert("kv").
		Columns("field", "k", "v").
		Values(int16(field), key, value).
		Suffix("ON CONFLICT (field, k) DO UPDATE SET v = EXCLUDED.v").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "SQL.Set").Str("field", field.String()).Msg("failed to build upsert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "SQL.Set").
			Str("field", field.String()).
			Bool("retryable", s.errorClassifier.Classify(err) == Retryable).
			Msg("failed to execute upsert query")
		return fmt.Errorf("%w: %w", ErrSettingValue, err)
	}

	return nil
}

// Has implements [KeyValue].
func (s *SQL) Has(ctx context.Context, field Field, key []byte) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Select("1").
		From("kv").
		Where(sq.Eq{"field": int16(field), "k": key}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "SQL.Has").Str("field", field.String()).Msg("failed to build exists query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "SQL.Has").
			Str("field", field.String()).
			Msg("failed to execute exists query")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return true, nil
}

// Close closes the underlying database connection.
func (s *SQL) Close() error {
	return s.db.Close()
}

// openSQL opens a database/sql connection for the named driver and applies
// the shared pool settings.
func openSQL(driver, dsn string) (*sql.DB, error) {
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	return conn, nil
}
