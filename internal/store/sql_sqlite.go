package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3" // database/sql driver "sqlite3"

	"github.com/notekeep/go-secure-notes/internal/config"
	"github.com/notekeep/go-secure-notes/internal/logger"
)

// sqliteSchema bootstraps the single kv table. SQLite is the embedded
// single-file mode, so the schema is created inline rather than through the
// goose migrations used for Postgres.
const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv (
	field INTEGER NOT NULL,
	k     BLOB    NOT NULL,
	v     BLOB    NOT NULL,
	PRIMARY KEY (field, k)
);`

// NewConnectSQLite opens (or creates) a SQLite-backed [SQL] store at the
// configured file path.
func NewConnectSQLite(ctx context.Context, cfg config.SQLite, log *logger.Logger) (*SQL, error) {
	conn, err := openSQL("sqlite3", cfg.Path)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Str("path", cfg.Path).Msg("error opening sqlite database")
		return nil, fmt.Errorf("error opening sqlite database: %w", err)
	}

	// sqlite handles are not safe for concurrent writers
	conn.SetMaxOpenConns(1)

	if _, err = conn.ExecContext(ctx, sqliteSchema); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating sqlite schema")
		return nil, fmt.Errorf("error creating sqlite schema: %w", err)
	}

	log.Info().Str("func", "NewConnectSQLite").Str("path", cfg.Path).Msg("opened sqlite store")

	return &SQL{
		db:              conn,
		builder:         sq.StatementBuilder.PlaceholderFormat(sq.Question),
		errorClassifier: noopClassifier{},
		logger:          log,
	}, nil
}
