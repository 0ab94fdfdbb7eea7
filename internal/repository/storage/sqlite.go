package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

const resultsSchema = `
CREATE TABLE IF NOT EXISTS game_results (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id      TEXT    NOT NULL,
	replay_count    INTEGER NOT NULL,
	player_count    INTEGER NOT NULL,
	traps_triggered INTEGER NOT NULL,
	winners         TEXT    NOT NULL,
	scores          TEXT    NOT NULL,
	characters      TEXT    NOT NULL,
	finished_at     INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS game_results_finished_at ON game_results (finished_at DESC);`

type SQLiteStorage struct {
	Connection *sql.DB
}

// NewSQLite opens the database at path. ":memory:" gives a private in-memory database.
func NewSQLite(path string) (*SQLiteStorage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite storage path is required")
	}

	dsn := path
	if path != ":memory:" {
		dsn += "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	// an in-memory database only exists on the connection that created it.
	conn.SetMaxOpenConns(1)

	if err = conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &SQLiteStorage{Connection: conn}, nil
}

func (that *SQLiteStorage) Init(ctx context.Context) error {
	if _, err := that.Connection.ExecContext(ctx, resultsSchema); err != nil {
		return fmt.Errorf("can't create tables: %w", err)
	}

	return nil
}

func (that *SQLiteStorage) Close() error {
	return that.Connection.Close()
}
