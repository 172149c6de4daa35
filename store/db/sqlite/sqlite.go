package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkg/errors"

	// Import the pure-Go SQLite driver.
	_ "modernc.org/sqlite"

	"github.com/notetutor/notetutor/internal/profile"
	"github.com/notetutor/notetutor/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens (or creates) the SQLite database at profile.DSN.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}

	// WAL keeps readers unblocked during the append+trim transaction;
	// foreign_keys makes topic deletion cascade to notes and chat rows.
	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)", profile.DSN)
	sqliteDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite db %q", profile.DSN)
	}
	return &DB{db: sqliteDB, profile: profile}, nil
}

func (d *DB) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS topic (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			uid         TEXT NOT NULL UNIQUE,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_ts  BIGINT NOT NULL DEFAULT (strftime('%s', 'now')),
			updated_ts  BIGINT NOT NULL DEFAULT (strftime('%s', 'now'))
		)`,
		`CREATE TABLE IF NOT EXISTS note (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			uid        TEXT NOT NULL UNIQUE,
			topic_id   INTEGER NOT NULL REFERENCES topic(id) ON DELETE CASCADE,
			title      TEXT NOT NULL,
			content    TEXT NOT NULL DEFAULT '',
			created_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now')),
			updated_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now'))
		)`,
		`CREATE TABLE IF NOT EXISTS chat_message (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			topic_id   INTEGER NOT NULL REFERENCES topic(id) ON DELETE CASCADE,
			role       TEXT NOT NULL,
			content    TEXT NOT NULL,
			created_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_message_topic ON chat_message(topic_id)`,
		`CREATE TABLE IF NOT EXISTS system_setting (
			name  TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "failed to migrate schema")
		}
	}
	return nil
}

func (d *DB) Close() error {
	return d.db.Close()
}
