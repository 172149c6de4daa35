package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkg/errors"

	// Import the PostgreSQL driver.
	_ "github.com/lib/pq"

	"github.com/notetutor/notetutor/internal/profile"
	"github.com/notetutor/notetutor/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens a connection to the PostgreSQL database at profile.DSN.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}
	pgDB, err := sql.Open("postgres", profile.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open postgres db")
	}
	return &DB{db: pgDB, profile: profile}, nil
}

func (d *DB) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS topic (
			id          SERIAL PRIMARY KEY,
			uid         TEXT   NOT NULL UNIQUE,
			name        TEXT   NOT NULL,
			description TEXT   NOT NULL DEFAULT '',
			created_ts  BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW()),
			updated_ts  BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())
		)`,
		`CREATE TABLE IF NOT EXISTS note (
			id         SERIAL  PRIMARY KEY,
			uid        TEXT    NOT NULL UNIQUE,
			topic_id   INTEGER NOT NULL REFERENCES topic(id) ON DELETE CASCADE,
			title      TEXT    NOT NULL,
			content    TEXT    NOT NULL DEFAULT '',
			created_ts BIGINT  NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW()),
			updated_ts BIGINT  NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())
		)`,
		`CREATE TABLE IF NOT EXISTS chat_message (
			id         SERIAL  PRIMARY KEY,
			topic_id   INTEGER NOT NULL REFERENCES topic(id) ON DELETE CASCADE,
			role       TEXT    NOT NULL,
			content    TEXT    NOT NULL,
			created_ts BIGINT  NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())
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

func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}
