package mysql

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	// Import the MySQL driver.
	_ "github.com/go-sql-driver/mysql"

	"github.com/notetutor/notetutor/internal/profile"
	"github.com/notetutor/notetutor/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens a connection to the MySQL database at profile.DSN.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}
	mysqlDB, err := sql.Open("mysql", profile.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open mysql db")
	}
	return &DB{db: mysqlDB, profile: profile}, nil
}

func (d *DB) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS topic (
			id          INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			uid         VARCHAR(256) NOT NULL UNIQUE,
			name        TEXT NOT NULL,
			description TEXT NOT NULL,
			created_ts  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_ts  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS note (
			id         INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			uid        VARCHAR(256) NOT NULL UNIQUE,
			topic_id   INT NOT NULL,
			title      TEXT NOT NULL,
			content    TEXT NOT NULL,
			created_ts TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_ts TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT fk_note_topic FOREIGN KEY (topic_id) REFERENCES topic(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS chat_message (
			id         INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			topic_id   INT NOT NULL,
			role       VARCHAR(256) NOT NULL,
			content    TEXT NOT NULL,
			created_ts TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT fk_chat_message_topic FOREIGN KEY (topic_id) REFERENCES topic(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_message_topic ON chat_message(topic_id)`,
		`CREATE TABLE IF NOT EXISTS system_setting (
			name  VARCHAR(256) NOT NULL PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, s := range stmts {
		if _, err := d.db.ExecContext(ctx, s); err != nil {
			return errors.Wrap(err, "failed to migrate schema")
		}
	}
	return nil
}

func (d *DB) Close() error {
	return d.db.Close()
}
