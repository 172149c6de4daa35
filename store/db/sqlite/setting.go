package sqlite

import (
	"context"

	"github.com/notetutor/notetutor/store"
)

var _ store.Driver = (*DB)(nil)

func (d *DB) GetSettingValue(ctx context.Context, name string) (string, error) {
	var value string
	err := d.db.QueryRowContext(ctx,
		`SELECT value FROM system_setting WHERE name = ?`, name,
	).Scan(&value)
	return value, err
}

func (d *DB) UpsertSettingValue(ctx context.Context, name, value string) error {
	stmt := `INSERT INTO system_setting (name, value) VALUES (?, ?)
	         ON CONFLICT(name) DO UPDATE SET value = excluded.value`
	_, err := d.db.ExecContext(ctx, stmt, name, value)
	return err
}
