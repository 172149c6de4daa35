package postgres

import (
	"context"

	"github.com/notetutor/notetutor/store"
)

var _ store.Driver = (*DB)(nil)

func (d *DB) ListChatMessages(ctx context.Context, find *store.FindChatMessage) ([]*store.ChatMessage, error) {
	query := `SELECT id, topic_id, role, content, created_ts
	          FROM chat_message WHERE topic_id = $1 ORDER BY id ASC`
	rows, err := d.db.QueryContext(ctx, query, find.TopicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*store.ChatMessage
	for rows.Next() {
		m := &store.ChatMessage{}
		if err := rows.Scan(&m.ID, &m.TopicID, &m.Role, &m.Content, &m.CreatedTs); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (d *DB) AppendChatTurn(ctx context.Context, turn *store.ChatTurn, maxHistory int) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert := `INSERT INTO chat_message (topic_id, role, content) VALUES ($1, $2, $3)`
	if _, err := tx.ExecContext(ctx, insert, turn.TopicID, store.RoleUser, turn.Question); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, insert, turn.TopicID, store.RoleAssistant, turn.Answer); err != nil {
		return err
	}

	trim := `DELETE FROM chat_message
	         WHERE topic_id = $1 AND id NOT IN (
	             SELECT id FROM chat_message WHERE topic_id = $1 ORDER BY id DESC LIMIT $2
	         )`
	if _, err := tx.ExecContext(ctx, trim, turn.TopicID, maxHistory); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *DB) DeleteChatMessages(ctx context.Context, topicID int32) error {
	_, err := d.db.ExecContext(ctx, `DELETE FROM chat_message WHERE topic_id = $1`, topicID)
	return err
}

func (d *DB) GetSettingValue(ctx context.Context, name string) (string, error) {
	var value string
	err := d.db.QueryRowContext(ctx,
		`SELECT value FROM system_setting WHERE name = $1`, name,
	).Scan(&value)
	return value, err
}

func (d *DB) UpsertSettingValue(ctx context.Context, name, value string) error {
	stmt := `INSERT INTO system_setting (name, value) VALUES ($1, $2)
	         ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value`
	_, err := d.db.ExecContext(ctx, stmt, name, value)
	return err
}
