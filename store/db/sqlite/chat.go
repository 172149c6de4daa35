package sqlite

import (
	"context"

	"github.com/notetutor/notetutor/store"
)

func (d *DB) ListChatMessages(ctx context.Context, find *store.FindChatMessage) ([]*store.ChatMessage, error) {
	query := `SELECT id, topic_id, role, content, created_ts
	          FROM chat_message WHERE topic_id = ? ORDER BY id ASC`
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

// AppendChatTurn inserts the user question then the assistant answer and
// trims the log to maxHistory, all inside one transaction. Either the full
// turn lands or nothing does.
func (d *DB) AppendChatTurn(ctx context.Context, turn *store.ChatTurn, maxHistory int) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert := `INSERT INTO chat_message (topic_id, role, content) VALUES (?, ?, ?)`
	if _, err := tx.ExecContext(ctx, insert, turn.TopicID, store.RoleUser, turn.Question); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, insert, turn.TopicID, store.RoleAssistant, turn.Answer); err != nil {
		return err
	}

	// Drop-from-front retention: keep only the most recent maxHistory rows.
	trim := `DELETE FROM chat_message
	         WHERE topic_id = ? AND id NOT IN (
	             SELECT id FROM chat_message WHERE topic_id = ? ORDER BY id DESC LIMIT ?
	         )`
	if _, err := tx.ExecContext(ctx, trim, turn.TopicID, turn.TopicID, maxHistory); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *DB) DeleteChatMessages(ctx context.Context, topicID int32) error {
	_, err := d.db.ExecContext(ctx, `DELETE FROM chat_message WHERE topic_id = ?`, topicID)
	return err
}
