package mysql

import (
	"context"
	"fmt"
	"strings"

	"github.com/notetutor/notetutor/store"
)

func (d *DB) CreateTopic(ctx context.Context, create *store.Topic) (*store.Topic, error) {
	stmt := "INSERT INTO `topic` (`uid`, `name`, `description`) VALUES (?, ?, ?)"
	if _, err := d.db.ExecContext(ctx, stmt, create.UID, create.Name, create.Description); err != nil {
		return nil, err
	}
	// Fetch it back to populate id and timestamps.
	list, err := d.ListTopics(ctx, &store.FindTopic{UID: &create.UID})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("topic %q not found after insert", create.UID)
	}
	return list[0], nil
}

func (d *DB) ListTopics(ctx context.Context, find *store.FindTopic) ([]*store.Topic, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ID; v != nil {
		where, args = append(where, "`id` = ?"), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "`uid` = ?"), append(args, *v)
	}
	query := fmt.Sprintf(
		`SELECT id, uid, name, description, UNIX_TIMESTAMP(created_ts), UNIX_TIMESTAMP(updated_ts)
		 FROM topic WHERE %s ORDER BY id DESC`,
		strings.Join(where, " AND "),
	)
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*store.Topic
	for rows.Next() {
		t := &store.Topic{}
		if err := rows.Scan(&t.ID, &t.UID, &t.Name, &t.Description, &t.CreatedTs, &t.UpdatedTs); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (d *DB) UpdateTopic(ctx context.Context, update *store.UpdateTopic) (*store.Topic, error) {
	set, args := []string{}, []any{}
	if v := update.Name; v != nil {
		set, args = append(set, "`name` = ?"), append(args, *v)
	}
	if v := update.Description; v != nil {
		set, args = append(set, "`description` = ?"), append(args, *v)
	}
	if len(set) > 0 {
		set = append(set, "`updated_ts` = CURRENT_TIMESTAMP")
		args = append(args, update.ID)
		stmt := fmt.Sprintf("UPDATE `topic` SET %s WHERE `id` = ?", strings.Join(set, ", "))
		if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
			return nil, err
		}
	}
	id := update.ID
	list, err := d.ListTopics(ctx, &store.FindTopic{ID: &id})
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (d *DB) DeleteTopic(ctx context.Context, id int32) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM `topic` WHERE `id` = ?", id)
	return err
}
