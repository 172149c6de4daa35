package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/notetutor/notetutor/store"
)

func (d *DB) CreateTopic(ctx context.Context, create *store.Topic) (*store.Topic, error) {
	stmt := `INSERT INTO topic (uid, name, description)
	         VALUES (?, ?, ?)
	         RETURNING id, created_ts, updated_ts`
	if err := d.db.QueryRowContext(ctx, stmt, create.UID, create.Name, create.Description).
		Scan(&create.ID, &create.CreatedTs, &create.UpdatedTs); err != nil {
		return nil, err
	}
	return create, nil
}

func (d *DB) ListTopics(ctx context.Context, find *store.FindTopic) ([]*store.Topic, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "uid = ?"), append(args, *v)
	}
	query := fmt.Sprintf(
		`SELECT id, uid, name, description, created_ts, updated_ts
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
		set, args = append(set, "name = ?"), append(args, *v)
	}
	if v := update.Description; v != nil {
		set, args = append(set, "description = ?"), append(args, *v)
	}
	if len(set) == 0 {
		return d.getTopic(ctx, update.ID)
	}
	set = append(set, "updated_ts = strftime('%s', 'now')")
	args = append(args, update.ID)
	stmt := fmt.Sprintf("UPDATE topic SET %s WHERE id = ?", strings.Join(set, ", "))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return nil, err
	}
	return d.getTopic(ctx, update.ID)
}

func (d *DB) DeleteTopic(ctx context.Context, id int32) error {
	_, err := d.db.ExecContext(ctx, `DELETE FROM topic WHERE id = ?`, id)
	return err
}

func (d *DB) getTopic(ctx context.Context, id int32) (*store.Topic, error) {
	list, err := d.ListTopics(ctx, &store.FindTopic{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}
