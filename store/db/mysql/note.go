package mysql

import (
	"context"
	"fmt"
	"strings"

	"github.com/notetutor/notetutor/store"
)

func (d *DB) CreateNote(ctx context.Context, create *store.Note) (*store.Note, error) {
	stmt := "INSERT INTO `note` (`uid`, `topic_id`, `title`, `content`) VALUES (?, ?, ?, ?)"
	if _, err := d.db.ExecContext(ctx, stmt, create.UID, create.TopicID, create.Title, create.Content); err != nil {
		return nil, err
	}
	list, err := d.ListNotes(ctx, &store.FindNote{UID: &create.UID})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("note %q not found after insert", create.UID)
	}
	return list[0], nil
}

func (d *DB) ListNotes(ctx context.Context, find *store.FindNote) ([]*store.Note, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ID; v != nil {
		where, args = append(where, "`id` = ?"), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "`uid` = ?"), append(args, *v)
	}
	if v := find.TopicID; v != nil {
		where, args = append(where, "`topic_id` = ?"), append(args, *v)
	}
	query := fmt.Sprintf(
		`SELECT id, uid, topic_id, title, content, UNIX_TIMESTAMP(created_ts), UNIX_TIMESTAMP(updated_ts)
		 FROM note WHERE %s ORDER BY id DESC`,
		strings.Join(where, " AND "),
	)
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*store.Note
	for rows.Next() {
		n := &store.Note{}
		if err := rows.Scan(&n.ID, &n.UID, &n.TopicID, &n.Title, &n.Content, &n.CreatedTs, &n.UpdatedTs); err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func (d *DB) UpdateNote(ctx context.Context, update *store.UpdateNote) (*store.Note, error) {
	set, args := []string{}, []any{}
	if v := update.Title; v != nil {
		set, args = append(set, "`title` = ?"), append(args, *v)
	}
	if v := update.Content; v != nil {
		set, args = append(set, "`content` = ?"), append(args, *v)
	}
	if len(set) > 0 {
		set = append(set, "`updated_ts` = CURRENT_TIMESTAMP")
		args = append(args, update.ID)
		stmt := fmt.Sprintf("UPDATE `note` SET %s WHERE `id` = ?", strings.Join(set, ", "))
		if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
			return nil, err
		}
	}
	id := update.ID
	list, err := d.ListNotes(ctx, &store.FindNote{ID: &id})
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (d *DB) DeleteNote(ctx context.Context, id int32) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM `note` WHERE `id` = ?", id)
	return err
}
