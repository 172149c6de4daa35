package store

import "context"

// Note is a freeform text entry belonging to a topic.
type Note struct {
	ID        int32
	UID       string
	TopicID   int32
	Title     string
	Content   string
	CreatedTs int64
	UpdatedTs int64
}

// FindNote filters for ListNotes.
type FindNote struct {
	ID      *int32
	UID     *string
	TopicID *int32
}

// UpdateNote carries fields accepted by UpdateNote.
type UpdateNote struct {
	ID      int32
	Title   *string
	Content *string
}

// CreateNote creates a new note under a topic.
func (s *Store) CreateNote(ctx context.Context, create *Note) (*Note, error) {
	return s.driver.CreateNote(ctx, create)
}

// ListNotes lists notes matching the given filter, newest first.
func (s *Store) ListNotes(ctx context.Context, find *FindNote) ([]*Note, error) {
	return s.driver.ListNotes(ctx, find)
}

// GetNote returns the first note matching the given filter.
func (s *Store) GetNote(ctx context.Context, find *FindNote) (*Note, error) {
	list, err := s.driver.ListNotes(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateNote updates a note's mutable fields.
func (s *Store) UpdateNote(ctx context.Context, update *UpdateNote) (*Note, error) {
	return s.driver.UpdateNote(ctx, update)
}

// DeleteNote deletes a note.
func (s *Store) DeleteNote(ctx context.Context, id int32) error {
	return s.driver.DeleteNote(ctx, id)
}
