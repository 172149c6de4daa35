package store

import "context"

// Topic is a named subject area grouping notes and one conversation log.
type Topic struct {
	ID          int32
	UID         string
	Name        string
	Description string
	CreatedTs   int64
	UpdatedTs   int64
}

// FindTopic filters for ListTopics.
type FindTopic struct {
	ID  *int32
	UID *string
}

// UpdateTopic carries fields accepted by UpdateTopic.
type UpdateTopic struct {
	ID          int32
	Name        *string
	Description *string
}

// CreateTopic creates a new topic.
func (s *Store) CreateTopic(ctx context.Context, create *Topic) (*Topic, error) {
	return s.driver.CreateTopic(ctx, create)
}

// ListTopics lists topics matching the given filter, newest first.
func (s *Store) ListTopics(ctx context.Context, find *FindTopic) ([]*Topic, error) {
	return s.driver.ListTopics(ctx, find)
}

// GetTopic returns the first topic matching the given filter.
func (s *Store) GetTopic(ctx context.Context, find *FindTopic) (*Topic, error) {
	list, err := s.driver.ListTopics(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateTopic updates a topic's mutable fields.
func (s *Store) UpdateTopic(ctx context.Context, update *UpdateTopic) (*Topic, error) {
	return s.driver.UpdateTopic(ctx, update)
}

// DeleteTopic deletes a topic, its notes and its chat history (cascade).
func (s *Store) DeleteTopic(ctx context.Context, id int32) error {
	return s.driver.DeleteTopic(ctx, id)
}
