package store

import "context"

// ListChatMessages returns all messages for a topic, oldest first. A topic
// without history yields an empty slice, not an error.
func (s *Store) ListChatMessages(ctx context.Context, find *FindChatMessage) ([]*ChatMessage, error) {
	return s.driver.ListChatMessages(ctx, find)
}

// AppendChatTurn appends the user question and assistant answer (in that
// order) to the topic's log and trims it to the retention limit, all inside
// one transaction.
func (s *Store) AppendChatTurn(ctx context.Context, turn *ChatTurn) error {
	return s.driver.AppendChatTurn(ctx, turn, s.MaxChatHistory())
}

// DeleteChatMessages clears the conversation log for the given topic.
func (s *Store) DeleteChatMessages(ctx context.Context, topicID int32) error {
	return s.driver.DeleteChatMessages(ctx, topicID)
}
