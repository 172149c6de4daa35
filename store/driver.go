package store

import "context"

// Driver is the low-level database abstraction implemented per SQL dialect.
type Driver interface {
	Migrate(ctx context.Context) error
	Close() error

	CreateTopic(ctx context.Context, create *Topic) (*Topic, error)
	ListTopics(ctx context.Context, find *FindTopic) ([]*Topic, error)
	UpdateTopic(ctx context.Context, update *UpdateTopic) (*Topic, error)
	DeleteTopic(ctx context.Context, id int32) error

	CreateNote(ctx context.Context, create *Note) (*Note, error)
	ListNotes(ctx context.Context, find *FindNote) ([]*Note, error)
	UpdateNote(ctx context.Context, update *UpdateNote) (*Note, error)
	DeleteNote(ctx context.Context, id int32) error

	ListChatMessages(ctx context.Context, find *FindChatMessage) ([]*ChatMessage, error)
	AppendChatTurn(ctx context.Context, turn *ChatTurn, maxHistory int) error
	DeleteChatMessages(ctx context.Context, topicID int32) error

	GetSettingValue(ctx context.Context, name string) (string, error)
	UpsertSettingValue(ctx context.Context, name, value string) error
}
