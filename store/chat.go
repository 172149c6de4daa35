package store

// DefaultMaxChatHistory is the retention limit for a topic's conversation
// log when the profile does not override it. Oldest messages are dropped
// first once the limit is exceeded.
const DefaultMaxChatHistory = 10

// Role identifies the author of a chat message. Keeping it a dedicated
// type makes illegal role values unrepresentable in the rest of the code.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is a single message within a topic's conversation log.
// Messages are immutable once created; ordering is by ID.
type ChatMessage struct {
	ID        int32
	TopicID   int32
	Role      Role
	Content   string
	CreatedTs int64
}

// FindChatMessage filters for ListChatMessages.
type FindChatMessage struct {
	TopicID int32
}

// ChatTurn is one question/answer exchange appended as a pair. A turn is
// never persisted half-done: both rows go in, or neither does.
type ChatTurn struct {
	TopicID  int32
	Question string
	Answer   string
}
