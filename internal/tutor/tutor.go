// Package tutor orchestrates one question/answer turn against the
// external model, contextualized with a topic's notes and bounded chat
// history.
package tutor

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/notetutor/notetutor/internal/llm"
	"github.com/notetutor/notetutor/plugin/vectorstore"
	"github.com/notetutor/notetutor/store"
)

var (
	// ErrNotConfigured reports a missing model provider configuration.
	ErrNotConfigured = errors.New("tutor is not configured (missing API key)")
	// ErrNoTopic reports a turn attempted without a resolved topic.
	ErrNoTopic = errors.New("no topic selected")
	// ErrEmptyQuestion reports a blank question.
	ErrEmptyQuestion = errors.New("question is empty")
)

// AskRequest carries one turn's inputs. Topic metadata and note titles are
// read-only snapshots taken by the caller; SelectedNoteContent may be empty.
type AskRequest struct {
	TopicID             int32
	TopicName           string
	TopicDescription    string
	NoteTitles          []string
	SelectedNoteContent string
	Question            string
	// Setting is loaded fresh per turn by the caller. When nil the
	// service loads it from the store itself.
	Setting *store.TutorSetting
}

// Service runs tutor turns. Turns against the same topic are serialized by
// a per-topic lock; distinct topics proceed in parallel.
type Service struct {
	store     *store.Store
	completer llm.Completer
	vs        *vectorstore.Store // optional, nil when no embedding endpoint is configured
	timeout   time.Duration

	mu         sync.Mutex
	topicLocks map[int32]*sync.Mutex
}

// NewService creates a tutor service. completer may be nil when the model
// provider is not configured; Ask then fails fast with ErrNotConfigured.
func NewService(st *store.Store, completer llm.Completer, vs *vectorstore.Store, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Service{
		store:      st,
		completer:  completer,
		vs:         vs,
		timeout:    timeout,
		topicLocks: make(map[int32]*sync.Mutex),
	}
}

// Ask runs one question/answer turn and returns the answer text. Exactly
// one durable history mutation happens per successful call; a failed model
// invocation leaves the conversation log untouched.
func (s *Service) Ask(ctx context.Context, req *AskRequest) (string, error) {
	if s.completer == nil {
		return "", ErrNotConfigured
	}
	if req.TopicID == 0 {
		return "", ErrNoTopic
	}
	if strings.TrimSpace(req.Question) == "" {
		return "", ErrEmptyQuestion
	}

	setting := req.Setting
	if setting == nil {
		var err error
		setting, err = s.store.GetTutorSetting(ctx)
		if err != nil {
			setting = store.DefaultTutorSetting()
		}
	}

	// The lock covers load, model call and append so that two turns on
	// the same topic cannot interleave and lose an append.
	lock := s.topicLock(req.TopicID)
	lock.Lock()
	defer lock.Unlock()

	history, err := s.store.ListChatMessages(ctx, &store.FindChatMessage{TopicID: req.TopicID})
	if err != nil {
		slog.Warn("failed to load chat history, starting from an empty log", "topic", req.TopicID, "err", err)
		history = nil
	}

	fragment := req.SelectedNoteContent
	if fragment == "" && s.vs != nil {
		hits, err := s.vs.SearchSimilar(ctx, req.TopicID, req.Question, 1)
		if err != nil {
			slog.Warn("semantic note lookup failed", "topic", req.TopicID, "err", err)
		} else if len(hits) > 0 {
			fragment = hits[0].Content
		}
	}

	system := ComposePrompt(req.TopicName, req.TopicDescription, req.NoteTitles, fragment, setting)
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: store.RoleSystem, Content: system})
	for _, m := range history {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, llm.Message{Role: store.RoleUser, Content: req.Question})

	model := setting.Model
	if model == "" {
		model = store.DefaultTutorSetting().Model
	}
	maxTokens := setting.MaxTokens
	if maxTokens <= 0 {
		maxTokens = store.DefaultTutorSetting().MaxTokens
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	answer, err := s.completer.Complete(callCtx, &llm.ChatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: setting.Temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		// No partial persistence: a failed turn must not record the
		// question either.
		return "", err
	}

	if err := s.store.AppendChatTurn(ctx, &store.ChatTurn{
		TopicID:  req.TopicID,
		Question: req.Question,
		Answer:   answer,
	}); err != nil {
		return "", errors.Wrap(err, "failed to persist chat turn")
	}

	slog.Info("tutor turn completed", "topic", req.TopicID, "history_len", len(history), "model", model)
	return answer, nil
}

// topicLock returns the mutex guarding topicID. Entries live for the
// process lifetime, so the map is bounded by the number of topics ever
// asked about, a small number in a single-user store.
func (s *Service) topicLock(topicID int32) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.topicLocks[topicID]
	if !ok {
		lock = &sync.Mutex{}
		s.topicLocks[topicID] = lock
	}
	return lock
}
