package tutor

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/notetutor/notetutor/internal/llm"
	"github.com/notetutor/notetutor/internal/profile"
	"github.com/notetutor/notetutor/store"
	"github.com/notetutor/notetutor/store/db/sqlite"
)

type fakeCompleter struct {
	answer  string
	err     error
	calls   int
	lastReq *llm.ChatRequest
}

func (f *fakeCompleter) Complete(_ context.Context, req *llm.ChatRequest) (string, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	p := &profile.Profile{Mode: "dev", Data: t.TempDir(), Driver: "sqlite"}
	require.NoError(t, p.Validate())

	driver, err := sqlite.NewDB(p)
	require.NoError(t, err)
	st := store.New(driver, p)
	require.NoError(t, st.Migrate(context.Background()))
	t.Cleanup(func() { st.Close() })
	return st
}

func createTestTopic(t *testing.T, st *store.Store) *store.Topic {
	t.Helper()
	topic, err := st.CreateTopic(context.Background(), &store.Topic{
		UID:         "topic-1",
		Name:        "Python",
		Description: "Limbaj de programare.",
	})
	require.NoError(t, err)
	return topic
}

func TestAsk_AppendsTurnOnSuccess(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	topic := createTestTopic(t, st)
	completer := &fakeCompleter{answer: "O variabilă este un nume pentru o valoare."}
	svc := NewService(st, completer, nil, time.Minute)

	answer, err := svc.Ask(ctx, &AskRequest{
		TopicID:          topic.ID,
		TopicName:        topic.Name,
		TopicDescription: topic.Description,
		Question:         "Ce este o variabilă?",
	})
	require.NoError(t, err)
	require.Equal(t, completer.answer, answer)

	msgs, err := st.ListChatMessages(ctx, &store.FindChatMessage{TopicID: topic.ID})
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, store.RoleUser, msgs[0].Role)
	require.Equal(t, "Ce este o variabilă?", msgs[0].Content)
	require.Equal(t, store.RoleAssistant, msgs[1].Role)
	require.Equal(t, completer.answer, msgs[1].Content)
}

func TestAsk_ModelFailureLeavesHistoryUnchanged(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	topic := createTestTopic(t, st)
	completer := &fakeCompleter{err: errors.New("provider exploded")}
	svc := NewService(st, completer, nil, time.Minute)

	_, err := svc.Ask(ctx, &AskRequest{TopicID: topic.ID, TopicName: topic.Name, Question: "întrebare"})
	require.Error(t, err)

	msgs, err := st.ListChatMessages(ctx, &store.FindChatMessage{TopicID: topic.ID})
	require.NoError(t, err)
	require.Empty(t, msgs)
}

func TestAsk_EmptyQuestionRejectedBeforeModelCall(t *testing.T) {
	st := newTestStore(t)
	topic := createTestTopic(t, st)
	completer := &fakeCompleter{answer: "x"}
	svc := NewService(st, completer, nil, time.Minute)

	_, err := svc.Ask(context.Background(), &AskRequest{TopicID: topic.ID, Question: "   "})
	require.ErrorIs(t, err, ErrEmptyQuestion)
	require.Zero(t, completer.calls)
}

func TestAsk_NoTopic(t *testing.T) {
	st := newTestStore(t)
	svc := NewService(st, &fakeCompleter{answer: "x"}, nil, time.Minute)

	_, err := svc.Ask(context.Background(), &AskRequest{Question: "întrebare"})
	require.ErrorIs(t, err, ErrNoTopic)
}

func TestAsk_NotConfigured(t *testing.T) {
	st := newTestStore(t)
	topic := createTestTopic(t, st)
	svc := NewService(st, nil, nil, time.Minute)

	_, err := svc.Ask(context.Background(), &AskRequest{TopicID: topic.ID, Question: "întrebare"})
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestAsk_TrimsHistoryToRetentionLimit(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	topic := createTestTopic(t, st)
	completer := &fakeCompleter{}
	svc := NewService(st, completer, nil, time.Minute)

	for i := 1; i <= 6; i++ {
		completer.answer = fmt.Sprintf("a%d", i)
		_, err := svc.Ask(ctx, &AskRequest{
			TopicID:   topic.ID,
			TopicName: topic.Name,
			Question:  fmt.Sprintf("q%d", i),
		})
		require.NoError(t, err)
	}

	msgs, err := st.ListChatMessages(ctx, &store.FindChatMessage{TopicID: topic.ID})
	require.NoError(t, err)
	require.Len(t, msgs, store.DefaultMaxChatHistory)

	// 12 messages were appended; the first turn (q1/a1) is gone and the
	// window starts at the second turn's question.
	require.Equal(t, store.RoleUser, msgs[0].Role)
	require.Equal(t, "q2", msgs[0].Content)
	require.Equal(t, store.RoleAssistant, msgs[len(msgs)-1].Role)
	require.Equal(t, "a6", msgs[len(msgs)-1].Content)
}

func TestAsk_MessageSequenceAndSettings(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	topic := createTestTopic(t, st)
	completer := &fakeCompleter{answer: "a1"}
	svc := NewService(st, completer, nil, time.Minute)

	_, err := svc.Ask(ctx, &AskRequest{TopicID: topic.ID, TopicName: topic.Name, Question: "q1"})
	require.NoError(t, err)

	completer.answer = "a2"
	setting := &store.TutorSetting{
		Language:    "EN",
		Depth:       store.DepthShort,
		Model:       "test-model",
		Temperature: 0.7,
		MaxTokens:   123,
	}
	_, err = svc.Ask(ctx, &AskRequest{
		TopicID:   topic.ID,
		TopicName: topic.Name,
		Question:  "q2",
		Setting:   setting,
	})
	require.NoError(t, err)

	req := completer.lastReq
	require.Equal(t, "test-model", req.Model)
	require.Equal(t, 0.7, req.Temperature)
	require.Equal(t, 123, req.MaxTokens)

	// [system] + [q1, a1] + [q2]
	require.Len(t, req.Messages, 4)
	require.Equal(t, store.RoleSystem, req.Messages[0].Role)
	require.Equal(t, store.RoleUser, req.Messages[1].Role)
	require.Equal(t, "q1", req.Messages[1].Content)
	require.Equal(t, store.RoleAssistant, req.Messages[2].Role)
	require.Equal(t, "a1", req.Messages[2].Content)
	require.Equal(t, store.RoleUser, req.Messages[3].Role)
	require.Equal(t, "q2", req.Messages[3].Content)
}

// flakyHistoryDriver fails history reads on demand while delegating
// everything else to the real driver.
type flakyHistoryDriver struct {
	store.Driver
	failList bool
}

func (d *flakyHistoryDriver) ListChatMessages(ctx context.Context, find *store.FindChatMessage) ([]*store.ChatMessage, error) {
	if d.failList {
		return nil, errors.New("history table unavailable")
	}
	return d.Driver.ListChatMessages(ctx, find)
}

func TestAsk_HistoryLoadFailureStartsFromEmptyLog(t *testing.T) {
	ctx := context.Background()
	p := &profile.Profile{Mode: "dev", Data: t.TempDir(), Driver: "sqlite"}
	require.NoError(t, p.Validate())
	base, err := sqlite.NewDB(p)
	require.NoError(t, err)
	driver := &flakyHistoryDriver{Driver: base, failList: true}
	st := store.New(driver, p)
	require.NoError(t, st.Migrate(ctx))
	t.Cleanup(func() { st.Close() })

	topic, err := st.CreateTopic(ctx, &store.Topic{UID: "topic-1", Name: "Python"})
	require.NoError(t, err)

	completer := &fakeCompleter{answer: "a1"}
	svc := NewService(st, completer, nil, time.Minute)

	answer, err := svc.Ask(ctx, &AskRequest{TopicID: topic.ID, TopicName: topic.Name, Question: "q1"})
	require.NoError(t, err)
	require.Equal(t, "a1", answer)

	// The turn ran against an empty log: only [system, q1] reached the model.
	require.Len(t, completer.lastReq.Messages, 2)

	// The pair was still persisted.
	driver.failList = false
	msgs, err := st.ListChatMessages(ctx, &store.FindChatMessage{TopicID: topic.ID})
	require.NoError(t, err)
	require.Len(t, msgs, 2)
}

// slowEchoCompleter answers with a marker derived from the question so a
// test can match each answer back to its question.
type slowEchoCompleter struct{}

func (slowEchoCompleter) Complete(_ context.Context, req *llm.ChatRequest) (string, error) {
	time.Sleep(5 * time.Millisecond)
	question := req.Messages[len(req.Messages)-1].Content
	return "r:" + question, nil
}

func TestAsk_ConcurrentTurnsOnOneTopicDoNotInterleave(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	topic := createTestTopic(t, st)
	svc := NewService(st, slowEchoCompleter{}, nil, time.Minute)

	const turns = 8
	var wg sync.WaitGroup
	errs := make(chan error, turns)
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Ask(ctx, &AskRequest{
				TopicID:   topic.ID,
				TopicName: topic.Name,
				Question:  fmt.Sprintf("q%d", i),
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	// 16 messages went in; the log is capped and no pair was lost to a race.
	msgs, err := st.ListChatMessages(ctx, &store.FindChatMessage{TopicID: topic.ID})
	require.NoError(t, err)
	require.Len(t, msgs, store.DefaultMaxChatHistory)

	// Pairs stay adjacent: every question is directly followed by its own
	// answer, never another turn's.
	for i := 0; i < len(msgs); i += 2 {
		require.Equal(t, store.RoleUser, msgs[i].Role, "message %d", i)
		require.Equal(t, store.RoleAssistant, msgs[i+1].Role, "message %d", i+1)
		require.Equal(t, "r:"+msgs[i].Content, msgs[i+1].Content, "message %d", i+1)
	}
}

func TestAsk_DefaultsAppliedWhenSettingFieldsMissing(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	topic := createTestTopic(t, st)
	completer := &fakeCompleter{answer: "a"}
	svc := NewService(st, completer, nil, time.Minute)

	_, err := svc.Ask(ctx, &AskRequest{
		TopicID:  topic.ID,
		Question: "q",
		Setting:  &store.TutorSetting{},
	})
	require.NoError(t, err)
	require.Equal(t, store.DefaultTutorSetting().Model, completer.lastReq.Model)
	require.Equal(t, store.DefaultTutorSetting().MaxTokens, completer.lastReq.MaxTokens)
}
