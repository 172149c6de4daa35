package store_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/notetutor/notetutor/store"
)

func appendTurns(t *testing.T, st *store.Store, topicID int32, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		err := st.AppendChatTurn(context.Background(), &store.ChatTurn{
			TopicID:  topicID,
			Question: fmt.Sprintf("q%d", i),
			Answer:   fmt.Sprintf("a%d", i),
		})
		require.NoError(t, err)
	}
}

func TestListChatMessages_NewTopicIsEmpty(t *testing.T) {
	st := newTestStore(t)
	topic := createTestTopic(t, st, "topic-1", "Python")

	msgs, err := st.ListChatMessages(context.Background(), &store.FindChatMessage{TopicID: topic.ID})
	require.NoError(t, err)
	require.Empty(t, msgs)
}

func TestAppendChatTurn_LengthIsBounded(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	topic := createTestTopic(t, st, "topic-1", "Python")

	// Below the limit: every turn adds exactly one user/assistant pair.
	for n := 1; n <= 5; n++ {
		appendTurns(t, st, topic.ID, 1)
		msgs, err := st.ListChatMessages(ctx, &store.FindChatMessage{TopicID: topic.ID})
		require.NoError(t, err)
		require.Len(t, msgs, 2*n)
	}

	// Beyond the limit the log stays capped.
	appendTurns(t, st, topic.ID, 3)
	msgs, err := st.ListChatMessages(ctx, &store.FindChatMessage{TopicID: topic.ID})
	require.NoError(t, err)
	require.Len(t, msgs, store.DefaultMaxChatHistory)
}

func TestAppendChatTurn_DropsOldestFirst(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	topic := createTestTopic(t, st, "topic-1", "Python")

	appendTurns(t, st, topic.ID, 6)

	msgs, err := st.ListChatMessages(ctx, &store.FindChatMessage{TopicID: topic.ID})
	require.NoError(t, err)
	require.Len(t, msgs, 10)

	// 12 messages went in; the oldest pair (q1/a1) was dropped and the
	// relative order of the rest is untouched.
	want := []struct {
		role    store.Role
		content string
	}{
		{store.RoleUser, "q2"}, {store.RoleAssistant, "a2"},
		{store.RoleUser, "q3"}, {store.RoleAssistant, "a3"},
		{store.RoleUser, "q4"}, {store.RoleAssistant, "a4"},
		{store.RoleUser, "q5"}, {store.RoleAssistant, "a5"},
		{store.RoleUser, "q6"}, {store.RoleAssistant, "a6"},
	}
	for i, w := range want {
		require.Equal(t, w.role, msgs[i].Role, "message %d", i)
		require.Equal(t, w.content, msgs[i].Content, "message %d", i)
	}
}

func TestAppendChatTurn_TopicsAreIsolated(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	first := createTestTopic(t, st, "topic-1", "Python")
	second := createTestTopic(t, st, "topic-2", "Machine Learning")

	appendTurns(t, st, first.ID, 6)
	appendTurns(t, st, second.ID, 1)

	firstMsgs, err := st.ListChatMessages(ctx, &store.FindChatMessage{TopicID: first.ID})
	require.NoError(t, err)
	require.Len(t, firstMsgs, 10)

	secondMsgs, err := st.ListChatMessages(ctx, &store.FindChatMessage{TopicID: second.ID})
	require.NoError(t, err)
	require.Len(t, secondMsgs, 2)
	require.Equal(t, "q1", secondMsgs[0].Content)
}

func TestDeleteChatMessages(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	topic := createTestTopic(t, st, "topic-1", "Python")

	appendTurns(t, st, topic.ID, 2)
	require.NoError(t, st.DeleteChatMessages(ctx, topic.ID))

	msgs, err := st.ListChatMessages(ctx, &store.FindChatMessage{TopicID: topic.ID})
	require.NoError(t, err)
	require.Empty(t, msgs)
}

func TestDeleteTopic_CascadesToChat(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	topic := createTestTopic(t, st, "topic-1", "Python")

	appendTurns(t, st, topic.ID, 2)
	require.NoError(t, st.DeleteTopic(ctx, topic.ID))

	msgs, err := st.ListChatMessages(ctx, &store.FindChatMessage{TopicID: topic.ID})
	require.NoError(t, err)
	require.Empty(t, msgs)
}
