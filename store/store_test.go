package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/notetutor/notetutor/internal/profile"
	"github.com/notetutor/notetutor/store"
	"github.com/notetutor/notetutor/store/db/sqlite"
)

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

func createTestTopic(t *testing.T, st *store.Store, uid, name string) *store.Topic {
	t.Helper()
	topic, err := st.CreateTopic(context.Background(), &store.Topic{
		UID:         uid,
		Name:        name,
		Description: "desc",
	})
	require.NoError(t, err)
	return topic
}

func TestTopicCRUD(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	topic := createTestTopic(t, st, "topic-1", "Python")
	require.NotZero(t, topic.ID)
	require.NotZero(t, topic.CreatedTs)

	found, err := st.GetTopic(ctx, &store.FindTopic{UID: &topic.UID})
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, "Python", found.Name)

	newName := "Python 3"
	updated, err := st.UpdateTopic(ctx, &store.UpdateTopic{ID: topic.ID, Name: &newName})
	require.NoError(t, err)
	require.Equal(t, "Python 3", updated.Name)
	require.Equal(t, "desc", updated.Description)

	require.NoError(t, st.DeleteTopic(ctx, topic.ID))
	gone, err := st.GetTopic(ctx, &store.FindTopic{ID: &topic.ID})
	require.NoError(t, err)
	require.Nil(t, gone)
}

func TestGetTopic_Unknown(t *testing.T) {
	st := newTestStore(t)
	uid := "missing"
	topic, err := st.GetTopic(context.Background(), &store.FindTopic{UID: &uid})
	require.NoError(t, err)
	require.Nil(t, topic)
}

func TestNoteCRUDAndCascade(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	topic := createTestTopic(t, st, "topic-1", "Python")

	note, err := st.CreateNote(ctx, &store.Note{
		UID:     "note-1",
		TopicID: topic.ID,
		Title:   "Variabile",
		Content: "Ce este o variabilă în Python.",
	})
	require.NoError(t, err)
	require.NotZero(t, note.ID)

	newContent := "Conținut actualizat."
	updated, err := st.UpdateNote(ctx, &store.UpdateNote{ID: note.ID, Content: &newContent})
	require.NoError(t, err)
	require.Equal(t, newContent, updated.Content)
	require.Equal(t, "Variabile", updated.Title)

	notes, err := st.ListNotes(ctx, &store.FindNote{TopicID: &topic.ID})
	require.NoError(t, err)
	require.Len(t, notes, 1)

	// Deleting the topic cascades to its notes.
	require.NoError(t, st.DeleteTopic(ctx, topic.ID))
	notes, err = st.ListNotes(ctx, &store.FindNote{TopicID: &topic.ID})
	require.NoError(t, err)
	require.Empty(t, notes)
}
