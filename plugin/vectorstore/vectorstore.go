// Package vectorstore maintains a semantic index over note content so the
// tutor can pull in a relevant fragment when no note is selected.
package vectorstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	chromem "github.com/philippgille/chromem-go"
	"github.com/pkg/errors"
)

// SearchResult is a single semantic-search hit.
type SearchResult struct {
	NoteUID string
	Title   string
	Content string
	Score   float32
}

// Store wraps chromem-go with per-topic collections and disk persistence.
type Store struct {
	mu      sync.RWMutex
	db      *chromem.DB
	dataDir string
	embedFn chromem.EmbeddingFunc
}

// New creates (or opens) the persistent vector store at dataDir/vectorstore/.
// embedFunc is the embedding function to use — pass
// chromem.NewEmbeddingFuncOpenAICompat pointed at the provider's embeddings
// endpoint.
func New(dataDir string, embedFunc chromem.EmbeddingFunc) (*Store, error) {
	dir := filepath.Join(dataDir, "vectorstore")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, errors.Wrap(err, "create vectorstore dir")
	}
	db, err := chromem.NewPersistentDB(dir, false)
	if err != nil {
		return nil, errors.Wrap(err, "open vectorstore")
	}
	return &Store{db: db, dataDir: dir, embedFn: embedFunc}, nil
}

// collectionName returns the per-topic collection name.
func collectionName(topicID int32) string {
	return fmt.Sprintf("topic_%d_notes", topicID)
}

// getOrCreateCollection returns (or creates) the per-topic collection.
func (s *Store) getOrCreateCollection(topicID int32) (*chromem.Collection, error) {
	name := collectionName(topicID)
	col := s.db.GetCollection(name, s.embedFn)
	if col == nil {
		var err error
		col, err = s.db.CreateCollection(name, nil, s.embedFn)
		if err != nil {
			return nil, errors.Wrapf(err, "create vector collection for topic %d", topicID)
		}
	}
	return col, nil
}

// UpsertNote indexes (or re-indexes) a note for a topic.
func (s *Store) UpsertNote(ctx context.Context, topicID int32, noteUID, title, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, err := s.getOrCreateCollection(topicID)
	if err != nil {
		return err
	}
	doc := chromem.Document{
		ID:      noteUID,
		Content: content,
		Metadata: map[string]string{
			"title": title,
		},
	}
	return col.AddDocument(ctx, doc)
}

// RemoveNote drops a note from its topic's collection.
func (s *Store) RemoveNote(ctx context.Context, topicID int32, noteUID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col := s.db.GetCollection(collectionName(topicID), s.embedFn)
	if col == nil {
		return nil
	}
	return col.Delete(ctx, nil, nil, noteUID)
}

// DeleteTopic drops a topic's entire collection.
func (s *Store) DeleteTopic(topicID int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.DeleteCollection(collectionName(topicID))
}

// SearchSimilar returns the top-k notes most semantically similar to the query.
func (s *Store) SearchSimilar(ctx context.Context, topicID int32, query string, k int) ([]SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col := s.db.GetCollection(collectionName(topicID), s.embedFn)
	if col == nil {
		return nil, nil
	}

	count := col.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	var results []chromem.Result
	var err error

	// chromem-go sometimes throws "nResults must be <= number of documents"
	// despite Count checks. Step down k if it fails.
	for attemptK := k; attemptK > 0; attemptK-- {
		results, err = col.Query(ctx, query, attemptK, nil, nil)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	out := make([]SearchResult, 0, len(results))
	for _, r := range results {
		out = append(out, SearchResult{
			NoteUID: r.ID,
			Title:   r.Metadata["title"],
			Content: r.Content,
			Score:   r.Similarity,
		})
	}
	return out, nil
}
