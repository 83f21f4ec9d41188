package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docchat/internal/model"
)

func storedChunk(docID uint, idx int, content string, vec []float32) model.Chunk {
	c := model.Chunk{DocumentID: docID, ChunkIndex: idx, Content: content}
	c.SetEmbedding(vec)
	return c
}

func TestRetrieveRanksDescending(t *testing.T) {
	embedder := newFakeEmbedder()
	embedder.vectors["query"] = []float32{1, 0, 0}
	store := &fakeChunkStore{chunks: []model.Chunk{
		storedChunk(1, 0, "weak", []float32{0, 1, 0}),
		storedChunk(1, 1, "strong", []float32{1, 0, 0}),
		storedChunk(2, 0, "medium", []float32{1, 1, 0}),
	}}

	r := NewRetriever(store, embedder)
	got, err := r.Retrieve(context.Background(), "query", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "strong", got[0].Content)
	assert.Equal(t, "medium", got[1].Content)
	assert.Equal(t, "weak", got[2].Content)
	assert.True(t, got[0].Score >= got[1].Score && got[1].Score >= got[2].Score)
}

func TestRetrieveTruncatesToTopK(t *testing.T) {
	embedder := newFakeEmbedder()
	embedder.vectors["query"] = []float32{1, 0, 0}
	store := &fakeChunkStore{chunks: []model.Chunk{
		storedChunk(1, 0, "a", []float32{1, 0, 0}),
		storedChunk(1, 1, "b", []float32{0.9, 0.1, 0}),
		storedChunk(1, 2, "c", []float32{0, 1, 0}),
	}}

	r := NewRetriever(store, embedder)
	got, err := r.Retrieve(context.Background(), "query", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRetrieveTiesKeepStorageOrder(t *testing.T) {
	embedder := newFakeEmbedder()
	embedder.vectors["query"] = []float32{1, 0, 0}
	same := []float32{1, 0, 0}
	store := &fakeChunkStore{chunks: []model.Chunk{
		storedChunk(1, 0, "first", same),
		storedChunk(1, 1, "second", same),
		storedChunk(2, 0, "third", same),
	}}

	r := NewRetriever(store, embedder)
	got, err := r.Retrieve(context.Background(), "query", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Content)
	assert.Equal(t, "second", got[1].Content)
	assert.Equal(t, "third", got[2].Content)
}

func TestRetrieveEmptyStore(t *testing.T) {
	r := NewRetriever(&fakeChunkStore{}, newFakeEmbedder())
	got, err := r.Retrieve(context.Background(), "query", 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRetrieveErrors(t *testing.T) {
	t.Run("invalid top_k", func(t *testing.T) {
		r := NewRetriever(&fakeChunkStore{}, newFakeEmbedder())
		_, err := r.Retrieve(context.Background(), "query", 0)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("embedder failure", func(t *testing.T) {
		embedder := newFakeEmbedder()
		embedder.err = errors.New("backend down")
		r := NewRetriever(&fakeChunkStore{}, embedder)
		_, err := r.Retrieve(context.Background(), "query", 3)
		assert.ErrorIs(t, err, ErrEmbedding)
	})

	t.Run("store failure", func(t *testing.T) {
		r := NewRetriever(&fakeChunkStore{err: errors.New("db down")}, newFakeEmbedder())
		_, err := r.Retrieve(context.Background(), "query", 3)
		assert.ErrorIs(t, err, ErrStore)
	})
}
