package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docchat/internal/ai"
	"docchat/internal/model"
)

func newAnswerFixture() (*AnswerService, *fakeQueryCache, *fakeDocStore, *fakeChunkStore, *fakeEmbedder, *fakeLLM) {
	cache := newFakeQueryCache()
	docs := newFakeDocStore()
	chunks := &fakeChunkStore{}
	embedder := newFakeEmbedder()
	llm := &fakeLLM{}
	retriever := NewRetriever(chunks, embedder)
	svc := NewAnswerService(cache, retriever, docs, llm, 3, 300, zap.NewNop())
	return svc, cache, docs, chunks, embedder, llm
}

func seedCorpus(docs *fakeDocStore, chunks *fakeChunkStore) {
	docs.names[1] = "guide.md"
	c := model.Chunk{DocumentID: 1, ChunkIndex: 0, Content: "alpha is a greek letter"}
	c.SetEmbedding([]float32{1, 0, 0})
	chunks.chunks = []model.Chunk{c}
}

func TestAnswerQueryCacheRoundTrip(t *testing.T) {
	svc, _, docs, chunks, _, llm := newAnswerFixture()
	seedCorpus(docs, chunks)
	ctx := context.Background()

	first, err := svc.AnswerQuery(ctx, "what is alpha?", 3)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, []string{"guide.md"}, first.Sources)
	assert.Equal(t, 1, llm.calls)

	second, err := svc.AnswerQuery(ctx, "what is alpha?", 3)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Answer, second.Answer)
	assert.Equal(t, first.Sources, second.Sources)
	// cache hit must not touch the model
	assert.Equal(t, 1, llm.calls)
}

func TestAnswerQueryCacheIsExactMatch(t *testing.T) {
	svc, _, docs, chunks, _, llm := newAnswerFixture()
	seedCorpus(docs, chunks)
	ctx := context.Background()

	_, err := svc.AnswerQuery(ctx, "what is alpha?", 3)
	require.NoError(t, err)

	// different literal string, even if semantically identical
	_, err = svc.AnswerQuery(ctx, "What is alpha?", 3)
	require.NoError(t, err)
	assert.Equal(t, 2, llm.calls)
}

func TestAnswerQueryEmptyIndex(t *testing.T) {
	svc, cache, _, _, _, llm := newAnswerFixture()

	got, err := svc.AnswerQuery(context.Background(), "anything", 3)
	require.NoError(t, err)
	assert.Equal(t, NoDocumentsMessage, got.Answer)
	assert.Empty(t, got.Sources)
	assert.False(t, got.Cached)
	assert.Zero(t, llm.calls)
	// the guidance message must not be cached as an answer
	assert.Zero(t, cache.puts)
}

func TestAnswerQueryEmptyQuery(t *testing.T) {
	svc, _, _, _, _, _ := newAnswerFixture()

	_, err := svc.AnswerQuery(context.Background(), "   ", 3)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnswerQueryDefaultTopK(t *testing.T) {
	svc, _, docs, chunks, _, _ := newAnswerFixture()
	seedCorpus(docs, chunks)

	got, err := svc.AnswerQuery(context.Background(), "q", 0)
	require.NoError(t, err)
	assert.False(t, got.Cached)
}

func TestAnswerQueryLLMFailure(t *testing.T) {
	svc, cache, docs, chunks, _, llm := newAnswerFixture()
	seedCorpus(docs, chunks)

	llm.err = errors.New("upstream 500")
	_, err := svc.AnswerQuery(context.Background(), "q", 3)
	assert.ErrorIs(t, err, ErrLLM)
	assert.Zero(t, cache.puts)
}

func TestAnswerQueryLLMTimeoutPassthrough(t *testing.T) {
	svc, _, docs, chunks, _, llm := newAnswerFixture()
	seedCorpus(docs, chunks)

	llm.err = ai.ErrLLMTimeout
	_, err := svc.AnswerQuery(context.Background(), "q", 3)
	assert.ErrorIs(t, err, ai.ErrLLMTimeout)
	assert.NotErrorIs(t, err, ErrLLM)
}

func TestAnswerQueryCacheReadFailure(t *testing.T) {
	svc, cache, docs, chunks, _, _ := newAnswerFixture()
	seedCorpus(docs, chunks)

	cache.getErr = errors.New("db down")
	_, err := svc.AnswerQuery(context.Background(), "q", 3)
	assert.ErrorIs(t, err, ErrStore)
}
