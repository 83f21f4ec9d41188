package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docchat/internal/model"
)

func newChatFixture(t *testing.T) (*ChatService, *fakeHistoryStore, *fakePublisher, *fakeLLM, *fakeDocStore, *fakeChunkStore) {
	t.Helper()
	cache := newFakeQueryCache()
	docs := newFakeDocStore()
	chunks := &fakeChunkStore{}
	embedder := newFakeEmbedder()
	llm := &fakeLLM{}
	answers := NewAnswerService(cache, NewRetriever(chunks, embedder), docs, llm, 3, 300, zap.NewNop())

	store := newFakeHistoryStore()
	history := NewHistoryService(store, newFakeHotCache(), zap.NewNop())

	publisher := &fakePublisher{}
	return NewChatService(answers, history, publisher, zap.NewNop()), store, publisher, llm, docs, chunks
}

func TestAskRecordsHistoryAndEvents(t *testing.T) {
	svc, store, publisher, _, docs, chunks := newChatFixture(t)
	seedCorpus(docs, chunks)
	ctx := context.Background()

	result, err := svc.Ask(ctx, 7, "what is alpha?", 3)
	require.NoError(t, err)
	assert.False(t, result.Cached)

	stored, err := store.Get(7)
	require.NoError(t, err)
	entries := stored.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Q: what is alpha?", entries[0])
	assert.Equal(t, "A: "+result.Answer, entries[1])

	require.Len(t, publisher.events, 2)
	assert.Equal(t, model.InteractionAsk, publisher.events[0].Kind)
	assert.Equal(t, model.InteractionAnswer, publisher.events[1].Kind)
	assert.Equal(t, uint(7), publisher.events[0].UserID)
}

func TestAskSurvivesPublisherFailure(t *testing.T) {
	svc, _, publisher, _, docs, chunks := newChatFixture(t)
	seedCorpus(docs, chunks)
	publisher.err = errors.New("broker down")

	_, err := svc.Ask(context.Background(), 7, "q", 3)
	require.NoError(t, err)
}

func TestAskInvalidInput(t *testing.T) {
	svc, _, _, _, _, _ := newChatFixture(t)
	ctx := context.Background()

	_, err := svc.Ask(ctx, 0, "q", 3)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Ask(ctx, 7, "  ", 3)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSummarize(t *testing.T) {
	svc, store, publisher, llm, docs, chunks := newChatFixture(t)
	seedCorpus(docs, chunks)
	llm.answer = "- bullet one\n- bullet two\n- bullet three"
	ctx := context.Background()

	require.NoError(t, store.Set(7, []string{"Q: one", "A: one"}))

	result, err := svc.Summarize(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, llm.answer, result.Answer)

	stored, err := store.Get(7)
	require.NoError(t, err)
	assert.Contains(t, stored.Entries(), "SYS: summarize request")

	require.Len(t, publisher.events, 1)
	assert.Equal(t, model.InteractionSummarize, publisher.events[0].Kind)
}

func TestSummarizeNoHistory(t *testing.T) {
	svc, _, _, _, _, _ := newChatFixture(t)

	_, err := svc.Summarize(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNoHistory)
}

func TestRecordMessage(t *testing.T) {
	svc, store, publisher, _, _, _ := newChatFixture(t)
	ctx := context.Background()

	greeting, err := svc.RecordMessage(ctx, 7, "hello there")
	require.NoError(t, err)
	assert.Equal(t, GreetingMessage, greeting)

	stored, err := store.Get(7)
	require.NoError(t, err)
	assert.Equal(t, []string{"MSG: hello there"}, stored.Entries())

	require.Len(t, publisher.events, 1)
	assert.Equal(t, model.InteractionMessage, publisher.events[0].Kind)
}

func TestRecordMessageTruncatesLongText(t *testing.T) {
	svc, store, _, _, _, _ := newChatFixture(t)

	_, err := svc.RecordMessage(context.Background(), 7, strings.Repeat("y", 400))
	require.NoError(t, err)

	stored, err := store.Get(7)
	require.NoError(t, err)
	entries := stored.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "MSG: "+strings.Repeat("y", 300)+"...", entries[0])
}
