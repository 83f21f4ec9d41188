package app

import (
	"context"
	"errors"
	"fmt"

	"docchat/internal/model"
)

// In-memory fakes for the collaborator contracts in ports.go.

type fakeQueryCache struct {
	entries map[string]*model.QueryCacheEntry
	puts    int
	clears  int
	getErr  error
}

func newFakeQueryCache() *fakeQueryCache {
	return &fakeQueryCache{entries: make(map[string]*model.QueryCacheEntry)}
}

func (f *fakeQueryCache) Get(query string) (*model.QueryCacheEntry, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.entries[query], nil
}

func (f *fakeQueryCache) Put(query, answer string, sources []string) error {
	f.puts++
	entry := &model.QueryCacheEntry{Query: query, Answer: answer}
	entry.SetSources(sources)
	f.entries[query] = entry
	return nil
}

func (f *fakeQueryCache) Clear() error {
	f.clears++
	f.entries = make(map[string]*model.QueryCacheEntry)
	return nil
}

type fakeChunkStore struct {
	chunks []model.Chunk
	err    error
}

func (f *fakeChunkStore) ListAll() ([]model.Chunk, error) {
	return f.chunks, f.err
}

func (f *fakeChunkStore) CountByDocumentID(documentID uint) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var n int64
	for _, c := range f.chunks {
		if c.DocumentID == documentID {
			n++
		}
	}
	return n, nil
}

type fakeDocStore struct {
	docs     map[string]*model.Document
	names    map[uint]string
	replaced []string
	nextID   uint
}

func newFakeDocStore() *fakeDocStore {
	return &fakeDocStore{
		docs:  make(map[string]*model.Document),
		names: make(map[uint]string),
	}
}

func (f *fakeDocStore) GetByName(name string) (*model.Document, error) {
	return f.docs[name], nil
}

func (f *fakeDocStore) GetNameByID(id uint) (string, error) {
	return f.names[id], nil
}

func (f *fakeDocStore) ReplaceWithChunks(doc *model.Document, chunks []model.Chunk) error {
	f.nextID++
	doc.ID = f.nextID
	f.docs[doc.Name] = doc
	f.names[doc.ID] = doc.Name
	f.replaced = append(f.replaced, doc.Name)
	return nil
}

func (f *fakeDocStore) ListAll() ([]model.Document, error) {
	out := make([]model.Document, 0, len(f.docs))
	for _, doc := range f.docs {
		out = append(out, *doc)
	}
	return out, nil
}

// fakeEmbedder maps every text to a deterministic vector; unknown texts get
// a fixed fallback so lookups never fail.
type fakeEmbedder struct {
	vectors map[string][]float32
	batches int
	err     error
}

func newFakeEmbedder() *fakeEmbedder {
	return &fakeEmbedder{vectors: make(map[string][]float32)}
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return []float32{1, 0, 0}, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.batches++
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := f.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

type fakeLLM struct {
	answer string
	calls  int
	err    error
}

func (f *fakeLLM) Call(_ context.Context, prompt string, _ int) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if f.answer != "" {
		return f.answer, nil
	}
	return fmt.Sprintf("answer %d", f.calls), nil
}

type fakeHistoryStore struct {
	histories map[uint]*model.UserHistory
	err       error
}

func newFakeHistoryStore() *fakeHistoryStore {
	return &fakeHistoryStore{histories: make(map[uint]*model.UserHistory)}
}

func (f *fakeHistoryStore) Get(userID uint) (*model.UserHistory, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.histories[userID], nil
}

func (f *fakeHistoryStore) Set(userID uint, entries []string) error {
	if f.err != nil {
		return f.err
	}
	h, ok := f.histories[userID]
	if !ok {
		h = &model.UserHistory{UserID: userID}
		f.histories[userID] = h
	}
	h.SetEntries(entries)
	return nil
}

type fakeHotCache struct {
	entries map[uint][]string
	broken  bool
}

func newFakeHotCache() *fakeHotCache {
	return &fakeHotCache{entries: make(map[uint][]string)}
}

func (f *fakeHotCache) Get(_ context.Context, userID uint) ([]string, bool, error) {
	if f.broken {
		return nil, false, errors.New("hot cache down")
	}
	entries, ok := f.entries[userID]
	return entries, ok, nil
}

func (f *fakeHotCache) Set(_ context.Context, userID uint, entries []string) error {
	if f.broken {
		return errors.New("hot cache down")
	}
	f.entries[userID] = append([]string(nil), entries...)
	return nil
}

func (f *fakeHotCache) Delete(_ context.Context, userID uint) error {
	delete(f.entries, userID)
	return nil
}

type fakePublisher struct {
	events []model.InteractionEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, event model.InteractionEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}
