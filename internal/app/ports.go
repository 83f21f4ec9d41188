package app

import (
	"context"

	"docchat/internal/model"
)

// Collaborator contracts the services depend on. The GORM repositories,
// Redis cache, RabbitMQ publisher and AI clients satisfy them in
// production; tests substitute fakes.

type DocumentStore interface {
	GetByName(name string) (*model.Document, error)
	GetNameByID(id uint) (string, error)
	ReplaceWithChunks(doc *model.Document, chunks []model.Chunk) error
	ListAll() ([]model.Document, error)
}

type ChunkStore interface {
	ListAll() ([]model.Chunk, error)
	CountByDocumentID(documentID uint) (int64, error)
}

type QueryCache interface {
	Get(query string) (*model.QueryCacheEntry, error)
	Put(query, answer string, sources []string) error
	Clear() error
}

type HistoryStore interface {
	Get(userID uint) (*model.UserHistory, error)
	Set(userID uint, entries []string) error
}

// HistoryHotCache fronts HistoryStore; misses fall through to the store.
type HistoryHotCache interface {
	Get(ctx context.Context, userID uint) ([]string, bool, error)
	Set(ctx context.Context, userID uint, entries []string) error
	Delete(ctx context.Context, userID uint) error
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

type LLMCaller interface {
	Call(ctx context.Context, prompt string, maxTokens int) (string, error)
}

type InteractionPublisher interface {
	Publish(ctx context.Context, event model.InteractionEvent) error
}

// TextExtractor is the external text-extraction collaborator. Unsupported
// formats yield an empty string, not an error.
type TextExtractor func(path string) (string, error)
