package app

import (
	"context"
	"fmt"
	"sort"

	"docchat/internal/rag"
)

// RetrievedChunk is one similarity-search hit.
type RetrievedChunk struct {
	Score      float32
	DocumentID uint
	Content    string
}

// Retriever performs exact brute-force cosine search over every stored
// chunk. O(chunks * dimension) per query; fine at this corpus scale. It
// knows nothing about the answer cache: cache ordering is the answer
// service's job.
type Retriever struct {
	chunks   ChunkStore
	embedder Embedder
}

func NewRetriever(chunks ChunkStore, embedder Embedder) *Retriever {
	return &Retriever{chunks: chunks, embedder: embedder}
}

// Retrieve embeds the query and returns up to topK chunks ranked by cosine
// similarity, descending. Equal scores keep storage order.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) ([]RetrievedChunk, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("%w: top_k must be positive", ErrInvalidInput)
	}

	queryVec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}

	all, err := r.chunks.ListAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if len(all) == 0 {
		return nil, nil
	}

	scored := make([]RetrievedChunk, len(all))
	for i := range all {
		scored[i] = RetrievedChunk{
			Score:      rag.CosineSimilarity(queryVec, all[i].EmbeddingVector()),
			DocumentID: all[i].DocumentID,
			Content:    all[i].Content,
		}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	if topK < len(scored) {
		scored = scored[:topK]
	}
	return scored, nil
}
