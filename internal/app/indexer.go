package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"docchat/internal/model"
	"docchat/internal/pkg/textextract"
	"docchat/internal/rag"
)

// Embedding providers often cap batch sizes; chunks are embedded in slices
// of this many.
const embeddingBatchSize = 10

// IndexerService walks a documents folder and populates the store:
// extract -> hash -> chunk -> embed -> transactional replace per document.
type IndexerService struct {
	docs     DocumentStore
	chunks   ChunkStore
	cache    QueryCache
	chunker  *rag.Chunker
	embedder Embedder
	extract  TextExtractor
	logger   *zap.Logger
}

func NewIndexerService(
	docs DocumentStore,
	chunks ChunkStore,
	cache QueryCache,
	chunker *rag.Chunker,
	embedder Embedder,
	extract TextExtractor,
	logger *zap.Logger,
) *IndexerService {
	if extract == nil {
		extract = textextract.ExtractText
	}
	return &IndexerService{
		docs:     docs,
		chunks:   chunks,
		cache:    cache,
		chunker:  chunker,
		embedder: embedder,
		extract:  extract,
		logger:   logger,
	}
}

// DocumentInfo describes one indexed document for listing.
type DocumentInfo struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	SourcePath string `json:"source_path"`
	Chunks     int64  `json:"chunks"`
}

// Documents lists every indexed document with its chunk count.
func (s *IndexerService) Documents(_ context.Context) ([]DocumentInfo, error) {
	docs, err := s.docs.ListAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	infos := make([]DocumentInfo, len(docs))
	for i, doc := range docs {
		n, err := s.chunks.CountByDocumentID(doc.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStore, err)
		}
		infos[i] = DocumentInfo{ID: doc.ID, Name: doc.Name, SourcePath: doc.SourcePath, Chunks: n}
	}
	return infos, nil
}

// IndexFolder indexes every supported file in folder and returns how many
// files were processed (not how many chunks were written). A file whose
// extraction fails is logged and skipped; the rest of the folder still
// indexes. Unchanged files (same content hash) are counted as processed but
// not re-chunked or re-embedded. When at least one document changed, the
// query cache is cleared so cached answers cannot outlive the corpus they
// were produced from.
func (s *IndexerService) IndexFolder(ctx context.Context, folder string) (int, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return 0, fmt.Errorf("read docs folder failed: %w", err)
	}

	processed := 0
	changed := 0
	for _, entry := range entries {
		if entry.IsDir() || !textextract.SupportedExt(filepath.Ext(entry.Name())) {
			continue
		}

		path := filepath.Join(folder, entry.Name())
		didChange, err := s.indexFile(ctx, entry.Name(), path)
		if err != nil {
			if isRecoverable(err) {
				s.logger.Warn("skipping file", zap.String("file", entry.Name()), zap.Error(err))
				continue
			}
			return processed, err
		}
		processed++
		if didChange {
			changed++
		}
	}

	if changed > 0 {
		if err := s.cache.Clear(); err != nil {
			return processed, fmt.Errorf("%w: %v", ErrStore, err)
		}
	}

	s.logger.Info("index run finished",
		zap.String("folder", folder),
		zap.Int("processed", processed),
		zap.Int("changed", changed),
	)
	return processed, nil
}

// indexFile indexes one file; reports whether the stored document changed.
func (s *IndexerService) indexFile(ctx context.Context, name, path string) (bool, error) {
	text, err := s.extract(path)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrExtraction, path, err)
	}
	hash := textextract.ContentHash(text)

	existing, err := s.docs.GetByName(name)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if existing != nil && existing.ContentHash == hash {
		return false, nil
	}

	texts := s.chunker.Chunk(text)

	var chunks []model.Chunk
	if len(texts) > 0 {
		embeddings := make([][]float32, 0, len(texts))
		for i := 0; i < len(texts); i += embeddingBatchSize {
			end := i + embeddingBatchSize
			if end > len(texts) {
				end = len(texts)
			}
			batch, err := s.embedder.EmbedBatch(ctx, texts[i:end])
			if err != nil {
				return false, fmt.Errorf("%w: %v", ErrEmbedding, err)
			}
			embeddings = append(embeddings, batch...)
		}
		if len(embeddings) != len(texts) {
			return false, fmt.Errorf("%w: got %d vectors for %d chunks", ErrEmbedding, len(embeddings), len(texts))
		}

		chunks = make([]model.Chunk, len(texts))
		for i := range texts {
			chunks[i] = model.Chunk{ChunkIndex: i, Content: texts[i]}
			chunks[i].SetEmbedding(embeddings[i])
		}
	}

	doc := &model.Document{Name: name, SourcePath: path, ContentHash: hash}
	if err := s.docs.ReplaceWithChunks(doc, chunks); err != nil {
		return false, fmt.Errorf("%w: %v", ErrStore, err)
	}

	s.logger.Info("indexed document",
		zap.String("name", name),
		zap.Int("chunks", len(chunks)),
	)
	return true, nil
}

func isRecoverable(err error) bool {
	return errors.Is(err, ErrExtraction)
}
