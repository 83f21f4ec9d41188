package rag

import (
	"fmt"
	"strings"

	"docchat/internal/config"
)

// Chunker splits document text into overlapping word windows. A window of
// Size words advances by Size-Overlap words per step, so consecutive chunks
// share exactly Overlap words (except possibly the last, shorter one).
type Chunker struct {
	Size    int
	Overlap int
}

// NewChunker validates the window parameters. Overlap >= Size would never
// advance the window, so it is rejected up front.
func NewChunker(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", config.ErrInvalidConfig, size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("%w: chunk overlap %d out of range for size %d", config.ErrInvalidConfig, overlap, size)
	}
	return &Chunker{Size: size, Overlap: overlap}, nil
}

// Chunk splits text into windows of whitespace-delimited words. Empty or
// whitespace-only text yields no chunks; text shorter than one window yields
// a single chunk.
func (c *Chunker) Chunk(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := c.Size - c.Overlap
	var chunks []string
	for i := 0; i < len(words); i += step {
		end := i + c.Size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}
