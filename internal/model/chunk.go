package model

import "encoding/json"

// Chunk stores one text window of a document together with its embedding.
// Embedding is stored as a JSON array of float32 for portability.
// Composite primary key (document_id, chunk_index); chunk_index values are
// contiguous from 0 within a document.
type Chunk struct {
	DocumentID uint   `gorm:"primaryKey;autoIncrement:false" json:"document_id"`
	ChunkIndex int    `gorm:"primaryKey;autoIncrement:false" json:"chunk_index"`
	Embedding  string `gorm:"type:text" json:"-"`
	Content    string `gorm:"type:text;not null" json:"content"`
}

// EmbeddingVector returns the parsed embedding slice; empty on parse error.
func (c *Chunk) EmbeddingVector() []float32 {
	if c.Embedding == "" {
		return nil
	}
	var v []float32
	_ = json.Unmarshal([]byte(c.Embedding), &v)
	return v
}

// SetEmbedding stores the embedding as JSON.
func (c *Chunk) SetEmbedding(vec []float32) {
	if len(vec) == 0 {
		c.Embedding = "[]"
		return
	}
	b, _ := json.Marshal(vec)
	c.Embedding = string(b)
}
