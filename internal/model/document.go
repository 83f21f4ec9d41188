package model

import "time"

// Document is one indexed file. Name is the natural key: re-indexing the
// same name replaces the document and all of its chunks.
type Document struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:256;not null;uniqueIndex" json:"name"`
	SourcePath  string    `gorm:"size:512;not null" json:"source_path"`
	ContentHash string    `gorm:"size:64;not null" json:"content_hash"`
	CreatedAt   time.Time `json:"created_at"`
}
