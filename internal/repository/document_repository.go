package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"docchat/internal/model"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// GetByName returns the document with the given name, or nil when absent.
func (r *DocumentRepository) GetByName(name string) (*model.Document, error) {
	var doc model.Document
	if err := r.db.Where("name = ?", name).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document by name failed: %w", err)
	}
	return &doc, nil
}

// GetNameByID resolves a document id to its name; empty string when absent.
func (r *DocumentRepository) GetNameByID(id uint) (string, error) {
	var doc model.Document
	if err := r.db.Select("name").Where("id = ?", id).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("get document name failed: %w", err)
	}
	return doc.Name, nil
}

// ReplaceWithChunks upserts the document by name and installs its full chunk
// set in a single transaction. Replacement is delete+reinsert, never update,
// so the old chunk set goes away with the old row and a concurrent retrieval
// scan never observes a partially written chunk set.
func (r *DocumentRepository) ReplaceWithChunks(doc *model.Document, chunks []model.Chunk) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Document
		err := tx.Where("name = ?", doc.Name).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Where("document_id = ?", existing.ID).Delete(&model.Chunk{}).Error; err != nil {
				return fmt.Errorf("delete old chunks failed: %w", err)
			}
			if err := tx.Delete(&existing).Error; err != nil {
				return fmt.Errorf("delete old document failed: %w", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// first index of this name
		default:
			return fmt.Errorf("lookup document failed: %w", err)
		}

		if err := tx.Create(doc).Error; err != nil {
			return fmt.Errorf("create document failed: %w", err)
		}
		if len(chunks) > 0 {
			for i := range chunks {
				chunks[i].DocumentID = doc.ID
			}
			if err := tx.Create(&chunks).Error; err != nil {
				return fmt.Errorf("create chunks failed: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace document %q failed: %w", doc.Name, err)
	}
	return nil
}

// ListAll returns every indexed document.
func (r *DocumentRepository) ListAll() ([]model.Document, error) {
	var docs []model.Document
	if err := r.db.Order("id").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("list documents failed: %w", err)
	}
	return docs, nil
}
