package repository

import (
	"fmt"

	"gorm.io/gorm"

	"docchat/internal/model"
)

type InteractionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{db: db}
}

func (r *InteractionRepository) Create(event *model.InteractionEvent) error {
	if err := r.db.Create(event).Error; err != nil {
		return fmt.Errorf("create interaction event failed: %w", err)
	}
	return nil
}
