package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"docchat/internal/model"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Get returns the stored history window for the user, or nil when absent.
func (r *HistoryRepository) Get(userID uint) (*model.UserHistory, error) {
	var hist model.UserHistory
	if err := r.db.Where("user_id = ?", userID).First(&hist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user history failed: %w", err)
	}
	return &hist, nil
}

// Set overwrites the user's history window wholesale.
func (r *HistoryRepository) Set(userID uint, entries []string) error {
	hist := model.UserHistory{UserID: userID}
	hist.SetEntries(entries)

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"history", "updated_at"}),
	}).Create(&hist).Error
	if err != nil {
		return fmt.Errorf("set user history failed: %w", err)
	}
	return nil
}
