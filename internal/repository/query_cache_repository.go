package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"docchat/internal/model"
)

type QueryCacheRepository struct {
	db *gorm.DB
}

func NewQueryCacheRepository(db *gorm.DB) *QueryCacheRepository {
	return &QueryCacheRepository{db: db}
}

// Put stores the answer for the exact query string, overwriting any earlier
// entry for the same query.
func (r *QueryCacheRepository) Put(query, answer string, sources []string) error {
	entry := model.QueryCacheEntry{
		QueryHash: model.HashQuery(query),
		Query:     query,
		Answer:    answer,
	}
	entry.SetSources(sources)

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "query_hash"}},
		DoUpdates: clause.AssignmentColumns([]string{"answer", "used_sources"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("cache query failed: %w", err)
	}
	return nil
}

// Get returns the cached entry for the exact query string, or nil when
// absent. No normalization: a query differing by one byte misses.
func (r *QueryCacheRepository) Get(query string) (*model.QueryCacheEntry, error) {
	var entry model.QueryCacheEntry
	if err := r.db.Where("query_hash = ?", model.HashQuery(query)).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cached query failed: %w", err)
	}
	return &entry, nil
}

// Clear drops every cached answer. Called after an index run changes the
// corpus so stale answers never outlive the documents they came from.
func (r *QueryCacheRepository) Clear() error {
	if err := r.db.Where("1 = 1").Delete(&model.QueryCacheEntry{}).Error; err != nil {
		return fmt.Errorf("clear query cache failed: %w", err)
	}
	return nil
}
