package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// SourceSeparator joins document names in QueryCacheEntry.UsedSources.
const SourceSeparator = "|"

// QueryCacheEntry caches an answered query. The key is the exact literal
// query string: MySQL cannot put a unique index on the full TEXT column, so
// the row carries a SHA-256 of the exact query bytes instead. No
// normalization happens on either side of the lookup.
type QueryCacheEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	QueryHash   string    `gorm:"size:64;not null;uniqueIndex" json:"query_hash"`
	Query       string    `gorm:"type:text;not null" json:"query"`
	Answer      string    `gorm:"type:text;not null" json:"answer"`
	UsedSources string    `gorm:"type:text" json:"used_sources"`
	CreatedAt   time.Time `json:"created_at"`
}

// HashQuery returns the cache key for the exact query string.
func HashQuery(query string) string {
	sum := sha256.Sum256([]byte(query))
	return hex.EncodeToString(sum[:])
}

// Sources splits UsedSources back into the ordered document name list.
func (e *QueryCacheEntry) Sources() []string {
	if e.UsedSources == "" {
		return []string{}
	}
	return strings.Split(e.UsedSources, SourceSeparator)
}

// SetSources joins the ordered document names into UsedSources.
func (e *QueryCacheEntry) SetSources(names []string) {
	e.UsedSources = strings.Join(names, SourceSeparator)
}
