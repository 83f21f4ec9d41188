package model

import (
	"encoding/json"
	"time"
)

// UserHistory keeps the rolling window of a user's most recent interactions.
// Entries are tagged strings ("Q: ...", "A: ...", "MSG: ...", "SYS: ...")
// stored wholesale as a JSON array; every update rewrites the row.
type UserHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	History   string    `gorm:"type:text;not null" json:"history"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Entries returns the parsed history window; empty on parse error.
func (h *UserHistory) Entries() []string {
	if h.History == "" {
		return nil
	}
	var entries []string
	_ = json.Unmarshal([]byte(h.History), &entries)
	return entries
}

// SetEntries stores the window as JSON.
func (h *UserHistory) SetEntries(entries []string) {
	if len(entries) == 0 {
		h.History = "[]"
		return
	}
	b, _ := json.Marshal(entries)
	h.History = string(b)
}
