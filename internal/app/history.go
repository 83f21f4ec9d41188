package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

const (
	// historyWindow is how many recent entries a user's history keeps.
	historyWindow = 3
	// entryLimit truncates long queries and answers inside history entries.
	entryLimit = 300
)

// HistoryService maintains the per-user rolling history window: read-modify-
// write against the durable store, written through to the Redis hot cache.
type HistoryService struct {
	store  HistoryStore
	hot    HistoryHotCache
	logger *zap.Logger
}

func NewHistoryService(store HistoryStore, hot HistoryHotCache, logger *zap.Logger) *HistoryService {
	return &HistoryService{store: store, hot: hot, logger: logger}
}

// HistoryEntry formats a tagged window entry, truncating long text.
func HistoryEntry(tag, text string) string {
	runes := []rune(text)
	if len(runes) > entryLimit {
		text = string(runes[:entryLimit]) + "..."
	}
	return tag + ": " + text
}

// Push appends an entry and truncates the window to its last entries. The
// whole window is rewritten; the hot cache write is best effort.
func (s *HistoryService) Push(ctx context.Context, userID uint, entry string) error {
	if userID == 0 {
		return ErrInvalidInput
	}

	var entries []string
	stored, err := s.store.Get(userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	if stored != nil {
		entries = stored.Entries()
	}

	entries = append(entries, entry)
	if len(entries) > historyWindow {
		entries = entries[len(entries)-historyWindow:]
	}

	if err := s.store.Set(userID, entries); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	if s.hot != nil {
		if err := s.hot.Set(ctx, userID, entries); err != nil {
			s.logger.Warn("history hot cache write failed", zap.Uint("user_id", userID), zap.Error(err))
		}
	}
	return nil
}

// Window returns the user's history, hot cache first.
func (s *HistoryService) Window(ctx context.Context, userID uint) ([]string, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}

	if s.hot != nil {
		if entries, hit, err := s.hot.Get(ctx, userID); err == nil && hit {
			return entries, nil
		} else if err != nil {
			s.logger.Warn("history hot cache read failed", zap.Uint("user_id", userID), zap.Error(err))
		}
	}

	stored, err := s.store.Get(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if stored == nil {
		return nil, nil
	}
	entries := stored.Entries()

	if s.hot != nil {
		if err := s.hot.Set(ctx, userID, entries); err != nil {
			s.logger.Warn("history hot cache fill failed", zap.Uint("user_id", userID), zap.Error(err))
		}
	}
	return entries, nil
}
