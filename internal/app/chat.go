package app

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"docchat/internal/model"
)

const summarizePromptHeader = "Summarize the following into 3 concise bullet points:\n\n"

// GreetingMessage is the canned reply to plain chat messages that are not
// questions.
const GreetingMessage = "Hi! Ask a question about the indexed documents with /rag/ask, or /summarize to recap your recent activity."

// ChatService is the conversational surface over the answer pipeline: it
// maintains the history window around each interaction and publishes audit
// events for the async persist worker.
type ChatService struct {
	answers   *AnswerService
	history   *HistoryService
	publisher InteractionPublisher
	logger    *zap.Logger
}

func NewChatService(
	answers *AnswerService,
	history *HistoryService,
	publisher InteractionPublisher,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		answers:   answers,
		history:   history,
		publisher: publisher,
		logger:    logger,
	}
}

// Ask answers a question for the user, recording Q and A history entries.
func (s *ChatService) Ask(ctx context.Context, userID uint, query string, topK int) (*Answer, error) {
	if userID == 0 || strings.TrimSpace(query) == "" {
		return nil, ErrInvalidInput
	}

	if err := s.history.Push(ctx, userID, HistoryEntry("Q", query)); err != nil {
		return nil, err
	}

	result, err := s.answers.AnswerQuery(ctx, query, topK)
	if err != nil {
		return nil, err
	}

	if err := s.history.Push(ctx, userID, HistoryEntry("A", result.Answer)); err != nil {
		return nil, err
	}

	s.publish(ctx, model.InteractionEvent{UserID: userID, Kind: model.InteractionAsk, Content: query})
	s.publish(ctx, model.InteractionEvent{UserID: userID, Kind: model.InteractionAnswer, Content: result.Answer, Cached: result.Cached})
	return result, nil
}

// Summarize condenses the user's history window into bullet points by
// running it through the answer pipeline with top_k = 1.
func (s *ChatService) Summarize(ctx context.Context, userID uint) (*Answer, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}

	window, err := s.history.Window(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(window) == 0 {
		return nil, ErrNoHistory
	}

	prompt := summarizePromptHeader + strings.Join(window, "\n")
	if err := s.history.Push(ctx, userID, HistoryEntry("SYS", "summarize request")); err != nil {
		return nil, err
	}

	result, err := s.answers.AnswerQuery(ctx, prompt, 1)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, model.InteractionEvent{UserID: userID, Kind: model.InteractionSummarize, Content: result.Answer, Cached: result.Cached})
	return result, nil
}

// RecordMessage logs a plain (non-question) chat message into the history
// window and returns the canned greeting.
func (s *ChatService) RecordMessage(ctx context.Context, userID uint, text string) (string, error) {
	if userID == 0 || strings.TrimSpace(text) == "" {
		return "", ErrInvalidInput
	}

	if err := s.history.Push(ctx, userID, HistoryEntry("MSG", text)); err != nil {
		return "", err
	}
	s.publish(ctx, model.InteractionEvent{UserID: userID, Kind: model.InteractionMessage, Content: text})
	return GreetingMessage, nil
}

// History returns the user's current window.
func (s *ChatService) History(ctx context.Context, userID uint) ([]string, error) {
	return s.history.Window(ctx, userID)
}

// publish is best effort: the interaction audit trail never fails a request.
func (s *ChatService) publish(ctx context.Context, event model.InteractionEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish interaction failed",
			zap.Uint("user_id", event.UserID),
			zap.String("kind", event.Kind),
			zap.Error(err),
		)
	}
}
