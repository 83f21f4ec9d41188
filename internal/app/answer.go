package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"docchat/internal/ai"
)

// NoDocumentsMessage is returned when retrieval finds nothing to ground an
// answer on.
const NoDocumentsMessage = "No documents indexed. Add files to the documents folder and trigger an index run."

// Answer is the result shape the chat front end renders.
type Answer struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
	Cached  bool     `json:"cached"`
}

// AnswerService runs the query pipeline: cache lookup, retrieval, prompt
// assembly, LLM call, cache write. The two cache steps and retrieval are
// explicitly ordered here; the retriever itself is cache-unaware.
type AnswerService struct {
	cache     QueryCache
	retriever *Retriever
	docs      DocumentStore
	llm       LLMCaller
	logger    *zap.Logger

	defaultTopK     int
	maxAnswerTokens int
}

func NewAnswerService(
	cache QueryCache,
	retriever *Retriever,
	docs DocumentStore,
	llm LLMCaller,
	defaultTopK, maxAnswerTokens int,
	logger *zap.Logger,
) *AnswerService {
	if defaultTopK <= 0 {
		defaultTopK = 3
	}
	if maxAnswerTokens <= 0 {
		maxAnswerTokens = 300
	}
	return &AnswerService{
		cache:           cache,
		retriever:       retriever,
		docs:            docs,
		llm:             llm,
		logger:          logger,
		defaultTopK:     defaultTopK,
		maxAnswerTokens: maxAnswerTokens,
	}
}

// AnswerQuery answers a query, serving from the exact-string cache when
// possible. topK <= 0 falls back to the configured default.
func (s *AnswerService) AnswerQuery(ctx context.Context, query string, topK int) (*Answer, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrInvalidInput
	}
	if topK <= 0 {
		topK = s.defaultTopK
	}

	cached, err := s.cache.Get(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if cached != nil {
		return &Answer{
			Answer:  cached.Answer,
			Sources: cached.Sources(),
			Cached:  true,
		}, nil
	}

	retrieved, err := s.retriever.Retrieve(ctx, query, topK)
	if err != nil {
		return nil, err
	}
	if len(retrieved) == 0 {
		return &Answer{
			Answer:  NoDocumentsMessage,
			Sources: []string{},
			Cached:  false,
		}, nil
	}

	prompt, usedDocs, err := BuildPrompt(query, retrieved, s.docs.GetNameByID)
	if err != nil {
		return nil, err
	}

	answer, err := s.llm.Call(ctx, prompt, s.maxAnswerTokens)
	if err != nil {
		if errors.Is(err, ai.ErrLLMTimeout) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrLLM, err)
	}

	if err := s.cache.Put(query, answer, usedDocs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	s.logger.Debug("answered query",
		zap.Int("retrieved", len(retrieved)),
		zap.Strings("sources", usedDocs),
	)
	return &Answer{
		Answer:  answer,
		Sources: usedDocs,
		Cached:  false,
	}, nil
}
