package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docchat/internal/ai"
	"docchat/internal/app"
	"docchat/internal/transport/http/response"
)

// RAGHandler exposes the indexing and question-answering pipeline.
type RAGHandler struct {
	indexer    *app.IndexerService
	chat       *app.ChatService
	docsFolder string
}

type AskRequest struct {
	Question string `json:"question" binding:"required"`
	TopK     int    `json:"top_k"`
}

func NewRAGHandler(indexer *app.IndexerService, chat *app.ChatService, docsFolder string) *RAGHandler {
	return &RAGHandler{
		indexer:    indexer,
		chat:       chat,
		docsFolder: docsFolder,
	}
}

// Index re-indexes the configured documents folder. Admin only; the
// middleware enforces that.
func (h *RAGHandler) Index(c *gin.Context) {
	processed, err := h.indexer.IndexFolder(c.Request.Context(), h.docsFolder)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "index failed: "+err.Error())
		return
	}

	response.OK(c, gin.H{"files_processed": processed, "folder": h.docsFolder})
}

// Documents lists the indexed documents and their chunk counts.
func (h *RAGHandler) Documents(c *gin.Context) {
	docs, err := h.indexer.Documents(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list documents failed")
		return
	}

	response.OK(c, gin.H{"documents": docs})
}

// Ask answers a question grounded in the indexed documents.
func (h *RAGHandler) Ask(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.chat.Ask(c.Request.Context(), userID, req.Question, req.TopK)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, ai.ErrLLMTimeout):
			response.Error(c, http.StatusGatewayTimeout, response.CodeInternalServer, "answer timed out")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "ask failed")
		}
		return
	}

	response.OK(c, result)
}
