package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"docchat/internal/ai"
	"docchat/internal/app"
	"docchat/internal/bootstrap"
	"docchat/internal/cache"
	"docchat/internal/platform/rabbitmq"
	"docchat/internal/rag"
	"docchat/internal/repository"
	"docchat/internal/transport/http/handler"
	"docchat/internal/transport/http/middleware"
	"docchat/internal/vision"
)

// NewRouter builds every service from the app's shared resources and wires
// the route tree. All /api/v1 routes except register and login require a
// valid JWT; the index trigger additionally requires an admin user.
func NewRouter(application *bootstrap.App) (*gin.Engine, error) {
	cfg := application.Config
	gin.SetMode(cfg.App.GinMode)

	userRepo := repository.NewUserRepository(application.MySQL)
	docRepo := repository.NewDocumentRepository(application.MySQL)
	chunkRepo := repository.NewChunkRepository(application.MySQL)
	queryCacheRepo := repository.NewQueryCacheRepository(application.MySQL)
	historyRepo := repository.NewHistoryRepository(application.MySQL)

	historyHot := cache.NewHistoryCache(
		application.Redis, time.Duration(cfg.Redis.HistoryTTLSeconds)*time.Second)
	publisher := rabbitmq.NewInteractionPublisher(
		application.MQConn, cfg.RabbitMQ.InteractionQueue)

	chunker, err := rag.NewChunker(cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap)
	if err != nil {
		return nil, err
	}
	embedder := ai.NewEmbedder(ai.EmbeddingConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.EmbeddingModel,
	})
	llm := ai.NewLLMClient(ai.LLMConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		Timeout: time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
	})

	indexer := app.NewIndexerService(
		docRepo, chunkRepo, queryCacheRepo, chunker, embedder, nil, application.Logger)
	retriever := app.NewRetriever(chunkRepo, embedder)
	answers := app.NewAnswerService(
		queryCacheRepo, retriever, docRepo, llm,
		cfg.RAG.TopK, cfg.RAG.MaxAnswerTokens, application.Logger)
	history := app.NewHistoryService(historyRepo, historyHot, application.Logger)
	chat := app.NewChatService(answers, history, publisher, application.Logger)
	auth := app.NewAuthService(
		userRepo, cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.JWTExpireMinute)*time.Minute)
	captioner := vision.NewCaptioner(
		cfg.Vision.ModelPath, cfg.Vision.LabelsPath,
		cfg.Vision.ONNXSharedLibPath, cfg.Vision.TagCount)

	authHandler := handler.NewAuthHandler(auth)
	ragHandler := handler.NewRAGHandler(indexer, chat, cfg.RAG.DocsFolder)
	chatHandler := handler.NewChatHandler(chat)
	visionHandler := handler.NewVisionHandler(captioner)
	healthHandler := handler.NewHealthHandler(application)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/healthz", healthHandler.Check)

	v1 := router.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/me", middleware.AuthJWT(cfg.Auth.JWTSecret), authHandler.Me)
		}

		authed := v1.Group("")
		authed.Use(middleware.AuthJWT(cfg.Auth.JWTSecret))
		{
			authed.POST("/rag/index", middleware.RequireAdmin(), ragHandler.Index)
			authed.POST("/rag/ask", ragHandler.Ask)
			authed.GET("/rag/documents", ragHandler.Documents)

			authed.POST("/chat/messages", chatHandler.SendMessage)
			authed.GET("/chat/history", chatHandler.GetHistory)
			authed.POST("/chat/summarize", chatHandler.Summarize)

			authed.POST("/vision/caption", visionHandler.Caption)
		}
	}

	return router, nil
}
