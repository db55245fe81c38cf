package main

import (
  "context"
  "fmt"
  "os"
  "github.com/yungbote/articlehub-backend/internal/clients/openai"
  "github.com/yungbote/articlehub-backend/internal/clients/pinecone"
  redisclient "github.com/yungbote/articlehub-backend/internal/clients/redis"
  "github.com/yungbote/articlehub-backend/internal/db"
  "github.com/yungbote/articlehub-backend/internal/handlers"
  "github.com/yungbote/articlehub-backend/internal/logger"
  "github.com/yungbote/articlehub-backend/internal/middleware"
  "github.com/yungbote/articlehub-backend/internal/repos"
  "github.com/yungbote/articlehub-backend/internal/server"
  "github.com/yungbote/articlehub-backend/internal/services"
  "github.com/yungbote/articlehub-backend/internal/sse"
  "github.com/yungbote/articlehub-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  articleRepo := repos.NewArticleRepo(thePG, log)
  interactionRepo := repos.NewInteractionEventRepo(thePG, log)
  answerRepo := repos.NewUserAnswerRepo(thePG, log)
  commentRepo := repos.NewCommentRepo(thePG, log)
  notificationRepo := repos.NewNotificationRepo(thePG, log)

  // SSE
  log.Info("Setting up SSE hub now...")
  sseHub := sse.NewSSEHub(log)

  // Clients
  log.Info("Setting up clients from main...")
  openaiClient, err := openai.NewClient(log)
  if err != nil {
    log.Error("Could not init OpenAI client", "error", err)
    os.Exit(1)
  }
  pineconeClient, err := pinecone.New(log, pinecone.Config{APIKey: os.Getenv("PINECONE_API_KEY")})
  if err != nil {
    log.Error("Could not init Pinecone client", "error", err)
    os.Exit(1)
  }
  vectorStore, err := pinecone.NewVectorStore(log, pineconeClient)
  if err != nil {
    log.Error("Could not init Pinecone vector store", "error", err)
    os.Exit(1)
  }

  // When REDIS_ADDR is set, events are published through redis so every
  // replica's hub sees them. Otherwise events stay in-process.
  var emitter services.SSEEmitter = &services.HubEmitter{Hub: sseHub}
  if os.Getenv("REDIS_ADDR") != "" {
    sseBus, busErr := redisclient.NewSSEBus(log)
    if busErr != nil {
      log.Error("Could not init redis SSE bus", "error", busErr)
      os.Exit(1)
    }
    defer sseBus.Close()
    if fwdErr := sseBus.StartForwarder(context.Background(), sseHub.Broadcast); fwdErr != nil {
      log.Error("Could not start redis SSE forwarder", "error", fwdErr)
      os.Exit(1)
    }
    emitter = &services.RedisEmitter{Bus: sseBus}
  }
  notifier := services.NewNotifier(emitter)

  // Services
  log.Info("Setting up Services from main...")
  embedder := services.NewPreferenceEmbedder(log, openaiClient)
  index := services.NewRecommendationIndex(log, vectorStore)
  authService := services.NewAuthService(thePG, log, userRepo, embedder, index)
  articleService := services.NewArticleService(thePG, log, userRepo, articleRepo, answerRepo, openaiClient, embedder, index, notifier)
  feedbackService := services.NewFeedbackService(thePG, log, userRepo, articleRepo, interactionRepo, answerRepo, embedder, index, notifier)
  recommendationService := services.NewRecommendationService(thePG, log, articleRepo, interactionRepo, answerRepo, index)
  commentService := services.NewCommentService(thePG, log, articleRepo, commentRepo, notificationRepo, notifier)
  notificationService := services.NewNotificationService(thePG, log, notificationRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  articleHandler := handlers.NewArticleHandler(articleService)
  feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
  recommendationHandler := handlers.NewRecommendationHandler(recommendationService)
  commentHandler := handlers.NewCommentHandler(commentService)
  notificationHandler := handlers.NewNotificationHandler(notificationService)
  sseHandler := handlers.NewSSEHandler(sseHub)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:           authHandler,
    AuthMiddleware:        authMiddleware,
    ArticleHandler:        articleHandler,
    FeedbackHandler:       feedbackHandler,
    RecommendationHandler: recommendationHandler,
    CommentHandler:        commentHandler,
    NotificationHandler:   notificationHandler,
    SSEHandler:            sseHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
