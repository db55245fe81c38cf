package server

import (
  "fmt"
  "net/http"
  "strings"
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "github.com/yungbote/articlehub-backend/internal/handlers"
  "github.com/yungbote/articlehub-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler             *handlers.AuthHandler
  AuthMiddleware          *middleware.AuthMiddleware
  ArticleHandler          *handlers.ArticleHandler
  FeedbackHandler         *handlers.FeedbackHandler
  RecommendationHandler   *handlers.RecommendationHandler
  CommentHandler          *handlers.CommentHandler
  NotificationHandler     *handlers.NotificationHandler
  SSEHandler              *handlers.SSEHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  router.HandleMethodNotAllowed = true
  router.NoMethod(func(c *gin.Context) {
    c.JSON(http.StatusMethodNotAllowed, gin.H{"error": fmt.Sprintf("Only %s method allowed", allowedMethod(c.Request.URL.Path))})
  })

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  router.POST("/register", cfg.AuthHandler.Register)
  router.POST("/login", cfg.AuthHandler.Login)

// ===============
// || Protected ||
// ===============
  protected := router.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // User
  protected.PATCH("/update-user", cfg.AuthHandler.UpdateUser)
  // Articles
  protected.POST("/add-article", cfg.ArticleHandler.AddArticle)
  protected.GET("/get-articles", cfg.RecommendationHandler.GetArticles)
  // Feedback
  protected.POST("/toggle-like/:article_id", cfg.FeedbackHandler.ToggleLike)
  protected.POST("/toggle-dislike/:article_id", cfg.FeedbackHandler.ToggleDislike)
  protected.POST("/answer", cfg.FeedbackHandler.SubmitAnswer)
  // Comments
  protected.POST("/comment", cfg.CommentHandler.AddComment)
  // Notifications
  protected.GET("/notifications/:username", cfg.NotificationHandler.List)
  protected.DELETE("/notifications/:id", cfg.NotificationHandler.Delete)
  // SSE
  protected.GET("/sse/stream", cfg.SSEHandler.Stream)
  protected.POST("/sse/subscribe", cfg.SSEHandler.Subscribe)
  protected.POST("/sse/unsubscribe", cfg.SSEHandler.Unsubscribe)

  return router
}

// allowedMethod names the method a path is served under, including the
// parameterized routes (/toggle-like/:article_id etc.), for the 405 body.
func allowedMethod(path string) string {
  switch {
  case path == "/update-user":
    return "PATCH"
  case path == "/register", path == "/login",
    path == "/add-article", path == "/answer", path == "/comment",
    path == "/sse/subscribe", path == "/sse/unsubscribe",
    strings.HasPrefix(path, "/toggle-like/"),
    strings.HasPrefix(path, "/toggle-dislike/"):
    return "POST"
  default:
    return "GET"
  }
}
