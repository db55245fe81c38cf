package handlers

import (
  "context"
  "errors"
  "net/http"
  "strconv"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/articlehub-backend/internal/requestdata"
  "github.com/yungbote/articlehub-backend/internal/services"
  "github.com/yungbote/articlehub-backend/internal/types"
)

type FeedbackHandler struct {
  feedbackService   services.FeedbackService
}

func NewFeedbackHandler(feedbackService services.FeedbackService) *FeedbackHandler {
  return &FeedbackHandler{feedbackService: feedbackService}
}

func (fh *FeedbackHandler) ToggleLike(c *gin.Context) {
  fh.toggle(c, fh.feedbackService.ToggleLike)
}

func (fh *FeedbackHandler) ToggleDislike(c *gin.Context) {
  fh.toggle(c, fh.feedbackService.ToggleDislike)
}

func (fh *FeedbackHandler) toggle(c *gin.Context, fn func(ctx context.Context, username string, articleID uint) (*types.Article, error)) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
    return
  }
  articleID, err := strconv.ParseUint(c.Param("article_id"), 10, 64)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
    return
  }
  article, err := fn(c.Request.Context(), rd.Username, uint(articleID))
  if err != nil {
    switch {
    case errors.Is(err, services.ErrUserNotFound):
      c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
    case errors.Is(err, services.ErrArticleNotFound):
      c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
    default:
      c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    }
    return
  }
  c.JSON(http.StatusOK, gin.H{
    "article_id":    article.ID,
    "like_count":    article.LikeCount,
    "dislike_count": article.DislikeCount,
  })
}

func (fh *FeedbackHandler) SubmitAnswer(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
    return
  }
  var req struct {
    AnswerID    uint      `json:"answer_id" binding:"required"`
    AnswerText  string    `json:"answer_text" binding:"required"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  answer, err := fh.feedbackService.SubmitAnswer(c.Request.Context(), rd.Username, req.AnswerID, req.AnswerText)
  if err != nil {
    switch {
    case errors.Is(err, services.ErrAnswerNotFound):
      c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
    case errors.Is(err, services.ErrAlreadyAnswered):
      c.JSON(http.StatusConflict, gin.H{"error": "question already answered"})
    case errors.Is(err, services.ErrUserNotFound):
      c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
    default:
      c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    }
    return
  }
  c.JSON(http.StatusOK, gin.H{"answer": answer})
}
