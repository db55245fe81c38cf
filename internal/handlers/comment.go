package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/articlehub-backend/internal/requestdata"
  "github.com/yungbote/articlehub-backend/internal/services"
)

type CommentHandler struct {
  commentService    services.CommentService
}

func NewCommentHandler(commentService services.CommentService) *CommentHandler {
  return &CommentHandler{commentService: commentService}
}

func (ch *CommentHandler) AddComment(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
    return
  }
  var req struct {
    ArticleID   uint      `json:"article_id" binding:"required"`
    Text        string    `json:"text" binding:"required"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  comment, err := ch.commentService.AddComment(c.Request.Context(), rd.Username, req.ArticleID, req.Text)
  if err != nil {
    if errors.Is(err, services.ErrArticleNotFound) {
      c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
      return
    }
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusCreated, gin.H{"comment": comment})
}
