package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/articlehub-backend/internal/requestdata"
  "github.com/yungbote/articlehub-backend/internal/services"
)

type ArticleHandler struct {
  articleService    services.ArticleService
}

func NewArticleHandler(articleService services.ArticleService) *ArticleHandler {
  return &ArticleHandler{articleService: articleService}
}

func (ah *ArticleHandler) AddArticle(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
    return
  }
  var req struct {
    Title     string    `json:"title" binding:"required"`
    Content   string    `json:"content" binding:"required"`
    Topics    []string  `json:"topics"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  article, err := ah.articleService.AddArticle(c.Request.Context(), services.AddArticleInput{
    Title:   req.Title,
    Content: req.Content,
    Topics:  req.Topics,
    Author:  rd.Username,
  })
  if err != nil {
    if errors.Is(err, services.ErrUserNotFound) {
      c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
      return
    }
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusCreated, gin.H{"article": article})
}
