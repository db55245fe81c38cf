package handlers

import (
  "errors"
  "net/http"
  "strconv"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/articlehub-backend/internal/requestdata"
  "github.com/yungbote/articlehub-backend/internal/services"
)

type RecommendationHandler struct {
  recommendationService   services.RecommendationService
}

func NewRecommendationHandler(recommendationService services.RecommendationService) *RecommendationHandler {
  return &RecommendationHandler{recommendationService: recommendationService}
}

func (rh *RecommendationHandler) GetArticles(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
    return
  }
  excludeSelf := true
  if raw := c.Query("exclude_self"); raw != "" {
    parsed, err := strconv.ParseBool(raw)
    if err != nil {
      c.JSON(http.StatusBadRequest, gin.H{"error": "invalid exclude_self value"})
      return
    }
    excludeSelf = parsed
  }
  articles, err := rh.recommendationService.GetRecommendations(c.Request.Context(), rd.Username, excludeSelf)
  if err != nil {
    if errors.Is(err, services.ErrUserEmbeddingNotFound) {
      c.JSON(http.StatusNotFound, gin.H{"error": "no preference profile found for user"})
      return
    }
    RespondError(c, http.StatusInternalServerError, "recommendation_failed", err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"articles": articles})
}
