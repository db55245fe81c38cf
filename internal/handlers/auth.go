package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/articlehub-backend/internal/requestdata"
  "github.com/yungbote/articlehub-backend/internal/services"
)

type AuthHandler struct {
  authService       services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
  return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
  var req struct {
    Username    string      `json:"username"`
    Email       string      `json:"email"`
    Password    string      `json:"password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  user, err := ah.authService.Register(c.Request.Context(), services.RegisterInput{
    Username: req.Username,
    Email:    req.Email,
    Password: req.Password,
  })
  if err != nil {
    switch {
    case errors.Is(err, services.ErrUserExists):
      c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
    case errors.Is(err, services.ErrEmailExists):
      c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
    default:
      c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    }
    return
  }
  c.JSON(http.StatusCreated, gin.H{"success": "true", "user": user})
}

func (ah *AuthHandler) Login(c *gin.Context) {
  var req struct {
    Username      string      `json:"username"`
    Password      string      `json:"password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  token, user, err := ah.authService.Login(c.Request.Context(), req.Username, req.Password)
  if err != nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
    return
  }
  c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (ah *AuthHandler) UpdateUser(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
    return
  }
  var req struct {
    Email             *string   `json:"email"`
    Password          *string   `json:"password"`
    TopicPreferences  []string  `json:"topic_preferences"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  user, err := ah.authService.UpdateUser(c.Request.Context(), rd.Username, services.UpdateUserInput{
    Email:            req.Email,
    Password:         req.Password,
    TopicPreferences: req.TopicPreferences,
  })
  if err != nil {
    switch {
    case errors.Is(err, services.ErrUserNotFound):
      c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
    case errors.Is(err, services.ErrEmailExists):
      c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
    default:
      c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    }
    return
  }
  c.JSON(http.StatusOK, gin.H{"user": user})
}
