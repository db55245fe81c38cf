package handlers

import (
  "net/http"
  "strconv"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/articlehub-backend/internal/requestdata"
  "github.com/yungbote/articlehub-backend/internal/services"
)

type NotificationHandler struct {
  notificationService   services.NotificationService
}

func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
  return &NotificationHandler{notificationService: notificationService}
}

func (nh *NotificationHandler) List(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
    return
  }
  username := c.Param("username")
  if username != rd.Username {
    c.JSON(http.StatusForbidden, gin.H{"error": "cannot read another user's notifications"})
    return
  }
  notifications, err := nh.notificationService.List(c.Request.Context(), username)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "notification_list_failed", err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (nh *NotificationHandler) Delete(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
    return
  }
  notificationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
    return
  }
  if err := nh.notificationService.Delete(c.Request.Context(), uint(notificationID)); err != nil {
    RespondError(c, http.StatusInternalServerError, "notification_delete_failed", err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": "true"})
}
