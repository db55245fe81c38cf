package services

import (
  "context"
  "fmt"
  "time"
  "gorm.io/gorm"
  "github.com/yungbote/articlehub-backend/internal/logger"
  "github.com/yungbote/articlehub-backend/internal/repos"
)

type NotificationView struct {
  ID        uint      `json:"id"`
  Time      time.Time `json:"time"`
  Message   string    `json:"message"`
  ArticleID uint      `json:"article_id"`
  Author    string    `json:"author"`
  Title     string    `json:"title"`
  Text      string    `json:"text"`
}

type NotificationService interface {
  List(ctx context.Context, username string) ([]*NotificationView, error)
  Delete(ctx context.Context, notificationID uint) error
}

type notificationService struct {
  db               *gorm.DB
  log              *logger.Logger
  notificationRepo repos.NotificationRepo
}

func NewNotificationService(db *gorm.DB, log *logger.Logger, notificationRepo repos.NotificationRepo) NotificationService {
  serviceLog := log.With("service", "NotificationService")
  return &notificationService{db: db, log: serviceLog, notificationRepo: notificationRepo}
}

func (ns *notificationService) List(ctx context.Context, username string) ([]*NotificationView, error) {
  items, err := ns.notificationRepo.ListForAuthor(ctx, nil, username)
  if err != nil {
    return nil, fmt.Errorf("Failed to list notifications: %w", err)
  }

  views := make([]*NotificationView, 0, len(items))
  for _, item := range items {
    views = append(views, &NotificationView{
      ID:        item.ID,
      Time:      item.Time,
      Message:   formatNotificationMessage(item.Author, item.ArticleTitle, item.CommentText),
      ArticleID: item.ArticleID,
      Author:    item.Author,
      Title:     item.ArticleTitle,
      Text:      item.CommentText,
    })
  }
  return views, nil
}

func (ns *notificationService) Delete(ctx context.Context, notificationID uint) error {
  if err := ns.notificationRepo.Delete(ctx, nil, notificationID); err != nil {
    return fmt.Errorf("Failed to delete notification: %w", err)
  }
  return nil
}

// formatNotificationMessage renders the feed line, truncating long comment
// text at 47 runes so the rendered message stays within 50.
func formatNotificationMessage(author, title, text string) string {
  runes := []rune(text)
  if len(runes) > 50 {
    text = string(runes[:47]) + "..."
  }
  return fmt.Sprintf("%s commented on '%s': \"%s\"", author, title, text)
}
