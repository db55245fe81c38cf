package repos

import (
  "context"
  "time"
  "gorm.io/gorm"
  "github.com/yungbote/articlehub-backend/internal/logger"
  "github.com/yungbote/articlehub-backend/internal/types"
)

// NotificationFeedItem is a notification joined with its article title and
// comment text, newest first.
type NotificationFeedItem struct {
  ID           uint       `json:"id"`
  Time         time.Time  `json:"time"`
  ArticleID    uint       `json:"article_id"`
  Author       string     `json:"author"`
  ArticleTitle string     `json:"article_title"`
  CommentText  string     `json:"comment_text"`
}

type NotificationRepo interface {
  Create(ctx context.Context, tx *gorm.DB, notifications []*types.Notification) ([]*types.Notification, error)
  ListForAuthor(ctx context.Context, tx *gorm.DB, username string) ([]*NotificationFeedItem, error)
  Delete(ctx context.Context, tx *gorm.DB, notificationID uint) error
}

type notificationRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewNotificationRepo(db *gorm.DB, baseLog *logger.Logger) NotificationRepo {
  repoLog := baseLog.With("repo", "NotificationRepo")
  return &notificationRepo{db: db, log: repoLog}
}

func (nr *notificationRepo) Create(ctx context.Context, tx *gorm.DB, notifications []*types.Notification) ([]*types.Notification, error) {
  transaction := tx
  if transaction == nil {
    transaction = nr.db
  }

  if len(notifications) == 0 {
    return []*types.Notification{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&notifications).Error; err != nil {
    return nil, err
  }
  return notifications, nil
}

func (nr *notificationRepo) ListForAuthor(ctx context.Context, tx *gorm.DB, username string) ([]*NotificationFeedItem, error) {
  transaction := tx
  if transaction == nil {
    transaction = nr.db
  }

  var results []*NotificationFeedItem
  err := transaction.WithContext(ctx).
    Model(&types.Notification{}).
    Select(`notification.id AS id,
            notification.time AS time,
            notification.article_id AS article_id,
            notification.author AS author,
            article.title AS article_title,
            comment.text AS comment_text`).
    Joins("INNER JOIN article ON notification.article_id = article.id").
    Joins("INNER JOIN comment ON comment.id = notification.comment_id").
    Where("article.author = ? AND notification.author != article.author", username).
    Order("notification.time DESC").
    Scan(&results).Error
  if err != nil {
    return nil, err
  }
  return results, nil
}

func (nr *notificationRepo) Delete(ctx context.Context, tx *gorm.DB, notificationID uint) error {
  transaction := tx
  if transaction == nil {
    transaction = nr.db
  }
  return transaction.WithContext(ctx).
    Delete(&types.Notification{}, notificationID).Error
}
