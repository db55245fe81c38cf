package services

import (
  "context"
  "fmt"
  "time"
  "gorm.io/gorm"
  "github.com/yungbote/articlehub-backend/internal/logger"
  "github.com/yungbote/articlehub-backend/internal/repos"
  "github.com/yungbote/articlehub-backend/internal/types"
)

type CommentService interface {
  AddComment(ctx context.Context, author string, articleID uint, text string) (*types.Comment, error)
}

type commentService struct {
  db               *gorm.DB
  log              *logger.Logger
  articleRepo      repos.ArticleRepo
  commentRepo      repos.CommentRepo
  notificationRepo repos.NotificationRepo
  notifier         Notifier
}

func NewCommentService(
  db *gorm.DB,
  log *logger.Logger,
  articleRepo repos.ArticleRepo,
  commentRepo repos.CommentRepo,
  notificationRepo repos.NotificationRepo,
  notifier Notifier,
) CommentService {
  serviceLog := log.With("service", "CommentService")
  return &commentService{
    db:               db,
    log:              serviceLog,
    articleRepo:      articleRepo,
    commentRepo:      commentRepo,
    notificationRepo: notificationRepo,
    notifier:         notifier,
  }
}

// AddComment stores the comment and, when someone comments on another
// user's article, records a notification for the article's author. Authors
// commenting on their own articles do not notify themselves.
func (cs *commentService) AddComment(ctx context.Context, author string, articleID uint, text string) (*types.Comment, error) {
  var created *types.Comment
  var articleAuthor string
  var articleTitle string

  err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    article, aErr := cs.articleRepo.GetByID(ctx, tx, articleID)
    if aErr != nil {
      if aErr == gorm.ErrRecordNotFound {
        return ErrArticleNotFound
      }
      return fmt.Errorf("Failed to load article: %w", aErr)
    }
    articleAuthor = article.Author
    articleTitle = article.Title

    comment := &types.Comment{
      Text:      text,
      ArticleID: articleID,
      Author:    author,
      CreatedAt: time.Now(),
    }
    if _, cErr := cs.commentRepo.Create(ctx, tx, []*types.Comment{comment}); cErr != nil {
      return fmt.Errorf("Failed to create comment: %w", cErr)
    }

    if author != article.Author {
      if _, nErr := cs.notificationRepo.Create(ctx, tx, []*types.Notification{{
        ArticleID: articleID,
        Author:    author,
        Time:      time.Now(),
        CommentID: comment.ID,
      }}); nErr != nil {
        return fmt.Errorf("Failed to create notification: %w", nErr)
      }
    }

    created = comment
    return nil
  })
  if err != nil {
    return nil, err
  }

  if cs.notifier != nil && author != articleAuthor {
    cs.notifier.NewNotification(articleAuthor, &NotificationView{
      ID:        created.ID,
      Time:      created.CreatedAt,
      Message:   formatNotificationMessage(author, articleTitle, created.Text),
      ArticleID: articleID,
      Author:    author,
      Title:     articleTitle,
      Text:      created.Text,
    })
  }
  return created, nil
}
