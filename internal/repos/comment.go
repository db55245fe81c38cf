package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/yungbote/articlehub-backend/internal/logger"
  "github.com/yungbote/articlehub-backend/internal/types"
)

type CommentRepo interface {
  Create(ctx context.Context, tx *gorm.DB, comments []*types.Comment) ([]*types.Comment, error)
  GetByArticleIDs(ctx context.Context, tx *gorm.DB, articleIDs []uint) ([]*types.Comment, error)
}

type commentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCommentRepo(db *gorm.DB, baseLog *logger.Logger) CommentRepo {
  repoLog := baseLog.With("repo", "CommentRepo")
  return &commentRepo{db: db, log: repoLog}
}

func (cr *commentRepo) Create(ctx context.Context, tx *gorm.DB, comments []*types.Comment) ([]*types.Comment, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  if len(comments) == 0 {
    return []*types.Comment{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&comments).Error; err != nil {
    return nil, err
  }
  return comments, nil
}

func (cr *commentRepo) GetByArticleIDs(ctx context.Context, tx *gorm.DB, articleIDs []uint) ([]*types.Comment, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var results []*types.Comment
  if len(articleIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("article_id IN ?", articleIDs).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
