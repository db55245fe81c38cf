package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/yungbote/articlehub-backend/internal/logger"
  "github.com/yungbote/articlehub-backend/internal/types"
)

type ArticleRepo interface {
  Create(ctx context.Context, tx *gorm.DB, articles []*types.Article) ([]*types.Article, error)
  GetByID(ctx context.Context, tx *gorm.DB, articleID uint) (*types.Article, error)
  GetByIDForUpdate(ctx context.Context, tx *gorm.DB, articleID uint) (*types.Article, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, articleIDs []uint) ([]*types.Article, error)
  AdjustCounts(ctx context.Context, tx *gorm.DB, articleID uint, likeDelta, dislikeDelta int) error
}

type articleRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewArticleRepo(db *gorm.DB, baseLog *logger.Logger) ArticleRepo {
  repoLog := baseLog.With("repo", "ArticleRepo")
  return &articleRepo{db: db, log: repoLog}
}

func (ar *articleRepo) Create(ctx context.Context, tx *gorm.DB, articles []*types.Article) ([]*types.Article, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  if len(articles) == 0 {
    return []*types.Article{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&articles).Error; err != nil {
    return nil, err
  }
  return articles, nil
}

func (ar *articleRepo) GetByID(ctx context.Context, tx *gorm.DB, articleID uint) (*types.Article, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var result types.Article
  if err := transaction.WithContext(ctx).
    Where("id = ?", articleID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (ar *articleRepo) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, articleID uint) (*types.Article, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var result types.Article
  if err := lockForUpdate(transaction.WithContext(ctx)).
    Where("id = ?", articleID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (ar *articleRepo) GetByIDs(ctx context.Context, tx *gorm.DB, articleIDs []uint) ([]*types.Article, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var results []*types.Article
  if len(articleIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", articleIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ar *articleRepo) AdjustCounts(ctx context.Context, tx *gorm.DB, articleID uint, likeDelta, dislikeDelta int) error {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  updates := map[string]interface{}{}
  if likeDelta != 0 {
    updates["like_count"] = gorm.Expr("like_count + ?", likeDelta)
  }
  if dislikeDelta != 0 {
    updates["dislike_count"] = gorm.Expr("dislike_count + ?", dislikeDelta)
  }
  if len(updates) == 0 {
    return nil
  }

  return transaction.WithContext(ctx).
    Model(&types.Article{}).
    Where("id = ?", articleID).
    Updates(updates).Error
}
