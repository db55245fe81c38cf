package repos

import (
  "context"
  "errors"
  "gorm.io/gorm"
  "github.com/yungbote/articlehub-backend/internal/logger"
  "github.com/yungbote/articlehub-backend/internal/types"
)

type InteractionEventRepo interface {
  // GetForUpdate returns the current stance row or nil when the user has no
  // stance on the article. The row is locked for the enclosing transaction.
  GetForUpdate(ctx context.Context, tx *gorm.DB, username string, articleID uint) (*types.InteractionEvent, error)
  Create(ctx context.Context, tx *gorm.DB, event *types.InteractionEvent) error
  UpdateValue(ctx context.Context, tx *gorm.DB, eventID uint, value int) error
  Delete(ctx context.Context, tx *gorm.DB, eventID uint) error
  GetByUsernameAndArticleIDs(ctx context.Context, tx *gorm.DB, username string, articleIDs []uint) ([]*types.InteractionEvent, error)
}

type interactionEventRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewInteractionEventRepo(db *gorm.DB, baseLog *logger.Logger) InteractionEventRepo {
  repoLog := baseLog.With("repo", "InteractionEventRepo")
  return &interactionEventRepo{db: db, log: repoLog}
}

func (ir *interactionEventRepo) GetForUpdate(ctx context.Context, tx *gorm.DB, username string, articleID uint) (*types.InteractionEvent, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }

  var result types.InteractionEvent
  err := lockForUpdate(transaction.WithContext(ctx)).
    Where("username = ? AND article_id = ?", username, articleID).
    First(&result).Error
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

func (ir *interactionEventRepo) Create(ctx context.Context, tx *gorm.DB, event *types.InteractionEvent) error {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  return transaction.WithContext(ctx).Create(event).Error
}

func (ir *interactionEventRepo) UpdateValue(ctx context.Context, tx *gorm.DB, eventID uint, value int) error {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  return transaction.WithContext(ctx).
    Model(&types.InteractionEvent{}).
    Where("id = ?", eventID).
    Update("value", value).Error
}

func (ir *interactionEventRepo) Delete(ctx context.Context, tx *gorm.DB, eventID uint) error {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  return transaction.WithContext(ctx).
    Delete(&types.InteractionEvent{}, eventID).Error
}

func (ir *interactionEventRepo) GetByUsernameAndArticleIDs(ctx context.Context, tx *gorm.DB, username string, articleIDs []uint) ([]*types.InteractionEvent, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }

  var results []*types.InteractionEvent
  if len(articleIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("username = ? AND article_id IN ?", username, articleIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
