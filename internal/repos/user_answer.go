package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/yungbote/articlehub-backend/internal/logger"
  "github.com/yungbote/articlehub-backend/internal/types"
)

type UserAnswerRepo interface {
  Create(ctx context.Context, tx *gorm.DB, answers []*types.UserAnswer) ([]*types.UserAnswer, error)
  GetByIDForUpdate(ctx context.Context, tx *gorm.DB, answerID uint) (*types.UserAnswer, error)
  MarkAnswered(ctx context.Context, tx *gorm.DB, answerID uint, answerText string) error
  GetByUsernameAndArticleIDs(ctx context.Context, tx *gorm.DB, username string, articleIDs []uint) ([]*types.UserAnswer, error)
}

type userAnswerRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserAnswerRepo(db *gorm.DB, baseLog *logger.Logger) UserAnswerRepo {
  repoLog := baseLog.With("repo", "UserAnswerRepo")
  return &userAnswerRepo{db: db, log: repoLog}
}

func (uar *userAnswerRepo) Create(ctx context.Context, tx *gorm.DB, answers []*types.UserAnswer) ([]*types.UserAnswer, error) {
  transaction := tx
  if transaction == nil {
    transaction = uar.db
  }

  if len(answers) == 0 {
    return []*types.UserAnswer{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&answers).Error; err != nil {
    return nil, err
  }
  return answers, nil
}

func (uar *userAnswerRepo) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, answerID uint) (*types.UserAnswer, error) {
  transaction := tx
  if transaction == nil {
    transaction = uar.db
  }

  var result types.UserAnswer
  if err := lockForUpdate(transaction.WithContext(ctx)).
    Where("id = ?", answerID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (uar *userAnswerRepo) MarkAnswered(ctx context.Context, tx *gorm.DB, answerID uint, answerText string) error {
  transaction := tx
  if transaction == nil {
    transaction = uar.db
  }

  return transaction.WithContext(ctx).
    Model(&types.UserAnswer{}).
    Where("id = ?", answerID).
    Updates(map[string]interface{}{
      "answer_text": answerText,
      "is_answered": true,
    }).Error
}

func (uar *userAnswerRepo) GetByUsernameAndArticleIDs(ctx context.Context, tx *gorm.DB, username string, articleIDs []uint) ([]*types.UserAnswer, error) {
  transaction := tx
  if transaction == nil {
    transaction = uar.db
  }

  var results []*types.UserAnswer
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
