package services

import (
  "context"
  "errors"
  "fmt"
  "gorm.io/gorm"
  "github.com/yungbote/articlehub-backend/internal/logger"
  "github.com/yungbote/articlehub-backend/internal/repos"
  "github.com/yungbote/articlehub-backend/internal/types"
)

// FeedbackService applies user actions to the per-user topic-weight vector.
// Each transition runs inside one relational transaction: current stance and
// weights are read under row locks, then stance, weights and article counts
// are written together. The embedding refresh and vector-index upsert happen
// after commit and are best-effort; when they fail the relational state is
// still correct and recommendations are merely stale until the next
// successful interaction.
type FeedbackService interface {
  ToggleLike(ctx context.Context, username string, articleID uint) (*types.Article, error)
  ToggleDislike(ctx context.Context, username string, articleID uint) (*types.Article, error)
  SubmitAnswer(ctx context.Context, username string, answerID uint, answerText string) (*types.UserAnswer, error)
}

type feedbackService struct {
  db              *gorm.DB
  log             *logger.Logger
  userRepo        repos.UserRepo
  articleRepo     repos.ArticleRepo
  interactionRepo repos.InteractionEventRepo
  answerRepo      repos.UserAnswerRepo
  embedder        PreferenceEmbedder
  index           RecommendationIndex
  notifier        Notifier
}

func NewFeedbackService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  articleRepo repos.ArticleRepo,
  interactionRepo repos.InteractionEventRepo,
  answerRepo repos.UserAnswerRepo,
  embedder PreferenceEmbedder,
  index RecommendationIndex,
  notifier Notifier,
) FeedbackService {
  serviceLog := log.With("service", "FeedbackService")
  return &feedbackService{
    db:              db,
    log:             serviceLog,
    userRepo:        userRepo,
    articleRepo:     articleRepo,
    interactionRepo: interactionRepo,
    answerRepo:      answerRepo,
    embedder:        embedder,
    index:           index,
    notifier:        notifier,
  }
}

func (fs *feedbackService) ToggleLike(ctx context.Context, username string, articleID uint) (*types.Article, error) {
  return fs.toggle(ctx, username, articleID, types.ReactionLike)
}

func (fs *feedbackService) ToggleDislike(ctx context.Context, username string, articleID uint) (*types.Article, error) {
  return fs.toggle(ctx, username, articleID, types.ReactionDislike)
}

// toggle applies one step of the stance machine. The current stance row is
// always read first, so re-sending the same action toggles off instead of
// double-counting, and a like<->dislike switch nets an undo plus an apply
// (weight delta of 2 in the new direction).
func (fs *feedbackService) toggle(ctx context.Context, username string, articleID uint, action int) (*types.Article, error) {
  var updated *types.Article
  var weights types.TopicWeights

  err := fs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    user, uErr := fs.userRepo.GetByUsernameForUpdate(ctx, tx, username)
    if uErr != nil {
      if errors.Is(uErr, gorm.ErrRecordNotFound) {
        return ErrUserNotFound
      }
      return fmt.Errorf("Failed to load user for feedback: %w", uErr)
    }

    article, aErr := fs.articleRepo.GetByIDForUpdate(ctx, tx, articleID)
    if aErr != nil {
      if errors.Is(aErr, gorm.ErrRecordNotFound) {
        return ErrArticleNotFound
      }
      return fmt.Errorf("Failed to load article for feedback: %w", aErr)
    }

    current, cErr := fs.interactionRepo.GetForUpdate(ctx, tx, username, articleID)
    if cErr != nil {
      return fmt.Errorf("Failed to load interaction state: %w", cErr)
    }

    var weightDelta, likeDelta, dislikeDelta int
    switch {
    case current == nil:
      // NONE -> LIKED / DISLIKED
      if iErr := fs.interactionRepo.Create(ctx, tx, &types.InteractionEvent{
        Username:  username,
        ArticleID: articleID,
        Value:     action,
      }); iErr != nil {
        return fmt.Errorf("Failed to create interaction event: %w", iErr)
      }
      weightDelta = action
      if action == types.ReactionLike {
        likeDelta = 1
      } else {
        dislikeDelta = 1
      }
    case current.Value == action:
      // toggle off -> NONE
      if dErr := fs.interactionRepo.Delete(ctx, tx, current.ID); dErr != nil {
        return fmt.Errorf("Failed to delete interaction event: %w", dErr)
      }
      weightDelta = -action
      if action == types.ReactionLike {
        likeDelta = -1
      } else {
        dislikeDelta = -1
      }
    default:
      // switch stance: undo the old reaction, apply the new one
      if uvErr := fs.interactionRepo.UpdateValue(ctx, tx, current.ID, action); uvErr != nil {
        return fmt.Errorf("Failed to flip interaction event: %w", uvErr)
      }
      weightDelta = 2 * action
      if action == types.ReactionLike {
        likeDelta, dislikeDelta = 1, -1
      } else {
        likeDelta, dislikeDelta = -1, 1
      }
    }

    weights = user.TopicWeights
    if weights == nil {
      weights = types.NewTopicWeights()
    }
    weights.Apply([]string(article.Topics), weightDelta)

    if wErr := fs.userRepo.UpdateTopicWeights(ctx, tx, username, weights); wErr != nil {
      return fmt.Errorf("Failed to persist topic weights: %w", wErr)
    }
    if cntErr := fs.articleRepo.AdjustCounts(ctx, tx, articleID, likeDelta, dislikeDelta); cntErr != nil {
      return fmt.Errorf("Failed to adjust article counts: %w", cntErr)
    }

    article.LikeCount += likeDelta
    article.DislikeCount += dislikeDelta
    updated = article
    return nil
  })
  if err != nil {
    return nil, err
  }

  fs.syncUserEmbedding(ctx, username, weights)
  if fs.notifier != nil {
    fs.notifier.ArticleReaction(updated)
  }
  return updated, nil
}

func (fs *feedbackService) SubmitAnswer(ctx context.Context, username string, answerID uint, answerText string) (*types.UserAnswer, error) {
  var answered *types.UserAnswer
  var weights types.TopicWeights

  err := fs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    answer, gErr := fs.answerRepo.GetByIDForUpdate(ctx, tx, answerID)
    if gErr != nil {
      if errors.Is(gErr, gorm.ErrRecordNotFound) {
        return ErrAnswerNotFound
      }
      return fmt.Errorf("Failed to load answer: %w", gErr)
    }
    if answer.Username != username {
      return ErrAnswerNotFound
    }
    if answer.IsAnswered {
      return ErrAlreadyAnswered
    }

    user, uErr := fs.userRepo.GetByUsernameForUpdate(ctx, tx, username)
    if uErr != nil {
      if errors.Is(uErr, gorm.ErrRecordNotFound) {
        return ErrUserNotFound
      }
      return fmt.Errorf("Failed to load user for answer: %w", uErr)
    }

    article, aErr := fs.articleRepo.GetByID(ctx, tx, answer.ArticleID)
    if aErr != nil {
      if errors.Is(aErr, gorm.ErrRecordNotFound) {
        return ErrArticleNotFound
      }
      return fmt.Errorf("Failed to load article for answer: %w", aErr)
    }

    if mErr := fs.answerRepo.MarkAnswered(ctx, tx, answerID, answerText); mErr != nil {
      return fmt.Errorf("Failed to mark answer: %w", mErr)
    }

    weights = user.TopicWeights
    if weights == nil {
      weights = types.NewTopicWeights()
    }
    weights.Increment([]string(article.Topics))

    if wErr := fs.userRepo.UpdateTopicWeights(ctx, tx, username, weights); wErr != nil {
      return fmt.Errorf("Failed to persist topic weights: %w", wErr)
    }

    answer.AnswerText = answerText
    answer.IsAnswered = true
    answered = answer
    return nil
  })
  if err != nil {
    return nil, err
  }

  fs.syncUserEmbedding(ctx, username, weights)
  return answered, nil
}

// syncUserEmbedding runs after the relational commit. Failures are logged and
// swallowed; the request's primary effect already stands.
func (fs *feedbackService) syncUserEmbedding(ctx context.Context, username string, weights types.TopicWeights) {
  vec, err := fs.embedder.EmbedWeights(ctx, weights)
  if err != nil {
    fs.log.Warn("Embedding refresh failed; recommendations stale until next interaction", "username", username, "error", err)
    return
  }
  if err := fs.index.UpsertUser(ctx, username, vec); err != nil {
    fs.log.Warn("User embedding upsert failed; recommendations stale until next interaction", "username", username, "error", err)
  }
}
