package services

import (
  "context"
  "fmt"
  "time"
  "golang.org/x/sync/errgroup"
  "gorm.io/datatypes"
  "gorm.io/gorm"
  "github.com/yungbote/articlehub-backend/internal/clients/openai"
  "github.com/yungbote/articlehub-backend/internal/logger"
  "github.com/yungbote/articlehub-backend/internal/repos"
  "github.com/yungbote/articlehub-backend/internal/types"
)

type AddArticleInput struct {
  Title   string
  Content string
  Topics  []string
  Author  string
}

type ArticleService interface {
  AddArticle(ctx context.Context, input AddArticleInput) (*types.Article, error)
}

type articleService struct {
  db          *gorm.DB
  log         *logger.Logger
  userRepo    repos.UserRepo
  articleRepo repos.ArticleRepo
  answerRepo  repos.UserAnswerRepo
  oai         openai.Client
  embedder    PreferenceEmbedder
  index       RecommendationIndex
  notifier    Notifier
}

func NewArticleService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  articleRepo repos.ArticleRepo,
  answerRepo repos.UserAnswerRepo,
  oai openai.Client,
  embedder PreferenceEmbedder,
  index RecommendationIndex,
  notifier Notifier,
) ArticleService {
  serviceLog := log.With("service", "ArticleService")
  return &articleService{
    db:          db,
    log:         serviceLog,
    userRepo:    userRepo,
    articleRepo: articleRepo,
    answerRepo:  answerRepo,
    oai:         oai,
    embedder:    embedder,
    index:       index,
    notifier:    notifier,
  }
}

// AddArticle creates the article row, seeds the author's weight vector at 1
// for the article's own topics (self-declared interest, an absolute seed) and
// inserts the author's reader question. The two OpenAI calls run before the
// transaction so a slow provider never holds a relational transaction open;
// the index upserts run after commit.
func (as *articleService) AddArticle(ctx context.Context, input AddArticleInput) (*types.Article, error) {
  var articleVec []float32
  var questionText string

  g, gctx := errgroup.WithContext(ctx)
  g.Go(func() error {
    vec, err := as.embedder.EmbedArticle(gctx, input.Title, input.Content)
    if err != nil {
      // Degraded: article is still created, it just won't be recommendable
      // until re-indexed.
      as.log.Warn("Article embedding failed; article will not be indexed", "title", input.Title, "error", err)
      return nil
    }
    articleVec = vec
    return nil
  })
  g.Go(func() error {
    prompt := fmt.Sprintf("Generate a short, clear question for a user based on this article:\nTitle: %s\nContent: %s\nQuestion:", input.Title, input.Content)
    text, err := as.oai.GenerateText(gctx, prompt)
    if err != nil {
      as.log.Warn("Question generation failed; using fallback question", "title", input.Title, "error", err)
      text = fmt.Sprintf("What stood out to you in \"%s\"?", input.Title)
    }
    questionText = text
    return nil
  })
  _ = g.Wait()

  var created *types.Article
  var weights types.TopicWeights

  err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    user, uErr := as.userRepo.GetByUsernameForUpdate(ctx, tx, input.Author)
    if uErr != nil {
      if uErr == gorm.ErrRecordNotFound {
        return ErrUserNotFound
      }
      return fmt.Errorf("Failed to load author: %w", uErr)
    }

    article := &types.Article{
      Title:     input.Title,
      Content:   input.Content,
      Topics:    datatypes.JSONSlice[string](input.Topics),
      Author:    input.Author,
      CreatedAt: time.Now(),
    }
    if _, cErr := as.articleRepo.Create(ctx, tx, []*types.Article{article}); cErr != nil {
      return fmt.Errorf("Failed to create article: %w", cErr)
    }

    if _, qErr := as.answerRepo.Create(ctx, tx, []*types.UserAnswer{{
      Username:     input.Author,
      ArticleID:    article.ID,
      QuestionText: questionText,
      CreatedAt:    time.Now(),
    }}); qErr != nil {
      return fmt.Errorf("Failed to create article question: %w", qErr)
    }

    weights = user.TopicWeights
    if weights == nil {
      weights = types.NewTopicWeights()
    }
    weights.Seed(input.Topics, 1)
    if wErr := as.userRepo.UpdateTopicWeights(ctx, tx, input.Author, weights); wErr != nil {
      return fmt.Errorf("Failed to seed author topic weights: %w", wErr)
    }

    created = article
    return nil
  })
  if err != nil {
    return nil, err
  }

  if len(articleVec) > 0 {
    if ixErr := as.index.UpsertArticle(ctx, created.ID, articleVec, created.Author); ixErr != nil {
      as.log.Warn("Article embedding upsert failed; article not recommendable yet", "article_id", created.ID, "error", ixErr)
    }
  }
  as.syncAuthorEmbedding(ctx, created.Author, weights)

  if as.notifier != nil {
    as.notifier.NewArticle(created)
  }
  return created, nil
}

func (as *articleService) syncAuthorEmbedding(ctx context.Context, username string, weights types.TopicWeights) {
  vec, err := as.embedder.EmbedWeights(ctx, weights)
  if err != nil {
    as.log.Warn("Author embedding refresh failed", "username", username, "error", err)
    return
  }
  if err := as.index.UpsertUser(ctx, username, vec); err != nil {
    as.log.Warn("Author embedding upsert failed", "username", username, "error", err)
  }
}
