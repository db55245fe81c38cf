package services

import (
  "context"
  "fmt"
  "time"
  "golang.org/x/sync/errgroup"
  "gorm.io/gorm"
  "github.com/yungbote/articlehub-backend/internal/logger"
  "github.com/yungbote/articlehub-backend/internal/repos"
  "github.com/yungbote/articlehub-backend/internal/types"
)

const (
  recommendationTopK = 10
  snippetRunes       = 100
)

type QAView struct {
  ID   uint   `json:"id"`
  Text string `json:"text"`
}

type ArticleView struct {
  ID         uint      `json:"id"`
  Title      string    `json:"title"`
  Snippet    string    `json:"snippet"`
  Content    string    `json:"content"`
  Topics     []string  `json:"topics"`
  Author     string    `json:"author"`
  CreatedAt  time.Time `json:"createdAt"`
  Likes      int       `json:"likes"`
  Dislikes   int       `json:"dislikes"`
  Question   *QAView   `json:"question,omitempty"`
  Answer     *QAView   `json:"answer,omitempty"`
  UserAction string    `json:"user_action,omitempty"`
}

type RecommendationService interface {
  // GetRecommendations returns the caller's personalized feed ordered by
  // similarity rank. excludeSelf drops the caller's own articles at the
  // index layer.
  GetRecommendations(ctx context.Context, username string, excludeSelf bool) ([]*ArticleView, error)
}

type recommendationService struct {
  db              *gorm.DB
  log             *logger.Logger
  articleRepo     repos.ArticleRepo
  interactionRepo repos.InteractionEventRepo
  answerRepo      repos.UserAnswerRepo
  index           RecommendationIndex
}

func NewRecommendationService(
  db *gorm.DB,
  log *logger.Logger,
  articleRepo repos.ArticleRepo,
  interactionRepo repos.InteractionEventRepo,
  answerRepo repos.UserAnswerRepo,
  index RecommendationIndex,
) RecommendationService {
  serviceLog := log.With("service", "RecommendationService")
  return &recommendationService{
    db:              db,
    log:             serviceLog,
    articleRepo:     articleRepo,
    interactionRepo: interactionRepo,
    answerRepo:      answerRepo,
    index:           index,
  }
}

func (rs *recommendationService) GetRecommendations(ctx context.Context, username string, excludeSelf bool) ([]*ArticleView, error) {
  userVec, err := rs.index.FetchUserEmbedding(ctx, username)
  if err != nil {
    return nil, err
  }

  excludeAuthor := ""
  if excludeSelf {
    excludeAuthor = username
  }
  rankedIDs, err := rs.index.QueryArticles(ctx, userVec, recommendationTopK, excludeAuthor)
  if err != nil {
    return nil, fmt.Errorf("Failed to query article index: %w", err)
  }
  if len(rankedIDs) == 0 {
    return []*ArticleView{}, nil
  }

  var articles []*types.Article
  var interactions []*types.InteractionEvent
  var answers []*types.UserAnswer

  g, gctx := errgroup.WithContext(ctx)
  g.Go(func() error {
    rows, fErr := rs.articleRepo.GetByIDs(gctx, nil, rankedIDs)
    if fErr != nil {
      return fmt.Errorf("Failed to fetch recommended articles: %w", fErr)
    }
    articles = rows
    return nil
  })
  g.Go(func() error {
    rows, fErr := rs.interactionRepo.GetByUsernameAndArticleIDs(gctx, nil, username, rankedIDs)
    if fErr != nil {
      return fmt.Errorf("Failed to fetch interaction state: %w", fErr)
    }
    interactions = rows
    return nil
  })
  g.Go(func() error {
    rows, fErr := rs.answerRepo.GetByUsernameAndArticleIDs(gctx, nil, username, rankedIDs)
    if fErr != nil {
      return fmt.Errorf("Failed to fetch reader questions: %w", fErr)
    }
    answers = rows
    return nil
  })
  if err := g.Wait(); err != nil {
    return nil, err
  }

  articleByID := make(map[uint]*types.Article, len(articles))
  for _, article := range articles {
    articleByID[article.ID] = article
  }
  actionByID := make(map[uint]string, len(interactions))
  for _, event := range interactions {
    switch event.Value {
    case types.ReactionLike:
      actionByID[event.ArticleID] = "like"
    case types.ReactionDislike:
      actionByID[event.ArticleID] = "dislike"
    }
  }
  answerByID := make(map[uint]*types.UserAnswer, len(answers))
  for _, answer := range answers {
    answerByID[answer.ArticleID] = answer
  }

  // The relational fetch comes back unordered; similarity rank lives only
  // in rankedIDs, so the feed is rebuilt in that order.
  views := make([]*ArticleView, 0, len(rankedIDs))
  for _, id := range rankedIDs {
    article, ok := articleByID[id]
    if !ok {
      rs.log.Warn("Recommended article missing from database; skipping", "article_id", id)
      continue
    }
    view := &ArticleView{
      ID:         article.ID,
      Title:      article.Title,
      Snippet:    snippet(article.Content),
      Content:    article.Content,
      Topics:     []string(article.Topics),
      Author:     article.Author,
      CreatedAt:  article.CreatedAt,
      Likes:      article.LikeCount,
      Dislikes:   article.DislikeCount,
      UserAction: actionByID[article.ID],
    }
    if answer := answerByID[article.ID]; answer != nil {
      view.Question = &QAView{ID: answer.ID, Text: answer.QuestionText}
      if answer.IsAnswered {
        view.Answer = &QAView{ID: answer.ID, Text: answer.AnswerText}
      }
    }
    views = append(views, view)
  }
  return views, nil
}

func snippet(content string) string {
  runes := []rune(content)
  if len(runes) <= snippetRunes {
    return content
  }
  return string(runes[:snippetRunes]) + "..."
}
