package services

import (
  "context"
  "errors"
  "strconv"
  "github.com/yungbote/articlehub-backend/internal/clients/pinecone"
  "github.com/yungbote/articlehub-backend/internal/logger"
)

const (
  namespaceUsers    = "user-embeddings"
  namespaceArticles = "article-embeddings"
)

// RecommendationIndex wraps the two vector collections. Upserts replace the
// stored snapshot per id; there is no history.
type RecommendationIndex interface {
  UpsertUser(ctx context.Context, username string, vector []float32) error
  UpsertArticle(ctx context.Context, articleID uint, vector []float32, author string) error
  // QueryArticles returns article ids in descending-similarity order. An
  // empty index yields an empty slice, not an error.
  QueryArticles(ctx context.Context, vector []float32, topK int, excludeAuthor string) ([]uint, error)
  // FetchUserEmbedding fails with ErrUserEmbeddingNotFound when the user was
  // never upserted at registration.
  FetchUserEmbedding(ctx context.Context, username string) ([]float32, error)
}

type recommendationIndex struct {
  log   *logger.Logger
  store pinecone.VectorStore
}

func NewRecommendationIndex(log *logger.Logger, store pinecone.VectorStore) RecommendationIndex {
  return &recommendationIndex{
    log:   log.With("service", "RecommendationIndex"),
    store: store,
  }
}

func (ri *recommendationIndex) UpsertUser(ctx context.Context, username string, vector []float32) error {
  return ri.store.Upsert(ctx, namespaceUsers, []pinecone.Vector{
    {ID: username, Values: vector},
  })
}

func (ri *recommendationIndex) UpsertArticle(ctx context.Context, articleID uint, vector []float32, author string) error {
  return ri.store.Upsert(ctx, namespaceArticles, []pinecone.Vector{
    {
      ID:       strconv.FormatUint(uint64(articleID), 10),
      Values:   vector,
      Metadata: map[string]any{"author": author},
    },
  })
}

func (ri *recommendationIndex) QueryArticles(ctx context.Context, vector []float32, topK int, excludeAuthor string) ([]uint, error) {
  var filter map[string]any
  if excludeAuthor != "" {
    filter = map[string]any{"author": map[string]any{"$ne": excludeAuthor}}
  }

  ids, err := ri.store.QueryIDs(ctx, namespaceArticles, vector, topK, filter)
  if err != nil {
    return nil, err
  }

  out := make([]uint, 0, len(ids))
  for _, id := range ids {
    parsed, perr := strconv.ParseUint(id, 10, 64)
    if perr != nil {
      ri.log.Warn("Skipping non-numeric article id from vector index", "id", id)
      continue
    }
    out = append(out, uint(parsed))
  }
  return out, nil
}

func (ri *recommendationIndex) FetchUserEmbedding(ctx context.Context, username string) ([]float32, error) {
  vec, err := ri.store.FetchOne(ctx, namespaceUsers, username)
  if err != nil {
    if errors.Is(err, pinecone.ErrVectorNotFound) {
      return nil, ErrUserEmbeddingNotFound
    }
    return nil, err
  }
  return vec, nil
}
