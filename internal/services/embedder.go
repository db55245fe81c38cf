package services

import (
  "context"
  "encoding/json"
  "fmt"
  "github.com/yungbote/articlehub-backend/internal/clients/openai"
  "github.com/yungbote/articlehub-backend/internal/logger"
  "github.com/yungbote/articlehub-backend/internal/types"
)

// PreferenceEmbedder turns preference state and article text into fixed-length
// embeddings. Stateless; every call goes to the embedding service.
type PreferenceEmbedder interface {
  EmbedWeights(ctx context.Context, weights types.TopicWeights) ([]float32, error)
  EmbedArticle(ctx context.Context, title, content string) ([]float32, error)
}

type preferenceEmbedder struct {
  log *logger.Logger
  oai openai.Client
}

func NewPreferenceEmbedder(log *logger.Logger, oai openai.Client) PreferenceEmbedder {
  return &preferenceEmbedder{
    log: log.With("service", "PreferenceEmbedder"),
    oai: oai,
  }
}

// EmbedWeights embeds the canonical serialization of the weight vector. The
// key order is fixed, so identical weights always produce identical input
// text and therefore a reproducible embedding.
func (pe *preferenceEmbedder) EmbedWeights(ctx context.Context, weights types.TopicWeights) ([]float32, error) {
  vecs, err := pe.oai.Embed(ctx, []string{weights.CanonicalJSON()})
  if err != nil {
    return nil, fmt.Errorf("embed topic weights: %w", err)
  }
  return vecs[0], nil
}

func (pe *preferenceEmbedder) EmbedArticle(ctx context.Context, title, content string) ([]float32, error) {
  payload, err := json.Marshal(struct {
    Title   string `json:"title"`
    Content string `json:"content"`
  }{Title: title, Content: content})
  if err != nil {
    return nil, err
  }
  vecs, err := pe.oai.Embed(ctx, []string{string(payload)})
  if err != nil {
    return nil, fmt.Errorf("embed article: %w", err)
  }
  return vecs[0], nil
}
