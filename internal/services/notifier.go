package services

import (
  "context"

  "github.com/yungbote/articlehub-backend/internal/sse"
  "github.com/yungbote/articlehub-backend/internal/types"
)

// Notifier fans out domain events. Callers invoke it only after the
// triggering transaction has committed; delivery is best-effort.
type Notifier interface {
  NewArticle(article *types.Article)
  ArticleReaction(article *types.Article)
  NewNotification(username string, item *NotificationView)
}

type sseNotifier struct {
  emit SSEEmitter
}

func NewNotifier(emit SSEEmitter) Notifier {
  return &sseNotifier{emit: emit}
}

func (n *sseNotifier) NewArticle(article *types.Article) {
  if n == nil || n.emit == nil || article == nil {
    return
  }
  n.emit.Emit(context.Background(), sse.SSEMessage{
    Channel: sse.ChannelArticles,
    Event:   sse.SSEEventNewArticle,
    Data:    map[string]any{"article": article},
  })
}

func (n *sseNotifier) ArticleReaction(article *types.Article) {
  if n == nil || n.emit == nil || article == nil {
    return
  }
  n.emit.Emit(context.Background(), sse.SSEMessage{
    Channel: sse.ChannelArticles,
    Event:   sse.SSEEventArticleReaction,
    Data: map[string]any{
      "article_id":    article.ID,
      "like_count":    article.LikeCount,
      "dislike_count": article.DislikeCount,
    },
  })
}

func (n *sseNotifier) NewNotification(username string, item *NotificationView) {
  if n == nil || n.emit == nil || username == "" {
    return
  }
  n.emit.Emit(context.Background(), sse.SSEMessage{
    Channel: sse.UserChannel(username),
    Event:   sse.SSEEventNewNotification,
    Data:    map[string]any{"notification": item},
  })
}
