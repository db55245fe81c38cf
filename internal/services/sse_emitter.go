package services

import (
  "context"

  redisclient "github.com/yungbote/articlehub-backend/internal/clients/redis"
  "github.com/yungbote/articlehub-backend/internal/sse"
)

type SSEEmitter interface {
  Emit(ctx context.Context, msg sse.SSEMessage)
}

type HubEmitter struct{ Hub *sse.SSEHub }

func (e *HubEmitter) Emit(ctx context.Context, msg sse.SSEMessage) {
  e.Hub.Broadcast(msg)
}

type RedisEmitter struct{ Bus redisclient.SSEBus }

func (e *RedisEmitter) Emit(ctx context.Context, msg sse.SSEMessage) {
  _ = e.Bus.Publish(ctx, msg)
}
