package handlers

import (
  "net/http"
  "strings"
  "sync"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/articlehub-backend/internal/requestdata"
  "github.com/yungbote/articlehub-backend/internal/sse"
)

type SSEHandler struct {
  hub       *sse.SSEHub
  mu        sync.Mutex
  clients   map[string]map[*sse.SSEClient]bool
}

func NewSSEHandler(hub *sse.SSEHub) *SSEHandler {
  return &SSEHandler{
    hub:     hub,
    clients: make(map[string]map[*sse.SSEClient]bool),
  }
}

// Stream opens the event stream and subscribes the caller to the global
// article channel plus their own notification channel. The connection is
// held until the client disconnects.
func (sh *SSEHandler) Stream(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
    return
  }
  client := sh.hub.NewSSEClient(rd.Username)
  sh.hub.AddChannel(client, sse.ChannelArticles)
  sh.hub.AddChannel(client, sse.UserChannel(rd.Username))
  sh.track(rd.Username, client)
  defer func() {
    sh.untrack(rd.Username, client)
    sh.hub.CloseClient(client)
  }()

  sh.hub.ServeHTTP(c.Writer, c.Request, client)
}

func (sh *SSEHandler) Subscribe(c *gin.Context) {
  sh.changeSubscription(c, sh.hub.AddChannel)
}

func (sh *SSEHandler) Unsubscribe(c *gin.Context) {
  sh.changeSubscription(c, sh.hub.RemoveChannel)
}

func (sh *SSEHandler) changeSubscription(c *gin.Context, apply func(*sse.SSEClient, string)) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
    return
  }
  var req struct {
    Channel     string      `json:"channel" binding:"required"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  // A caller may only manage the shared article channel and their own
  // notification channel.
  if strings.HasPrefix(req.Channel, "user_") && req.Channel != sse.UserChannel(rd.Username) {
    c.JSON(http.StatusForbidden, gin.H{"error": "cannot manage another user's channel"})
    return
  }

  sh.mu.Lock()
  for client := range sh.clients[rd.Username] {
    apply(client, req.Channel)
  }
  sh.mu.Unlock()
  c.JSON(http.StatusOK, gin.H{"success": "true"})
}

func (sh *SSEHandler) track(username string, client *sse.SSEClient) {
  sh.mu.Lock()
  defer sh.mu.Unlock()
  set, ok := sh.clients[username]
  if !ok {
    set = make(map[*sse.SSEClient]bool)
    sh.clients[username] = set
  }
  set[client] = true
}

func (sh *SSEHandler) untrack(username string, client *sse.SSEClient) {
  sh.mu.Lock()
  defer sh.mu.Unlock()
  if set, ok := sh.clients[username]; ok {
    delete(set, client)
    if len(set) == 0 {
      delete(sh.clients, username)
    }
  }
}
