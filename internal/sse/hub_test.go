package sse

import (
	"testing"

	"github.com/yungbote/articlehub-backend/internal/logger"
)

func testHub(t *testing.T) *SSEHub {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewSSEHub(log)
}

func TestBroadcastReachesSubscribedChannelOnly(t *testing.T) {
	hub := testHub(t)

	alice := hub.NewSSEClient("alice")
	bob := hub.NewSSEClient("bob")
	hub.AddChannel(alice, ChannelArticles)
	hub.AddChannel(alice, UserChannel("alice"))
	hub.AddChannel(bob, ChannelArticles)

	hub.Broadcast(SSEMessage{Channel: UserChannel("alice"), Event: SSEEventNewNotification})

	select {
	case msg := <-alice.Outbound:
		if msg.Event != SSEEventNewNotification {
			t.Fatalf("unexpected event: %s", msg.Event)
		}
	default:
		t.Fatalf("alice should have received her notification")
	}
	select {
	case msg := <-bob.Outbound:
		t.Fatalf("bob must not receive alice's notification: %+v", msg)
	default:
	}

	hub.Broadcast(SSEMessage{Channel: ChannelArticles, Event: SSEEventNewArticle})
	for _, client := range []*SSEClient{alice, bob} {
		select {
		case msg := <-client.Outbound:
			if msg.Event != SSEEventNewArticle {
				t.Fatalf("unexpected event: %s", msg.Event)
			}
		default:
			t.Fatalf("client %s missed the article broadcast", client.Username)
		}
	}
}

func TestRemoveClientStopsDelivery(t *testing.T) {
	hub := testHub(t)

	client := hub.NewSSEClient("alice")
	hub.AddChannel(client, ChannelArticles)
	hub.RemoveClient(client)

	hub.Broadcast(SSEMessage{Channel: ChannelArticles, Event: SSEEventNewArticle})
	select {
	case msg := <-client.Outbound:
		t.Fatalf("removed client must not receive messages: %+v", msg)
	default:
	}
}

func TestFullBufferDropsInsteadOfBlocking(t *testing.T) {
	hub := testHub(t)

	client := hub.NewSSEClient("alice")
	hub.AddChannel(client, ChannelArticles)

	// One more than the outbound buffer; the send must not block.
	for i := 0; i < cap(client.Outbound)+1; i++ {
		hub.Broadcast(SSEMessage{Channel: ChannelArticles, Event: SSEEventNewArticle})
	}
	if got := len(client.Outbound); got != cap(client.Outbound) {
		t.Fatalf("expected full buffer, got %d", got)
	}
}
