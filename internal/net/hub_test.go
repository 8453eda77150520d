package net

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func dialTestHub(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(h.HandleWS))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForSubscribers(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.SubscriberCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("subscriber count stuck at %d, want %d", h.SubscriberCount(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPollIntentEmptyQueue(t *testing.T) {
	h := NewHub(8, zap.NewNop())
	if _, ok := h.PollIntent(); ok {
		t.Fatalf("PollIntent reported an intent from an empty queue")
	}
}

func TestClientIntentsReachTheQueue(t *testing.T) {
	h := NewHub(8, zap.NewNop())
	conn := dialTestHub(t, h)
	waitForSubscribers(t, h, 1)

	if err := conn.WriteJSON(Intent{Type: "steer", DX: 1, DY: -0.5}); err != nil {
		t.Fatalf("write intent: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		if in, ok := h.PollIntent(); ok {
			if in.Type != "steer" || in.DX != 1 || in.DY != -0.5 {
				t.Fatalf("received intent %+v, want the steer command", in)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("intent never reached the queue")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBroadcastReachesSubscriber(t *testing.T) {
	h := NewHub(8, zap.NewNop())
	conn := dialTestHub(t, h)
	waitForSubscribers(t, h, 1)

	h.Broadcast([]byte(`{"tick":1}`))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read broadcast: %v", err)
	}
	if string(msg) != `{"tick":1}` {
		t.Fatalf("received %q, want the broadcast payload", msg)
	}
}

func TestDisconnectedClientDetaches(t *testing.T) {
	h := NewHub(8, zap.NewNop())
	conn := dialTestHub(t, h)
	waitForSubscribers(t, h, 1)

	conn.Close()
	waitForSubscribers(t, h, 0)
}

func TestShutdownClearsSubscribers(t *testing.T) {
	h := NewHub(8, zap.NewNop())
	dialTestHub(t, h)
	waitForSubscribers(t, h, 1)

	h.Shutdown()
	if h.SubscriberCount() != 0 {
		t.Fatalf("%d subscribers after shutdown", h.SubscriberCount())
	}
}
