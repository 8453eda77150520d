package net

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Intent is a client → simulation command. Decoded off the game loop,
// queued, and drained by InputSystem once per tick.
type Intent struct {
	Type string  `json:"type"` // "steer" or "pause"
	DX   float64 `json:"dx"`
	DY   float64 `json:"dy"`
}

// Hub owns websocket subscribers. The game loop pushes snapshots through
// Broadcast and pulls intents through PollIntent; per-connection reads run
// on their own goroutines and never touch world state.
type Hub struct {
	mu      sync.Mutex
	subs    map[*subscriber]struct{}
	intents chan Intent
	up      websocket.Upgrader
	log     *zap.Logger
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex // serialises writes
}

func NewHub(intentQueue int, log *zap.Logger) *Hub {
	if intentQueue < 1 {
		intentQueue = 64
	}
	return &Hub{
		subs:    make(map[*subscriber]struct{}),
		intents: make(chan Intent, intentQueue),
		up: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		log: log,
	}
}

// HandleWS upgrades an HTTP request and starts the connection's read pump.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.up.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	sub := &subscriber{conn: conn}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	n := len(h.subs)
	h.mu.Unlock()
	h.log.Info("spectator connected", zap.String("remote", conn.RemoteAddr().String()), zap.Int("subscribers", n))

	go h.readPump(sub)
}

func (h *Hub) readPump(sub *subscriber) {
	defer h.detach(sub)
	for {
		var in Intent
		if err := sub.conn.ReadJSON(&in); err != nil {
			return
		}
		select {
		case h.intents <- in:
		default:
			// Queue full: drop rather than stall the reader. The next
			// intent supersedes a lost one anyway.
		}
	}
}

// PollIntent returns one queued intent without blocking.
func (h *Hub) PollIntent() (Intent, bool) {
	select {
	case in := <-h.intents:
		return in, true
	default:
		return Intent{}, false
	}
}

// Broadcast sends a snapshot to every subscriber. A failed write detaches
// the subscriber; the simulation never blocks on a slow client.
func (h *Hub) Broadcast(data []byte) {
	h.mu.Lock()
	subs := make([]*subscriber, 0, len(h.subs))
	for sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		sub.mu.Lock()
		err := sub.conn.WriteMessage(websocket.TextMessage, data)
		sub.mu.Unlock()
		if err != nil {
			h.detach(sub)
		}
	}
}

// SubscriberCount reports the number of attached clients.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) detach(sub *subscriber) {
	h.mu.Lock()
	_, present := h.subs[sub]
	delete(h.subs, sub)
	h.mu.Unlock()
	if present {
		sub.conn.Close()
		h.log.Info("spectator disconnected", zap.String("remote", sub.conn.RemoteAddr().String()))
	}
}

// Shutdown closes every subscriber connection.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	for sub := range h.subs {
		sub.conn.Close()
	}
	h.subs = make(map[*subscriber]struct{})
	h.mu.Unlock()
}
