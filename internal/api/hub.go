package api

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// =============================================================================
// Run Event Hub (WebSocket)
// =============================================================================

// RunEvent 검증 실행 완료 이벤트 - 구독 클라이언트에 푸시됨
type RunEvent struct {
	Type      string `json:"type"` // "validation_completed" | "stress_completed"
	Symbol    string `json:"symbol"`
	Model     string `json:"model,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Hub 검증 실행 이벤트 브로드캐스터
// ⭐ SSOT: WebSocket 구독 관리는 여기서만
type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewHub creates a new event hub
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// 대시보드는 별도 오리진에서 서빙됨
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log.With().Str("component", "api.hub").Logger(),
	}
}

// ServeWS upgrades the connection and registers the client
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	h.log.Debug().Int("clients", count).Msg("websocket client connected")

	// 읽기 루프는 연결 종료 감지 용도로만 사용
	go func() {
		defer h.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast sends an event to all connected clients
func (h *Hub) Broadcast(event RunEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(event); err != nil {
			h.log.Debug().Err(err).Msg("websocket write failed, dropping client")
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// Close closes all client connections
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn.Close()
	delete(h.clients, conn)
}
