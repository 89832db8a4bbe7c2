package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"casino-bot-backend/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type wsMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub fans settled results out to connected clients: settlements go to the
// owning user, jackpot totals go to everyone. Implements
// services.Broadcaster.
type Hub struct {
	mu      sync.RWMutex
	clients map[models.UserID]map[*websocket.Conn]struct{}
	logger  zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[models.UserID]map[*websocket.Conn]struct{}),
		logger:  logger.With().Str("component", "ws-hub").Logger(),
	}
}

func (h *Hub) add(userID models.UserID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*websocket.Conn]struct{})
	}
	h.clients[userID][conn] = struct{}{}
}

func (h *Hub) remove(userID models.UserID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients[userID], conn)
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
}

func (h *Hub) BroadcastSettlement(userID models.UserID, result *models.SettlementResult) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.clients[userID] {
		if err := conn.WriteJSON(wsMessage{Type: "SETTLEMENT", Data: result}); err != nil {
			h.logger.Debug().Err(err).Str("user_id", userID.String()).Msg("settlement push failed")
		}
	}
}

func (h *Hub) BroadcastJackpot(total int64) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, conns := range h.clients {
		for conn := range conns {
			if err := conn.WriteJSON(wsMessage{Type: "JACKPOT", Data: total}); err != nil {
				h.logger.Debug().Err(err).Msg("jackpot push failed")
			}
		}
	}
}

// HandleWebSocket upgrades the connection and keeps it registered until the
// client goes away. Inbound frames are only read to detect closure and
// answer pings.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	userID := models.UserID(c.GetString("user_id"))

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	h.add(userID, conn)
	defer func() {
		h.remove(userID, conn)
		conn.Close()
	}()

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Debug().Err(err).Msg("websocket closed unexpectedly")
			}
			return
		}

		if msg.Type == "PING" {
			if err := conn.WriteJSON(wsMessage{Type: "PONG"}); err != nil {
				return
			}
		}
	}
}
