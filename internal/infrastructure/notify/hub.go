package notify

import (
	"net/http"
	"sync"
	"time"

	"costream/internal/core/domain"
	"costream/internal/core/ports"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Should be configured properly for production
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Hub fans coordination notifications out to WebSocket subscribers grouped by
// event. A subscriber only sees notifications for the event it subscribed to.
type Hub struct {
	connections map[domain.EventID]map[*websocket.Conn]struct{}
	mu          sync.RWMutex

	writeTimeout time.Duration

	logger *zap.SugaredLogger
}

// PhaseChangeMessage is the wire shape pushed to subscribers.
type PhaseChangeMessage struct {
	Type             string                                    `json:"type"`
	EventID          domain.EventID                            `json:"event_id"`
	Phase            domain.SessionPhase                       `json:"phase"`
	PlatformStatuses map[domain.PlatformID]domain.PlatformStatus `json:"platform_statuses,omitempty"`
	Timestamp        time.Time                                 `json:"timestamp"`
}

func NewHub(logger *zap.SugaredLogger) *Hub {
	return &Hub{
		connections:  make(map[domain.EventID]map[*websocket.Conn]struct{}),
		writeTimeout: 10 * time.Second,
		logger:       logger,
	}
}

var _ ports.Notifier = (*Hub)(nil)

// PublishPhaseChange pushes a phase transition to every subscriber of the
// event. Dead connections are dropped on write failure.
func (h *Hub) PublishPhaseChange(eventID domain.EventID, phase domain.SessionPhase, statuses map[domain.PlatformID]domain.PlatformStatus) {
	msg := PhaseChangeMessage{
		Type:             "phase_change",
		EventID:          eventID,
		Phase:            phase,
		PlatformStatuses: statuses,
		Timestamp:        time.Now(),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.connections[eventID]
	for conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		if err := conn.WriteJSON(msg); err != nil {
			h.logger.Warnw("dropping dead websocket subscriber",
				"event_id", eventID,
				"error", err,
			)
			conn.Close()
			delete(conns, conn)
		}
	}
}

// HandleWebSocket upgrades the request and keeps the connection registered
// until the client goes away.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request, eventID domain.EventID) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Errorw("websocket upgrade failed", "error", err)
		return
	}

	h.register(eventID, conn)
	defer func() {
		h.unregister(eventID, conn)
		conn.Close()
	}()

	// Reads only serve to detect disconnects; subscribers do not send data
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) register(eventID domain.EventID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.connections[eventID]
	if !ok {
		conns = make(map[*websocket.Conn]struct{})
		h.connections[eventID] = conns
	}
	conns[conn] = struct{}{}
}

func (h *Hub) unregister(eventID domain.EventID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.connections[eventID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.connections, eventID)
		}
	}
}

// SubscriberCount reports how many connections are attached to an event.
func (h *Hub) SubscriberCount(eventID domain.EventID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections[eventID])
}
