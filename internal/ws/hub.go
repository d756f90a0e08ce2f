package ws

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/nimaarv/chatspark/internal/services"
)

// Event is one frame pushed to a user's open sockets. Toast events mirror
// the notification sink (success/error/info); typing events mirror the
// typing flag of the conversation manager.
type Event struct {
	Type       string `json:"type"` // "toast" or "typing"
	Level      string `json:"level,omitempty"`
	Message    string `json:"message,omitempty"`
	ChatroomID string `json:"chatroomId,omitempty"`
	Typing     bool   `json:"typing,omitempty"`
}

// Hub tracks the open sockets per user and fans events out to them.
// Delivery is fire-and-forget: a failed write drops the connection, nothing
// is queued or retried.
type Hub struct {
	mu       sync.Mutex
	conns    map[uint]map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
	logger   services.Logger
}

func NewHub(logger services.Logger) *Hub {
	return &Hub{
		conns:  make(map[uint]map[*websocket.Conn]struct{}),
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS upgrades the request and keeps the socket registered until the
// peer goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID uint) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err, "user_id", userID)
		return
	}

	h.mu.Lock()
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*websocket.Conn]struct{})
	}
	h.conns[userID][conn] = struct{}{}
	h.mu.Unlock()

	// Drain reads so close frames are processed; drop on first error.
	go func() {
		defer h.drop(userID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Send pushes one event to every socket the user has open.
func (h *Hub) Send(userID uint, event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns[userID] {
		if err := conn.WriteJSON(event); err != nil {
			conn.Close()
			delete(h.conns[userID], conn)
		}
	}
}

func (h *Hub) drop(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conn.Close()
	if set, ok := h.conns[userID]; ok {
		delete(set, conn)
		if len(set) == 0 {
			delete(h.conns, userID)
		}
	}
}

// UserNotifier adapts the hub into the conversation manager's notification
// sink for one user.
type UserNotifier struct {
	hub    *Hub
	userID uint
}

func (h *Hub) UserNotifier(userID uint) *UserNotifier {
	return &UserNotifier{hub: h, userID: userID}
}

func (n *UserNotifier) Success(msg string) { n.send("success", msg) }
func (n *UserNotifier) Error(msg string)   { n.send("error", msg) }
func (n *UserNotifier) Info(msg string)    { n.send("info", msg) }

func (n *UserNotifier) send(level, msg string) {
	n.hub.Send(n.userID, Event{Type: "toast", Level: level, Message: msg})
}

// TypingListener adapts the hub into a typing-flag observer for one user.
func (h *Hub) TypingListener(userID uint) func(chatroomID string, typing bool) {
	return func(chatroomID string, typing bool) {
		h.Send(userID, Event{Type: "typing", ChatroomID: chatroomID, Typing: typing})
	}
}
