package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nimaarv/chatspark/internal/domain"
	"github.com/nimaarv/chatspark/internal/markdown"
	"github.com/nimaarv/chatspark/internal/middleware"
	"github.com/nimaarv/chatspark/internal/services/conversation"
	"github.com/nimaarv/chatspark/internal/ws"
)

type ChatHandler struct {
	registry *ManagerRegistry
	hub      *ws.Hub
}

func NewChatHandler(registry *ManagerRegistry, hub *ws.Hub) *ChatHandler {
	return &ChatHandler{registry: registry, hub: hub}
}

// messageResponse decorates a message with its rendered HTML for the web UI.
type messageResponse struct {
	domain.Message
	HTML string `json:"html"`
}

func renderMessages(msgs []domain.Message) []messageResponse {
	out := make([]messageResponse, len(msgs))
	for i, msg := range msgs {
		out[i] = messageResponse{Message: msg, HTML: markdown.Render(msg.Text)}
	}
	return out
}

func (h *ChatHandler) manager(w http.ResponseWriter, r *http.Request) (*conversation.Manager, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	mgr, err := h.registry.Get(r.Context(), userID)
	if err != nil {
		writeError(w, "Could not load conversation state", http.StatusInternalServerError)
		return nil, false
	}
	return mgr, true
}

// GetChatrooms lists the user's rooms, filtered by the q query parameter.
func (h *ChatHandler) GetChatrooms(w http.ResponseWriter, r *http.Request) {
	mgr, ok := h.manager(w, r)
	if !ok {
		return
	}
	mgr.SetSearchQuery(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, mgr.Chatrooms())
}

// CreateChatroom creates a new room from a title.
func (h *ChatHandler) CreateChatroom(w http.ResponseWriter, r *http.Request) {
	mgr, ok := h.manager(w, r)
	if !ok {
		return
	}

	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Bad Request", http.StatusBadRequest)
		return
	}

	room, err := mgr.CreateChatroom(r.Context(), req.Title)
	if err != nil {
		writeError(w, "Chatroom title cannot be empty", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

// DeleteChatroom removes a room and everything in it.
func (h *ChatHandler) DeleteChatroom(w http.ResponseWriter, r *http.Request) {
	mgr, ok := h.manager(w, r)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]
	if err := mgr.DeleteChatroom(r.Context(), id); err != nil {
		if errors.Is(err, conversation.ErrNotFound) {
			writeError(w, "Chatroom not found", http.StatusNotFound)
			return
		}
		writeError(w, "Could not delete chatroom", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetMessages selects the room and returns the requested page window of its
// history together with the has-more flag.
func (h *ChatHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	mgr, ok := h.manager(w, r)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, "Invalid page", http.StatusBadRequest)
			return
		}
		page = parsed
	}

	msgs, hasMore, err := mgr.LoadMessages(id, page)
	if err != nil {
		writeError(w, "Chatroom not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"messages": renderMessages(msgs),
		"hasMore":  hasMore,
		"page":     page,
		"typing":   mgr.IsTyping(),
	})
}

// SendMessage appends a user message to the currently selected room. The
// simulated reply arrives later over the websocket-announced typing cycle.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	mgr, ok := h.manager(w, r)
	if !ok {
		return
	}

	var req struct {
		Text  string `json:"text"`
		Image string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || (req.Text == "" && req.Image == "") {
		writeError(w, "Message text or image is required", http.StatusBadRequest)
		return
	}

	msg, err := mgr.SendMessage(r.Context(), req.Text, req.Image)
	if err != nil {
		writeError(w, "No chatroom selected", http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse{Message: msg, HTML: markdown.Render(msg.Text)})
}

// LoadMoreMessages widens the visible history window by one page.
func (h *ChatHandler) LoadMoreMessages(w http.ResponseWriter, r *http.Request) {
	mgr, ok := h.manager(w, r)
	if !ok {
		return
	}

	msgs, hasMore := mgr.LoadMoreMessages()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"messages": renderMessages(msgs),
		"hasMore":  hasMore,
	})
}

// ServeWS attaches a websocket for toast and typing events.
func (h *ChatHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	h.hub.ServeWS(w, r, userID)
}
