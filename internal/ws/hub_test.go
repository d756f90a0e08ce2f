package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimaarv/chatspark/internal/services"
)

func dialTestHub(t *testing.T, hub *Hub, userID uint) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, userID)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubDeliversToastEvents(t *testing.T) {
	hub := NewHub(services.NoOpLogger{})
	conn := dialTestHub(t, hub, 1)

	hub.UserNotifier(1).Success("Chatroom created successfully!")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event Event
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "toast", event.Type)
	assert.Equal(t, "success", event.Level)
	assert.Equal(t, "Chatroom created successfully!", event.Message)
}

func TestHubDeliversTypingEvents(t *testing.T) {
	hub := NewHub(services.NoOpLogger{})
	conn := dialTestHub(t, hub, 1)

	hub.TypingListener(1)("room-1", true)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event Event
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "typing", event.Type)
	assert.Equal(t, "room-1", event.ChatroomID)
	assert.True(t, event.Typing)
}

func TestHubScopesEventsPerUser(t *testing.T) {
	hub := NewHub(services.NoOpLogger{})
	conn := dialTestHub(t, hub, 2)

	// An event for another user must not reach this socket.
	hub.Send(1, Event{Type: "toast", Level: "info", Message: "not yours"})
	hub.Send(2, Event{Type: "toast", Level: "info", Message: "yours"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event Event
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "yours", event.Message)
}
