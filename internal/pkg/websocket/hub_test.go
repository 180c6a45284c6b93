package websocket

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, hub *Hub, userID int64) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/ws", func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}, NewHandler(hub, zerolog.Nop()).HandleConnection)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *gorilla.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_PushToUsersDeliversToConnectedUser(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()
	defer hub.Stop()

	srv := newTestServer(t, hub, 42)
	conn := dial(t, srv)

	require.Eventually(t, func() bool { return hub.GetClientsCount(42) == 1 }, time.Second, 10*time.Millisecond)

	hub.PushToUsers([]int64{7, 42}, "notification", map[string]string{"message": "hello"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event struct {
		Type    string            `json:"type"`
		Payload map[string]string `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, "notification", event.Type)
	assert.Equal(t, "hello", event.Payload["message"])
}

func TestHub_UnregistersOnClose(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()
	defer hub.Stop()

	srv := newTestServer(t, hub, 9)
	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.GetClientsCount(9) == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.GetClientsCount(9) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_PushWithoutClientsIsNoop(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()
	defer hub.Stop()

	hub.SendToUser(1, "notification", "nobody listening")
	hub.PushToUsers(nil, "notification", "ignored")
	assert.Zero(t, hub.GetClientsCount(1))
}
