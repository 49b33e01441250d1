package sync

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func quiet() *log.Logger { return log.New(io.Discard, "", 0) }

func startServer(t *testing.T) (*Hub, *Server) {
	t.Helper()
	hub := NewHub(quiet())
	srv := NewServer("127.0.0.1:0", hub, quiet())
	require.NoError(t, srv.Listen())
	done := make(chan error, 1)
	go func() { done <- srv.Run() }()
	t.Cleanup(func() {
		require.NoError(t, srv.Close())
		require.NoError(t, <-done)
	})
	return hub, srv
}

func waitForClients(t *testing.T, hub *Hub, tcp, ws int) {
	t.Helper()
	require.Eventually(t, func() bool {
		s := hub.Stats()
		return s.TCPClients == tcp && s.WSClients == ws
	}, 2*time.Second, 10*time.Millisecond)
}

func TestTCPClientReceivesEvents(t *testing.T) {
	hub, srv := startServer(t)

	conn, err := net.Dial("tcp", srv.ListenAddr().String())
	require.NoError(t, err)
	defer conn.Close()
	r := bufio.NewReader(conn)

	line, err := r.ReadString('\n')
	require.NoError(t, err)
	require.Contains(t, line, `"welcome"`)
	waitForClients(t, hub, 1, 0)

	hub.Publish(RegistrationEvent{Type: EventCreated, UserID: "u1", RegistrationID: 5, Title: "Canção"})

	line, err = r.ReadString('\n')
	require.NoError(t, err)
	ev, ok := DecodeEvent([]byte(line))
	require.True(t, ok)
	require.Equal(t, EventCreated, ev.Type)
	require.EqualValues(t, 5, ev.RegistrationID)
	require.False(t, ev.At.IsZero())
}

func TestListenDeliversLinesUntilCancelled(t *testing.T) {
	hub, srv := startServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	lines := make(chan []byte, 4)
	done := make(chan error, 1)
	go func() {
		done <- Listen(ctx, srv.ListenAddr().String(), func(line []byte) {
			lines <- append([]byte(nil), line...)
		})
	}()

	welcome := <-lines
	_, ok := DecodeEvent(welcome)
	require.False(t, ok)

	waitForClients(t, hub, 1, 0)
	hub.Publish(RegistrationEvent{Type: EventDeleted, RegistrationID: 9})
	ev, ok := DecodeEvent(<-lines)
	require.True(t, ok)
	require.Equal(t, EventDeleted, ev.Type)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestServerCloseDisconnectsClients(t *testing.T) {
	hub := NewHub(quiet())
	srv := NewServer("127.0.0.1:0", hub, quiet())
	require.NoError(t, srv.Listen())
	done := make(chan error, 1)
	go func() { done <- srv.Run() }()

	conn, err := net.Dial("tcp", srv.ListenAddr().String())
	require.NoError(t, err)
	defer conn.Close()
	waitForClients(t, hub, 1, 0)

	require.NoError(t, srv.Close())
	require.NoError(t, <-done)
	require.Equal(t, Stats{}, hub.Stats())

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, err = io.ReadAll(conn)
	require.NoError(t, err)
}

func TestWebSocketClientReceivesEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub(quiet())
	r := gin.New()
	r.GET("/ws", WSHandler(hub))
	ts := httptest.NewServer(r)
	defer ts.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer ws.Close()

	_, msg, err := ws.ReadMessage()
	require.NoError(t, err)
	var hello map[string]any
	require.NoError(t, json.Unmarshal(msg, &hello))
	require.Equal(t, "websocket", hello["transport"])
	waitForClients(t, hub, 0, 1)

	hub.Publish(RegistrationEvent{Type: EventUpdated, RegistrationID: 3, Progress: 75})
	_, msg, err = ws.ReadMessage()
	require.NoError(t, err)
	ev, ok := DecodeEvent(msg)
	require.True(t, ok)
	require.Equal(t, 75, ev.Progress)
}
