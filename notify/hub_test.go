package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHubServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		roomID := strings.TrimPrefix(r.URL.Path, "/ws/")
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Subscribe(roomID, conn)
	}))
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server, roomID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/" + roomID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForSubscribers(t *testing.T, hub *Hub, roomID string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.SubscriberCount(roomID) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("room %s never reached %d subscribers", roomID, want)
}

func TestHub_BroadcastReachesRoomSubscribers(t *testing.T) {
	t.Parallel()
	hub := NewHub()
	server := newHubServer(t, hub)

	first := dial(t, server, "ABCDE")
	second := dial(t, server, "ABCDE")
	waitForSubscribers(t, hub, "ABCDE", 2)

	hub.Broadcast("ABCDE", "player-joined", map[string]any{"players": []string{"Ann"}})

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var event Event
		require.NoError(t, json.Unmarshal(data, &event))
		assert.Equal(t, "player-joined", event.Event)
	}
}

func TestHub_BroadcastScopedToRoomTopic(t *testing.T) {
	t.Parallel()
	hub := NewHub()
	server := newHubServer(t, hub)

	other := dial(t, server, "OTHER")
	waitForSubscribers(t, hub, "OTHER", 1)

	hub.Broadcast("ABCDE", "game-started", map[string]any{"roundId": "r1"})

	other.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := other.ReadMessage()
	assert.Error(t, err, "subscriber of another room must not receive the event")
}

func TestHub_BroadcastToEmptyRoomIsNoop(t *testing.T) {
	t.Parallel()
	hub := NewHub()

	hub.Broadcast("EMPTY", "room-deleted", map[string]any{})
	assert.Zero(t, hub.SubscriberCount("EMPTY"))
}

func TestHub_RemovesSubscriberOnDisconnect(t *testing.T) {
	t.Parallel()
	hub := NewHub()
	server := newHubServer(t, hub)

	conn := dial(t, server, "ABCDE")
	waitForSubscribers(t, hub, "ABCDE", 1)

	conn.Close()
	waitForSubscribers(t, hub, "ABCDE", 0)
}
