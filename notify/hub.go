// Package notify fans room events out to websocket subscribers. Delivery is
// best-effort: a broadcast never blocks or fails the state change that
// triggered it, and late joiners reconcile by re-fetching full room state.
package notify

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Event is the wire envelope for one broadcast.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type Hub struct {
	locker sync.RWMutex
	rooms  map[string]map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*client]struct{})}
}

// Broadcast sends the event to every current subscriber of the room topic.
// Slow consumers are dropped rather than awaited.
func (h *Hub) Broadcast(roomID, event string, payload any) {
	data, err := json.Marshal(Event{Event: event, Data: payload})
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("notify: marshal failed")
		return
	}

	h.locker.RLock()
	subscribers := make([]*client, 0, len(h.rooms[roomID]))
	for c := range h.rooms[roomID] {
		subscribers = append(subscribers, c)
	}
	h.locker.RUnlock()

	for _, c := range subscribers {
		select {
		case c.send <- data:
		default:
			log.Debug().Str("room", roomID).Msg("notify: dropping slow subscriber")
			c.closeSlow()
		}
	}
}

// Subscribe registers the connection on the room topic and runs its pumps
// until the peer goes away. It blocks for the lifetime of the connection.
func (h *Hub) Subscribe(roomID string, conn *websocket.Conn) {
	c := newClient(conn)

	h.locker.Lock()
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*client]struct{})
	}
	h.rooms[roomID][c] = struct{}{}
	h.locker.Unlock()

	go c.writePump()
	c.readPump()

	h.locker.Lock()
	delete(h.rooms[roomID], c)
	if len(h.rooms[roomID]) == 0 {
		delete(h.rooms, roomID)
	}
	h.locker.Unlock()

	c.release()
}

// SubscriberCount reports the current number of subscribers of a room topic.
func (h *Hub) SubscriberCount(roomID string) int {
	h.locker.RLock()
	defer h.locker.RUnlock()
	return len(h.rooms[roomID])
}
