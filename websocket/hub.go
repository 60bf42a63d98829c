package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// Event is one lifecycle notification pushed to every connected client:
// state changes, round starts, and publication.
type Event struct {
	Type   string    `json:"type"`
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan Event, 16)

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Client registered: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Client unregistered: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case event := <-Broadcast:
			clientsMu.RLock()
			var dead []uuid.UUID
			for userID, conn := range clients {
				if err := conn.WriteJSON(event); err != nil {
					log.Printf("Error sending event to client %s: %v", userID, err)
					conn.Close()
					dead = append(dead, userID)
				}
			}
			clientsMu.RUnlock()

			if len(dead) > 0 {
				clientsMu.Lock()
				for _, userID := range dead {
					delete(clients, userID)
				}
				clientsMu.Unlock()
			}
		}
	}
}

// BroadcastEvent queues an event without blocking the caller. A full queue
// drops the event; the connected clients only ever need the latest state.
func BroadcastEvent(event Event) {
	select {
	case Broadcast <- event:
	default:
		log.Printf("⚠️ Event queue full, dropping %s event", event.Type)
	}
}
