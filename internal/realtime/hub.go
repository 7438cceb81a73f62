package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Hub tracks connected clients per user and fans events out to them.
type Hub struct {
	clients    map[*Client]bool
	byUser     map[uint64]map[*Client]bool
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	log        logrus.FieldLogger
}

func NewHub(log logrus.FieldLogger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		byUser:     make(map[uint64]map[*Client]bool),
		broadcast:  make(chan Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run processes registrations and broadcasts until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			if h.byUser[client.userID] == nil {
				h.byUser[client.userID] = make(map[*Client]bool)
			}
			h.byUser[client.userID][client] = true
			h.mu.Unlock()
			h.log.WithFields(logrus.Fields{"client_id": client.id, "user_id": client.userID}).Debug("Realtime client registered")

		case client := <-h.unregister:
			h.remove(client)

		case ev := <-h.broadcast:
			h.deliver(ev)

		case <-ticker.C:
			h.log.WithField("clients", h.ClientCount()).Debug("Realtime hub stats")
		}
	}
}

// Publish queues ev for local delivery. A full queue drops the event.
func (h *Hub) Publish(_ context.Context, ev Event) {
	select {
	case h.broadcast <- ev:
	default:
		h.log.WithField("table", ev.Table).Warn("Realtime queue full, dropping event")
	}
}

func (h *Hub) add(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) drop(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	if set := h.byUser[client.userID]; set != nil {
		delete(set, client)
		if len(set) == 0 {
			delete(h.byUser, client.userID)
		}
	}
	close(client.send)
	h.log.WithField("client_id", client.id).Debug("Realtime client unregistered")
}

// closeAll drops every connection. The pumps notice the closed socket and
// exit on their own.
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		if client.conn != nil {
			client.conn.Close()
		}
	}
	h.clients = make(map[*Client]bool)
	h.byUser = make(map[uint64]map[*Client]bool)
}

func (h *Hub) deliver(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	recipients := h.byUser[ev.UserID]
	if len(recipients) == 0 {
		return
	}

	data, err := json.Marshal(envelope{Type: messageTypeChange, Event: &ev})
	if err != nil {
		h.log.WithError(err).Error("Failed to marshal realtime event")
		return
	}

	for client := range recipients {
		if !client.wants(ev.Table) {
			continue
		}
		select {
		case client.send <- data:
		default:
			h.log.WithField("client_id", client.id).Warn("Realtime client send buffer full")
		}
	}
}
