package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

type messageType string

const (
	messageTypeSubscribe messageType = "subscribe"
	messageTypePing      messageType = "ping"
	messageTypePong      messageType = "pong"
	messageTypeChange    messageType = "change"
)

// envelope is the frame exchanged in both directions.
type envelope struct {
	Type   messageType `json:"type"`
	Tables []string    `json:"tables,omitempty"`
	Event  *Event      `json:"event,omitempty"`
}

// Client is one websocket connection of an authenticated user.
type Client struct {
	id     string
	userID uint64
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	log    logrus.FieldLogger

	mu     sync.RWMutex
	tables map[string]bool // nil means every table
}

func newClient(hub *Hub, conn *websocket.Conn, userID uint64, tables []string, log logrus.FieldLogger) *Client {
	c := &Client{
		id:     uuid.NewString(),
		userID: userID,
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 64),
		log:    log,
	}
	c.subscribe(tables)
	return c
}

func (c *Client) subscribe(tables []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(tables) == 0 {
		c.tables = nil
		return
	}
	c.tables = make(map[string]bool, len(tables))
	for _, t := range tables {
		c.tables[t] = true
	}
}

func (c *Client) wants(table string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tables == nil || c.tables[table]
}

// ReadPump handles subscription changes and pings until the connection drops.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.drop(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).WithField("client_id", c.id).Warn("Realtime read error")
			}
			return
		}

		var msg envelope
		if err := json.Unmarshal(data, &msg); err != nil {
			c.log.WithField("client_id", c.id).Debug("Ignoring malformed realtime frame")
			continue
		}
		c.handle(msg)
	}
}

func (c *Client) handle(msg envelope) {
	switch msg.Type {
	case messageTypeSubscribe:
		c.subscribe(msg.Tables)
	case messageTypePing:
	default:
		return
	}
	// Both frames are acknowledged with a pong so the peer knows the
	// subscription is in effect.
	data, _ := json.Marshal(envelope{Type: messageTypePong})
	select {
	case c.send <- data:
	default:
	}
}

// WritePump writes queued frames and keeps the connection alive.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.log.WithError(err).WithField("client_id", c.id).Warn("Realtime write error")
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
