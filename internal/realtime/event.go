// Package realtime pushes row-change notifications to connected clients.
// Events carry no row data; receivers re-fetch what they display.
package realtime

import (
	"context"
	"strconv"
	"time"
)

type Action string

const (
	ActionInsert Action = "insert"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Event announces that a row visible to UserID changed.
type Event struct {
	Table  string    `json:"table"`
	Action Action    `json:"action"`
	ID     string    `json:"id"`
	UserID uint64    `json:"user_id"`
	At     time.Time `json:"at"`
}

// NewEvent builds an event for a numeric row id.
func NewEvent(table string, action Action, id uint64, userID uint64) Event {
	return Event{
		Table:  table,
		Action: action,
		ID:     strconv.FormatUint(id, 10),
		UserID: userID,
		At:     time.Now().UTC(),
	}
}

// Publisher delivers events. Delivery is best-effort and never fails the caller.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}
