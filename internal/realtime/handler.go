package realtime

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/yukikurage/planner-api/internal/constants"
	apierrors "github.com/yukikurage/planner-api/internal/errors"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	log      logrus.FieldLogger
}

// NewHandler accepts upgrades from allowedOrigin only; an empty origin allows any.
func NewHandler(hub *Hub, allowedOrigin string, log logrus.FieldLogger) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowedOrigin == "" || origin == "" || origin == allowedOrigin
			},
		},
		log: log,
	}
}

// Connect upgrades GET /api/realtime. The optional tables query parameter
// is a comma separated filter.
func (h *Handler) Connect(c *gin.Context) {
	userID := c.GetUint64(constants.ContextKeyUserID)
	if userID == 0 {
		apierrors.Unauthorized(c, "")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("Failed to upgrade realtime connection")
		return
	}

	var tables []string
	if raw := c.Query("tables"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tables = append(tables, t)
			}
		}
	}

	client := newClient(h.hub, conn, userID, tables, h.log)
	if !h.hub.add(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

// Stats reports the number of connected clients.
func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"clients": h.hub.ClientCount()})
}
