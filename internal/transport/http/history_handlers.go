package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomrelay/internal/core"
)

// HistoryHandlers exposes room history over REST.
type HistoryHandlers struct {
	hub *core.Hub
	log *zerolog.Logger
}

// NewHistoryHandlers creates a new history handlers instance.
func NewHistoryHandlers(hub *core.Hub, logger *zerolog.Logger) *HistoryHandlers {
	return &HistoryHandlers{hub: hub, log: logger}
}

// ListMessages returns the recent messages of a room, oldest first.
// GET /api/rooms/:room/messages
func (h *HistoryHandlers) ListMessages(c *gin.Context) {
	room := c.Param("room")
	messages := h.hub.History(room)

	h.log.Debug().Str("room_id", room).Int("count", len(messages)).Msg("history listed")
	c.JSON(http.StatusOK, messagesPayload(messages))
}
