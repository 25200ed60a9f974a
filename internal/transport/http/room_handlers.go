package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wiredebate-server/internal/core"
	"github.com/vovakirdan/wiredebate-server/internal/proto"
)

// ErrorResponse is the JSON body of a failed API call.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// RoomHandlers serves read-only room queries backed by the hub.
type RoomHandlers struct {
	hub *core.Hub
	log *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(hub *core.Hub, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{hub: hub, log: logger}
}

// RoomResponse is one active room.
type RoomResponse struct {
	RoomID       string `json:"roomId"`
	CurrentUsers int    `json:"currentUsers"`
	MaxUsers     int    `json:"maxUsers"`
	Messages     int    `json:"messages"`
}

// ListRooms handles listing active rooms in matchmaking order.
// GET /api/rooms
func (h *RoomHandlers) ListRooms(c *gin.Context) {
	stats, err := h.hub.RoomStats(c.Request.Context())
	if err != nil {
		h.queryFailed(c, err)
		return
	}

	response := make([]RoomResponse, 0, len(stats))
	for _, s := range stats {
		response = append(response, RoomResponse{
			RoomID:       s.RoomID,
			CurrentUsers: s.CurrentUsers,
			MaxUsers:     s.MaxUsers,
			Messages:     s.Messages,
		})
	}
	c.JSON(http.StatusOK, response)
}

// Availability reports occupancy of one room.
// GET /api/rooms/:id/availability
func (h *RoomHandlers) Availability(c *gin.Context) {
	roomID, ok := h.roomParam(c)
	if !ok {
		return
	}
	a, err := h.hub.Availability(c.Request.Context(), roomID)
	if err != nil {
		h.queryFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, roomAvailability(a))
}

// History returns the stored messages of a room, including rooms that
// currently have no members.
// GET /api/rooms/:id/history
func (h *RoomHandlers) History(c *gin.Context) {
	roomID, ok := h.roomParam(c)
	if !ok {
		return
	}
	msgs, err := h.hub.History(c.Request.Context(), roomID)
	if err != nil {
		h.queryFailed(c, err)
		return
	}
	response := make([]proto.ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		response = append(response, chatMessage(m))
	}
	c.JSON(http.StatusOK, response)
}

func (h *RoomHandlers) roomParam(c *gin.Context) (string, bool) {
	roomID := c.Param("id")
	if err := core.ValidateRoomID(roomID); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return "", false
	}
	return roomID, true
}

func (h *RoomHandlers) queryFailed(c *gin.Context, err error) {
	if errors.Is(err, core.ErrHubStopped) {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "server is shutting down"})
		return
	}
	h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("room query failed")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
