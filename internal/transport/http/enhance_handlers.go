package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wiredebate-server/internal/core"
	"github.com/vovakirdan/wiredebate-server/internal/enhance"
)

// EnhanceHandlers serves message rewriting.
type EnhanceHandlers struct {
	enhancer enhance.Enhancer
	log      *zerolog.Logger
}

// NewEnhanceHandlers creates a new enhance handlers instance.
func NewEnhanceHandlers(enhancer enhance.Enhancer, logger *zerolog.Logger) *EnhanceHandlers {
	if enhancer == nil {
		enhancer = enhance.Disabled{}
	}
	return &EnhanceHandlers{enhancer: enhancer, log: logger}
}

// EnhanceRequest is the body of POST /enhance-message.
type EnhanceRequest struct {
	Message string `json:"message"`
	Mode    string `json:"mode"`
}

// EnhanceResponse carries both versions of the message.
type EnhanceResponse struct {
	Original string `json:"original"`
	Enhanced string `json:"enhanced"`
	Mode     string `json:"mode"`
}

// EnhanceMessage rewrites a draft message.
// POST /enhance-message
func (h *EnhanceHandlers) EnhanceMessage(c *gin.Context) {
	var req EnhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Message is required"})
		return
	}
	if len(req.Message) > core.MaxMessageLength {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrMessageLong.Error()})
		return
	}
	mode, err := enhance.ParseMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	enhanced, err := h.enhancer.Enhance(c.Request.Context(), req.Message, mode)
	switch {
	case errors.Is(err, enhance.ErrDisabled):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "message enhancement is not configured"})
		return
	case err != nil:
		h.log.Warn().Err(err).Str("mode", string(mode)).Msg("enhance message failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to enhance message", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, EnhanceResponse{Original: req.Message, Enhanced: enhanced, Mode: string(mode)})
}
