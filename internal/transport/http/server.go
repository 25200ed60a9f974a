package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wiredebate-server/internal/config"
	"github.com/vovakirdan/wiredebate-server/internal/core"
	"github.com/vovakirdan/wiredebate-server/internal/enhance"
)

// maxFrameBytes bounds a single inbound WebSocket frame. It leaves room for
// the envelope around the longest accepted message.
const maxFrameBytes = 4 * core.MaxMessageLength

// NewServer builds the HTTP server: health, WebSocket and the JSON API.
func NewServer(hub *core.Hub, enhancer enhance.Enhancer, cfg config.Config, logger *zerolog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(logger))

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	rooms := NewRoomHandlers(hub, logger)
	enh := NewEnhanceHandlers(enhancer, logger)

	api := router.Group("/api")
	{
		api.GET("/rooms", rooms.ListRooms)
		api.GET("/rooms/:id/availability", rooms.Availability)
		api.GET("/rooms/:id/history", rooms.History)
	}
	router.POST("/enhance-message", enh.EnhanceMessage)

	// The upgrade bypasses gin: its response writer refuses to hijack.
	mux := http.NewServeMux()
	mux.Handle("/ws", NewWSHandler(hub, WSOptions{
		AllowedOrigins:     cfg.AllowedOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		ClientBuffer:       cfg.ClientBuffer,
		ReadLimit:          maxFrameBytes,
	}, logger))
	mux.Handle("/", router)

	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
