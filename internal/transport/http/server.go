package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomrelay/internal/config"
	"github.com/vovakirdan/roomrelay/internal/core"
)

// Greeting is the body served on the root path.
const Greeting = "hello"

// NewServer builds an HTTP server with the relay routes.
func NewServer(hub *core.Hub, cfg *config.Config, logger *zerolog.Logger) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(hub, cfg, logger),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

// NewRouter mounts the websocket gateway on a plain mux, since the upgrade
// hijacks the connection, and hands every other path to gin.
func NewRouter(hub *core.Hub, cfg *config.Config, logger *zerolog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", NewWSHandler(hub, cfg, logger))
	mux.Handle("/", newEngine(hub, logger))
	return mux
}

func newEngine(hub *core.Hub, logger *zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CORSMiddleware())
	router.Use(LoggerMiddleware(logger))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, Greeting)
	})
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	history := NewHistoryHandlers(hub, logger)
	api := router.Group("/api")
	api.GET("/rooms/:room/messages", history.ListMessages)

	return router
}
