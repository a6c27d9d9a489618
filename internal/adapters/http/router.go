package http

import (
	"context"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/videoapi/internal/adapters/signal"
	"github.com/dkeye/videoapi/internal/app"
	"github.com/dkeye/videoapi/internal/app/bridge"
	"github.com/dkeye/videoapi/internal/config"
	"github.com/dkeye/videoapi/internal/events"
)

const clientTokenCookie = "ct"

func genClientToken() string {
	return uuid.NewString()
}

func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(clientTokenCookie)
		if token == "" {
			token = genClientToken()
			c.SetCookie(clientTokenCookie, token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

// Deps are the SDK objects the host shell exposes.
type Deps struct {
	Facade *app.Facade
	Bridge *bridge.Bridge
	Bus    *events.Bus
}

func SetupRouter(ctx context.Context, cfg *config.Config, deps Deps) *gin.Engine {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("VideoAPISessions", store))
	r.Use(ClientTokenMiddleware())

	h := &handlers{facade: deps.Facade, bridge: deps.Bridge}
	ws := signal.NewEventsWSController(deps.Bridge, deps.Facade, deps.Bus, signal.Config{
		ReadLimit:    cfg.ReadLimit,
		PingPeriod:   cfg.PingPeriod,
		RateLimit:    cfg.Bridge.RateLimit,
		RateInterval: cfg.Bridge.RateInterval,
	})

	log.Info().Str("module", "adapters.http").Str("mode", cfg.Mode).Msg("router setup")

	api := r.Group("/api")
	api.POST("/launch", h.launch)
	api.POST("/open-url", h.openURL)
	api.POST("/activity", h.continueActivity)
	api.GET("/initial-options", h.initialOptions)
	api.POST("/join", h.join)
	api.POST("/leave", h.leave)
	api.GET("/state", h.state)
	api.POST("/commands/:verb", h.command)

	api.GET("/ws/events", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("client", c.GetString("client_token")).Msg("ws events endpoint hit")
		ws.HandleEvents(ctx, c)
	})

	return r
}
