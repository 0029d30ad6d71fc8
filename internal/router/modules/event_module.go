package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/summitworks/eventreg/internal/container"
	handlers "github.com/summitworks/eventreg/internal/interface/http"
	"github.com/summitworks/eventreg/internal/interface/middleware"
)

type EventModule struct {
	Handler *handlers.EventHandler
}

func NewEventModule(h *handlers.EventHandler) *EventModule {
	return &EventModule{Handler: h}
}

func (m *EventModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.GET("/events", m.Handler.List)
	rg.POST("/events/:event_id/register", registerLimiter, m.Handler.Register)
	rg.GET("/events/:event_id/participants", m.Handler.ListParticipants)

	auth := rg.Group("/events/:event_id")
	auth.Use(middleware.RequireAuth())
	{
		auth.GET("/registrations/me", m.Handler.MyRegistration)
		auth.GET("/participants/search", m.Handler.Search)
	}
}
