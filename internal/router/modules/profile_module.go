package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/summitworks/eventreg/internal/container"
	handlers "github.com/summitworks/eventreg/internal/interface/http"
	"github.com/summitworks/eventreg/internal/interface/middleware"
)

type ProfileModule struct {
	Handler *handlers.ProfileHandler
}

func NewProfileModule(h *handlers.ProfileHandler) *ProfileModule {
	return &ProfileModule{Handler: h}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/profile")
	auth.Use(middleware.RequireAuth())
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyBySession(), nil))
	{
		auth.GET("", m.Handler.Get)
		auth.PUT("", m.Handler.Update)
		auth.PUT("/password", m.Handler.ChangePassword)
		auth.PUT("/avatar", m.Handler.UploadAvatar)
	}
}
