package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/summitworks/eventreg/internal/container"
	"github.com/summitworks/eventreg/internal/interface/middleware"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
