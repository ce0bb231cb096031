package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/ourwallet/ourwallet/internal/interface/http"
	"github.com/ourwallet/ourwallet/internal/interface/middleware"
	"github.com/ourwallet/ourwallet/pkg/helpers"
)

type DashboardModule struct {
	Handler *handlers.DashboardHandler
	JWT     *helpers.JWTManager
	RDB     *redis.Client
}

func NewDashboardModule(h *handlers.DashboardHandler, jwt *helpers.JWTManager, rdb *redis.Client) *DashboardModule {
	return &DashboardModule{Handler: h, JWT: jwt, RDB: rdb}
}

func (m *DashboardModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/dashboard")
	auth.Use(middleware.BearerAuth(m.JWT))
	auth.Use(middleware.RateLimit(m.RDB, 300, time.Minute, middleware.KeyByUserID()))
	{
		auth.GET("", m.Handler.Get)
	}
}
