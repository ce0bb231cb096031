package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/ourwallet/ourwallet/internal/interface/http"
	"github.com/ourwallet/ourwallet/internal/interface/middleware"
	"github.com/ourwallet/ourwallet/pkg/helpers"
)

type PartnerModule struct {
	Handler *handlers.PartnerHandler
	JWT     *helpers.JWTManager
	RDB     *redis.Client
}

func NewPartnerModule(h *handlers.PartnerHandler, jwt *helpers.JWTManager, rdb *redis.Client) *PartnerModule {
	return &PartnerModule{Handler: h, JWT: jwt, RDB: rdb}
}

func (m *PartnerModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/partners")
	auth.Use(middleware.BearerAuth(m.JWT))
	auth.Use(middleware.RateLimit(m.RDB, 300, time.Minute, middleware.KeyByUserID()))
	{
		auth.GET("", m.Handler.List)
		auth.POST("/invite", m.Handler.Invite)
		auth.PUT("/accept", m.Handler.Accept)
		auth.DELETE("/:partnerId", m.Handler.Remove)
	}
}
