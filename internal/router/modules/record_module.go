package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/ourwallet/ourwallet/internal/interface/http"
	"github.com/ourwallet/ourwallet/internal/interface/middleware"
	"github.com/ourwallet/ourwallet/pkg/helpers"
)

type RecordModule struct {
	Handler *handlers.RecordHandler
	JWT     *helpers.JWTManager
	RDB     *redis.Client
}

func NewRecordModule(h *handlers.RecordHandler, jwt *helpers.JWTManager, rdb *redis.Client) *RecordModule {
	return &RecordModule{Handler: h, JWT: jwt, RDB: rdb}
}

func (m *RecordModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/records")
	auth.Use(middleware.BearerAuth(m.JWT))
	auth.Use(middleware.RateLimit(m.RDB, 300, time.Minute, middleware.KeyByUserID()))
	{
		auth.GET("", m.Handler.List)
		auth.POST("", m.Handler.Create)
		auth.DELETE("/:id", m.Handler.Delete)
		auth.POST("/import", m.Handler.Import)
		auth.POST("/delete-multiple", m.Handler.DeleteMultiple)
	}
}
