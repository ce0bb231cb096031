package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/ourwallet/ourwallet/internal/interface/http"
	"github.com/ourwallet/ourwallet/internal/interface/middleware"
)

// AuthModule registers the public account endpoints. Everything here is
// reachable without a token, so every route carries an IP-based rate limit.
type AuthModule struct {
	Handler *handlers.AuthHandler
	RDB     *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, RDB: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	credentialLimiter := middleware.RateLimit(m.RDB, 10, time.Minute, middleware.KeyByIP())       // 10 req/min per IP
	tokenFlowLimiter := middleware.RateLimit(m.RDB, 20, time.Minute, middleware.KeyByIPAndPath()) // 20 req/min per IP+path

	rg.POST("/auth/register", credentialLimiter, m.Handler.Register)
	rg.POST("/auth/login", credentialLimiter, m.Handler.Login)

	rg.GET("/auth/verify/:token", tokenFlowLimiter, m.Handler.VerifyEmail)
	rg.POST("/auth/forgotpassword", tokenFlowLimiter, m.Handler.ForgotPassword)
	rg.PUT("/auth/resetpassword/:token", tokenFlowLimiter, m.Handler.ResetPassword)
	rg.POST("/auth/resend-verification", tokenFlowLimiter, m.Handler.ResendVerification)
}
