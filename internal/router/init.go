package router

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ourwallet/ourwallet/config"
	"github.com/ourwallet/ourwallet/internal/application"
	"github.com/ourwallet/ourwallet/internal/infrastructure/postgres"
	handlers "github.com/ourwallet/ourwallet/internal/interface/http"
	"github.com/ourwallet/ourwallet/internal/router/modules"
	"github.com/ourwallet/ourwallet/pkg/helpers"
)

// Deps carries every external dependency the HTTP modules need. All wiring
// happens here so main stays a thin bootstrap and tests can assemble a
// Registry from fakes.
type Deps struct {
	Cfg    *config.Config
	Pool   *pgxpool.Pool
	RDB    *redis.Client
	Queue  application.EmailPublisher
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

// InitModules builds the repositories, services and handlers and registers
// every feature module with the registry.
func InitModules(r *Registry, d Deps) {
	users := postgres.NewUserRepository(d.Pool)
	links := postgres.NewPartnerLinkRepository(d.Pool)
	records := postgres.NewRecordRepository(d.Pool)

	cache := application.NewDashboardCache(d.RDB, d.Cfg.DashboardCacheTTL)

	authSvc := application.NewAuthService(users, links, d.JWT, d.Queue, d.Cfg, d.Logger)
	partnerSvc := application.NewPartnerService(users, links)
	recordSvc := application.NewRecordService(records, cache)
	spenderSvc := application.NewSpenderService(users)
	dashSvc := application.NewDashboardService(records, cache)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, d.Logger), d.RDB))
	r.Add(modules.NewRecordModule(handlers.NewRecordHandler(recordSvc, partnerSvc, d.Logger), d.JWT, d.RDB))
	r.Add(modules.NewPartnerModule(handlers.NewPartnerHandler(partnerSvc, d.Logger), d.JWT, d.RDB))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(spenderSvc, d.Logger), d.JWT, d.RDB))
	r.Add(modules.NewDashboardModule(handlers.NewDashboardHandler(dashSvc, partnerSvc, d.Logger), d.JWT, d.RDB))
}
