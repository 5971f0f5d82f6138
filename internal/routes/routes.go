package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ereport-admin/internal/authz"
	"ereport-admin/internal/controllers"
	"ereport-admin/internal/entities"
	"ereport-admin/internal/repositories"
	"ereport-admin/internal/services"
	"ereport-admin/pkg/apiclient"
	"ereport-admin/pkg/config"
	"ereport-admin/pkg/eventbus"
	"ereport-admin/pkg/flash"
	"ereport-admin/pkg/middleware"
	"ereport-admin/pkg/service"
	"ereport-admin/pkg/utils"
	"ereport-admin/web"
)

// Dependencies — внешние ресурсы, которые собирает app/main.go.
type Dependencies struct {
	API        *apiclient.Client
	Sessions   repositories.SessionRepositoryInterface
	Audit      repositories.AuditRepositoryInterface
	AuditOn    bool
	Gatekeeper *authz.Gatekeeper
	Health     controllers.Pinger
	// Cache и Events необязательны: без них счётчики главной не кешируются.
	Cache  repositories.CacheRepositoryInterface
	Events *eventbus.Bus
}

// repos — удалённые коллекции API, общие для нескольких роутеров.
type repos struct {
	bulletins      repositories.RemoteRepositoryInterface[entities.Bulletin]
	classificators repositories.RemoteRepositoryInterface[entities.Classificator]
	departments    repositories.RemoteRepositoryInterface[entities.Department]
	organizations  repositories.RemoteRepositoryInterface[entities.Organization]
	users          repositories.RemoteRepositoryInterface[entities.User]
	delayReports   repositories.RemoteRepositoryInterface[entities.DelayReport]
	logs           repositories.RemoteRepositoryInterface[entities.LogItem]
	fields         repositories.BulletinFieldRepositoryInterface
	auth           repositories.AuthRepositoryInterface
}

func InitRouter(e *echo.Echo, deps Dependencies, cfg *config.Config, logger *zap.Logger) {
	logger.Info("InitRouter: Начало создания маршрутов")

	// --- 0. ОБЩИЕ КОМПОНЕНТЫ ---
	flashStore := flash.NewStore(cfg.Cookie.FlashSecret, cfg.Cookie.Secure)
	cookies := middleware.CookieConfig{Secure: cfg.Cookie.Secure, TTL: cfg.JWT.SessionTTL}
	list := utils.ListOptions{DefaultPageSize: cfg.List.DefaultPageSize, MaxPageSize: cfg.List.MaxPageSize}
	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.SessionTTL)

	// --- 1. РЕПОЗИТОРИИ ---
	r := repos{
		bulletins:      repositories.NewRemoteRepository[entities.Bulletin](deps.API, "/bulletins/"),
		classificators: repositories.NewRemoteRepository[entities.Classificator](deps.API, "/classificators/"),
		departments:    repositories.NewRemoteRepository[entities.Department](deps.API, "/departments/"),
		organizations:  repositories.NewRemoteRepository[entities.Organization](deps.API, "/organizations/"),
		users:          repositories.NewRemoteRepository[entities.User](deps.API, "/users/"),
		delayReports:   repositories.NewRemoteRepository[entities.DelayReport](deps.API, "/delay-reports/"),
		logs:           repositories.NewRemoteRepository[entities.LogItem](deps.API, "/logs/"),
		fields:         repositories.NewBulletinFieldRepository(deps.API),
		auth:           repositories.NewAuthRepository(deps.API),
	}

	// --- 2. СЕРВИСЫ ---
	authService := services.NewAuthService(r.auth, deps.Sessions, jwtSvc, logger)
	var publisher services.Publisher
	if deps.Events != nil {
		publisher = deps.Events
	}
	auditService := services.NewAuditService(deps.Audit, publisher, logger)

	authMW := middleware.NewAuthMiddleware(authService, deps.Gatekeeper, flashStore, cookies, logger.Named("authmw"))
	base := controllers.NewBase(deps.Gatekeeper, flashStore, authService, cookies, logger)

	// --- 3. ОТКРЫТЫЕ МАРШРУТЫ ---
	e.GET("/healthz", controllers.NewHealthController(deps.Health).Check)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.StaticFS("/static", web.Static())
	e.GET("/favicon.ico", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	authCtrl := controllers.NewAuthController(base)
	runAuthRouter(e, authCtrl, authMW)

	// --- 4. РОУТЕРЫ ПАНЕЛИ ---
	secureGroup := e.Group("", authMW.Auth)

	svc := runResourceRouters(secureGroup, base, r, auditService, list, authMW, logger)
	runStructureRouter(secureGroup, base, r, auditService, svc.sources, authMW, logger)
	journals := runJournalRouters(secureGroup, base, r, svc.sources, list, authMW, logger)
	runAuditRouter(secureGroup, base, auditService, list, deps.AuditOn, authMW)
	counters := dashboardCounters(svc, journals, deps.Cache, cfg.Dashboard.CountTTL, logger)
	runHomeRouter(secureGroup, base, deps.Gatekeeper, counters, logger)

	logger.Info("InitRouter: Создание маршрутов завершено")
}
