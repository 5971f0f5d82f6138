package routes

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ereport-admin/internal/authz"
	"ereport-admin/internal/controllers"
	"ereport-admin/internal/repositories"
	"ereport-admin/internal/services"
	"ereport-admin/pkg/middleware"
	"ereport-admin/pkg/utils"
)

func runAuditRouter(
	secureGroup *echo.Group,
	base *controllers.Base,
	audit services.AuditServiceInterface,
	list utils.ListOptions,
	enabled bool,
	authMW *middleware.AuthMiddleware,
) {
	ctrl := controllers.NewAuditController(base, audit, list, enabled)
	secureGroup.GET("/audit", ctrl.List, authMW.AuthorizeAny(authz.AuditView))
}

// homeCounters — источники чисел для плиток главной.
type homeCounters struct {
	bulletins, organizations, departments, users, delayReports services.Counter
}

// dashboardCounters оборачивает счётчики кешем, если Redis-кеш передан.
func dashboardCounters(
	resources resourceServices,
	journals journalServices,
	cache repositories.CacheRepositoryInterface,
	ttl time.Duration,
	logger *zap.Logger,
) homeCounters {
	counters := homeCounters{
		bulletins:     resources.bulletins,
		organizations: resources.organizations,
		departments:   resources.departments,
		users:         resources.users,
		delayReports:  journals.delayReports,
	}
	if cache == nil || ttl <= 0 {
		return counters
	}
	wrap := func(resource string, src services.Counter) services.Counter {
		return services.NewCachedCounter(resource, src, cache, ttl, logger.Named("counters"))
	}
	counters.bulletins = wrap("bulletins", counters.bulletins)
	counters.organizations = wrap("organizations", counters.organizations)
	counters.departments = wrap("departments", counters.departments)
	counters.users = wrap("users", counters.users)
	counters.delayReports = wrap("delay_reports", counters.delayReports)
	return counters
}

func runHomeRouter(
	secureGroup *echo.Group,
	base *controllers.Base,
	gatekeeper *authz.Gatekeeper,
	counters homeCounters,
	logger *zap.Logger,
) {
	tiles := []services.DashboardTile{
		{Title: "Бюллетени", URL: "/bulletins", Permission: authz.BulletinsView, Source: counters.bulletins},
		{Title: "Организации", URL: "/organizations", Permission: authz.OrganizationsView, Source: counters.organizations},
		{Title: "Подразделения", URL: "/departments", Permission: authz.DepartmentsView, Source: counters.departments},
		{Title: "Пользователи", URL: "/users", Permission: authz.UsersView, Source: counters.users},
		{Title: "Просрочки", URL: "/delay-reports", Permission: authz.DelayReportsView, Source: counters.delayReports},
	}
	ctrl := controllers.NewDashboardController(base, services.NewDashboardService(tiles, gatekeeper, logger))
	secureGroup.GET("/", ctrl.Home)
}
