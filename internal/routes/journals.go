package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ereport-admin/internal/authz"
	"ereport-admin/internal/controllers"
	"ereport-admin/internal/entities"
	"ereport-admin/internal/services"
	"ereport-admin/pkg/middleware"
	"ereport-admin/pkg/utils"
)

type journalServices struct {
	delayReports services.JournalServiceInterface[entities.DelayReport]
	logs         services.JournalServiceInterface[entities.LogItem]
}

func runJournalRouters(
	secureGroup *echo.Group,
	base *controllers.Base,
	r repos,
	sources controllers.Sources,
	list utils.ListOptions,
	authMW *middleware.AuthMiddleware,
	logger *zap.Logger,
) journalServices {
	svc := journalServices{
		delayReports: services.NewJournalService("delay_reports", r.delayReports, services.DelayReportColumns, logger),
		logs:         services.NewJournalService("logs", r.logs, services.LogColumns, logger),
	}

	delayCtrl := controllers.NewJournalController(base, controllers.DelayReportJournalConfig(list, sources), svc.delayReports)
	secureGroup.GET("/delay-reports", delayCtrl.List, authMW.AuthorizeAny(authz.DelayReportsView))
	secureGroup.GET("/delay-reports/export", delayCtrl.Export, authMW.AuthorizeAny(authz.DelayReportsExport))

	logCtrl := controllers.NewJournalController(base, controllers.LogJournalConfig(list, sources), svc.logs)
	secureGroup.GET("/logs", logCtrl.List, authMW.AuthorizeAny(authz.LogsView))
	secureGroup.GET("/logs/export", logCtrl.Export, authMW.AuthorizeAny(authz.LogsExport))

	return svc
}
