package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ereport-admin/internal/authz"
	"ereport-admin/internal/controllers"
	"ereport-admin/internal/services"
	"ereport-admin/pkg/middleware"
)

func runStructureRouter(
	secureGroup *echo.Group,
	base *controllers.Base,
	r repos,
	audit services.AuditServiceInterface,
	sources controllers.Sources,
	authMW *middleware.AuthMiddleware,
	logger *zap.Logger,
) {
	structureService := services.NewBulletinStructureService(r.bulletins, r.fields, audit, logger)
	ctrl := controllers.NewStructureController(base, structureService, sources.Classificators)

	g := secureGroup.Group("/bulletins/:id/structure", authMW.AuthorizeAny(authz.BulletinsStructure))
	g.GET("", ctrl.Show)
	g.POST("/fields", ctrl.AddField)
	g.POST("/fields/:field_id/delete", ctrl.DeleteField)
	g.POST("/reorder", ctrl.Reorder)
}
