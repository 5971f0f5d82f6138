package routes

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ereport-admin/internal/authz"
	"ereport-admin/internal/controllers"
	"ereport-admin/internal/dto"
	"ereport-admin/internal/entities"
	"ereport-admin/internal/services"
	"ereport-admin/pkg/middleware"
	"ereport-admin/pkg/types"
	"ereport-admin/pkg/utils"
)

type resourceServices struct {
	bulletins      services.ResourceServiceInterface[entities.Bulletin]
	classificators services.ResourceServiceInterface[entities.Classificator]
	departments    services.ResourceServiceInterface[entities.Department]
	organizations  services.ResourceServiceInterface[entities.Organization]
	users          services.ResourceServiceInterface[entities.User]
	sources        controllers.Sources
}

func optionSource[E entities.Entity](s services.ResourceServiceInterface[E]) controllers.OptionSource {
	return func(ctx context.Context) ([]types.Option, error) {
		return s.Options(ctx, nil)
	}
}

func runResourceRouters(
	secureGroup *echo.Group,
	base *controllers.Base,
	r repos,
	audit services.AuditServiceInterface,
	list utils.ListOptions,
	authMW *middleware.AuthMiddleware,
	logger *zap.Logger,
) resourceServices {
	svc := resourceServices{
		bulletins:      services.NewResourceService("bulletins", r.bulletins, audit, logger),
		classificators: services.NewResourceService("classificators", r.classificators, audit, logger),
		departments:    services.NewResourceService("departments", r.departments, audit, logger),
		organizations:  services.NewResourceService("organizations", r.organizations, audit, logger),
		users:          services.NewResourceService("users", r.users, audit, logger),
	}
	svc.sources = controllers.Sources{
		Organizations:  optionSource(svc.organizations),
		Classificators: optionSource(svc.classificators),
		Departments:    optionSource(svc.departments),
		Bulletins:      optionSource(svc.bulletins),
		Users:          optionSource(svc.users),
	}

	registerResource(secureGroup, base, controllers.BulletinConfig(list, svc.sources), svc.bulletins, authMW)
	registerResource(secureGroup, base, controllers.ClassificatorConfig(list, svc.sources), svc.classificators, authMW)
	registerResource(secureGroup, base, controllers.DepartmentConfig(list, svc.sources), svc.departments, authMW)
	registerResource(secureGroup, base, controllers.OrganizationConfig(list), svc.organizations, authMW)
	registerResource(secureGroup, base, controllers.UserConfig(list, svc.sources), svc.users, authMW)
	return svc
}

// registerResource вешает семь CRUD-маршрутов раздела, каждый под своим правом.
func registerResource[E entities.Entity, F dto.Form](
	g *echo.Group,
	base *controllers.Base,
	cfg controllers.ResourceConfig[E, F],
	service services.ResourceServiceInterface[E],
	authMW *middleware.AuthMiddleware,
) {
	ctrl := controllers.NewResourceController(base, cfg, service)
	perm := func(action string) echo.MiddlewareFunc {
		return authMW.AuthorizeAny(authz.Permission(cfg.Resource, action))
	}
	path := cfg.BasePath

	g.GET(path, ctrl.List, perm("view"))
	g.GET(path+"/new", ctrl.New, perm("create"))
	g.POST(path, ctrl.Create, perm("create"))
	g.GET(path+"/:id/edit", ctrl.Edit, perm("update"))
	g.POST(path+"/:id", ctrl.Update, perm("update"))
	g.GET(path+"/:id/delete", ctrl.ConfirmDelete, perm("delete"))
	g.POST(path+"/:id/delete", ctrl.Delete, perm("delete"))
}
