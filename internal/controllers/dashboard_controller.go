package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ereport-admin/internal/services"
)

type DashboardController struct {
	*Base
	dashboardService *services.DashboardService
}

func NewDashboardController(base *Base, ds *services.DashboardService) *DashboardController {
	return &DashboardController{Base: base, dashboardService: ds}
}

// Home - главная: счётчики разделов, доступных роли.
func (ctrl *DashboardController) Home(c echo.Context) error {
	tiles, err := ctrl.dashboardService.Tiles(c.Request().Context(), ctrl.role(c))
	if err != nil {
		return ctrl.fail(c, err)
	}
	return ctrl.render(c, http.StatusOK, "home", ctrl.page(c, "Главная", "/", tiles))
}
