package routes

import (
	"github.com/labstack/echo/v4"

	"ereport-admin/internal/controllers"
	"ereport-admin/pkg/middleware"
)

func runAuthRouter(e *echo.Echo, authCtrl *controllers.AuthController, authMW *middleware.AuthMiddleware) {
	e.GET("/login", authCtrl.LoginPage)
	e.POST("/login", authCtrl.Login)
	e.POST("/logout", authCtrl.Logout, authMW.Auth)
	e.GET("/profile", authCtrl.Profile, authMW.Auth)
}
