package controllers

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ereport-admin/internal/authz"
	"ereport-admin/internal/dto"
	"ereport-admin/internal/entities"
	apperrors "ereport-admin/pkg/errors"
	"ereport-admin/pkg/flash"
	"ereport-admin/pkg/middleware"
	"ereport-admin/pkg/utils"
)

type LoginView struct {
	Username string
	Next     string
	Error    string
}

type ProfileView struct {
	User        entities.User
	RoleTitle   string
	Permissions []string
}

type AuthController struct {
	*Base
}

func NewAuthController(base *Base) *AuthController {
	return &AuthController{Base: base}
}

func (ctrl *AuthController) LoginPage(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if _, err := ctrl.auth.Authenticate(c.Request().Context(), cookie.Value); err == nil {
			return c.Redirect(http.StatusSeeOther, middleware.SafeNext(c.QueryParam("next")))
		}
	}
	return ctrl.renderLogin(c, http.StatusOK, LoginView{Next: c.QueryParam("next")})
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var form dto.LoginForm
	if err := c.Bind(&form); err != nil {
		ctrl.logger.Warn("Login: ошибка привязки данных", zap.Error(err))
		return ctrl.renderLogin(c, http.StatusBadRequest, LoginView{Error: "Неверный формат данных для входа"})
	}
	view := LoginView{Username: form.Username, Next: form.Next}
	if errs := ctrl.validate(c, &form); len(errs) > 0 {
		view.Error = "Введите логин и пароль"
		return ctrl.renderLogin(c, http.StatusUnprocessableEntity, view)
	}

	token, session, err := ctrl.auth.Login(c.Request().Context(), form)
	if err != nil {
		ctrl.logger.Info("Login: вход отклонён", zap.String("username", form.Username), zap.Error(err))
		view.Error = apperrors.UserMessage(err)
		return ctrl.renderLogin(c, apperrors.StatusCode(err), view)
	}

	ctrl.cookies.Set(c, token)
	ctrl.logger.Info("Login: вход выполнен", zap.Uint64("userID", session.User.ID), zap.String("role", session.User.Role))
	return ctrl.redirect(c, flash.Success, "Добро пожаловать, "+session.User.DisplayName(), middleware.SafeNext(form.Next))
}

func (ctrl *AuthController) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	if sid := utils.GetSessionIDFromCtx(ctx); sid != "" {
		if err := ctrl.auth.Logout(ctx, sid); err != nil {
			ctrl.logger.Warn("Logout: не удалось удалить сессию", zap.String("sessionID", sid), zap.Error(err))
		}
	}
	ctrl.cookies.Clear(c)
	return ctrl.redirect(c, flash.Info, "Вы вышли из панели", "/login")
}

func (ctrl *AuthController) Profile(c echo.Context) error {
	user, err := ctrl.auth.Profile(c.Request().Context())
	if err != nil {
		return ctrl.fail(c, err)
	}
	perms := ctrl.gatekeeper.Permissions(user.Role)
	sort.Strings(perms)
	view := ProfileView{User: *user, RoleTitle: authz.RoleTitle(user.Role), Permissions: perms}
	return ctrl.render(c, http.StatusOK, "profile", ctrl.page(c, "Профиль", "/profile", view))
}

func (ctrl *AuthController) renderLogin(c echo.Context, status int, view LoginView) error {
	return ctrl.render(c, status, "login", ctrl.page(c, "Вход", "", view))
}
