package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ereport-admin/internal/authz"
	"ereport-admin/internal/entities"
	"ereport-admin/pkg/api"
	"ereport-admin/pkg/apiclient"
	apperrors "ereport-admin/pkg/errors"
	"ereport-admin/pkg/flash"
	"ereport-admin/pkg/utils"
)

// SessionContextKey — ключ echo.Context, под которым лежит *entities.Session.
const SessionContextKey = "session"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entities.Session, error)
}

type AuthMiddleware struct {
	auth       Authenticator
	gatekeeper *authz.Gatekeeper
	flash      *flash.Store
	cookies    CookieConfig
	logger     *zap.Logger
}

func NewAuthMiddleware(auth Authenticator, gatekeeper *authz.Gatekeeper, flashStore *flash.Store, cookies CookieConfig, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		auth:       auth,
		gatekeeper: gatekeeper,
		flash:      flashStore,
		cookies:    cookies,
		logger:     logger,
	}
}

// Auth пускает дальше только запросы с живой сессией.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			return RedirectToLogin(c)
		}

		session, err := m.auth.Authenticate(c.Request().Context(), cookie.Value)
		if err != nil {
			m.logger.Info("AuthMiddleware: сессия недействительна", zap.Error(err))
			m.cookies.Clear(c)
			return RedirectToLogin(c)
		}

		user := session.User
		ctx := utils.WithUser(c.Request().Context(), session.ID, user.ID, user.Username, user.Role)
		ctx = apiclient.WithToken(ctx, session.AccessToken)
		c.SetRequest(c.Request().WithContext(ctx))
		c.Set(SessionContextKey, session)

		return next(c)
	}
}

// AuthorizeAny требует хотя бы одно из перечисленных прав.
func (m *AuthMiddleware) AuthorizeAny(permissions ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := utils.GetUserRoleFromCtx(c.Request().Context())
			for _, p := range permissions {
				if m.gatekeeper.Can(role, p) {
					return next(c)
				}
			}

			m.logger.Warn("AuthorizeAny: отказано в доступе",
				zap.String("role", role),
				zap.Strings("required", permissions),
				zap.String("uri", c.Request().RequestURI),
			)
			if WantsJSON(c) {
				return api.ErrorResponse(c, apperrors.ErrForbidden)
			}
			_ = m.flash.Error(c, "Недостаточно прав для этого раздела")
			return c.Redirect(http.StatusSeeOther, "/")
		}
	}
}

// RedirectToLogin отправляет на /login, запоминая адрес GET-запроса в next.
func RedirectToLogin(c echo.Context) error {
	if WantsJSON(c) {
		return api.ErrorResponse(c, apperrors.ErrUnauthorized)
	}
	target := "/login"
	if c.Request().Method == http.MethodGet {
		target += "?next=" + url.QueryEscape(c.Request().URL.RequestURI())
	}
	return c.Redirect(http.StatusSeeOther, target)
}

// WantsJSON — запрос от скрипта страницы, а не переход браузера.
func WantsJSON(c echo.Context) bool {
	req := c.Request()
	return strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) ||
		strings.Contains(req.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}

// SafeNext оставляет только относительные пути внутри панели.
func SafeNext(next string) string {
	// Браузер выбрасывает из URL табуляцию и переводы строк: "/\t/host" стал бы "//host".
	if strings.ContainsAny(next, "\t\r\n") {
		return "/"
	}
	if u, err := url.Parse(next); err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	if strings.HasPrefix(next, "/login") {
		return "/"
	}
	return next
}
