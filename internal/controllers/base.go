package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ereport-admin/internal/authz"
	"ereport-admin/internal/entities"
	"ereport-admin/internal/services"
	"ereport-admin/pkg/api"
	apperrors "ereport-admin/pkg/errors"
	"ereport-admin/pkg/flash"
	"ereport-admin/pkg/middleware"
	"ereport-admin/pkg/types"
	"ereport-admin/pkg/utils"
	"ereport-admin/pkg/validation"
)

// Base - общее для всех контроллеров страниц: права, уведомления,
// отрисовка и реакция на потерю сессии.
type Base struct {
	gatekeeper *authz.Gatekeeper
	flash      *flash.Store
	auth       services.AuthServiceInterface
	cookies    middleware.CookieConfig
	logger     *zap.Logger
}

func NewBase(
	gatekeeper *authz.Gatekeeper,
	flashStore *flash.Store,
	auth services.AuthServiceInterface,
	cookies middleware.CookieConfig,
	logger *zap.Logger,
) *Base {
	return &Base{gatekeeper: gatekeeper, flash: flashStore, auth: auth, cookies: cookies, logger: logger}
}

func (b *Base) session(c echo.Context) *entities.Session {
	s, _ := c.Get(middleware.SessionContextKey).(*entities.Session)
	return s
}

func (b *Base) role(c echo.Context) string {
	return utils.GetUserRoleFromCtx(c.Request().Context())
}

func (b *Base) can(c echo.Context, permission string) bool {
	return b.gatekeeper.Can(b.role(c), permission)
}

func (b *Base) page(c echo.Context, title, active string, content interface{}) Page {
	p := Page{
		Title:   title,
		Active:  active,
		Flashes: b.flash.Pop(c),
		Content: content,
	}
	if s := b.session(c); s != nil {
		user := s.User
		p.User = &user
		p.Perms = b.gatekeeper.Set(user.Role)
		for _, item := range navigation {
			if p.Perms[item.Permission] {
				p.Nav = append(p.Nav, item)
			}
		}
	}
	return p
}

func (b *Base) render(c echo.Context, status int, name string, p Page) error {
	return c.Render(status, name, p)
}

// fail показывает страницу ошибки. Отказ API в авторизации означает,
// что токен сессии больше не действует: сессия удаляется.
func (b *Base) fail(c echo.Context, err error) error {
	if errors.Is(err, apperrors.ErrUnauthorized) {
		return b.dropSession(c)
	}
	if middleware.WantsJSON(c) {
		return api.ErrorResponse(c, err)
	}
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		b.logger.Error("Ошибка обработки страницы", zap.String("uri", c.Request().RequestURI), zap.Error(err))
	}
	p := b.page(c, "Ошибка", "", map[string]interface{}{
		"Status":  status,
		"Message": apperrors.UserMessage(err),
	})
	return b.render(c, status, "error", p)
}

func (b *Base) dropSession(c echo.Context) error {
	ctx := c.Request().Context()
	if err := b.auth.Logout(ctx, utils.GetSessionIDFromCtx(ctx)); err != nil {
		b.logger.Warn("Не удалось удалить сессию после отказа API", zap.Error(err))
	}
	b.cookies.Clear(c)
	if !middleware.WantsJSON(c) {
		_ = b.flash.Error(c, "Сессия истекла. Войдите снова.")
	}
	return middleware.RedirectToLogin(c)
}

func (b *Base) redirect(c echo.Context, kind flash.Kind, message, target string) error {
	if err := b.flash.Add(c, kind, message); err != nil {
		b.logger.Warn("Не удалось сохранить уведомление", zap.Error(err))
	}
	return c.Redirect(http.StatusSeeOther, target)
}

// validate - теги валидатора плюс межполевые правила формы.
func (b *Base) validate(c echo.Context, form interface{ Check() map[string]string }) map[string]string {
	errs := validation.FieldErrors(c.Validate(form))
	for k, v := range form.Check() {
		if errs == nil {
			errs = make(map[string]string)
		}
		if _, exists := errs[k]; !exists {
			errs[k] = v
		}
	}
	return errs
}

// loadLookups параллельно загружает варианты для select. Недоступный справочник
// оставляет пустой список; потеря авторизации возвращается.
func (b *Base) loadLookups(ctx context.Context, sources map[string]OptionSource) (Lookups, error) {
	out := make(Lookups, len(sources))
	if len(sources) == 0 {
		return out, nil
	}
	keys := make([]string, 0, len(sources))
	for k, src := range sources {
		if src != nil {
			keys = append(keys, k)
		}
	}
	results := make([][]types.Option, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	for i, key := range keys {
		g.Go(func() error {
			opts, err := sources[key](gctx)
			if err != nil {
				if errors.Is(err, apperrors.ErrUnauthorized) {
					return err
				}
				b.logger.Warn("Справочник для выбора недоступен", zap.String("lookup", key), zap.Error(err))
				return nil
			}
			results[i] = opts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, key := range keys {
		out[key] = results[i]
	}
	return out, nil
}
