package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ereport-admin/internal/authz"
	"ereport-admin/internal/listeners"
	"ereport-admin/internal/repositories"
	"ereport-admin/internal/routes"
	"ereport-admin/pkg/api"
	"ereport-admin/pkg/apiclient"
	"ereport-admin/pkg/config"
	"ereport-admin/pkg/database/postgresql"
	apperrors "ereport-admin/pkg/errors"
	"ereport-admin/pkg/eventbus"
	applogger "ereport-admin/pkg/logger"
	"ereport-admin/pkg/middleware"
	"ereport-admin/pkg/validation"
	"ereport-admin/web"
)

// redisPinger приводит *redis.Client к интерфейсу проверки здоровья.
type redisPinger struct{ client *redis.Client }

func (p redisPinger) Ping(ctx context.Context) error { return p.client.Ping(ctx).Err() }

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Запустить веб-сервер панели",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, config.New())
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := applogger.NewLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	// 1. Echo и middleware
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				_ = api.ErrorResponse(c, httpErr)
			}
			return err
		},
	}))
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger.Named("http")))
	e.Use(echomw.SecureWithConfig(echomw.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}))

	e.Validator = validation.New()
	renderer, err := web.NewRenderer()
	if err != nil {
		return err
	}
	e.Renderer = renderer

	// 2. Права
	gatekeeper, err := authz.LoadGatekeeper(cfg.PermissionsFile)
	if err != nil {
		return err
	}

	// 3. Redis для сессий
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error("не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
		return err
	}

	// 4. Журнал аудита: без DATABASE_URL панель работает без него
	var auditRepo repositories.AuditRepositoryInterface = repositories.NopAuditRepository{}
	auditOn := false
	if cfg.Postgres.DSN != "" {
		dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
		if err != nil {
			return err
		}
		defer dbConn.Close()
		auditRepo = repositories.NewAuditRepository(dbConn, logger.Named("audit"))
		auditOn = true
	} else {
		logger.Warn("DATABASE_URL не задан, журнал аудита отключён")
	}

	// 5. Шина событий: изменения сбрасывают кеш счётчиков главной
	cache := repositories.NewRedisCacheRepository(redisClient)
	bus := eventbus.New(logger.Named("events"))
	defer bus.Wait()
	listeners.NewCountCacheListener(cache, logger.Named("counters")).Register(bus)

	// 6. Маршруты
	routes.InitRouter(e, routes.Dependencies{
		API:        apiclient.New(cfg.API.BaseURL, cfg.API.Timeout, logger.Named("api")),
		Sessions:   repositories.NewSessionRepository(cache),
		Audit:      auditRepo,
		AuditOn:    auditOn,
		Gatekeeper: gatekeeper,
		Health:     redisPinger{client: redisClient},
		Cache:      cache,
		Events:     bus,
	}, cfg, logger)

	// 7. Запуск и остановка по сигналу
	errCh := make(chan error, 1)
	go func() {
		logger.Info("🚀 Сервер запущен", zap.String("port", cfg.Server.Port), zap.String("api", cfg.API.BaseURL))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Ошибка запуска сервера", zap.Error(err))
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Остановка сервера")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
