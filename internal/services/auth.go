package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ereport-admin/internal/authz"
	"ereport-admin/internal/dto"
	"ereport-admin/internal/entities"
	"ereport-admin/internal/repositories"
	apperrors "ereport-admin/pkg/errors"
	"ereport-admin/pkg/service"
)

type AuthServiceInterface interface {
	// Login возвращает подписанный токен для cookie и созданную сессию.
	Login(ctx context.Context, form dto.LoginForm) (string, *entities.Session, error)
	Authenticate(ctx context.Context, token string) (*entities.Session, error)
	Logout(ctx context.Context, sessionID string) error
	Profile(ctx context.Context) (*entities.User, error)
}

type AuthService struct {
	authRepo    repositories.AuthRepositoryInterface
	sessionRepo repositories.SessionRepositoryInterface
	jwtService  service.JWTService
	logger      *zap.Logger
	now         func() time.Time
}

func NewAuthService(
	authRepo repositories.AuthRepositoryInterface,
	sessionRepo repositories.SessionRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		authRepo:    authRepo,
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
		logger:      logger.Named("auth"),
		now:         time.Now,
	}
}

func (s *AuthService) Login(ctx context.Context, form dto.LoginForm) (string, *entities.Session, error) {
	logger := s.logger.With(zap.String("username", form.Username))

	resp, err := s.authRepo.Login(ctx, form.Username, form.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) || errors.Is(err, apperrors.ErrBadRequest) {
			logger.Warn("Неверный логин или пароль")
			return "", nil, apperrors.ErrInvalidCredentials
		}
		logger.Error("Ошибка входа через API", zap.Error(err))
		return "", nil, err
	}

	if !resp.User.IsActive || !authz.IsKnownRole(resp.User.Role) {
		logger.Warn("Вход в панель запрещён", zap.String("role", resp.User.Role), zap.Bool("active", resp.User.IsActive))
		return "", nil, apperrors.NewHttpError(http.StatusForbidden, "У вашей учётной записи нет доступа к панели", apperrors.ErrForbidden, nil)
	}

	session := entities.Session{
		ID:           uuid.NewString(),
		AccessToken:  resp.Access,
		RefreshToken: resp.Refresh,
		User:         resp.User,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.sessionRepo.Save(ctx, session, s.jwtService.GetSessionTTL()); err != nil {
		logger.Error("Не удалось сохранить сессию", zap.Error(err))
		return "", nil, err
	}

	token, err := s.jwtService.GenerateSessionToken(session.ID, session.User.ID, session.User.Role)
	if err != nil {
		logger.Error("Не удалось подписать токен сессии", zap.Error(err))
		_ = s.sessionRepo.Delete(ctx, session.ID)
		return "", nil, err
	}

	logger.Info("Пользователь вошёл в панель", zap.Uint64("userID", session.User.ID))
	return token, &session, nil
}

// Authenticate проверяет cookie и поднимает сессию из хранилища.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*entities.Session, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	session, err := s.sessionRepo.Find(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if session.User.ID != claims.UserID {
		s.logger.Warn("Токен не соответствует сессии", zap.String("sessionID", claims.SessionID))
		return nil, apperrors.ErrInvalidToken
	}
	return session, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		s.logger.Error("Не удалось удалить сессию", zap.String("sessionID", sessionID), zap.Error(err))
		return err
	}
	return nil
}

// Profile запрашивает актуальный профиль у API от имени текущего пользователя.
func (s *AuthService) Profile(ctx context.Context) (*entities.User, error) {
	user, err := s.authRepo.Me(ctx)
	if err != nil {
		s.logger.Warn("Не удалось получить профиль", zap.Error(err))
		return nil, err
	}
	return user, nil
}
