package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ereport-admin/internal/dto"
	"ereport-admin/internal/entities"
	apperrors "ereport-admin/pkg/errors"
	"ereport-admin/pkg/service"
)

func loginResponse(role string, active bool) *dto.LoginResponse {
	return &dto.LoginResponse{
		Access:  "access-token",
		Refresh: "refresh-token",
		User:    entities.User{ID: 42, Username: "petrov", Role: role, IsActive: active},
	}
}

func newAuthService(repo *fakeAuthRepo, sessions *fakeSessions) (*AuthService, service.JWTService) {
	jwtSvc := service.NewJWTService("test-secret", time.Hour)
	return NewAuthService(repo, sessions, jwtSvc, zap.NewNop()), jwtSvc
}

func TestAuthService_LoginCreatesSession(t *testing.T) {
	sessions := newFakeSessions()
	svc, jwtSvc := newAuthService(&fakeAuthRepo{resp: loginResponse("moderator", true)}, sessions)

	token, session, err := svc.Login(context.Background(), dto.LoginForm{Username: "petrov", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, "access-token", session.AccessToken)
	assert.Contains(t, sessions.saved, session.ID)
	assert.Equal(t, time.Hour, sessions.ttl)

	claims, err := jwtSvc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, session.ID, claims.SessionID)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "moderator", claims.Role)
}

func TestAuthService_LoginMapsBackendRejection(t *testing.T) {
	for _, backendErr := range []error{apperrors.ErrUnauthorized, apperrors.ErrBadRequest} {
		svc, _ := newAuthService(&fakeAuthRepo{err: backendErr}, newFakeSessions())
		_, _, err := svc.Login(context.Background(), dto.LoginForm{Username: "x", Password: "y"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}
}

func TestAuthService_LoginPassesThroughOutage(t *testing.T) {
	svc, _ := newAuthService(&fakeAuthRepo{err: apperrors.ErrUpstreamUnavailable}, newFakeSessions())
	_, _, err := svc.Login(context.Background(), dto.LoginForm{Username: "x", Password: "y"})
	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
}

func TestAuthService_LoginRejectsUnknownRoleAndInactiveUser(t *testing.T) {
	for _, resp := range []*dto.LoginResponse{loginResponse("guest", true), loginResponse("admin", false)} {
		sessions := newFakeSessions()
		svc, _ := newAuthService(&fakeAuthRepo{resp: resp}, sessions)
		_, _, err := svc.Login(context.Background(), dto.LoginForm{Username: "x", Password: "y"})
		assert.Equal(t, http.StatusForbidden, apperrors.StatusCode(err))
		assert.Empty(t, sessions.saved)
	}
}

func TestAuthService_AuthenticateAndLogout(t *testing.T) {
	sessions := newFakeSessions()
	svc, _ := newAuthService(&fakeAuthRepo{resp: loginResponse("viewer", true)}, sessions)
	ctx := context.Background()

	token, created, err := svc.Login(ctx, dto.LoginForm{Username: "petrov", Password: "secret"})
	require.NoError(t, err)

	session, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, session.ID)

	require.NoError(t, svc.Logout(ctx, session.ID))
	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestAuthService_AuthenticateRejectsForeignSession(t *testing.T) {
	sessions := newFakeSessions()
	svc, jwtSvc := newAuthService(&fakeAuthRepo{}, sessions)
	sessions.saved["s1"] = entities.Session{ID: "s1", User: entities.User{ID: 1}}

	token, err := jwtSvc.GenerateSessionToken("s1", 2, "admin")
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestAuthService_AuthenticateRejectsGarbage(t *testing.T) {
	svc, _ := newAuthService(&fakeAuthRepo{}, newFakeSessions())
	_, err := svc.Authenticate(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
