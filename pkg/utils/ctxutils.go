package utils

import (
	"context"

	"ereport-admin/pkg/contextkeys"
	apperrors "ereport-admin/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok {
		return 0, apperrors.ErrUserNotFoundInContext
	}
	return userID, nil
}

func GetUsernameFromCtx(ctx context.Context) string {
	name, _ := ctx.Value(contextkeys.UsernameKey).(string)
	return name
}

func GetUserRoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(contextkeys.UserRoleKey).(string)
	return role
}

func GetSessionIDFromCtx(ctx context.Context) string {
	sid, _ := ctx.Value(contextkeys.SessionIDKey).(string)
	return sid
}

// WithUser кладёт в контекст данные текущего пользователя.
func WithUser(ctx context.Context, sessionID string, userID uint64, username, role string) context.Context {
	ctx = context.WithValue(ctx, contextkeys.SessionIDKey, sessionID)
	ctx = context.WithValue(ctx, contextkeys.UserIDKey, userID)
	ctx = context.WithValue(ctx, contextkeys.UsernameKey, username)
	return context.WithValue(ctx, contextkeys.UserRoleKey, role)
}
