package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ereport-admin/pkg/errors"
)

func TestWithUser(t *testing.T) {
	ctx := WithUser(context.Background(), "sid", 12, "ivanov", "operator")

	id, err := GetUserIDFromCtx(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), id)
	assert.Equal(t, "ivanov", GetUsernameFromCtx(ctx))
	assert.Equal(t, "operator", GetUserRoleFromCtx(ctx))
	assert.Equal(t, "sid", GetSessionIDFromCtx(ctx))
}

func TestGetUserIDFromCtx_Missing(t *testing.T) {
	_, err := GetUserIDFromCtx(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrUserNotFoundInContext)
	assert.Empty(t, GetUserRoleFromCtx(context.Background()))
}
