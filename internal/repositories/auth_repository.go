package repositories

import (
	"context"

	"ereport-admin/internal/dto"
	"ereport-admin/internal/entities"
	"ereport-admin/pkg/apiclient"
)

type AuthRepositoryInterface interface {
	Login(ctx context.Context, username, password string) (*dto.LoginResponse, error)
	Me(ctx context.Context) (*entities.User, error)
}

type AuthRepository struct {
	client *apiclient.Client
}

func NewAuthRepository(client *apiclient.Client) AuthRepositoryInterface {
	return &AuthRepository{client: client}
}

func (r *AuthRepository) Login(ctx context.Context, username, password string) (*dto.LoginResponse, error) {
	body := map[string]string{"username": username, "password": password}
	return apiclient.Post[dto.LoginResponse](ctx, r.client, "/auth/login/", body)
}

// Me — профиль владельца токена из контекста.
func (r *AuthRepository) Me(ctx context.Context) (*entities.User, error) {
	return apiclient.Get[entities.User](ctx, r.client, "/auth/me/")
}
