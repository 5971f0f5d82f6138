package repositories

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"ereport-admin/internal/dto"
	"ereport-admin/internal/entities"
	"ereport-admin/pkg/apiclient"
)

// Структура бюллетеня редко превышает несколько десятков полей;
// берём одной страницей.
const maxBulletinFields = 500

type BulletinFieldRepositoryInterface interface {
	ListFields(ctx context.Context, bulletinID uint64) ([]entities.BulletinField, error)
	CreateField(ctx context.Context, bulletinID uint64, form dto.BulletinFieldForm) (*entities.BulletinField, error)
	DeleteField(ctx context.Context, bulletinID, fieldID uint64) error
	Reorder(ctx context.Context, bulletinID uint64, order []dto.FieldOrder) error
}

type BulletinFieldRepository struct {
	client *apiclient.Client
}

func NewBulletinFieldRepository(client *apiclient.Client) BulletinFieldRepositoryInterface {
	return &BulletinFieldRepository{client: client}
}

func fieldsPath(bulletinID uint64) string {
	return fmt.Sprintf("/bulletins/%d/fields/", bulletinID)
}

func (r *BulletinFieldRepository) ListFields(ctx context.Context, bulletinID uint64) ([]entities.BulletinField, error) {
	query := url.Values{}
	query.Set("limit", fmt.Sprint(maxBulletinFields))
	query.Set("ordering", "order")
	page, err := apiclient.List[entities.BulletinField](ctx, r.client, fieldsPath(bulletinID), query)
	if err != nil {
		return nil, err
	}
	return page.Results, nil
}

func (r *BulletinFieldRepository) CreateField(ctx context.Context, bulletinID uint64, form dto.BulletinFieldForm) (*entities.BulletinField, error) {
	return apiclient.Post[entities.BulletinField](ctx, r.client, fieldsPath(bulletinID), form)
}

func (r *BulletinFieldRepository) DeleteField(ctx context.Context, bulletinID, fieldID uint64) error {
	return r.client.Delete(ctx, fmt.Sprintf("%s%d/", fieldsPath(bulletinID), fieldID))
}

func (r *BulletinFieldRepository) Reorder(ctx context.Context, bulletinID uint64, order []dto.FieldOrder) error {
	return r.client.Do(ctx, http.MethodPost, fieldsPath(bulletinID)+"reorder/", nil, order, nil)
}
