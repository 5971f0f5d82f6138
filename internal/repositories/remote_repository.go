package repositories

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"ereport-admin/pkg/apiclient"
)

// RemoteRepositoryInterface — CRUD над одним ресурсом REST API.
type RemoteRepositoryInterface[E any] interface {
	List(ctx context.Context, query url.Values) (*apiclient.Page[E], error)
	Find(ctx context.Context, id uint64) (*E, error)
	Create(ctx context.Context, payload interface{}) (*E, error)
	Update(ctx context.Context, id uint64, payload interface{}) (*E, error)
	Delete(ctx context.Context, id uint64) error
	// All проходит по страницам списка, не больше limit записей.
	All(ctx context.Context, query url.Values, limit int) ([]E, error)
}

// Размер страницы при выгрузке всего списка.
const collectPageSize = 100

type RemoteRepository[E any] struct {
	client *apiclient.Client
	path   string
}

// NewRemoteRepository: path — коллекция ресурса, например "/bulletins/".
func NewRemoteRepository[E any](client *apiclient.Client, path string) RemoteRepositoryInterface[E] {
	return &RemoteRepository[E]{client: client, path: "/" + strings.Trim(path, "/") + "/"}
}

func (r *RemoteRepository[E]) itemPath(id uint64) string {
	return fmt.Sprintf("%s%d/", r.path, id)
}

func (r *RemoteRepository[E]) List(ctx context.Context, query url.Values) (*apiclient.Page[E], error) {
	return apiclient.List[E](ctx, r.client, r.path, query)
}

func (r *RemoteRepository[E]) Find(ctx context.Context, id uint64) (*E, error) {
	return apiclient.Get[E](ctx, r.client, r.itemPath(id))
}

func (r *RemoteRepository[E]) Create(ctx context.Context, payload interface{}) (*E, error) {
	return apiclient.Post[E](ctx, r.client, r.path, payload)
}

func (r *RemoteRepository[E]) Update(ctx context.Context, id uint64, payload interface{}) (*E, error) {
	return apiclient.Put[E](ctx, r.client, r.itemPath(id), payload)
}

func (r *RemoteRepository[E]) Delete(ctx context.Context, id uint64) error {
	return r.client.Delete(ctx, r.itemPath(id))
}

func (r *RemoteRepository[E]) All(ctx context.Context, query url.Values, limit int) ([]E, error) {
	return apiclient.Collect[E](ctx, r.client, r.path, query, collectPageSize, limit)
}
