package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ereport-admin/internal/authz"
	apperrors "ereport-admin/pkg/errors"
)

// Counter — источник числа для плитки на главной.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

type DashboardTile struct {
	Title      string
	URL        string
	Permission string
	Source     Counter
}

type TileValue struct {
	Title string
	URL   string
	Count int
	// Failed — API не ответил; плитка показывается с прочерком.
	Failed bool
}

type DashboardService struct {
	tiles      []DashboardTile
	gatekeeper *authz.Gatekeeper
	logger     *zap.Logger
}

func NewDashboardService(tiles []DashboardTile, gatekeeper *authz.Gatekeeper, logger *zap.Logger) *DashboardService {
	return &DashboardService{tiles: tiles, gatekeeper: gatekeeper, logger: logger.Named("dashboard")}
}

// Tiles параллельно собирает счётчики, видимые роли. Ошибка одного счётчика
// не мешает остальным; возвращается только потеря авторизации у API.
func (s *DashboardService) Tiles(ctx context.Context, role string) ([]TileValue, error) {
	visible := make([]DashboardTile, 0, len(s.tiles))
	for _, t := range s.tiles {
		if s.gatekeeper.Can(role, t.Permission) {
			visible = append(visible, t)
		}
	}

	out := make([]TileValue, len(visible))
	g, gctx := errgroup.WithContext(ctx)
	for i, tile := range visible {
		out[i] = TileValue{Title: tile.Title, URL: tile.URL}
		g.Go(func() error {
			count, err := tile.Source.Count(gctx)
			if err != nil {
				if errors.Is(err, apperrors.ErrUnauthorized) {
					return err
				}
				s.logger.Warn("Счётчик недоступен", zap.String("tile", tile.Title), zap.Error(err))
				out[i].Failed = true
				return nil
			}
			out[i].Count = count
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
