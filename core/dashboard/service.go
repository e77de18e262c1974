package dashboard

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/courati/console/core"
)

const cachePrefix = "dashboard:"

type (
	Repository interface {
		AdminStats(ctx context.Context) (AdminStats, error)
		TeacherStats(ctx context.Context) (TeacherStats, error)
	}

	Service struct {
		repo     Repository
		cache    core.QueryCache
		cacheTTL time.Duration
	}
)

func NewService(repo Repository, cache core.QueryCache, cacheTTL time.Duration) *Service {
	return &Service{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

func (svc *Service) AdminStats(ctx context.Context) (AdminStats, error) {
	key := cachePrefix + "admin"
	var stats AdminStats
	if hit, err := svc.cache.Get(ctx, key, &stats); err == nil && hit {
		return stats, nil
	}
	stats, err := svc.repo.AdminStats(ctx)
	if err != nil {
		return AdminStats{}, errors.Wrap(err, "fetching admin dashboard")
	}
	_ = svc.cache.Set(ctx, key, stats, svc.cacheTTL)
	return stats, nil
}

// TeacherStats is caller-specific and therefore not cached.
func (svc *Service) TeacherStats(ctx context.Context) (TeacherStats, error) {
	stats, err := svc.repo.TeacherStats(ctx)
	return stats, errors.Wrap(err, "fetching teacher dashboard")
}
