package level

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/courati/console/core"
)

const cachePrefix = "levels:"

type (
	Repository interface {
		Query(ctx context.Context, filter ListFilter) ([]Level, error)
		Get(ctx context.Context, id int) (Level, error)
		Create(ctx context.Context, nl NewLevel) (Level, error)
		Update(ctx context.Context, id int, ul UpdateLevel) (Level, error)
		Delete(ctx context.Context, id int) error
	}

	Service struct {
		repo     Repository
		cache    core.QueryCache
		cacheTTL time.Duration
		validate *validator.Validate
	}
)

func NewService(repo Repository, cache core.QueryCache, cacheTTL time.Duration, validate *validator.Validate) *Service {
	return &Service{repo: repo, cache: cache, cacheTTL: cacheTTL, validate: validate}
}

func (svc *Service) List(ctx context.Context, filter ListFilter) ([]Level, error) {
	filter = filter.Clean()
	key := core.CacheKey(cachePrefix+"list", filter.Values())

	var levels []Level
	if hit, err := svc.cache.Get(ctx, key, &levels); err == nil && hit {
		return levels, nil
	}
	levels, err := svc.repo.Query(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "querying levels")
	}
	if levels == nil {
		levels = []Level{}
	}
	_ = svc.cache.Set(ctx, key, levels, svc.cacheTTL)
	return levels, nil
}

func (svc *Service) Get(ctx context.Context, id int) (Level, error) {
	lvl, err := svc.repo.Get(ctx, id)
	return lvl, errors.Wrap(err, "fetching level")
}

func (svc *Service) Create(ctx context.Context, nl NewLevel) (Level, error) {
	if err := nl.Validate(svc.validate); err != nil {
		return Level{}, err
	}
	lvl, err := svc.repo.Create(ctx, nl)
	if err != nil {
		return Level{}, errors.Wrap(err, "creating level")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return lvl, nil
}

func (svc *Service) Update(ctx context.Context, id int, ul UpdateLevel) (Level, error) {
	if err := ul.Validate(svc.validate); err != nil {
		return Level{}, err
	}
	lvl, err := svc.repo.Update(ctx, id, ul)
	if err != nil {
		return Level{}, errors.Wrap(err, "updating level")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return lvl, nil
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	if err := svc.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "deleting level")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return nil
}
