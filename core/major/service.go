package major

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/courati/console/core"
)

const cachePrefix = "majors:"

type (
	Repository interface {
		Query(ctx context.Context, filter ListFilter) ([]Major, error)
		Get(ctx context.Context, id int) (Major, error)
		Create(ctx context.Context, nm NewMajor) (Major, error)
		Update(ctx context.Context, id int, um UpdateMajor) (Major, error)
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

func (svc *Service) List(ctx context.Context, filter ListFilter) ([]Major, error) {
	filter = filter.Clean()
	key := core.CacheKey(cachePrefix+"list", filter.Values())

	var majors []Major
	if hit, err := svc.cache.Get(ctx, key, &majors); err == nil && hit {
		return majors, nil
	}
	majors, err := svc.repo.Query(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "querying majors")
	}
	if majors == nil {
		majors = []Major{}
	}
	_ = svc.cache.Set(ctx, key, majors, svc.cacheTTL)
	return majors, nil
}

func (svc *Service) Get(ctx context.Context, id int) (Major, error) {
	mjr, err := svc.repo.Get(ctx, id)
	return mjr, errors.Wrap(err, "fetching major")
}

func (svc *Service) Create(ctx context.Context, nm NewMajor) (Major, error) {
	if err := nm.Validate(svc.validate); err != nil {
		return Major{}, err
	}
	mjr, err := svc.repo.Create(ctx, nm)
	if err != nil {
		return Major{}, errors.Wrap(err, "creating major")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return mjr, nil
}

func (svc *Service) Update(ctx context.Context, id int, um UpdateMajor) (Major, error) {
	if err := um.Validate(svc.validate); err != nil {
		return Major{}, err
	}
	mjr, err := svc.repo.Update(ctx, id, um)
	if err != nil {
		return Major{}, errors.Wrap(err, "updating major")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return mjr, nil
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	if err := svc.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "deleting major")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return nil
}
