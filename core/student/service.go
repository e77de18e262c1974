package student

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/courati/console/core"
	"github.com/courati/console/upstream"
)

const cachePrefix = "students:"

const notFoundMessage = "Étudiant introuvable (déjà supprimé?)"

type (
	// Repository mutations are keyed on the account's user ID.
	Repository interface {
		Query(ctx context.Context, filter ListFilter) (Page, error)
		Get(ctx context.Context, userID int) (Student, error)
		Create(ctx context.Context, ns NewStudent) (Student, error)
		Update(ctx context.Context, userID int, us UpdateStudent) (Student, error)
		Delete(ctx context.Context, userID int) error
		ToggleActive(ctx context.Context, userID int) (Student, error)
		BulkAction(ctx context.Context, ba BulkAction) error
		Export(ctx context.Context, filter ListFilter) (*upstream.Download, error)
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

// List serves one server-driven page. A page left out of range by a filter
// change is re-queried once at page 1 so the user never lands on an empty
// page.
func (svc *Service) List(ctx context.Context, filter ListFilter) (Page, error) {
	filter = filter.Clean()
	page, err := svc.list(ctx, filter)
	if err != nil {
		return Page{}, err
	}
	if filter.Page > 1 && page.TotalPages < filter.Page {
		filter.Page = 1
		return svc.list(ctx, filter)
	}
	return page, nil
}

func (svc *Service) list(ctx context.Context, filter ListFilter) (Page, error) {
	key := core.CacheKey(cachePrefix+"list", filter.Values())

	var page Page
	if hit, err := svc.cache.Get(ctx, key, &page); err == nil && hit {
		return page, nil
	}
	page, err := svc.repo.Query(ctx, filter)
	if err != nil {
		return Page{}, errors.Wrap(err, "querying students")
	}
	if page.Results == nil {
		page.Results = []Student{}
	}
	_ = svc.cache.Set(ctx, key, page, svc.cacheTTL)
	return page, nil
}

func (svc *Service) Get(ctx context.Context, userID int) (Student, error) {
	std, err := svc.repo.Get(ctx, userID)
	if upstream.IsNotFound(err) {
		return Student{}, core.NewNotFoundError(notFoundMessage)
	}
	return std, errors.Wrap(err, "fetching student")
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	if err := ns.Validate(svc.validate); err != nil {
		return Student{}, err
	}
	ns.PhoneNumber = FullPhone(ns.PhoneNumber)
	std, err := svc.repo.Create(ctx, ns)
	if err != nil {
		return Student{}, errors.Wrap(err, "creating student")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return std, nil
}

func (svc *Service) Update(ctx context.Context, userID int, us UpdateStudent) (Student, error) {
	if err := us.Validate(svc.validate); err != nil {
		return Student{}, err
	}
	if us.PhoneNumber != "" {
		us.PhoneNumber = FullPhone(us.PhoneNumber)
	}
	std, err := svc.repo.Update(ctx, userID, us)
	if err != nil {
		if upstream.IsNotFound(err) {
			return Student{}, core.NewNotFoundError(notFoundMessage)
		}
		return Student{}, errors.Wrap(err, "updating student")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return std, nil
}

func (svc *Service) Delete(ctx context.Context, userID int) error {
	if err := svc.repo.Delete(ctx, userID); err != nil {
		if upstream.IsNotFound(err) {
			return core.NewNotFoundError(notFoundMessage)
		}
		return errors.Wrap(err, "deleting student")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return nil
}

func (svc *Service) ToggleActive(ctx context.Context, userID int) (Student, error) {
	std, err := svc.repo.ToggleActive(ctx, userID)
	if err != nil {
		if upstream.IsNotFound(err) {
			return Student{}, core.NewNotFoundError(notFoundMessage)
		}
		return Student{}, errors.Wrap(err, "toggling student")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return std, nil
}

// BulkAction applies one action to the full selected user-ID set in a single
// request; the selection can span several result pages.
func (svc *Service) BulkAction(ctx context.Context, ba BulkAction) error {
	if err := ba.Validate(svc.validate); err != nil {
		return err
	}
	if err := svc.repo.BulkAction(ctx, ba); err != nil {
		return errors.Wrap(err, "applying bulk action")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return nil
}

// Export streams the upstream CSV for the current filter set (unpaginated).
func (svc *Service) Export(ctx context.Context, filter ListFilter) (*upstream.Download, error) {
	dl, err := svc.repo.Export(ctx, filter.Clean())
	return dl, errors.Wrap(err, "exporting students")
}
