package teacher

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/courati/console/core"
	"github.com/courati/console/upstream"
)

const cachePrefix = "teachers:"

// notFoundMessage is the friendlier wording for mutations hitting a teacher
// whose account no longer exists upstream.
const notFoundMessage = "Enseignant introuvable (déjà supprimé?)"

type (
	// Repository methods are keyed on the account's user ID, never the
	// profile id (the upstream admin routes take user_id).
	Repository interface {
		Query(ctx context.Context, filter ListFilter) ([]Teacher, error)
		Get(ctx context.Context, userID int) (Teacher, error)
		Create(ctx context.Context, nt NewTeacher) (Teacher, error)
		Update(ctx context.Context, userID int, ut UpdateTeacher) (Teacher, error)
		Delete(ctx context.Context, userID int) error
		ToggleActive(ctx context.Context, userID int) (Teacher, error)
		BulkAction(ctx context.Context, ba BulkAction) error
		RemoveAssignment(ctx context.Context, assignmentID int) error
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

func (svc *Service) List(ctx context.Context, filter ListFilter) ([]Teacher, error) {
	filter = filter.Clean()
	key := core.CacheKey(cachePrefix+"list", filter.Values())

	var teachers []Teacher
	if hit, err := svc.cache.Get(ctx, key, &teachers); err == nil && hit {
		return teachers, nil
	}
	teachers, err := svc.repo.Query(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "querying teachers")
	}
	if teachers == nil {
		teachers = []Teacher{}
	}
	_ = svc.cache.Set(ctx, key, teachers, svc.cacheTTL)
	return teachers, nil
}

func (svc *Service) Get(ctx context.Context, userID int) (Teacher, error) {
	tch, err := svc.repo.Get(ctx, userID)
	if upstream.IsNotFound(err) {
		return Teacher{}, core.NewNotFoundError(notFoundMessage)
	}
	return tch, errors.Wrap(err, "fetching teacher")
}

// Create sends the teacher's account + profile in one payload; the phone
// number is stored with the fixed country-code prefix.
func (svc *Service) Create(ctx context.Context, nt NewTeacher) (Teacher, error) {
	if err := nt.Validate(svc.validate); err != nil {
		return Teacher{}, err
	}
	nt.PhoneNumber = FullPhone(nt.PhoneNumber)
	tch, err := svc.repo.Create(ctx, nt)
	if err != nil {
		return Teacher{}, errors.Wrap(err, "creating teacher")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return tch, nil
}

func (svc *Service) Update(ctx context.Context, userID int, ut UpdateTeacher) (Teacher, error) {
	if err := ut.Validate(svc.validate); err != nil {
		return Teacher{}, err
	}
	if ut.PhoneNumber != "" {
		ut.PhoneNumber = FullPhone(ut.PhoneNumber)
	}
	tch, err := svc.repo.Update(ctx, userID, ut)
	if err != nil {
		if upstream.IsNotFound(err) {
			return Teacher{}, core.NewNotFoundError(notFoundMessage)
		}
		return Teacher{}, errors.Wrap(err, "updating teacher")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return tch, nil
}

func (svc *Service) Delete(ctx context.Context, userID int) error {
	if err := svc.repo.Delete(ctx, userID); err != nil {
		if upstream.IsNotFound(err) {
			return core.NewNotFoundError(notFoundMessage)
		}
		return errors.Wrap(err, "deleting teacher")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return nil
}

func (svc *Service) ToggleActive(ctx context.Context, userID int) (Teacher, error) {
	tch, err := svc.repo.ToggleActive(ctx, userID)
	if err != nil {
		if upstream.IsNotFound(err) {
			return Teacher{}, core.NewNotFoundError(notFoundMessage)
		}
		return Teacher{}, errors.Wrap(err, "toggling teacher")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return tch, nil
}

// BulkAction applies one action to the full selected user-ID set in a single
// request (the selection may span several result pages).
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

func (svc *Service) RemoveAssignment(ctx context.Context, assignmentID int) error {
	if err := svc.repo.RemoveAssignment(ctx, assignmentID); err != nil {
		if upstream.IsNotFound(err) {
			return core.NewNotFoundError("Affectation introuvable (déjà supprimée?)")
		}
		return errors.Wrap(err, "removing assignment")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return nil
}
