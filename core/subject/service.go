package subject

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/courati/console/core"
)

const cachePrefix = "subjects:"

type (
	// Repository is the admin-scoped subject access; TeacherRepository is
	// restricted upstream to the caller's assignments.
	Repository interface {
		Query(ctx context.Context, filter ListFilter) ([]Subject, error)
		Get(ctx context.Context, id int) (Subject, error)
		Create(ctx context.Context, ns NewSubject) (Subject, error)
		Update(ctx context.Context, id int, us UpdateSubject) (Subject, error)
		Delete(ctx context.Context, id int) error
		ToggleActive(ctx context.Context, id int) (Subject, error)
		AssignTeacher(ctx context.Context, id int, at AssignTeacher) error
		RemoveTeacher(ctx context.Context, id, teacherID int) error
	}

	TeacherRepository interface {
		QueryOwn(ctx context.Context, filter ListFilter) ([]Subject, error)
		GetOwn(ctx context.Context, id int) (Subject, error)
	}

	Service struct {
		repo        Repository
		teacherRepo TeacherRepository
		cache       core.QueryCache
		cacheTTL    time.Duration
		validate    *validator.Validate
	}
)

func NewService(repo Repository, teacherRepo TeacherRepository, cache core.QueryCache, cacheTTL time.Duration, validate *validator.Validate) *Service {
	return &Service{repo: repo, teacherRepo: teacherRepo, cache: cache, cacheTTL: cacheTTL, validate: validate}
}

func (svc *Service) List(ctx context.Context, filter ListFilter) ([]Subject, error) {
	filter = filter.Clean()
	key := core.CacheKey(cachePrefix+"list", filter.Values())

	var subjects []Subject
	if hit, err := svc.cache.Get(ctx, key, &subjects); err == nil && hit {
		return subjects, nil
	}
	subjects, err := svc.repo.Query(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	if subjects == nil {
		subjects = []Subject{}
	}
	_ = svc.cache.Set(ctx, key, subjects, svc.cacheTTL)
	return subjects, nil
}

// ListOwn lists the subjects the calling teacher is assigned to. Not cached:
// the result is caller-specific and the teacher surface is low-traffic.
func (svc *Service) ListOwn(ctx context.Context, filter ListFilter) ([]Subject, error) {
	subjects, err := svc.teacherRepo.QueryOwn(ctx, filter.Clean())
	if err != nil {
		return nil, errors.Wrap(err, "querying own subjects")
	}
	if subjects == nil {
		subjects = []Subject{}
	}
	return subjects, nil
}

func (svc *Service) Get(ctx context.Context, id int) (Subject, error) {
	sub, err := svc.repo.Get(ctx, id)
	return sub, errors.Wrap(err, "fetching subject")
}

func (svc *Service) GetOwn(ctx context.Context, id int) (Subject, error) {
	sub, err := svc.teacherRepo.GetOwn(ctx, id)
	return sub, errors.Wrap(err, "fetching own subject")
}

func (svc *Service) Create(ctx context.Context, ns NewSubject) (Subject, error) {
	if err := ns.Validate(svc.validate); err != nil {
		return Subject{}, err
	}
	sub, err := svc.repo.Create(ctx, ns)
	if err != nil {
		return Subject{}, errors.Wrap(err, "creating subject")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return sub, nil
}

func (svc *Service) Update(ctx context.Context, id int, us UpdateSubject) (Subject, error) {
	if err := us.Validate(svc.validate); err != nil {
		return Subject{}, err
	}
	sub, err := svc.repo.Update(ctx, id, us)
	if err != nil {
		return Subject{}, errors.Wrap(err, "updating subject")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return sub, nil
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	if err := svc.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "deleting subject")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return nil
}

func (svc *Service) ToggleActive(ctx context.Context, id int) (Subject, error) {
	sub, err := svc.repo.ToggleActive(ctx, id)
	if err != nil {
		return Subject{}, errors.Wrap(err, "toggling subject")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return sub, nil
}

func (svc *Service) AssignTeacher(ctx context.Context, id int, at AssignTeacher) error {
	if err := at.Validate(svc.validate); err != nil {
		return err
	}
	if err := svc.repo.AssignTeacher(ctx, id, at); err != nil {
		return errors.Wrap(err, "assigning teacher")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return nil
}

func (svc *Service) RemoveTeacher(ctx context.Context, id, teacherID int) error {
	if err := svc.repo.RemoveTeacher(ctx, id, teacherID); err != nil {
		return errors.Wrap(err, "removing teacher")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return nil
}
