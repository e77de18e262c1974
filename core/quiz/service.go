package quiz

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/courati/console/core"
)

const cachePrefix = "quizzes:"

type (
	// Repository returns full filtered sets: the quizzes endpoints do not
	// paginate, slicing is the service's job. The admin and teacher
	// consoles are served by distinct upstream path trees, so the service
	// holds one Repository per console; the teacher one is scoped upstream
	// to the caller's assigned subjects.
	Repository interface {
		Query(ctx context.Context, filter ListFilter) ([]Quiz, error)
		Get(ctx context.Context, id int) (Quiz, error)
		Create(ctx context.Context, nq NewQuiz) (Quiz, error)
		Update(ctx context.Context, id int, nq NewQuiz) (Quiz, error)
		// Delete may be rejected upstream when attempts exist; the
		// conflict carries a server-provided suggestion shown as-is.
		Delete(ctx context.Context, id int) error
		ToggleActive(ctx context.Context, id int) (Quiz, error)
		Attempts(ctx context.Context, id int) ([]Attempt, error)
	}

	Service struct {
		repo        Repository // admin console
		teacherRepo Repository // teacher console, caller-scoped upstream
		cache       core.QueryCache
		cacheTTL    time.Duration
		validate    *validator.Validate
	}
)

func NewService(repo, teacherRepo Repository, cache core.QueryCache, cacheTTL time.Duration, validate *validator.Validate) *Service {
	return &Service{repo: repo, teacherRepo: teacherRepo, cache: cache, cacheTTL: cacheTTL, validate: validate}
}

// List fetches the full filtered set once (cached) and slices the requested
// page locally; an out-of-range page falls back to page 1.
func (svc *Service) List(ctx context.Context, filter ListFilter) (Page, error) {
	filter = filter.Clean()
	key := core.CacheKey(cachePrefix+"list", filter.Values())

	var quizzes []Quiz
	if hit, err := svc.cache.Get(ctx, key, &quizzes); err != nil || !hit {
		quizzes, err = svc.repo.Query(ctx, filter)
		if err != nil {
			return Page{}, errors.Wrap(err, "querying quizzes")
		}
		_ = svc.cache.Set(ctx, key, quizzes, svc.cacheTTL)
	}
	return slicePage(quizzes, filter.Page, filter.PageSize), nil
}

// ListOwn is the teacher-scoped variant (restricted upstream to the
// caller's assignments; not cached, caller-specific).
func (svc *Service) ListOwn(ctx context.Context, filter ListFilter) (Page, error) {
	filter = filter.Clean()
	quizzes, err := svc.teacherRepo.Query(ctx, filter)
	if err != nil {
		return Page{}, errors.Wrap(err, "querying own quizzes")
	}
	return slicePage(quizzes, filter.Page, filter.PageSize), nil
}

func (svc *Service) Get(ctx context.Context, id int) (Quiz, error) {
	return svc.get(ctx, svc.repo, id)
}

func (svc *Service) GetOwn(ctx context.Context, id int) (Quiz, error) {
	return svc.get(ctx, svc.teacherRepo, id)
}

func (svc *Service) get(ctx context.Context, repo Repository, id int) (Quiz, error) {
	qz, err := repo.Get(ctx, id)
	return qz, errors.Wrap(err, "fetching quiz")
}

// Create submits the reviewed builder payload; the full step-3 validation
// runs server-side again regardless of what the wizard already checked.
func (svc *Service) Create(ctx context.Context, nq NewQuiz) (Quiz, error) {
	return svc.create(ctx, svc.repo, nq)
}

func (svc *Service) CreateOwn(ctx context.Context, nq NewQuiz) (Quiz, error) {
	return svc.create(ctx, svc.teacherRepo, nq)
}

func (svc *Service) create(ctx context.Context, repo Repository, nq NewQuiz) (Quiz, error) {
	if err := nq.ValidateStep(StepReview, svc.validate); err != nil {
		return Quiz{}, err
	}
	qz, err := repo.Create(ctx, nq)
	if err != nil {
		return Quiz{}, errors.Wrap(err, "creating quiz")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return qz, nil
}

func (svc *Service) Update(ctx context.Context, id int, nq NewQuiz) (Quiz, error) {
	return svc.update(ctx, svc.repo, id, nq)
}

func (svc *Service) UpdateOwn(ctx context.Context, id int, nq NewQuiz) (Quiz, error) {
	return svc.update(ctx, svc.teacherRepo, id, nq)
}

func (svc *Service) update(ctx context.Context, repo Repository, id int, nq NewQuiz) (Quiz, error) {
	if err := nq.ValidateStep(StepReview, svc.validate); err != nil {
		return Quiz{}, err
	}
	qz, err := repo.Update(ctx, id, nq)
	if err != nil {
		return Quiz{}, errors.Wrap(err, "updating quiz")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return qz, nil
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.delete(ctx, svc.repo, id)
}

func (svc *Service) DeleteOwn(ctx context.Context, id int) error {
	return svc.delete(ctx, svc.teacherRepo, id)
}

func (svc *Service) delete(ctx context.Context, repo Repository, id int) error {
	if err := repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "deleting quiz")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return nil
}

func (svc *Service) ToggleActive(ctx context.Context, id int) (Quiz, error) {
	return svc.toggleActive(ctx, svc.repo, id)
}

func (svc *Service) ToggleActiveOwn(ctx context.Context, id int) (Quiz, error) {
	return svc.toggleActive(ctx, svc.teacherRepo, id)
}

func (svc *Service) toggleActive(ctx context.Context, repo Repository, id int) (Quiz, error) {
	qz, err := repo.ToggleActive(ctx, id)
	if err != nil {
		return Quiz{}, errors.Wrap(err, "toggling quiz")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return qz, nil
}

// ValidateStep exposes the wizard gate to the builder endpoints without
// touching the upstream.
func (svc *Service) ValidateStep(nq *NewQuiz, step int) error {
	return nq.ValidateStep(step, svc.validate)
}

func (svc *Service) Attempts(ctx context.Context, id int) ([]Attempt, error) {
	return svc.attempts(ctx, svc.repo, id)
}

func (svc *Service) AttemptsOwn(ctx context.Context, id int) ([]Attempt, error) {
	return svc.attempts(ctx, svc.teacherRepo, id)
}

func (svc *Service) attempts(ctx context.Context, repo Repository, id int) ([]Attempt, error) {
	attempts, err := repo.Attempts(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "querying attempts")
	}
	if attempts == nil {
		attempts = []Attempt{}
	}
	return attempts, nil
}

func slicePage(quizzes []Quiz, page, pageSize int) Page {
	total := len(quizzes)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		page = 1
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	results := quizzes[start:end]
	if results == nil {
		results = []Quiz{}
	}
	return Page{
		Results:    results,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
