package document

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/courati/console/core"
)

const cachePrefix = "documents:"

type (
	Repository interface {
		Query(ctx context.Context, filter ListFilter) (Page, error)
		Get(ctx context.Context, id int) (Document, error)
		Update(ctx context.Context, id int, ud UpdateDocument) (Document, error)
		Delete(ctx context.Context, id int) error
		ToggleActive(ctx context.Context, id int) (Document, error)
		BulkAction(ctx context.Context, ba BulkAction) error
	}

	// TeacherRepository covers the teacher surface: documents of the
	// caller's assigned subjects, and the multipart upload.
	TeacherRepository interface {
		QueryOwn(ctx context.Context, filter ListFilter) (Page, error)
		Upload(ctx context.Context, subjectID int, up Upload) (Document, error)
		DeleteOwn(ctx context.Context, id int) error
	}

	Service struct {
		repo        Repository
		teacherRepo TeacherRepository
		cache       core.QueryCache
		cacheTTL    time.Duration
		validate    *validator.Validate
		log         core.Logger
	}
)

func NewService(repo Repository, teacherRepo TeacherRepository, cache core.QueryCache, cacheTTL time.Duration, validate *validator.Validate, log core.Logger) *Service {
	return &Service{repo: repo, teacherRepo: teacherRepo, cache: cache, cacheTTL: cacheTTL, validate: validate, log: log}
}

// List serves one server-driven page, re-querying page 1 once when the
// requested page fell out of range after a filter change.
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
		return Page{}, errors.Wrap(err, "querying documents")
	}
	if page.Results == nil {
		page.Results = []Document{}
	}
	_ = svc.cache.Set(ctx, key, page, svc.cacheTTL)
	return page, nil
}

// ListOwn lists documents on the calling teacher's subjects (not cached;
// caller-specific).
func (svc *Service) ListOwn(ctx context.Context, filter ListFilter) (Page, error) {
	page, err := svc.teacherRepo.QueryOwn(ctx, filter.Clean())
	if err != nil {
		return Page{}, errors.Wrap(err, "querying own documents")
	}
	if page.Results == nil {
		page.Results = []Document{}
	}
	return page, nil
}

func (svc *Service) Get(ctx context.Context, id int) (Document, error) {
	doc, err := svc.repo.Get(ctx, id)
	return doc, errors.Wrap(err, "fetching document")
}

// Upload forwards the multipart form to the subject's documents endpoint,
// logging fractional progress as the transport drains the body.
func (svc *Service) Upload(ctx context.Context, subjectID int, up Upload) (Document, error) {
	if err := up.Validate(svc.validate); err != nil {
		return Document{}, err
	}
	if up.Progress == nil {
		up.Progress = func(frac float64) {
			svc.log.Debug("upload progress", map[string]interface{}{"subject": subjectID, "pct": int(frac * 100)})
		}
	}
	doc, err := svc.teacherRepo.Upload(ctx, subjectID, up)
	if err != nil {
		return Document{}, errors.Wrap(err, "uploading document")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return doc, nil
}

func (svc *Service) Update(ctx context.Context, id int, ud UpdateDocument) (Document, error) {
	if err := ud.Validate(svc.validate); err != nil {
		return Document{}, err
	}
	doc, err := svc.repo.Update(ctx, id, ud)
	if err != nil {
		return Document{}, errors.Wrap(err, "updating document")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return doc, nil
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	if err := svc.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "deleting document")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return nil
}

func (svc *Service) DeleteOwn(ctx context.Context, id int) error {
	if err := svc.teacherRepo.DeleteOwn(ctx, id); err != nil {
		return errors.Wrap(err, "deleting own document")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return nil
}

func (svc *Service) ToggleActive(ctx context.Context, id int) (Document, error) {
	doc, err := svc.repo.ToggleActive(ctx, id)
	if err != nil {
		return Document{}, errors.Wrap(err, "toggling document")
	}
	_ = svc.cache.Invalidate(ctx, cachePrefix)
	return doc, nil
}

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
