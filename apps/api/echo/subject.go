package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/courati/console/core/subject"
)

type subjectApi struct {
	opts *Options
}

func registerSubjectAPI(g *echo.Group, opts *Options) {
	api := subjectApi{opts: opts}

	g.GET("/subjects", api.query)
	g.POST("/subjects", api.create)
	g.GET("/subjects/:id", api.retrieve)
	g.PATCH("/subjects/:id", api.update)
	g.DELETE("/subjects/:id", api.destroy)
	g.POST("/subjects/:id/toggle-active", api.toggleActive)
	g.POST("/subjects/:id/assign-teacher", api.assignTeacher)
	g.POST("/subjects/:id/remove-teacher", api.removeTeacher)
}

// registerTeacherSubjectAPI exposes the read-only teacher surface: the
// caller's assigned subjects only.
func registerTeacherSubjectAPI(g *echo.Group, opts *Options) {
	api := subjectApi{opts: opts}

	g.GET("/subjects", api.queryOwn)
	g.GET("/subjects/:id", api.retrieveOwn)
}

type subjectResponse struct {
	Success string          `json:"success"`
	Subject subject.Subject `json:"subject"`
}

func (api *subjectApi) filter(q ListQuery) subject.ListFilter {
	return subject.ListFilter{
		Search:   q.Search,
		LevelID:  q.LevelID,
		MajorID:  q.MajorID,
		IsActive: q.IsActive,
	}
}

func (api *subjectApi) query(ctx echo.Context) error {
	q, err := bindListQuery(ctx)
	if err != nil {
		return err
	}
	subjects, err := api.opts.SubjectSvc.List(ctx.Request().Context(), api.filter(q))
	if err != nil {
		return errors.Wrap(err, "querying subjects")
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *subjectApi) queryOwn(ctx echo.Context) error {
	q, err := bindListQuery(ctx)
	if err != nil {
		return err
	}
	subjects, err := api.opts.SubjectSvc.ListOwn(ctx.Request().Context(), api.filter(q))
	if err != nil {
		return errors.Wrap(err, "querying own subjects")
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *subjectApi) retrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	sub, err := api.opts.SubjectSvc.Get(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "fetching subject")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *subjectApi) retrieveOwn(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	sub, err := api.opts.SubjectSvc.GetOwn(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "fetching own subject")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *subjectApi) create(ctx echo.Context) error {
	var data subject.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}
	sub, err := api.opts.SubjectSvc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating subject")
	}
	return ctx.JSON(http.StatusCreated, subjectResponse{Success: "Matière créée avec succès.", Subject: sub})
}

func (api *subjectApi) update(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data subject.UpdateSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSubject")
	}
	sub, err := api.opts.SubjectSvc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating subject")
	}
	return ctx.JSON(http.StatusOK, subjectResponse{Success: "Matière mise à jour avec succès.", Subject: sub})
}

func (api *subjectApi) destroy(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.opts.SubjectSvc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting subject")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Matière supprimée avec succès."})
}

func (api *subjectApi) toggleActive(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	sub, err := api.opts.SubjectSvc.ToggleActive(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "toggling subject")
	}
	return ctx.JSON(http.StatusOK, subjectResponse{Success: "Statut de la matière mis à jour.", Subject: sub})
}

func (api *subjectApi) assignTeacher(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data subject.AssignTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AssignTeacher")
	}
	if err := api.opts.SubjectSvc.AssignTeacher(ctx.Request().Context(), id, data); err != nil {
		return errors.Wrap(err, "assigning teacher")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Enseignant affecté avec succès."})
}

type removeTeacherRequest struct {
	TeacherID int `json:"teacher_id"`
}

func (api *subjectApi) removeTeacher(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data removeTeacherRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to removeTeacherRequest")
	}
	if err := api.opts.SubjectSvc.RemoveTeacher(ctx.Request().Context(), id, data.TeacherID); err != nil {
		return errors.Wrap(err, "removing teacher")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Affectation supprimée avec succès."})
}
