package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/courati/console/core/teacher"
)

type teacherApi struct {
	opts *Options
}

// Teacher admin routes are keyed on the account's user_id.
func registerTeacherAPI(g *echo.Group, opts *Options) {
	api := teacherApi{opts: opts}

	g.GET("/teachers", api.query)
	g.POST("/teachers", api.create)
	g.POST("/teachers/bulk-action", api.bulkAction)
	g.DELETE("/teachers/assignments/:id", api.removeAssignment)
	g.GET("/teachers/:id", api.retrieve)
	g.PATCH("/teachers/:id", api.update)
	g.DELETE("/teachers/:id", api.destroy)
	g.POST("/teachers/:id/toggle-active", api.toggleActive)
}

type teacherResponse struct {
	Success string          `json:"success"`
	Teacher teacher.Teacher `json:"teacher"`
}

func (api *teacherApi) query(ctx echo.Context) error {
	q, err := bindListQuery(ctx)
	if err != nil {
		return err
	}
	teachers, err := api.opts.TeacherSvc.List(ctx.Request().Context(), teacher.ListFilter{
		Search:    q.Search,
		SubjectID: q.SubjectID,
		IsActive:  q.IsActive,
	})
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *teacherApi) retrieve(ctx echo.Context) error {
	userID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	tch, err := api.opts.TeacherSvc.Get(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "fetching teacher")
	}
	return ctx.JSON(http.StatusOK, tch)
}

func (api *teacherApi) create(ctx echo.Context) error {
	var data teacher.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	tch, err := api.opts.TeacherSvc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating teacher")
	}
	return ctx.JSON(http.StatusCreated, teacherResponse{Success: "Enseignant créé avec succès.", Teacher: tch})
}

func (api *teacherApi) update(ctx echo.Context) error {
	userID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data teacher.UpdateTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTeacher")
	}
	tch, err := api.opts.TeacherSvc.Update(ctx.Request().Context(), userID, data)
	if err != nil {
		return errors.Wrap(err, "updating teacher")
	}
	return ctx.JSON(http.StatusOK, teacherResponse{Success: "Enseignant mis à jour avec succès.", Teacher: tch})
}

func (api *teacherApi) destroy(ctx echo.Context) error {
	userID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.opts.TeacherSvc.Delete(ctx.Request().Context(), userID); err != nil {
		return errors.Wrap(err, "deleting teacher")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Enseignant supprimé avec succès."})
}

func (api *teacherApi) toggleActive(ctx echo.Context) error {
	userID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	tch, err := api.opts.TeacherSvc.ToggleActive(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "toggling teacher")
	}
	return ctx.JSON(http.StatusOK, teacherResponse{Success: "Statut de l'enseignant mis à jour.", Teacher: tch})
}

// bulkAction takes the whole cross-page selection in one request.
func (api *teacherApi) bulkAction(ctx echo.Context) error {
	var data teacher.BulkAction
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to BulkAction")
	}
	if err := api.opts.TeacherSvc.BulkAction(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "applying bulk action")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Action appliquée avec succès."})
}

func (api *teacherApi) removeAssignment(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.opts.TeacherSvc.RemoveAssignment(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "removing assignment")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Affectation supprimée avec succès."})
}
