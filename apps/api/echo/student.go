package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/courati/console/core/student"
)

type studentApi struct {
	opts *Options
}

// Student admin routes are keyed on the account's user_id, like teachers.
func registerStudentAPI(g *echo.Group, opts *Options) {
	api := studentApi{opts: opts}

	g.GET("/students", api.query)
	g.POST("/students", api.create)
	g.POST("/students/bulk-action", api.bulkAction)
	g.GET("/students/export", api.export)
	g.GET("/students/:id", api.retrieve)
	g.PATCH("/students/:id", api.update)
	g.DELETE("/students/:id", api.destroy)
	g.POST("/students/:id/toggle-active", api.toggleActive)
}

type studentResponse struct {
	Success string          `json:"success"`
	Student student.Student `json:"student"`
}

func (api *studentApi) filter(q ListQuery) student.ListFilter {
	return student.ListFilter{
		Search:   q.Search,
		LevelID:  q.LevelID,
		MajorID:  q.MajorID,
		IsActive: q.IsActive,
		Page:     q.Page,
		PageSize: q.PageSize,
	}
}

func (api *studentApi) query(ctx echo.Context) error {
	q, err := bindListQuery(ctx)
	if err != nil {
		return err
	}
	page, err := api.opts.StudentSvc.List(ctx.Request().Context(), api.filter(q))
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, page)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	userID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	std, err := api.opts.StudentSvc.Get(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "fetching student")
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	std, err := api.opts.StudentSvc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, studentResponse{Success: "Étudiant créé avec succès.", Student: std})
}

func (api *studentApi) update(ctx echo.Context) error {
	userID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	std, err := api.opts.StudentSvc.Update(ctx.Request().Context(), userID, data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, studentResponse{Success: "Étudiant mis à jour avec succès.", Student: std})
}

func (api *studentApi) destroy(ctx echo.Context) error {
	userID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.opts.StudentSvc.Delete(ctx.Request().Context(), userID); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Étudiant supprimé avec succès."})
}

func (api *studentApi) toggleActive(ctx echo.Context) error {
	userID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	std, err := api.opts.StudentSvc.ToggleActive(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "toggling student")
	}
	return ctx.JSON(http.StatusOK, studentResponse{Success: "Statut de l'étudiant mis à jour.", Student: std})
}

// bulkAction takes the whole cross-page selection in one request.
func (api *studentApi) bulkAction(ctx echo.Context) error {
	var data student.BulkAction
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to BulkAction")
	}
	if err := api.opts.StudentSvc.BulkAction(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "applying bulk action")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Action appliquée avec succès."})
}

// export streams the CSV for the current filters as a file download.
func (api *studentApi) export(ctx echo.Context) error {
	q, err := bindListQuery(ctx)
	if err != nil {
		return err
	}
	dl, err := api.opts.StudentSvc.Export(ctx.Request().Context(), api.filter(q))
	if err != nil {
		return errors.Wrap(err, "exporting students")
	}
	filename := dl.Filename
	if filename == "" {
		filename = "etudiants.csv"
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return ctx.Blob(http.StatusOK, dl.ContentType, dl.Data)
}
