package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/courati/console/core/major"
)

type majorApi struct {
	opts *Options
}

func registerMajorAPI(g *echo.Group, opts *Options) {
	api := majorApi{opts: opts}

	g.GET("/majors", api.query)
	g.POST("/majors", api.create)
	g.GET("/majors/:id", api.retrieve)
	g.PATCH("/majors/:id", api.update)
	g.DELETE("/majors/:id", api.destroy)
}

type majorResponse struct {
	Success string      `json:"success"`
	Major   major.Major `json:"major"`
}

func (api *majorApi) query(ctx echo.Context) error {
	q, err := bindListQuery(ctx)
	if err != nil {
		return err
	}
	majors, err := api.opts.MajorSvc.List(ctx.Request().Context(), major.ListFilter{Search: q.Search})
	if err != nil {
		return errors.Wrap(err, "querying majors")
	}
	return ctx.JSON(http.StatusOK, majors)
}

func (api *majorApi) retrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	mjr, err := api.opts.MajorSvc.Get(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "fetching major")
	}
	return ctx.JSON(http.StatusOK, mjr)
}

func (api *majorApi) create(ctx echo.Context) error {
	var data major.NewMajor
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMajor")
	}
	mjr, err := api.opts.MajorSvc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating major")
	}
	return ctx.JSON(http.StatusCreated, majorResponse{Success: "Filière créée avec succès.", Major: mjr})
}

func (api *majorApi) update(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data major.UpdateMajor
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateMajor")
	}
	mjr, err := api.opts.MajorSvc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating major")
	}
	return ctx.JSON(http.StatusOK, majorResponse{Success: "Filière mise à jour avec succès.", Major: mjr})
}

func (api *majorApi) destroy(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.opts.MajorSvc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting major")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Filière supprimée avec succès."})
}
