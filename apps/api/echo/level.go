package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/courati/console/core/level"
)

type levelApi struct {
	opts *Options
}

func registerLevelAPI(g *echo.Group, opts *Options) {
	api := levelApi{opts: opts}

	g.GET("/levels", api.query)
	g.POST("/levels", api.create)
	g.GET("/levels/:id", api.retrieve)
	g.PATCH("/levels/:id", api.update)
	g.DELETE("/levels/:id", api.destroy)
}

type levelResponse struct {
	Success string      `json:"success"`
	Level   level.Level `json:"level"`
}

func (api *levelApi) query(ctx echo.Context) error {
	q, err := bindListQuery(ctx)
	if err != nil {
		return err
	}
	levels, err := api.opts.LevelSvc.List(ctx.Request().Context(), level.ListFilter{Search: q.Search})
	if err != nil {
		return errors.Wrap(err, "querying levels")
	}
	return ctx.JSON(http.StatusOK, levels)
}

func (api *levelApi) retrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	lvl, err := api.opts.LevelSvc.Get(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "fetching level")
	}
	return ctx.JSON(http.StatusOK, lvl)
}

func (api *levelApi) create(ctx echo.Context) error {
	var data level.NewLevel
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLevel")
	}
	lvl, err := api.opts.LevelSvc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating level")
	}
	return ctx.JSON(http.StatusCreated, levelResponse{Success: "Niveau créé avec succès.", Level: lvl})
}

func (api *levelApi) update(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data level.UpdateLevel
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateLevel")
	}
	lvl, err := api.opts.LevelSvc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating level")
	}
	return ctx.JSON(http.StatusOK, levelResponse{Success: "Niveau mis à jour avec succès.", Level: lvl})
}

func (api *levelApi) destroy(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.opts.LevelSvc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting level")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Niveau supprimé avec succès."})
}
