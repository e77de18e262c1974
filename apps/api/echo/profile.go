package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/courati/console/core/auth"
)

type profileApi struct {
	opts *Options
}

func registerProfileAPI(g *echo.Group, opts *Options) {
	api := profileApi{opts: opts}

	g.GET("", api.retrieve)
	g.PATCH("", api.update)
	g.POST("/change-password", api.changePassword)
	g.GET("/stats", api.stats)
}

func (api *profileApi) retrieve(ctx echo.Context) error {
	prof, err := api.opts.AuthSvc.Profile(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "fetching profile")
	}
	return ctx.JSON(http.StatusOK, prof)
}

type profileResponse struct {
	Success string       `json:"success"`
	Profile auth.Profile `json:"profile"`
}

func (api *profileApi) update(ctx echo.Context) error {
	var data auth.UpdateProfile
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProfile")
	}

	sess, _ := contextSession(ctx)
	usr, _ := contextUser(ctx)
	prof, err := api.opts.AuthSvc.UpdateProfile(ctx.Request().Context(), sess, usr, data)
	if err != nil {
		return errors.Wrap(err, "updating profile")
	}
	return ctx.JSON(http.StatusOK, profileResponse{Success: "Profil mis à jour avec succès.", Profile: prof})
}

func (api *profileApi) changePassword(ctx echo.Context) error {
	var data auth.ChangePassword
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ChangePassword")
	}
	if err := api.opts.AuthSvc.ChangePassword(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "changing password")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Mot de passe modifié avec succès."})
}

func (api *profileApi) stats(ctx echo.Context) error {
	stats, err := api.opts.AuthSvc.Stats(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "fetching profile stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}
