package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

func adminDashboard(opts *Options) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		stats, err := opts.DashboardSvc.AdminStats(ctx.Request().Context())
		if err != nil {
			return errors.Wrap(err, "fetching admin dashboard")
		}
		return ctx.JSON(http.StatusOK, stats)
	}
}

func teacherDashboard(opts *Options) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		stats, err := opts.DashboardSvc.TeacherStats(ctx.Request().Context())
		if err != nil {
			return errors.Wrap(err, "fetching teacher dashboard")
		}
		return ctx.JSON(http.StatusOK, stats)
	}
}
