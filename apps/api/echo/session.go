package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/courati/console/core/auth"
)

type sessionApi struct {
	opts *Options
}

func registerSessionAPI(g *echo.Group, opts *Options) {
	api := sessionApi{opts: opts}

	g.GET("/session", api.retrieve)
	g.POST("/session/login", api.login)
	g.POST("/session/logout", api.logout)
}

type sessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	User          *auth.User `json:"user,omitempty"`
}

// retrieve answers the boot question "who am I": the SPA shows nothing
// until this resolves, then routes to the right dashboard or to login.
func (api *sessionApi) retrieve(ctx echo.Context) error {
	usr, ok := contextUser(ctx)
	if !ok {
		return ctx.JSON(http.StatusOK, sessionResponse{Authenticated: false})
	}
	return ctx.JSON(http.StatusOK, sessionResponse{Authenticated: true, User: &usr})
}

type loginResponse struct {
	Success string    `json:"success"`
	User    auth.User `json:"user"`
	Next    string    `json:"next"`
}

// login exchanges credentials for a session cookie. On upstream rejection
// the extracted message propagates as-is with no cookie touched, so the
// form keeps its submitted values and shows the message.
func (api *sessionApi) login(ctx echo.Context) error {
	var creds auth.Credentials
	if err := ctx.Bind(&creds); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}

	sess, usr, err := api.opts.AuthSvc.Login(ctx.Request().Context(), creds)
	if err != nil {
		return errors.Wrap(err, "logging in")
	}

	setSessionCookie(ctx, api.opts.Conf, sess.ID)
	return ctx.JSON(http.StatusOK, loginResponse{
		Success: "Connexion réussie.",
		User:    usr,
		Next:    usr.DashboardPath(),
	})
}

func (api *sessionApi) logout(ctx echo.Context) error {
	if sess, ok := contextSession(ctx); ok {
		if err := api.opts.AuthSvc.Logout(ctx.Request().Context(), sess); err != nil {
			return errors.Wrap(err, "logging out")
		}
	}
	clearSessionCookie(ctx, api.opts.Conf)
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Déconnexion réussie."})
}
