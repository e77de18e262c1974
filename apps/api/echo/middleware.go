package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/courati/console/core"
	"github.com/courati/console/core/auth"
	"github.com/courati/console/core/session"
	"github.com/courati/console/upstream"
)

// context keys
const (
	ctxSessionKey = "session"
	ctxUserKey    = "user"
)

const loginRoute = "/login"

// sessionMiddleware hydrates the caller's session from the cookie, if any.
// Anonymous and broken sessions both pass through unauthenticated: the
// guards downstream decide what that means per route.
func sessionMiddleware(svc *auth.Service, conf *core.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			cookie, err := ctx.Cookie(conf.Server.CookieName)
			if err != nil || cookie.Value == "" {
				return next(ctx)
			}

			req := ctx.Request()
			sess, usr, err := svc.Hydrate(req.Context(), cookie.Value)
			if err != nil {
				if errors.Cause(err) != auth.ErrNotAuthenticated {
					return errors.Wrap(err, "hydrating session")
				}
				clearSessionCookie(ctx, conf)
				return next(ctx)
			}

			ctx.Set(ctxSessionKey, sess)
			ctx.Set(ctxUserKey, usr)
			// tag the request context so the upstream client can attach the
			// bearer token at call time
			ctx.SetRequest(req.WithContext(upstream.WithSession(req.Context(), sess.ID)))
			return next(ctx)
		}
	}
}

// requireRole guards a role-scoped group. Anonymous callers get a 401
// envelope carrying the login route and the path to return to after login;
// the other console role is redirected to its own dashboard; students get
// an access-denied envelope whose only way out is logout (no redirect,
// their dashboard is not served here).
func requireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, ok := contextUser(ctx)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, GuardResponse{
					Error: "Authentification requise.",
					Login: loginRoute,
					Next:  ctx.Request().URL.Path,
				})
			}
			if usr.Role == role {
				return next(ctx)
			}
			if usr.Role == auth.RoleStudent {
				return ctx.JSON(http.StatusForbidden, GuardResponse{
					Error:  "Accès refusé: cet espace est réservé au personnel.",
					Action: "logout",
				})
			}
			return ctx.Redirect(http.StatusSeeOther, usr.DashboardPath())
		}
	}
}

// requireAuthenticated admits any hydrated console user (admin or teacher).
func requireAuthenticated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, ok := contextUser(ctx)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, GuardResponse{
					Error: "Authentification requise.",
					Login: loginRoute,
					Next:  ctx.Request().URL.Path,
				})
			}
			if usr.Role == auth.RoleStudent {
				return ctx.JSON(http.StatusForbidden, GuardResponse{
					Error:  "Accès refusé: cet espace est réservé au personnel.",
					Action: "logout",
				})
			}
			return next(ctx)
		}
	}
}

func contextUser(ctx echo.Context) (auth.User, bool) {
	usr, ok := ctx.Get(ctxUserKey).(auth.User)
	return usr, ok
}

func contextSession(ctx echo.Context) (session.Session, bool) {
	sess, ok := ctx.Get(ctxSessionKey).(session.Session)
	return sess, ok
}

func setSessionCookie(ctx echo.Context, conf *core.Config, sessionID string) {
	ctx.SetCookie(&http.Cookie{
		Name:     conf.Server.CookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(conf.Server.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   !conf.IsDev(),
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(ctx echo.Context, conf *core.Config) {
	ctx.SetCookie(&http.Cookie{
		Name:     conf.Server.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   !conf.IsDev(),
		SameSite: http.SameSiteLaxMode,
	})
}
