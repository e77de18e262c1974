package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_routeGuards(t *testing.T) {
	env := setup(t)
	adminCookie := env.login("admin", "admin-secret")
	teacherCookie := env.login("prof", "prof-secret")
	studentCookie := env.login("etudiant", "etudiant-secret")

	t.Run("anonymous caller is sent to login with a way back", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/admin/levels", nil, nil)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		body := jsonMap(t, rec)
		assert.Equal(t, "Authentification requise.", body["error"])
		assert.Equal(t, "/login", body["login"])
		assert.Equal(t, "/api/admin/levels", body["next"])
	})

	t.Run("teacher on an admin route is redirected home", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/admin/levels", nil, teacherCookie)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/teacher", rec.Header().Get("Location"))
	})

	t.Run("admin on a teacher route is redirected home", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/teacher/dashboard", nil, adminCookie)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/admin", rec.Header().Get("Location"))
	})

	t.Run("student gets a dead end, not a redirect", func(t *testing.T) {
		for _, path := range []string{"/api/admin/levels", "/api/teacher/dashboard", "/api/profile"} {
			rec := env.do(http.MethodGet, path, nil, studentCookie)

			require.Equal(t, http.StatusForbidden, rec.Code, path)
			body := jsonMap(t, rec)
			assert.Equal(t, "Accès refusé: cet espace est réservé au personnel.", body["error"])
			assert.Equal(t, "logout", body["action"])
			assert.NotContains(t, body, "login")
		}
	})

	t.Run("matching role passes", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/admin/levels", nil, adminCookie)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = env.do(http.MethodGet, "/api/teacher/subjects", nil, teacherCookie)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
