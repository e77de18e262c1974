package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courati/console/core/auth"
)

func Test_session_login(t *testing.T) {
	t.Run("valid credentials open a session", func(t *testing.T) {
		env := setup(t)
		rec := env.do(http.MethodPost, "/api/session/login", auth.Credentials{Username: "admin", Password: "admin-secret"}, nil)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := jsonMap(t, rec)
		assert.Equal(t, "Connexion réussie.", body["success"])
		assert.Equal(t, "/admin", body["next"])
		assert.Equal(t, "admin", body["user"].(map[string]interface{})["username"])

		cookie := findCookie(rec, testCookieName)
		require.NotNil(t, cookie)
		assert.True(t, cookie.HttpOnly)
		assert.NotEmpty(t, cookie.Value)
	})

	t.Run("teacher lands on the teacher console", func(t *testing.T) {
		env := setup(t)
		rec := env.do(http.MethodPost, "/api/session/login", auth.Credentials{Username: "prof", Password: "prof-secret"}, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/teacher", jsonMap(t, rec)["next"])
	})

	t.Run("wrong password passes the upstream message through", func(t *testing.T) {
		env := setup(t)
		rec := env.do(http.MethodPost, "/api/session/login", auth.Credentials{Username: "admin", Password: "nope"}, nil)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Nom d'utilisateur ou mot de passe incorrect.", jsonMap(t, rec)["error"])
		assert.Nil(t, findCookie(rec, testCookieName), "a failed login must not touch the cookie")
	})

	t.Run("missing fields rejected before the upstream", func(t *testing.T) {
		env := setup(t)
		rec := env.do(http.MethodPost, "/api/session/login", auth.Credentials{}, nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := jsonMap(t, rec)
		assert.Contains(t, body, "username")
		assert.Contains(t, body, "password")
	})
}

func Test_session_retrieve(t *testing.T) {
	env := setup(t)

	t.Run("anonymous", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/session", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := jsonMap(t, rec)
		assert.Equal(t, false, body["authenticated"])
		assert.NotContains(t, body, "user")
	})

	t.Run("authenticated", func(t *testing.T) {
		cookie := env.login("admin", "admin-secret")
		rec := env.do(http.MethodGet, "/api/session", nil, cookie)
		require.Equal(t, http.StatusOK, rec.Code)
		body := jsonMap(t, rec)
		assert.Equal(t, true, body["authenticated"])
		assert.Equal(t, "admin", body["user"].(map[string]interface{})["username"])
	})

	t.Run("stale cookie is just anonymous", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/session", nil, &http.Cookie{Name: testCookieName, Value: "gone"})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, jsonMap(t, rec)["authenticated"])
	})
}

func Test_session_logout(t *testing.T) {
	env := setup(t)
	cookie := env.login("admin", "admin-secret")

	rec := env.do(http.MethodPost, "/api/session/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Déconnexion réussie.", jsonMap(t, rec)["success"])

	cleared := findCookie(rec, testCookieName)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.MaxAge < 0)

	// the old cookie no longer authenticates anything
	rec = env.do(http.MethodGet, "/api/session", nil, cookie)
	assert.Equal(t, false, jsonMap(t, rec)["authenticated"])
}
