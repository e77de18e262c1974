package upstream

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courati/console/core"
	"github.com/courati/console/core/session"
	inmemstore "github.com/courati/console/storage/inmem"
)

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func newTestClient(t *testing.T, baseURL string) (*Client, *inmemstore.SessionStore, context.Context) {
	t.Helper()
	conf := new(core.Config)
	conf.Upstream.BaseURL = baseURL
	conf.Upstream.RequestTimeout = 5 * time.Second

	sessions := inmemstore.NewSessionStore()
	client, err := NewClient(conf, sessions, nopLogger{})
	require.NoError(t, err)

	sess := session.Session{ID: "sess-1", AccessToken: "access-1", RefreshToken: "refresh-1"}
	require.NoError(t, sessions.Create(context.Background(), sess))
	return client, sessions, WithSession(context.Background(), sess.ID)
}

// signedToken builds a real JWT so tokenExpired can read its exp claim;
// the signature never gets verified.
func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.StandardClaims{ExpiresAt: exp.Unix()}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func Test_Client_bearerReadFromStoreAtCallTime(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, sessions, ctx := newTestClient(t, srv.URL)

	_, err := client.Get(ctx, "/api/things/", nil)
	require.NoError(t, err)

	// another handler refreshed the token behind our back
	require.NoError(t, sessions.SaveAccessToken(ctx, "sess-1", "access-2"))
	_, err = client.Get(ctx, "/api/things/", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer access-1", "Bearer access-2"}, seen)
}

func Test_Client_noSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called without a session")
	}))
	defer srv.Close()

	client, _, _ := newTestClient(t, srv.URL)

	t.Run("untagged context", func(t *testing.T) {
		_, err := client.Get(context.Background(), "/api/things/", nil)
		assert.Equal(t, ErrSessionExpired, err)
	})

	t.Run("unknown session id", func(t *testing.T) {
		_, err := client.Get(WithSession(context.Background(), "gone"), "/api/things/", nil)
		assert.Equal(t, ErrSessionExpired, err)
	})
}

func Test_Client_refreshAndReplayOn401(t *testing.T) {
	var refreshCalls int
	mux := http.NewServeMux()
	mux.HandleFunc(refreshPath, func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		var body map[string]string
		data, _ := ioutil.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &body))
		assert.Equal(t, "refresh-1", body["refresh"])
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{"access": "access-2"})
	})
	mux.HandleFunc("/api/things/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"ok": true}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, sessions, ctx := newTestClient(t, srv.URL)

	data, err := client.Get(ctx, "/api/things/", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(data))
	assert.Equal(t, 1, refreshCalls)

	// the new access token survives the request
	sess, err := sessions.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "access-2", sess.AccessToken)
}

func Test_Client_secondUnauthorizedExpiresSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(refreshPath, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"access": "access-2"})
	})
	mux.HandleFunc("/api/things/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, sessions, ctx := newTestClient(t, srv.URL)

	_, err := client.Get(ctx, "/api/things/", nil)
	assert.Equal(t, ErrSessionExpired, err)

	_, err = sessions.Get(ctx, "sess-1")
	assert.Equal(t, session.ErrNotFound, err)
}

func Test_Client_failedRefreshExpiresSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(refreshPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Token is invalid or expired"}`))
	})
	mux.HandleFunc("/api/things/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, sessions, ctx := newTestClient(t, srv.URL)

	_, err := client.Get(ctx, "/api/things/", nil)
	assert.Equal(t, ErrSessionExpired, err)

	_, err = sessions.Get(ctx, "sess-1")
	assert.Equal(t, session.ErrNotFound, err)
}

func Test_Client_proactiveRefreshBeforeExpiry(t *testing.T) {
	var refreshCalls int
	mux := http.NewServeMux()
	mux.HandleFunc(refreshPath, func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		json.NewEncoder(w).Encode(map[string]string{"access": "access-2"})
	})
	mux.HandleFunc("/api/things/", func(w http.ResponseWriter, r *http.Request) {
		// the stale bearer never reaches the upstream
		assert.Equal(t, "Bearer access-2", r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, sessions, ctx := newTestClient(t, srv.URL)
	stale := signedToken(t, time.Now().Add(10*time.Second)) // within the leeway
	require.NoError(t, sessions.SaveAccessToken(ctx, "sess-1", stale))

	_, err := client.Get(ctx, "/api/things/", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshCalls)
}

func Test_Client_httpErrorsPassThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Quiz introuvable."}`))
	}))
	defer srv.Close()

	client, sessions, ctx := newTestClient(t, srv.URL)

	_, err := client.Get(ctx, "/api/things/42/", nil)
	apiErr, ok := err.(*APIError)
	require.True(t, ok, "expected *APIError, got %T", err)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Quiz introuvable.", apiErr.Message)

	// a plain HTTP error never kills the session
	_, err = sessions.Get(ctx, "sess-1")
	assert.NoError(t, err)
}

func Test_tokenExpired(t *testing.T) {
	assert.False(t, tokenExpired("opaque-token"))
	assert.False(t, tokenExpired(signedToken(t, time.Now().Add(time.Hour))))
	assert.True(t, tokenExpired(signedToken(t, time.Now().Add(-time.Minute))))
	assert.True(t, tokenExpired(signedToken(t, time.Now().Add(5*time.Second))))
}
