package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/courati/console/core"
	"github.com/courati/console/core/session"
)

const refreshPath = "/api/auth/token/refresh/"

// expiryLeeway triggers a proactive refresh shortly before the access token
// actually expires, sparing the upstream a doomed call.
const expiryLeeway = 30 * time.Second

type contextKey int

const sessionIDKey contextKey = 1

// WithSession tags ctx with the browser session every outgoing call should
// authenticate as. Tokens are read from the store at call time, never cached.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

func sessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok && id != ""
}

// Client talks to the Courati core API on behalf of browser sessions.
// Its single cross-cutting protocol: on a 401, attempt one refresh-token
// exchange and replay the original request once; any further 401 (or a
// failed refresh) clears the session and yields ErrSessionExpired.
// Network errors and non-401 HTTP errors pass through to callers as-is.
type Client struct {
	base     *url.URL
	http     *http.Client
	sessions session.Store
	log      core.Logger
}

func NewClient(conf *core.Config, sessions session.Store, log core.Logger) (*Client, error) {
	base, err := url.Parse(conf.Upstream.BaseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing upstream base URL %q", conf.Upstream.BaseURL)
	}
	return &Client{
		base:     base,
		http:     &http.Client{Timeout: conf.Upstream.RequestTimeout},
		sessions: sessions,
		log:      log,
	}, nil
}

// Download is a binary payload streamed through the console (CSV exports).
type Download struct {
	ContentType string
	Filename    string
	Data        []byte
}

func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, true)
}

func (c *Client) Post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.doJSON(ctx, http.MethodPost, path, nil, body, true)
}

// PostAnon posts without a bearer token (login).
func (c *Client) PostAnon(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.doJSON(ctx, http.MethodPost, path, nil, body, false)
}

func (c *Client) Put(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.doJSON(ctx, http.MethodPut, path, nil, body, true)
}

func (c *Client) Patch(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.doJSON(ctx, http.MethodPatch, path, nil, body, true)
}

func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, true)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body interface{}, authed bool) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, errors.Wrap(err, "marshalling request body")
		}
	}
	resp, data, err := c.do(ctx, method, path, query, "application/json", payload, authed, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return data, nil
}

// Export fetches a binary blob (CSV), keeping content type and filename.
func (c *Client) Export(ctx context.Context, path string, query url.Values) (*Download, error) {
	resp, data, err := c.do(ctx, http.MethodGet, path, query, "", nil, true, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	dl := &Download{ContentType: resp.Header.Get("Content-Type"), Data: data}
	if dl.ContentType == "" {
		dl.ContentType = "text/csv"
	}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		dl.Filename = params["filename"]
	}
	return dl, nil
}

// File is one multipart file part of an upload.
type File struct {
	Field    string
	Name     string
	Size     int64
	Reader   io.Reader
	Progress func(float64)
}

// Upload posts a multipart form (document upload). The whole form is
// buffered once so the 401 replay can resend the identical body; progress
// is reported per attempt.
func (c *Client) Upload(ctx context.Context, path string, fields map[string]string, file File) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, val := range fields {
		if err := mw.WriteField(key, val); err != nil {
			return nil, errors.Wrapf(err, "writing form field %q", key)
		}
	}
	part, err := mw.CreateFormFile(file.Field, file.Name)
	if err != nil {
		return nil, errors.Wrap(err, "creating form file")
	}
	if _, err := io.Copy(part, file.Reader); err != nil {
		return nil, errors.Wrap(err, "buffering upload")
	}
	if err := mw.Close(); err != nil {
		return nil, errors.Wrap(err, "finalizing multipart form")
	}

	resp, data, err := c.do(ctx, http.MethodPost, path, nil, mw.FormDataContentType(), buf.Bytes(), true, file.Progress)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return data, nil
}

// do performs one request with the session protocol of §"HTTP client".
// The retried flag guarantees at most one replay per original request.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, contentType string, body []byte, authed bool, progress func(float64)) (*http.Response, []byte, error) {
	u := c.resolve(path, query)

	var sess session.Session
	if authed {
		id, ok := sessionID(ctx)
		if !ok {
			return nil, nil, ErrSessionExpired
		}
		var err error
		if sess, err = c.sessions.Get(ctx, id); err != nil {
			return nil, nil, ErrSessionExpired
		}
		if tokenExpired(sess.AccessToken) {
			if err := c.refresh(ctx, &sess); err != nil {
				return nil, nil, c.expire(ctx, sess.ID, err)
			}
		}
	}

	retried := false
	for {
		req, err := c.newRequest(ctx, method, u, contentType, body, progress)
		if err != nil {
			return nil, nil, err
		}
		if authed {
			req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "%s %s", method, u.Path)
		}
		data, err := ioutil.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, nil, errors.Wrap(err, "reading upstream response")
		}

		if resp.StatusCode == http.StatusUnauthorized && authed {
			if retried {
				return nil, nil, c.expire(ctx, sess.ID, errors.New("401 after refresh"))
			}
			if err := c.refresh(ctx, &sess); err != nil {
				return nil, nil, c.expire(ctx, sess.ID, err)
			}
			retried = true
			continue
		}
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, nil, newAPIError(resp.StatusCode, data)
		}
		resp.Body = ioutil.NopCloser(bytes.NewReader(data))
		return resp, data, nil
	}
}

func (c *Client) newRequest(ctx context.Context, method string, u *url.URL, contentType string, body []byte, progress func(float64)) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
		if progress != nil {
			reader = newProgressReader(reader, int64(len(body)), progress)
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, errors.Wrapf(err, "building %s %s", method, u.Path)
	}
	if contentType != "" && body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.ContentLength = int64(len(body))
	}
	return req, nil
}

// refresh exchanges the stored refresh token for a new access token and
// persists it. Called under the original request's session only.
func (c *Client) refresh(ctx context.Context, sess *session.Session) error {
	payload, err := json.Marshal(map[string]string{"refresh": sess.RefreshToken})
	if err != nil {
		return errors.Wrap(err, "marshalling refresh payload")
	}
	req, err := c.newRequest(ctx, http.MethodPost, c.resolve(refreshPath, nil), "application/json", payload, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	defer resp.Body.Close()
	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "reading refresh response")
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return newAPIError(resp.StatusCode, data)
	}

	var out struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(data, &out); err != nil || out.Access == "" {
		return errors.New("refresh response missing access token")
	}
	if err := c.sessions.SaveAccessToken(ctx, sess.ID, out.Access); err != nil {
		return errors.Wrap(err, "persisting refreshed access token")
	}
	sess.AccessToken = out.Access
	return nil
}

// expire clears all session data and reports ErrSessionExpired; the API
// layer redirects to login exactly once.
func (c *Client) expire(ctx context.Context, id string, cause error) error {
	c.log.Debug("session expired", cause)
	if err := c.sessions.Delete(ctx, id); err != nil {
		c.log.Warn("clearing expired session", err)
	}
	return ErrSessionExpired
}

func (c *Client) resolve(path string, query url.Values) *url.URL {
	ref := &url.URL{Path: strings.TrimLeft(path, "/")}
	u := c.base.ResolveReference(ref)
	u.Path = strings.TrimRight(c.base.Path, "/") + "/" + ref.Path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u
}

// tokenExpired peeks at the access token's exp claim without verifying the
// signature (the upstream is the verifier; we only avoid doomed calls).
func tokenExpired(access string) bool {
	claims := new(jwt.StandardClaims)
	if _, _, err := new(jwt.Parser).ParseUnverified(access, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == 0 {
		return false
	}
	return time.Now().Add(expiryLeeway).Unix() >= claims.ExpiresAt
}
