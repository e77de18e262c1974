package upstream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/pkg/errors"
)

// ErrSessionExpired is returned once a 401 could not be recovered by the
// refresh-token exchange. The session is already cleared when it surfaces;
// the API layer turns it into a single login redirect (never a loop).
var ErrSessionExpired = errors.New("session expired")

// genericMessage is the last resort when no known envelope shape matches.
const genericMessage = "Une erreur est survenue. Veuillez réessayer."

// APIError is a non-2xx upstream response. Message is extracted from one of
// the backend's several error envelope shapes; Suggestion carries the
// server-provided hint on business-rule conflicts (e.g. deleting a quiz
// with existing attempts); Fields holds per-field validation errors where
// the backend returns them.
type APIError struct {
	StatusCode int
	Message    string
	Suggestion string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream: %d: %s", e.StatusCode, e.Message)
}

// newAPIError extracts a human-readable message from the response body,
// trying each known envelope shape in order: {message}, {error}, {detail},
// {field: [errors]}, a bare JSON string, then a generic fallback.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Message: genericMessage}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		var bare string
		if json.Unmarshal(body, &bare) == nil && bare != "" {
			apiErr.Message = bare
		}
		return apiErr
	}

	if s, ok := stringField(envelope, "suggestion"); ok {
		apiErr.Suggestion = s
	}
	for _, key := range []string{"message", "error", "detail"} {
		if s, ok := stringField(envelope, key); ok {
			apiErr.Message = s
			return apiErr
		}
	}

	// per-field validation errors: {field: ["msg", ...]} or {field: "msg"}
	fields := make(map[string]string)
	for key, raw := range envelope {
		if key == "suggestion" {
			continue
		}
		var msgs []string
		if json.Unmarshal(raw, &msgs) == nil && len(msgs) > 0 {
			fields[key] = msgs[0]
			continue
		}
		var msg string
		if json.Unmarshal(raw, &msg) == nil && msg != "" {
			fields[key] = msg
		}
	}
	if len(fields) > 0 {
		apiErr.Fields = fields
		// first field in key order, so the fallback message is stable
		keys := make([]string, 0, len(fields))
		for key := range fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		apiErr.Message = fields[keys[0]]
	}
	return apiErr
}

func stringField(envelope map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := envelope[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}

// StatusCode reports the upstream status behind err, or 0 if err is not an APIError.
func StatusCode(err error) int {
	if apiErr, ok := errors.Cause(err).(*APIError); ok {
		return apiErr.StatusCode
	}
	return 0
}

func IsNotFound(err error) bool { return StatusCode(err) == http.StatusNotFound }
