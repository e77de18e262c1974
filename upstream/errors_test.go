package upstream

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_newAPIError_messageExtraction(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantMessage    string
		wantSuggestion string
		wantFields     map[string]string
	}{
		{name: "message key", body: `{"message": "Niveau supprimé."}`, wantMessage: "Niveau supprimé."},
		{name: "error key", body: `{"error": "Accès refusé."}`, wantMessage: "Accès refusé."},
		{name: "detail key", body: `{"detail": "Pas trouvé."}`, wantMessage: "Pas trouvé."},
		{name: "message wins over detail", body: `{"detail": "ignoré", "message": "gagné"}`, wantMessage: "gagné"},
		{
			name:        "field errors",
			body:        `{"email": ["adresse invalide"], "username": "déjà pris"}`,
			wantMessage: "adresse invalide",
			wantFields:  map[string]string{"email": "adresse invalide", "username": "déjà pris"},
		},
		{name: "bare string", body: `"tout a cassé"`, wantMessage: "tout a cassé"},
		{name: "unknown shape falls back to generic", body: `{"weird": 42}`, wantMessage: genericMessage},
		{name: "non-JSON falls back to generic", body: `<html>boom</html>`, wantMessage: genericMessage},
		{
			name:           "suggestion rides along",
			body:           `{"message": "Suppression impossible.", "suggestion": "Désactivez plutôt le quiz."}`,
			wantMessage:    "Suppression impossible.",
			wantSuggestion: "Désactivez plutôt le quiz.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := newAPIError(http.StatusBadRequest, []byte(tt.body))
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.wantSuggestion, apiErr.Suggestion)
			if tt.wantFields != nil {
				assert.Equal(t, tt.wantFields, apiErr.Fields)
			}
		})
	}

	t.Run("fields message picks the first field deterministically", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			apiErr := newAPIError(http.StatusBadRequest, []byte(`{"b": ["y"], "a": ["x"]}`))
			assert.Equal(t, "x", apiErr.Message)
		}
	})
}

func Test_StatusCode(t *testing.T) {
	apiErr := newAPIError(http.StatusNotFound, []byte(`{"detail": "introuvable"}`))
	assert.Equal(t, http.StatusNotFound, StatusCode(apiErr))
	assert.Equal(t, http.StatusNotFound, StatusCode(errors.Wrap(apiErr, "fetching teacher")))
	assert.Equal(t, 0, StatusCode(errors.New("nope")))

	assert.True(t, IsNotFound(apiErr))
	assert.False(t, IsNotFound(newAPIError(http.StatusBadRequest, nil)))
	assert.False(t, IsNotFound(nil))
}
