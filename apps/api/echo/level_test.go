package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courati/console/core/level"
)

func Test_levelAPI_roundTrip(t *testing.T) {
	env := setup(t)
	cookie := env.login("admin", "admin-secret")

	// create
	rec := env.do(http.MethodPost, "/api/admin/levels", level.NewLevel{Code: "L1", Name: "Licence 1", Order: 1}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := jsonMap(t, rec)
	assert.Equal(t, "Niveau créé avec succès.", body["success"])

	var created struct {
		Level level.Level `json:"level"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.Level.ID)

	// retrieve
	rec = env.do(http.MethodGet, "/api/admin/levels/1", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var got level.Level
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created.Level, got)

	// update
	rec = env.do(http.MethodPatch, "/api/admin/levels/1", level.UpdateLevel{Name: "Licence 1 - Tronc commun"}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Niveau mis à jour avec succès.", jsonMap(t, rec)["success"])

	// list reflects the update (the write invalidated the cached list)
	rec = env.do(http.MethodGet, "/api/admin/levels", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var levels []level.Level
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &levels))
	require.Len(t, levels, 1)
	assert.Equal(t, "Licence 1 - Tronc commun", levels[0].Name)

	// delete
	rec = env.do(http.MethodDelete, "/api/admin/levels/1", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Niveau supprimé avec succès.", jsonMap(t, rec)["success"])

	rec = env.do(http.MethodGet, "/api/admin/levels/1", nil, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Niveau introuvable.", jsonMap(t, rec)["error"])
}

func Test_levelAPI_validation(t *testing.T) {
	env := setup(t)
	cookie := env.login("admin", "admin-secret")

	rec := env.do(http.MethodPost, "/api/admin/levels", level.NewLevel{Code: "L 1!"}, cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := jsonMap(t, rec)
	assert.Contains(t, body, "code")
	assert.Contains(t, body, "name")
}

func Test_levelAPI_garbageIDIs404(t *testing.T) {
	env := setup(t)
	cookie := env.login("admin", "admin-secret")

	rec := env.do(http.MethodGet, "/api/admin/levels/abc", nil, cookie)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Ressource introuvable.", jsonMap(t, rec)["error"])
}
