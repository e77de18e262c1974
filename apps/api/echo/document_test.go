package echoapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courati/console/core/document"
)

func (env *testEnv) doMultipart(path string, fields map[string]string, fileName string, cookie *http.Cookie) *httptest.ResponseRecorder {
	env.t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, val := range fields {
		require.NoError(env.t, mw.WriteField(key, val))
	}
	if fileName != "" {
		part, err := mw.CreateFormFile("file", fileName)
		require.NoError(env.t, err)
		_, err = part.Write([]byte("%PDF-1.4 contenu factice"))
		require.NoError(env.t, err)
	}
	require.NoError(env.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	return rec
}

func Test_documentAPI_upload(t *testing.T) {
	fields := map[string]string{
		"title":         "Cours chapitre 1",
		"description":   "Introduction",
		"document_type": document.TypeCours,
		"is_premium":    "true",
	}

	t.Run("success", func(t *testing.T) {
		env := setup(t)
		cookie := env.login("prof", "prof-secret")
		env.documents.SetOwn(1)

		rec := env.doMultipart("/api/teacher/subjects/1/documents", fields, "cours-ch1.pdf", cookie)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		body := jsonMap(t, rec)
		assert.Equal(t, "Document importé avec succès.", body["success"])

		var created struct {
			Document document.Document `json:"document"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, "/media/documents/cours-ch1.pdf", created.Document.FileURL)
		assert.True(t, created.Document.IsPremium)
		assert.True(t, created.Document.IsActive)
	})

	t.Run("missing file", func(t *testing.T) {
		env := setup(t)
		cookie := env.login("prof", "prof-secret")
		env.documents.SetOwn(1)

		rec := env.doMultipart("/api/teacher/subjects/1/documents", fields, "", cookie)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "un fichier est requis", jsonMap(t, rec)["file"])
	})

	t.Run("missing metadata", func(t *testing.T) {
		env := setup(t)
		cookie := env.login("prof", "prof-secret")
		env.documents.SetOwn(1)

		rec := env.doMultipart("/api/teacher/subjects/1/documents", nil, "cours.pdf", cookie)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := jsonMap(t, rec)
		assert.Contains(t, body, "title")
		assert.Contains(t, body, "document_type")
	})

	t.Run("subject outside the caller's assignments", func(t *testing.T) {
		env := setup(t)
		cookie := env.login("prof", "prof-secret")
		env.documents.SetOwn(1)

		rec := env.doMultipart("/api/teacher/subjects/7/documents", fields, "cours.pdf", cookie)
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Matière introuvable.", jsonMap(t, rec)["error"])
	})
}

func Test_documentAPI_teacherScope(t *testing.T) {
	env := setup(t)
	cookie := env.login("prof", "prof-secret")

	seeded := env.documents.Seed(
		document.Document{Title: "Mon cours", DocumentType: document.TypeCours, IsActive: true, Subject: document.SubjectRef{ID: 1}},
		document.Document{Title: "Cours d'un collègue", DocumentType: document.TypeCours, IsActive: true, Subject: document.SubjectRef{ID: 2}},
	)
	env.documents.SetOwn(1)

	rec := env.do(http.MethodGet, "/api/teacher/documents", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var page document.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Mon cours", page.Results[0].Title)

	// deleting a colleague's document is a 404, not a hint that it exists
	rec = env.do(http.MethodDelete, fmt.Sprintf("/api/teacher/documents/%d", seeded[1].ID), nil, cookie)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Document introuvable.", jsonMap(t, rec)["error"])

	rec = env.do(http.MethodDelete, fmt.Sprintf("/api/teacher/documents/%d", seeded[0].ID), nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Document supprimé avec succès.", jsonMap(t, rec)["success"])
}

func Test_documentAPI_adminMutations(t *testing.T) {
	env := setup(t)
	cookie := env.login("admin", "admin-secret")
	seeded := env.documents.Seed(
		document.Document{Title: "TD série 1", DocumentType: document.TypeTD, IsActive: true, Subject: document.SubjectRef{ID: 1}},
	)

	rec := env.do(http.MethodPost, fmt.Sprintf("/api/admin/documents/%d/toggle-active", seeded[0].ID), nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	body := jsonMap(t, rec)
	assert.Equal(t, "Statut du document mis à jour.", body["success"])
	assert.Equal(t, false, body["document"].(map[string]interface{})["is_active"])

	rec = env.do(http.MethodPatch, fmt.Sprintf("/api/admin/documents/%d", seeded[0].ID), document.UpdateDocument{Title: "TD série 1 (corrigé)"}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Document mis à jour avec succès.", jsonMap(t, rec)["success"])
}
