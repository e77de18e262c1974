package echoapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courati/console/core/student"
)

func seedStudents(env *testEnv, n int) []student.Student {
	students := make([]student.Student, 0, n)
	for i := 1; i <= n; i++ {
		students = append(students, student.Student{
			Username: fmt.Sprintf("etu%02d", i),
			Email:    fmt.Sprintf("etu%02d@courati.tn", i),
			Name:     fmt.Sprintf("Étudiant %02d", i),
			IsActive: true,
		})
	}
	return env.students.Seed(students...)
}

func Test_studentAPI_serverPagination(t *testing.T) {
	env := setup(t)
	cookie := env.login("admin", "admin-secret")
	seedStudents(env, 25)

	rec := env.do(http.MethodGet, "/api/admin/students?page=2&page_size=20", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var page student.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Results, 5)
}

func Test_studentAPI_outOfRangePageFallsBackToFirst(t *testing.T) {
	env := setup(t)
	cookie := env.login("admin", "admin-secret")
	seedStudents(env, 5)

	rec := env.do(http.MethodGet, "/api/admin/students?page=4&page_size=20", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var page student.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Results, 5)
}

func Test_studentAPI_export(t *testing.T) {
	env := setup(t)
	cookie := env.login("admin", "admin-secret")
	seedStudents(env, 3)

	rec := env.do(http.MethodGet, "/api/admin/students/export", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="etudiants.csv"`, rec.Header().Get("Content-Disposition"))

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 4) // header + 3 rows
	assert.Equal(t, "id,username,email,name,level,major,phone_number,is_active", lines[0])
}

func Test_studentAPI_mutations(t *testing.T) {
	env := setup(t)
	cookie := env.login("admin", "admin-secret")
	seeded := seedStudents(env, 2)

	t.Run("toggle active", func(t *testing.T) {
		rec := env.do(http.MethodPost, fmt.Sprintf("/api/admin/students/%d/toggle-active", seeded[0].UserID), nil, cookie)
		require.Equal(t, http.StatusOK, rec.Code)
		body := jsonMap(t, rec)
		assert.Equal(t, "Statut de l'étudiant mis à jour.", body["success"])
		assert.Equal(t, false, body["student"].(map[string]interface{})["is_active"])
	})

	t.Run("delete unknown", func(t *testing.T) {
		rec := env.do(http.MethodDelete, "/api/admin/students/9999", nil, cookie)
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Étudiant introuvable (déjà supprimé?)", jsonMap(t, rec)["error"])
	})

	t.Run("bulk delete", func(t *testing.T) {
		rec := env.do(http.MethodPost, "/api/admin/students/bulk-action", student.BulkAction{
			Action: student.BulkDelete,
			IDs:    []int{seeded[0].UserID, seeded[1].UserID},
		}, cookie)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = env.do(http.MethodGet, "/api/admin/students", nil, cookie)
		var page student.Page
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.Zero(t, page.Total)
		assert.Empty(t, page.Results)
	})
}
