package echoapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courati/console/core/teacher"
)

func Test_teacherAPI_keyedOnUserID(t *testing.T) {
	env := setup(t)
	cookie := env.login("admin", "admin-secret")
	seeded := env.teachers.Seed(teacher.Teacher{
		Username: "ahmed", Email: "ahmed@courati.tn", Name: "Ahmed Bouazizi",
		IsActive: true, Specialization: "Mathématiques",
	})
	tch := seeded[0]
	require.NotEqual(t, tch.ID, tch.UserID)

	// the detail route takes the account's user_id
	rec := env.do(http.MethodGet, fmt.Sprintf("/api/admin/teachers/%d", tch.UserID), nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var got teacher.Teacher
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ahmed", got.Username)

	// the profile id is not a route key
	rec = env.do(http.MethodGet, fmt.Sprintf("/api/admin/teachers/%d", tch.ID), nil, cookie)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Enseignant introuvable (déjà supprimé?)", jsonMap(t, rec)["error"])
}

func Test_teacherAPI_create_prefixesPhone(t *testing.T) {
	env := setup(t)
	cookie := env.login("admin", "admin-secret")

	rec := env.do(http.MethodPost, "/api/admin/teachers", teacher.NewTeacher{
		Username: "salma", Email: "salma@courati.tn", Name: "Salma Jaziri",
		Password: "motdepasse", Specialization: "Physique", PhoneNumber: "22123456",
	}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := jsonMap(t, rec)
	assert.Equal(t, "Enseignant créé avec succès.", body["success"])

	var created struct {
		Teacher teacher.Teacher `json:"teacher"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "+21622123456", created.Teacher.PhoneNumber)
}

func Test_teacherAPI_mutatingGoneTeacher(t *testing.T) {
	env := setup(t)
	cookie := env.login("admin", "admin-secret")

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
	}{
		{name: "update", method: http.MethodPatch, path: "/api/admin/teachers/9999", body: teacher.UpdateTeacher{Name: "X"}},
		{name: "delete", method: http.MethodDelete, path: "/api/admin/teachers/9999"},
		{name: "toggle", method: http.MethodPost, path: "/api/admin/teachers/9999/toggle-active"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(tt.method, tt.path, tt.body, cookie)
			require.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, "Enseignant introuvable (déjà supprimé?)", jsonMap(t, rec)["error"])
		})
	}
}

func Test_teacherAPI_bulkAction(t *testing.T) {
	env := setup(t)
	cookie := env.login("admin", "admin-secret")
	seeded := env.teachers.Seed(
		teacher.Teacher{Username: "t1", Name: "Un", IsActive: true},
		teacher.Teacher{Username: "t2", Name: "Deux", IsActive: true},
	)

	rec := env.do(http.MethodPost, "/api/admin/teachers/bulk-action", teacher.BulkAction{
		Action: teacher.BulkDeactivate,
		IDs:    []int{seeded[0].UserID, seeded[1].UserID},
	}, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Action appliquée avec succès.", jsonMap(t, rec)["success"])

	rec = env.do(http.MethodGet, "/api/admin/teachers", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var teachers []teacher.Teacher
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &teachers))
	require.Len(t, teachers, 2)
	for _, tch := range teachers {
		assert.False(t, tch.IsActive)
	}
}

func Test_teacherAPI_bulkAction_validation(t *testing.T) {
	env := setup(t)
	cookie := env.login("admin", "admin-secret")

	rec := env.do(http.MethodPost, "/api/admin/teachers/bulk-action", teacher.BulkAction{Action: "explode", IDs: []int{1}}, cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, jsonMap(t, rec), "action")
}
