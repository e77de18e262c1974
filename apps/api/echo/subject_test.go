package echoapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courati/console/core/level"
	"github.com/courati/console/core/major"
	"github.com/courati/console/core/subject"
	"github.com/courati/console/core/teacher"
)

func Test_subjectAPI_create_resolvesRefs(t *testing.T) {
	env := setup(t)
	cookie := env.login("admin", "admin-secret")
	lvl := env.levels.Seed(level.Level{Code: "L3", Name: "Licence 3", Order: 3})[0]
	mjr := env.majors.Seed(major.Major{Code: "GLSI", Name: "Génie Logiciel"})[0]

	rec := env.do(http.MethodPost, "/api/admin/subjects", subject.NewSubject{
		Code: "ALGO3", Name: "Algorithmique avancée",
		LevelIDs: []int{lvl.ID}, MajorIDs: []int{mjr.ID},
		Credits: 4, Semester: 1,
	}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := jsonMap(t, rec)
	assert.Equal(t, "Matière créée avec succès.", body["success"])

	var created struct {
		Subject subject.Subject `json:"subject"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Len(t, created.Subject.Levels, 1)
	assert.Equal(t, "L3", created.Subject.Levels[0].Code)
	require.Len(t, created.Subject.Majors, 1)
	assert.Equal(t, "GLSI", created.Subject.Majors[0].Code)
	assert.True(t, created.Subject.IsActive)
}

func Test_subjectAPI_assignAndRemoveTeacher(t *testing.T) {
	env := setup(t)
	cookie := env.login("admin", "admin-secret")
	sub := env.subjects.Seed(subject.Subject{Code: "PHY1", Name: "Physique 1", IsActive: true})[0]
	tch := env.teachers.Seed(teacher.Teacher{Username: "ahmed", Name: "Ahmed Bouazizi", IsActive: true})[0]

	rec := env.do(http.MethodPost, fmt.Sprintf("/api/admin/subjects/%d/assign-teacher", sub.ID), subject.AssignTeacher{
		TeacherID:          tch.UserID,
		CanUploadDocuments: true,
	}, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Enseignant affecté avec succès.", jsonMap(t, rec)["success"])

	// visible from both sides of the join
	rec = env.do(http.MethodGet, fmt.Sprintf("/api/admin/subjects/%d", sub.ID), nil, cookie)
	var got subject.Subject
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Teachers, 1)
	assert.Equal(t, tch.UserID, got.Teachers[0].TeacherID)

	rec = env.do(http.MethodGet, fmt.Sprintf("/api/admin/teachers/%d", tch.UserID), nil, cookie)
	var gotTch teacher.Teacher
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gotTch))
	require.Len(t, gotTch.Assignments, 1)
	assert.Equal(t, "PHY1", gotTch.Assignments[0].Subject.Code)
	assert.True(t, gotTch.Assignments[0].CanUploadDocuments)

	// remove from the subject side
	rec = env.do(http.MethodPost, fmt.Sprintf("/api/admin/subjects/%d/remove-teacher", sub.ID), map[string]int{"teacher_id": tch.UserID}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Affectation supprimée avec succès.", jsonMap(t, rec)["success"])

	rec = env.do(http.MethodGet, fmt.Sprintf("/api/admin/subjects/%d", sub.ID), nil, cookie)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Empty(t, got.Teachers)
}

func Test_subjectAPI_assignUnknownTeacher(t *testing.T) {
	env := setup(t)
	cookie := env.login("admin", "admin-secret")
	sub := env.subjects.Seed(subject.Subject{Code: "PHY1", Name: "Physique 1", IsActive: true})[0]

	rec := env.do(http.MethodPost, fmt.Sprintf("/api/admin/subjects/%d/assign-teacher", sub.ID), subject.AssignTeacher{TeacherID: 9999}, cookie)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Enseignant introuvable.", jsonMap(t, rec)["error"])
}

func Test_subjectAPI_teacherConsoleScope(t *testing.T) {
	env := setup(t)
	cookie := env.login("prof", "prof-secret")
	seeded := env.subjects.Seed(
		subject.Subject{Code: "ALGO1", Name: "Algorithmique 1", IsActive: true},
		subject.Subject{Code: "BD2", Name: "Bases de données 2", IsActive: true},
	)
	env.subjects.SetOwn(seeded[0].ID)

	rec := env.do(http.MethodGet, "/api/teacher/subjects", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var subjects []subject.Subject
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &subjects))
	require.Len(t, subjects, 1)
	assert.Equal(t, "ALGO1", subjects[0].Code)

	// detail outside the caller's assignments does not leak existence
	rec = env.do(http.MethodGet, fmt.Sprintf("/api/teacher/subjects/%d", seeded[1].ID), nil, cookie)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Matière introuvable.", jsonMap(t, rec)["error"])
}
