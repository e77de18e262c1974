package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courati/console/core/dashboard"
	"github.com/courati/console/core/student"
	"github.com/courati/console/core/teacher"
)

func Test_dashboardAPI_admin(t *testing.T) {
	env := setup(t)
	cookie := env.login("admin", "admin-secret")
	env.students.Seed(
		student.Student{Username: "e1", Name: "Un", IsActive: true},
		student.Student{Username: "e2", Name: "Deux", IsActive: false},
	)
	env.teachers.Seed(teacher.Teacher{Username: "t1", Name: "Prof", IsActive: true})

	rec := env.do(http.MethodGet, "/api/admin/dashboard", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stats dashboard.AdminStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.TotalStudents)
	assert.Equal(t, 1, stats.ActiveStudents)
	assert.Equal(t, 1, stats.TotalTeachers)
}

func Test_dashboardAPI_teacher(t *testing.T) {
	env := setup(t)
	cookie := env.login("prof", "prof-secret")
	env.dashboard.SeedTeacherStats(dashboard.TeacherStats{SubjectCount: 3, DocumentCount: 12, QuizCount: 4, StudentCount: 150})

	rec := env.do(http.MethodGet, "/api/teacher/dashboard", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stats dashboard.TeacherStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.SubjectCount)
	assert.Equal(t, 150, stats.StudentCount)
}
