package dummyapi

import (
	"context"

	"github.com/courati/console/core/dashboard"
)

type DashboardRepository struct {
	api *API

	teacherStats dashboard.TeacherStats
}

var _ dashboard.Repository = (*DashboardRepository)(nil)

func NewDashboardRepository(api *API) *DashboardRepository {
	return &DashboardRepository{api: api}
}

func (repo *DashboardRepository) SeedTeacherStats(stats dashboard.TeacherStats) {
	repo.teacherStats = stats
}

// AdminStats aggregates the live tables so tests see totals move as they
// seed and mutate data.
func (repo *DashboardRepository) AdminStats(ctx context.Context) (dashboard.AdminStats, error) {
	stats := dashboard.AdminStats{
		StudentsPerLevel: []dashboard.ChartPoint{},
		StudentsPerMajor: []dashboard.ChartPoint{},
		DocumentsPerType: []dashboard.ChartPoint{},
		RecentSignups:    []dashboard.ChartPoint{},
	}

	repo.api.students.RLock()
	perLevel := make(map[string]float64)
	perMajor := make(map[string]float64)
	for _, std := range repo.api.students.table {
		stats.TotalStudents++
		if std.IsActive {
			stats.ActiveStudents++
		}
		perLevel[std.Level.Code]++
		perMajor[std.Major.Code]++
	}
	repo.api.students.RUnlock()
	for label, value := range perLevel {
		stats.StudentsPerLevel = append(stats.StudentsPerLevel, dashboard.ChartPoint{Label: label, Value: value})
	}
	for label, value := range perMajor {
		stats.StudentsPerMajor = append(stats.StudentsPerMajor, dashboard.ChartPoint{Label: label, Value: value})
	}

	repo.api.teachers.RLock()
	stats.TotalTeachers = len(repo.api.teachers.table)
	repo.api.teachers.RUnlock()

	repo.api.subjects.RLock()
	stats.TotalSubjects = len(repo.api.subjects.table)
	repo.api.subjects.RUnlock()

	repo.api.documents.RLock()
	stats.TotalDocuments = len(repo.api.documents.table)
	perType := make(map[string]float64)
	for _, doc := range repo.api.documents.table {
		perType[doc.DocumentType]++
	}
	repo.api.documents.RUnlock()
	for label, value := range perType {
		stats.DocumentsPerType = append(stats.DocumentsPerType, dashboard.ChartPoint{Label: label, Value: value})
	}

	repo.api.quizzes.RLock()
	stats.TotalQuizzes = len(repo.api.quizzes.table)
	repo.api.quizzes.RUnlock()

	return stats, nil
}

func (repo *DashboardRepository) TeacherStats(ctx context.Context) (dashboard.TeacherStats, error) {
	return repo.teacherStats, nil
}
