package restapi

import (
	"context"

	"github.com/courati/console/core/dashboard"
	"github.com/courati/console/upstream"
)

const (
	adminDashboardPath   = "/api/auth/admin/dashboard/"
	teacherDashboardPath = "/api/courses/teacher/dashboard/"
)

type DashboardRepository struct {
	client *upstream.Client
}

var _ dashboard.Repository = (*DashboardRepository)(nil)

func NewDashboardRepository(client *upstream.Client) *DashboardRepository {
	return &DashboardRepository{client: client}
}

func (repo *DashboardRepository) AdminStats(ctx context.Context) (dashboard.AdminStats, error) {
	body, err := repo.client.Get(ctx, adminDashboardPath, nil)
	if err != nil {
		return dashboard.AdminStats{}, err
	}
	var stats dashboard.AdminStats
	err = upstream.UnmarshalObject(body, &stats, "stats", "dashboard")
	return stats, err
}

func (repo *DashboardRepository) TeacherStats(ctx context.Context) (dashboard.TeacherStats, error) {
	body, err := repo.client.Get(ctx, teacherDashboardPath, nil)
	if err != nil {
		return dashboard.TeacherStats{}, err
	}
	var stats dashboard.TeacherStats
	err = upstream.UnmarshalObject(body, &stats, "stats", "dashboard")
	return stats, err
}
