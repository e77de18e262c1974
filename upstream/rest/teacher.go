package restapi

import (
	"context"
	"fmt"

	"github.com/courati/console/core/teacher"
	"github.com/courati/console/upstream"
)

// Teacher routes are keyed on the account's user_id, not the profile id.
const (
	teachersPath    = "/api/auth/admin/teachers/"
	assignmentsPath = "/api/auth/admin/teachers/assignments/"
)

type TeacherRepository struct {
	client *upstream.Client
}

var _ teacher.Repository = (*TeacherRepository)(nil)

func NewTeacherRepository(client *upstream.Client) *TeacherRepository {
	return &TeacherRepository{client: client}
}

func (repo *TeacherRepository) Query(ctx context.Context, filter teacher.ListFilter) ([]teacher.Teacher, error) {
	body, err := repo.client.Get(ctx, teachersPath, filter.Values())
	if err != nil {
		return nil, err
	}
	var teachers []teacher.Teacher
	err = upstream.UnmarshalList(body, &teachers, "results", "teachers")
	return teachers, err
}

func (repo *TeacherRepository) Get(ctx context.Context, userID int) (teacher.Teacher, error) {
	body, err := repo.client.Get(ctx, fmt.Sprintf("%s%d/", teachersPath, userID), nil)
	if err != nil {
		return teacher.Teacher{}, err
	}
	var tch teacher.Teacher
	err = upstream.UnmarshalObject(body, &tch, "teacher")
	return tch, err
}

func (repo *TeacherRepository) Create(ctx context.Context, nt teacher.NewTeacher) (teacher.Teacher, error) {
	body, err := repo.client.Post(ctx, teachersPath, nt)
	if err != nil {
		return teacher.Teacher{}, err
	}
	var tch teacher.Teacher
	err = upstream.UnmarshalObject(body, &tch, "teacher")
	return tch, err
}

func (repo *TeacherRepository) Update(ctx context.Context, userID int, ut teacher.UpdateTeacher) (teacher.Teacher, error) {
	body, err := repo.client.Patch(ctx, fmt.Sprintf("%s%d/", teachersPath, userID), ut)
	if err != nil {
		return teacher.Teacher{}, err
	}
	var tch teacher.Teacher
	err = upstream.UnmarshalObject(body, &tch, "teacher")
	return tch, err
}

func (repo *TeacherRepository) Delete(ctx context.Context, userID int) error {
	_, err := repo.client.Delete(ctx, fmt.Sprintf("%s%d/", teachersPath, userID))
	return err
}

func (repo *TeacherRepository) ToggleActive(ctx context.Context, userID int) (teacher.Teacher, error) {
	body, err := repo.client.Post(ctx, fmt.Sprintf("%s%d/toggle-active/", teachersPath, userID), nil)
	if err != nil {
		return teacher.Teacher{}, err
	}
	var tch teacher.Teacher
	err = upstream.UnmarshalObject(body, &tch, "teacher")
	return tch, err
}

func (repo *TeacherRepository) BulkAction(ctx context.Context, ba teacher.BulkAction) error {
	_, err := repo.client.Post(ctx, teachersPath+"bulk-action/", ba)
	return err
}

func (repo *TeacherRepository) RemoveAssignment(ctx context.Context, assignmentID int) error {
	_, err := repo.client.Delete(ctx, fmt.Sprintf("%s%d/", assignmentsPath, assignmentID))
	return err
}
