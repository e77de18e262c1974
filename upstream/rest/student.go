package restapi

import (
	"context"
	"fmt"

	"github.com/courati/console/core/student"
	"github.com/courati/console/upstream"
)

// Student routes are keyed on the account's user_id, like teachers.
const studentsPath = "/api/auth/admin/students/"

type StudentRepository struct {
	client *upstream.Client
}

var _ student.Repository = (*StudentRepository)(nil)

func NewStudentRepository(client *upstream.Client) *StudentRepository {
	return &StudentRepository{client: client}
}

// Query is server-paginated: page/page_size go upstream, totals come back.
func (repo *StudentRepository) Query(ctx context.Context, filter student.ListFilter) (student.Page, error) {
	body, err := repo.client.Get(ctx, studentsPath, filter.Values())
	if err != nil {
		return student.Page{}, err
	}
	var page student.Page
	meta, err := upstream.UnmarshalPage(body, &page.Results, "results", "students")
	if err != nil {
		return student.Page{}, err
	}
	page.Page = meta.Page
	page.PageSize = meta.PageSize
	if page.PageSize == 0 {
		page.PageSize = filter.PageSize
	}
	page.Total = meta.Total
	page.TotalPages = meta.TotalPages
	return page, nil
}

func (repo *StudentRepository) Get(ctx context.Context, userID int) (student.Student, error) {
	body, err := repo.client.Get(ctx, fmt.Sprintf("%s%d/", studentsPath, userID), nil)
	if err != nil {
		return student.Student{}, err
	}
	var std student.Student
	err = upstream.UnmarshalObject(body, &std, "student")
	return std, err
}

func (repo *StudentRepository) Create(ctx context.Context, ns student.NewStudent) (student.Student, error) {
	body, err := repo.client.Post(ctx, studentsPath, ns)
	if err != nil {
		return student.Student{}, err
	}
	var std student.Student
	err = upstream.UnmarshalObject(body, &std, "student")
	return std, err
}

func (repo *StudentRepository) Update(ctx context.Context, userID int, us student.UpdateStudent) (student.Student, error) {
	body, err := repo.client.Patch(ctx, fmt.Sprintf("%s%d/", studentsPath, userID), us)
	if err != nil {
		return student.Student{}, err
	}
	var std student.Student
	err = upstream.UnmarshalObject(body, &std, "student")
	return std, err
}

func (repo *StudentRepository) Delete(ctx context.Context, userID int) error {
	_, err := repo.client.Delete(ctx, fmt.Sprintf("%s%d/", studentsPath, userID))
	return err
}

func (repo *StudentRepository) ToggleActive(ctx context.Context, userID int) (student.Student, error) {
	body, err := repo.client.Post(ctx, fmt.Sprintf("%s%d/toggle-active/", studentsPath, userID), nil)
	if err != nil {
		return student.Student{}, err
	}
	var std student.Student
	err = upstream.UnmarshalObject(body, &std, "student")
	return std, err
}

func (repo *StudentRepository) BulkAction(ctx context.Context, ba student.BulkAction) error {
	_, err := repo.client.Post(ctx, studentsPath+"bulk-action/", ba)
	return err
}

// Export fetches the CSV blob for the current filter set; pagination params
// are stripped so the export always covers the whole filtered set.
func (repo *StudentRepository) Export(ctx context.Context, filter student.ListFilter) (*upstream.Download, error) {
	values := filter.Values()
	values.Del("page")
	values.Del("page_size")
	return repo.client.Export(ctx, studentsPath+"export/", values)
}
