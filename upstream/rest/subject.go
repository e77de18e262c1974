package restapi

import (
	"context"
	"fmt"

	"github.com/courati/console/core/subject"
	"github.com/courati/console/upstream"
)

const (
	adminSubjectsPath   = "/api/courses/admin/subjects/"
	teacherSubjectsPath = "/api/courses/teacher/subjects/"
)

type SubjectRepository struct {
	client *upstream.Client
}

var (
	_ subject.Repository        = (*SubjectRepository)(nil)
	_ subject.TeacherRepository = (*SubjectRepository)(nil)
)

func NewSubjectRepository(client *upstream.Client) *SubjectRepository {
	return &SubjectRepository{client: client}
}

func (repo *SubjectRepository) Query(ctx context.Context, filter subject.ListFilter) ([]subject.Subject, error) {
	return repo.query(ctx, adminSubjectsPath, filter)
}

func (repo *SubjectRepository) QueryOwn(ctx context.Context, filter subject.ListFilter) ([]subject.Subject, error) {
	return repo.query(ctx, teacherSubjectsPath, filter)
}

func (repo *SubjectRepository) query(ctx context.Context, path string, filter subject.ListFilter) ([]subject.Subject, error) {
	body, err := repo.client.Get(ctx, path, filter.Values())
	if err != nil {
		return nil, err
	}
	var subjects []subject.Subject
	// the subjects list is the one endpoint known to use its entity-plural
	// envelope ({subjects}) instead of {results}
	err = upstream.UnmarshalList(body, &subjects, "subjects", "results")
	return subjects, err
}

func (repo *SubjectRepository) Get(ctx context.Context, id int) (subject.Subject, error) {
	return repo.get(ctx, fmt.Sprintf("%s%d/", adminSubjectsPath, id))
}

func (repo *SubjectRepository) GetOwn(ctx context.Context, id int) (subject.Subject, error) {
	return repo.get(ctx, fmt.Sprintf("%s%d/", teacherSubjectsPath, id))
}

func (repo *SubjectRepository) get(ctx context.Context, path string) (subject.Subject, error) {
	body, err := repo.client.Get(ctx, path, nil)
	if err != nil {
		return subject.Subject{}, err
	}
	var sub subject.Subject
	err = upstream.UnmarshalObject(body, &sub, "subject")
	return sub, err
}

func (repo *SubjectRepository) Create(ctx context.Context, ns subject.NewSubject) (subject.Subject, error) {
	body, err := repo.client.Post(ctx, adminSubjectsPath, ns)
	if err != nil {
		return subject.Subject{}, err
	}
	var sub subject.Subject
	err = upstream.UnmarshalObject(body, &sub, "subject")
	return sub, err
}

func (repo *SubjectRepository) Update(ctx context.Context, id int, us subject.UpdateSubject) (subject.Subject, error) {
	body, err := repo.client.Patch(ctx, fmt.Sprintf("%s%d/", adminSubjectsPath, id), us)
	if err != nil {
		return subject.Subject{}, err
	}
	var sub subject.Subject
	err = upstream.UnmarshalObject(body, &sub, "subject")
	return sub, err
}

func (repo *SubjectRepository) Delete(ctx context.Context, id int) error {
	_, err := repo.client.Delete(ctx, fmt.Sprintf("%s%d/", adminSubjectsPath, id))
	return err
}

func (repo *SubjectRepository) ToggleActive(ctx context.Context, id int) (subject.Subject, error) {
	body, err := repo.client.Post(ctx, fmt.Sprintf("%s%d/toggle-active/", adminSubjectsPath, id), nil)
	if err != nil {
		return subject.Subject{}, err
	}
	var sub subject.Subject
	err = upstream.UnmarshalObject(body, &sub, "subject")
	return sub, err
}

func (repo *SubjectRepository) AssignTeacher(ctx context.Context, id int, at subject.AssignTeacher) error {
	_, err := repo.client.Post(ctx, fmt.Sprintf("%s%d/assign-teacher/", adminSubjectsPath, id), at)
	return err
}

func (repo *SubjectRepository) RemoveTeacher(ctx context.Context, id, teacherID int) error {
	payload := map[string]int{"teacher_id": teacherID}
	_, err := repo.client.Post(ctx, fmt.Sprintf("%s%d/remove-teacher/", adminSubjectsPath, id), payload)
	return err
}
