package restapi

import (
	"context"
	"fmt"

	"github.com/courati/console/core/quiz"
	"github.com/courati/console/upstream"
)

const (
	adminQuizzesPath   = "/api/courses/admin/quizzes/"
	teacherQuizzesPath = "/api/courses/teacher/quizzes/"
)

// QuizRepository serves one console's quiz endpoints; the admin and teacher
// path trees have the same shape, only the upstream role guard differs.
type QuizRepository struct {
	client *upstream.Client
	base   string
}

var _ quiz.Repository = (*QuizRepository)(nil)

func NewQuizRepository(client *upstream.Client) *QuizRepository {
	return &QuizRepository{client: client, base: adminQuizzesPath}
}

// NewTeacherQuizRepository targets the teacher endpoints, which the
// upstream restricts to the caller's assigned subjects.
func NewTeacherQuizRepository(client *upstream.Client) *QuizRepository {
	return &QuizRepository{client: client, base: teacherQuizzesPath}
}

// Query returns the full filtered set; these endpoints do not paginate.
func (repo *QuizRepository) Query(ctx context.Context, filter quiz.ListFilter) ([]quiz.Quiz, error) {
	body, err := repo.client.Get(ctx, repo.base, filter.Values())
	if err != nil {
		return nil, err
	}
	var quizzes []quiz.Quiz
	err = upstream.UnmarshalList(body, &quizzes, "results", "quizzes")
	return quizzes, err
}

func (repo *QuizRepository) Get(ctx context.Context, id int) (quiz.Quiz, error) {
	body, err := repo.client.Get(ctx, fmt.Sprintf("%s%d/", repo.base, id), nil)
	if err != nil {
		return quiz.Quiz{}, err
	}
	var qz quiz.Quiz
	err = upstream.UnmarshalObject(body, &qz, "quiz")
	return qz, err
}

func (repo *QuizRepository) Create(ctx context.Context, nq quiz.NewQuiz) (quiz.Quiz, error) {
	body, err := repo.client.Post(ctx, repo.base, nq)
	if err != nil {
		return quiz.Quiz{}, err
	}
	var qz quiz.Quiz
	err = upstream.UnmarshalObject(body, &qz, "quiz")
	return qz, err
}

func (repo *QuizRepository) Update(ctx context.Context, id int, nq quiz.NewQuiz) (quiz.Quiz, error) {
	body, err := repo.client.Put(ctx, fmt.Sprintf("%s%d/", repo.base, id), nq)
	if err != nil {
		return quiz.Quiz{}, err
	}
	var qz quiz.Quiz
	err = upstream.UnmarshalObject(body, &qz, "quiz")
	return qz, err
}

// Delete surfaces the 409 conflict untouched when attempts exist; the
// server's suggestion rides along in the APIError.
func (repo *QuizRepository) Delete(ctx context.Context, id int) error {
	_, err := repo.client.Delete(ctx, fmt.Sprintf("%s%d/", repo.base, id))
	return err
}

func (repo *QuizRepository) ToggleActive(ctx context.Context, id int) (quiz.Quiz, error) {
	body, err := repo.client.Post(ctx, fmt.Sprintf("%s%d/toggle-active/", repo.base, id), nil)
	if err != nil {
		return quiz.Quiz{}, err
	}
	var qz quiz.Quiz
	err = upstream.UnmarshalObject(body, &qz, "quiz")
	return qz, err
}

func (repo *QuizRepository) Attempts(ctx context.Context, id int) ([]quiz.Attempt, error) {
	body, err := repo.client.Get(ctx, fmt.Sprintf("%s%d/attempts/", repo.base, id), nil)
	if err != nil {
		return nil, err
	}
	var attempts []quiz.Attempt
	err = upstream.UnmarshalList(body, &attempts, "results", "attempts")
	return attempts, err
}
