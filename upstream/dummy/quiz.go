package dummyapi

import (
	"context"
	"net/http"
	"sort"

	"github.com/courati/console/core/quiz"
	"github.com/courati/console/upstream"
)

type QuizRepository struct {
	api *API

	own map[int]bool // subject ids the current teacher caller is assigned to
}

var _ quiz.Repository = (*QuizRepository)(nil)

func NewQuizRepository(api *API) *QuizRepository {
	return &QuizRepository{api: api, own: make(map[int]bool)}
}

func (repo *QuizRepository) Seed(quizzes ...quiz.Quiz) []quiz.Quiz {
	repo.api.quizzes.Lock()
	defer repo.api.quizzes.Unlock()

	out := make([]quiz.Quiz, 0, len(quizzes))
	for _, qz := range quizzes {
		qz := qz
		repo.api.quizzes.seq++
		qz.ID = repo.api.quizzes.seq
		repo.api.quizzes.table[qz.ID] = &qz
		out = append(out, qz)
	}
	return out
}

// SeedAttempts attaches attempts to a quiz; its delete then conflicts.
func (repo *QuizRepository) SeedAttempts(quizID int, attempts ...quiz.Attempt) {
	repo.api.quizzes.Lock()
	defer repo.api.quizzes.Unlock()

	repo.api.quizzes.attempts[quizID] = append(repo.api.quizzes.attempts[quizID], attempts...)
	if qz, ok := repo.api.quizzes.table[quizID]; ok {
		qz.AttemptCount = len(repo.api.quizzes.attempts[quizID])
	}
}

func (repo *QuizRepository) SetOwn(subjectIDs ...int) {
	repo.own = make(map[int]bool, len(subjectIDs))
	for _, id := range subjectIDs {
		repo.own[id] = true
	}
}

func (repo *QuizRepository) Query(ctx context.Context, filter quiz.ListFilter) ([]quiz.Quiz, error) {
	return repo.query(filter, nil), nil
}

func (repo *QuizRepository) query(filter quiz.ListFilter, scope map[int]bool) []quiz.Quiz {
	repo.api.quizzes.RLock()
	defer repo.api.quizzes.RUnlock()

	quizzes := make([]quiz.Quiz, 0, len(repo.api.quizzes.table))
	for _, qz := range repo.api.quizzes.table {
		if scope != nil && !scope[qz.Subject.ID] {
			continue
		}
		if !matches(filter.Search, qz.Title) {
			continue
		}
		if filter.SubjectID != 0 && qz.Subject.ID != filter.SubjectID {
			continue
		}
		if filter.IsActive != nil && qz.IsActive != *filter.IsActive {
			continue
		}
		quizzes = append(quizzes, *qz)
	}
	sort.Slice(quizzes, func(i, j int) bool { return quizzes[i].ID < quizzes[j].ID })
	return quizzes
}

func (repo *QuizRepository) Get(ctx context.Context, id int) (quiz.Quiz, error) {
	repo.api.quizzes.RLock()
	defer repo.api.quizzes.RUnlock()

	if qz, ok := repo.api.quizzes.table[id]; ok {
		return *qz, nil
	}
	return quiz.Quiz{}, notFound("Quiz introuvable.")
}

func (repo *QuizRepository) Create(ctx context.Context, nq quiz.NewQuiz) (quiz.Quiz, error) {
	repo.api.quizzes.Lock()
	defer repo.api.quizzes.Unlock()

	repo.api.quizzes.seq++
	qz := quiz.Quiz{
		ID:                repo.api.quizzes.seq,
		Title:             nq.Title,
		Subject:           repo.subjectRef(nq.SubjectID),
		DurationMinutes:   nq.DurationMinutes,
		PassingPercentage: nq.PassingPercentage,
		MaxAttempts:       nq.MaxAttempts,
		AvailableFrom:     nq.AvailableFrom,
		AvailableUntil:    nq.AvailableUntil,
		IsActive:          true,
		ShowCorrection:    nq.ShowCorrection,
		Questions:         nq.Questions,
	}
	repo.api.quizzes.table[qz.ID] = &qz
	return qz, nil
}

func (repo *QuizRepository) Update(ctx context.Context, id int, nq quiz.NewQuiz) (quiz.Quiz, error) {
	repo.api.quizzes.Lock()
	defer repo.api.quizzes.Unlock()

	qz, ok := repo.api.quizzes.table[id]
	if !ok {
		return quiz.Quiz{}, notFound("Quiz introuvable.")
	}
	qz.Title = nq.Title
	qz.Subject = repo.subjectRef(nq.SubjectID)
	qz.DurationMinutes = nq.DurationMinutes
	qz.PassingPercentage = nq.PassingPercentage
	qz.MaxAttempts = nq.MaxAttempts
	qz.AvailableFrom = nq.AvailableFrom
	qz.AvailableUntil = nq.AvailableUntil
	qz.ShowCorrection = nq.ShowCorrection
	qz.Questions = nq.Questions
	return *qz, nil
}

// Delete refuses when attempts exist, answering the 409 conflict the real
// backend sends, suggestion included.
func (repo *QuizRepository) Delete(ctx context.Context, id int) error {
	repo.api.quizzes.Lock()
	defer repo.api.quizzes.Unlock()

	if _, ok := repo.api.quizzes.table[id]; !ok {
		return notFound("Quiz introuvable.")
	}
	if len(repo.api.quizzes.attempts[id]) > 0 {
		return &upstream.APIError{
			StatusCode: http.StatusConflict,
			Message:    "Ce quiz a déjà des tentatives et ne peut pas être supprimé.",
			Suggestion: "Désactivez le quiz pour le retirer des étudiants sans perdre les tentatives.",
		}
	}
	delete(repo.api.quizzes.table, id)
	return nil
}

func (repo *QuizRepository) ToggleActive(ctx context.Context, id int) (quiz.Quiz, error) {
	repo.api.quizzes.Lock()
	defer repo.api.quizzes.Unlock()

	qz, ok := repo.api.quizzes.table[id]
	if !ok {
		return quiz.Quiz{}, notFound("Quiz introuvable.")
	}
	qz.IsActive = !qz.IsActive
	return *qz, nil
}

func (repo *QuizRepository) Attempts(ctx context.Context, id int) ([]quiz.Attempt, error) {
	repo.api.quizzes.RLock()
	defer repo.api.quizzes.RUnlock()

	if _, ok := repo.api.quizzes.table[id]; !ok {
		return nil, notFound("Quiz introuvable.")
	}
	return append([]quiz.Attempt(nil), repo.api.quizzes.attempts[id]...), nil
}

// TeacherQuizRepository is the teacher-console view over the same tables,
// restricted to the subjects marked with SetOwn (the real upstream derives
// that scope from the caller's assignments).
type TeacherQuizRepository struct {
	admin *QuizRepository
}

var _ quiz.Repository = (*TeacherQuizRepository)(nil)

func (repo *QuizRepository) TeacherView() *TeacherQuizRepository {
	return &TeacherQuizRepository{admin: repo}
}

func (repo *TeacherQuizRepository) Query(ctx context.Context, filter quiz.ListFilter) ([]quiz.Quiz, error) {
	return repo.admin.query(filter, repo.admin.own), nil
}

func (repo *TeacherQuizRepository) Get(ctx context.Context, id int) (quiz.Quiz, error) {
	if err := repo.inScope(id); err != nil {
		return quiz.Quiz{}, err
	}
	return repo.admin.Get(ctx, id)
}

func (repo *TeacherQuizRepository) Create(ctx context.Context, nq quiz.NewQuiz) (quiz.Quiz, error) {
	if !repo.admin.own[nq.SubjectID] {
		return quiz.Quiz{}, notFound("Matière introuvable.")
	}
	return repo.admin.Create(ctx, nq)
}

func (repo *TeacherQuizRepository) Update(ctx context.Context, id int, nq quiz.NewQuiz) (quiz.Quiz, error) {
	if err := repo.inScope(id); err != nil {
		return quiz.Quiz{}, err
	}
	return repo.admin.Update(ctx, id, nq)
}

func (repo *TeacherQuizRepository) Delete(ctx context.Context, id int) error {
	if err := repo.inScope(id); err != nil {
		return err
	}
	return repo.admin.Delete(ctx, id)
}

func (repo *TeacherQuizRepository) ToggleActive(ctx context.Context, id int) (quiz.Quiz, error) {
	if err := repo.inScope(id); err != nil {
		return quiz.Quiz{}, err
	}
	return repo.admin.ToggleActive(ctx, id)
}

func (repo *TeacherQuizRepository) Attempts(ctx context.Context, id int) ([]quiz.Attempt, error) {
	if err := repo.inScope(id); err != nil {
		return nil, err
	}
	return repo.admin.Attempts(ctx, id)
}

// inScope answers the same 404 the upstream sends for quizzes outside the
// caller's subjects, hiding their existence.
func (repo *TeacherQuizRepository) inScope(id int) error {
	repo.admin.api.quizzes.RLock()
	defer repo.admin.api.quizzes.RUnlock()

	qz, ok := repo.admin.api.quizzes.table[id]
	if !ok || !repo.admin.own[qz.Subject.ID] {
		return notFound("Quiz introuvable.")
	}
	return nil
}

func (repo *QuizRepository) subjectRef(id int) quiz.SubjectRef {
	repo.api.subjects.RLock()
	defer repo.api.subjects.RUnlock()

	if sub, ok := repo.api.subjects.table[id]; ok {
		return quiz.SubjectRef{ID: sub.ID, Code: sub.Code, Name: sub.Name}
	}
	return quiz.SubjectRef{ID: id}
}
