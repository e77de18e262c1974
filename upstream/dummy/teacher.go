package dummyapi

import (
	"context"
	"sort"

	"github.com/courati/console/core/teacher"
)

type TeacherRepository struct {
	api *API
}

var _ teacher.Repository = (*TeacherRepository)(nil)

func NewTeacherRepository(api *API) *TeacherRepository {
	return &TeacherRepository{api: api}
}

// Seed assigns profile and user ids; the two are deliberately distinct so
// tests catch id-vs-user_id mixups.
func (repo *TeacherRepository) Seed(teachers ...teacher.Teacher) []teacher.Teacher {
	repo.api.teachers.Lock()
	defer repo.api.teachers.Unlock()

	out := make([]teacher.Teacher, 0, len(teachers))
	for _, tch := range teachers {
		tch := tch
		repo.api.teachers.seq++
		tch.ID = repo.api.teachers.seq
		tch.UserID = repo.api.teachers.seq + 1000
		repo.api.teachers.table[tch.UserID] = &tch
		out = append(out, tch)
	}
	return out
}

func (repo *TeacherRepository) Query(ctx context.Context, filter teacher.ListFilter) ([]teacher.Teacher, error) {
	repo.api.teachers.RLock()
	defer repo.api.teachers.RUnlock()

	teachers := make([]teacher.Teacher, 0, len(repo.api.teachers.table))
	for _, tch := range repo.api.teachers.table {
		if !matches(filter.Search, tch.Name, tch.Username, tch.Email, tch.Specialization) {
			continue
		}
		if filter.SubjectID != 0 && !assignedTo(tch.Assignments, filter.SubjectID) {
			continue
		}
		if filter.IsActive != nil && tch.IsActive != *filter.IsActive {
			continue
		}
		teachers = append(teachers, *tch)
	}
	sort.Slice(teachers, func(i, j int) bool { return teachers[i].UserID < teachers[j].UserID })
	return teachers, nil
}

func (repo *TeacherRepository) Get(ctx context.Context, userID int) (teacher.Teacher, error) {
	repo.api.teachers.RLock()
	defer repo.api.teachers.RUnlock()

	if tch, ok := repo.api.teachers.table[userID]; ok {
		return *tch, nil
	}
	return teacher.Teacher{}, notFound("Enseignant introuvable.")
}

func (repo *TeacherRepository) Create(ctx context.Context, nt teacher.NewTeacher) (teacher.Teacher, error) {
	repo.api.teachers.Lock()
	defer repo.api.teachers.Unlock()

	repo.api.teachers.seq++
	tch := teacher.Teacher{
		ID:             repo.api.teachers.seq,
		UserID:         repo.api.teachers.seq + 1000,
		Username:       nt.Username,
		Email:          nt.Email,
		Name:           nt.Name,
		IsActive:       true,
		Specialization: nt.Specialization,
		PhoneNumber:    nt.PhoneNumber,
		Assignments:    []teacher.Assignment{},
	}
	repo.api.teachers.table[tch.UserID] = &tch
	return tch, nil
}

func (repo *TeacherRepository) Update(ctx context.Context, userID int, ut teacher.UpdateTeacher) (teacher.Teacher, error) {
	repo.api.teachers.Lock()
	defer repo.api.teachers.Unlock()

	tch, ok := repo.api.teachers.table[userID]
	if !ok {
		return teacher.Teacher{}, notFound("Enseignant introuvable.")
	}
	if ut.Email != "" {
		tch.Email = ut.Email
	}
	if ut.Name != "" {
		tch.Name = ut.Name
	}
	if ut.Specialization != "" {
		tch.Specialization = ut.Specialization
	}
	if ut.PhoneNumber != "" {
		tch.PhoneNumber = ut.PhoneNumber
	}
	if ut.IsActive != nil {
		tch.IsActive = *ut.IsActive
	}
	return *tch, nil
}

func (repo *TeacherRepository) Delete(ctx context.Context, userID int) error {
	repo.api.teachers.Lock()
	defer repo.api.teachers.Unlock()

	if _, ok := repo.api.teachers.table[userID]; !ok {
		return notFound("Enseignant introuvable.")
	}
	delete(repo.api.teachers.table, userID)
	return nil
}

func (repo *TeacherRepository) ToggleActive(ctx context.Context, userID int) (teacher.Teacher, error) {
	repo.api.teachers.Lock()
	defer repo.api.teachers.Unlock()

	tch, ok := repo.api.teachers.table[userID]
	if !ok {
		return teacher.Teacher{}, notFound("Enseignant introuvable.")
	}
	tch.IsActive = !tch.IsActive
	return *tch, nil
}

// BulkAction applies to every listed id and skips unknown ones, matching
// the upstream's best-effort semantics.
func (repo *TeacherRepository) BulkAction(ctx context.Context, ba teacher.BulkAction) error {
	repo.api.teachers.Lock()
	defer repo.api.teachers.Unlock()

	for _, userID := range ba.IDs {
		tch, ok := repo.api.teachers.table[userID]
		if !ok {
			continue
		}
		switch ba.Action {
		case teacher.BulkActivate:
			tch.IsActive = true
		case teacher.BulkDeactivate:
			tch.IsActive = false
		case teacher.BulkDelete:
			delete(repo.api.teachers.table, userID)
		}
	}
	return nil
}

func (repo *TeacherRepository) RemoveAssignment(ctx context.Context, assignmentID int) error {
	repo.api.teachers.Lock()
	defer repo.api.teachers.Unlock()

	for _, tch := range repo.api.teachers.table {
		for i, asn := range tch.Assignments {
			if asn.ID == assignmentID {
				tch.Assignments = append(tch.Assignments[:i], tch.Assignments[i+1:]...)
				return nil
			}
		}
	}
	return notFound("Affectation introuvable.")
}

func assignedTo(assignments []teacher.Assignment, subjectID int) bool {
	for _, asn := range assignments {
		if asn.Subject.ID == subjectID {
			return true
		}
	}
	return false
}
