package dummyapi

import (
	"context"
	"sort"

	"github.com/volatiletech/null/v8"

	"github.com/courati/console/core/subject"
	"github.com/courati/console/core/teacher"
)

type SubjectRepository struct {
	api *API

	// own restricts QueryOwn/GetOwn like the upstream would from the
	// caller's assignments; tests set it with SetOwn.
	own map[int]bool
}

var (
	_ subject.Repository        = (*SubjectRepository)(nil)
	_ subject.TeacherRepository = (*SubjectRepository)(nil)
)

func NewSubjectRepository(api *API) *SubjectRepository {
	return &SubjectRepository{api: api, own: make(map[int]bool)}
}

func (repo *SubjectRepository) Seed(subjects ...subject.Subject) []subject.Subject {
	repo.api.subjects.Lock()
	defer repo.api.subjects.Unlock()

	out := make([]subject.Subject, 0, len(subjects))
	for _, sub := range subjects {
		sub := sub
		repo.api.subjects.seq++
		sub.ID = repo.api.subjects.seq
		repo.api.subjects.table[sub.ID] = &sub
		out = append(out, sub)
	}
	return out
}

// SetOwn marks the subjects the current teacher caller is assigned to.
func (repo *SubjectRepository) SetOwn(ids ...int) {
	repo.own = make(map[int]bool, len(ids))
	for _, id := range ids {
		repo.own[id] = true
	}
}

func (repo *SubjectRepository) Query(ctx context.Context, filter subject.ListFilter) ([]subject.Subject, error) {
	return repo.query(filter, nil)
}

func (repo *SubjectRepository) QueryOwn(ctx context.Context, filter subject.ListFilter) ([]subject.Subject, error) {
	return repo.query(filter, repo.own)
}

func (repo *SubjectRepository) query(filter subject.ListFilter, scope map[int]bool) ([]subject.Subject, error) {
	repo.api.subjects.RLock()
	defer repo.api.subjects.RUnlock()

	subjects := make([]subject.Subject, 0, len(repo.api.subjects.table))
	for _, sub := range repo.api.subjects.table {
		if scope != nil && !scope[sub.ID] {
			continue
		}
		if !matches(filter.Search, sub.Code, sub.Name) {
			continue
		}
		if filter.LevelID != 0 && !hasRef(sub.Levels, filter.LevelID) {
			continue
		}
		if filter.MajorID != 0 && !hasRef(sub.Majors, filter.MajorID) {
			continue
		}
		if filter.IsActive != nil && sub.IsActive != *filter.IsActive {
			continue
		}
		subjects = append(subjects, *sub)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].Code < subjects[j].Code })
	return subjects, nil
}

func (repo *SubjectRepository) Get(ctx context.Context, id int) (subject.Subject, error) {
	repo.api.subjects.RLock()
	defer repo.api.subjects.RUnlock()

	if sub, ok := repo.api.subjects.table[id]; ok {
		return *sub, nil
	}
	return subject.Subject{}, notFound("Matière introuvable.")
}

func (repo *SubjectRepository) GetOwn(ctx context.Context, id int) (subject.Subject, error) {
	if !repo.own[id] {
		return subject.Subject{}, notFound("Matière introuvable.")
	}
	return repo.Get(ctx, id)
}

func (repo *SubjectRepository) Create(ctx context.Context, ns subject.NewSubject) (subject.Subject, error) {
	repo.api.subjects.Lock()
	defer repo.api.subjects.Unlock()

	repo.api.subjects.seq++
	sub := subject.Subject{
		ID:          repo.api.subjects.seq,
		Code:        ns.Code,
		Name:        ns.Name,
		Description: null.NewString(ns.Description, ns.Description != ""),
		Levels:      repo.levelRefs(ns.LevelIDs),
		Majors:      repo.majorRefs(ns.MajorIDs),
		Credits:     ns.Credits,
		Semester:    ns.Semester,
		IsActive:    true,
	}
	repo.api.subjects.table[sub.ID] = &sub
	return sub, nil
}

func (repo *SubjectRepository) Update(ctx context.Context, id int, us subject.UpdateSubject) (subject.Subject, error) {
	repo.api.subjects.Lock()
	defer repo.api.subjects.Unlock()

	sub, ok := repo.api.subjects.table[id]
	if !ok {
		return subject.Subject{}, notFound("Matière introuvable.")
	}
	if us.Code != "" {
		sub.Code = us.Code
	}
	if us.Name != "" {
		sub.Name = us.Name
	}
	if us.Description != "" {
		sub.Description = null.StringFrom(us.Description)
	}
	if us.LevelIDs != nil {
		sub.Levels = repo.levelRefs(us.LevelIDs)
	}
	if us.MajorIDs != nil {
		sub.Majors = repo.majorRefs(us.MajorIDs)
	}
	if us.Credits != nil {
		sub.Credits = *us.Credits
	}
	if us.Semester != nil {
		sub.Semester = *us.Semester
	}
	return *sub, nil
}

func (repo *SubjectRepository) Delete(ctx context.Context, id int) error {
	repo.api.subjects.Lock()
	defer repo.api.subjects.Unlock()

	if _, ok := repo.api.subjects.table[id]; !ok {
		return notFound("Matière introuvable.")
	}
	delete(repo.api.subjects.table, id)
	return nil
}

func (repo *SubjectRepository) ToggleActive(ctx context.Context, id int) (subject.Subject, error) {
	repo.api.subjects.Lock()
	defer repo.api.subjects.Unlock()

	sub, ok := repo.api.subjects.table[id]
	if !ok {
		return subject.Subject{}, notFound("Matière introuvable.")
	}
	sub.IsActive = !sub.IsActive
	return *sub, nil
}

// AssignTeacher records the assignment on both sides of the join, the way
// the upstream serializers expose it.
func (repo *SubjectRepository) AssignTeacher(ctx context.Context, id int, at subject.AssignTeacher) error {
	repo.api.subjects.Lock()
	defer repo.api.subjects.Unlock()

	sub, ok := repo.api.subjects.table[id]
	if !ok {
		return notFound("Matière introuvable.")
	}

	repo.api.teachers.Lock()
	defer repo.api.teachers.Unlock()
	tch, ok := repo.api.teachers.table[at.TeacherID]
	if !ok {
		return notFound("Enseignant introuvable.")
	}

	repo.api.subjects.aseq++
	sub.Teachers = append(sub.Teachers, subject.TeacherRef{
		AssignmentID: repo.api.subjects.aseq,
		TeacherID:    tch.UserID,
		Name:         tch.Name,
	})
	tch.Assignments = append(tch.Assignments, teacher.Assignment{
		ID:                 repo.api.subjects.aseq,
		Subject:            teacher.SubjectRef{ID: sub.ID, Code: sub.Code, Name: sub.Name},
		CanEditContent:     at.CanEditContent,
		CanUploadDocuments: at.CanUploadDocuments,
		CanDeleteDocuments: at.CanDeleteDocuments,
		CanManageStudents:  at.CanManageStudents,
		Notes:              at.Notes,
	})
	return nil
}

func (repo *SubjectRepository) RemoveTeacher(ctx context.Context, id, teacherID int) error {
	repo.api.subjects.Lock()
	defer repo.api.subjects.Unlock()

	sub, ok := repo.api.subjects.table[id]
	if !ok {
		return notFound("Matière introuvable.")
	}
	for i, ref := range sub.Teachers {
		if ref.TeacherID == teacherID {
			sub.Teachers = append(sub.Teachers[:i], sub.Teachers[i+1:]...)
			return nil
		}
	}
	return notFound("Affectation introuvable.")
}

func (repo *SubjectRepository) levelRefs(ids []int) []subject.Ref {
	repo.api.levels.RLock()
	defer repo.api.levels.RUnlock()

	refs := make([]subject.Ref, 0, len(ids))
	for _, id := range ids {
		if lvl, ok := repo.api.levels.table[id]; ok {
			refs = append(refs, subject.Ref{ID: lvl.ID, Code: lvl.Code, Name: lvl.Name})
		}
	}
	return refs
}

func (repo *SubjectRepository) majorRefs(ids []int) []subject.Ref {
	repo.api.majors.RLock()
	defer repo.api.majors.RUnlock()

	refs := make([]subject.Ref, 0, len(ids))
	for _, id := range ids {
		if mjr, ok := repo.api.majors.table[id]; ok {
			refs = append(refs, subject.Ref{ID: mjr.ID, Code: mjr.Code, Name: mjr.Name})
		}
	}
	return refs
}

func hasRef(refs []subject.Ref, id int) bool {
	for _, ref := range refs {
		if ref.ID == id {
			return true
		}
	}
	return false
}
