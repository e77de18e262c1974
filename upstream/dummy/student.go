package dummyapi

import (
	"bytes"
	"context"
	"encoding/csv"
	"sort"
	"strconv"

	"github.com/courati/console/core/student"
	"github.com/courati/console/upstream"
)

type StudentRepository struct {
	api *API
}

var _ student.Repository = (*StudentRepository)(nil)

func NewStudentRepository(api *API) *StudentRepository {
	return &StudentRepository{api: api}
}

func (repo *StudentRepository) Seed(students ...student.Student) []student.Student {
	repo.api.students.Lock()
	defer repo.api.students.Unlock()

	out := make([]student.Student, 0, len(students))
	for _, std := range students {
		std := std
		repo.api.students.seq++
		std.ID = repo.api.students.seq
		std.UserID = repo.api.students.seq + 2000
		repo.api.students.table[std.UserID] = &std
		out = append(out, std)
	}
	return out
}

// Query paginates server-side: the page metadata reflects the filtered
// total, and out-of-range pages return empty results (the service layer
// handles falling back to page 1).
func (repo *StudentRepository) Query(ctx context.Context, filter student.ListFilter) (student.Page, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	students := repo.filtered(filter)

	total := len(students)
	totalPages := (total + filter.PageSize - 1) / filter.PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	start := (filter.Page - 1) * filter.PageSize
	end := start + filter.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return student.Page{
		Results:    students[start:end],
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (repo *StudentRepository) filtered(filter student.ListFilter) []student.Student {
	repo.api.students.RLock()
	defer repo.api.students.RUnlock()

	students := make([]student.Student, 0, len(repo.api.students.table))
	for _, std := range repo.api.students.table {
		if !matches(filter.Search, std.Name, std.Username, std.Email) {
			continue
		}
		if filter.LevelID != 0 && std.LevelID != filter.LevelID {
			continue
		}
		if filter.MajorID != 0 && std.MajorID != filter.MajorID {
			continue
		}
		if filter.IsActive != nil && std.IsActive != *filter.IsActive {
			continue
		}
		students = append(students, *std)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].UserID < students[j].UserID })
	return students
}

func (repo *StudentRepository) Get(ctx context.Context, userID int) (student.Student, error) {
	repo.api.students.RLock()
	defer repo.api.students.RUnlock()

	if std, ok := repo.api.students.table[userID]; ok {
		return *std, nil
	}
	return student.Student{}, notFound("Étudiant introuvable.")
}

func (repo *StudentRepository) Create(ctx context.Context, ns student.NewStudent) (student.Student, error) {
	repo.api.students.Lock()
	defer repo.api.students.Unlock()

	repo.api.students.seq++
	std := student.Student{
		ID:          repo.api.students.seq,
		UserID:      repo.api.students.seq + 2000,
		Username:    ns.Username,
		Email:       ns.Email,
		Name:        ns.Name,
		IsActive:    true,
		LevelID:     ns.LevelID,
		Level:       repo.levelRef(ns.LevelID),
		MajorID:     ns.MajorID,
		Major:       repo.majorRef(ns.MajorID),
		PhoneNumber: ns.PhoneNumber,
		Address:     ns.Address,
	}
	repo.api.students.table[std.UserID] = &std
	return std, nil
}

func (repo *StudentRepository) Update(ctx context.Context, userID int, us student.UpdateStudent) (student.Student, error) {
	repo.api.students.Lock()
	defer repo.api.students.Unlock()

	std, ok := repo.api.students.table[userID]
	if !ok {
		return student.Student{}, notFound("Étudiant introuvable.")
	}
	if us.Email != "" {
		std.Email = us.Email
	}
	if us.Name != "" {
		std.Name = us.Name
	}
	if us.LevelID != nil {
		std.LevelID = *us.LevelID
		std.Level = repo.levelRef(*us.LevelID)
	}
	if us.MajorID != nil {
		std.MajorID = *us.MajorID
		std.Major = repo.majorRef(*us.MajorID)
	}
	if us.PhoneNumber != "" {
		std.PhoneNumber = us.PhoneNumber
	}
	if us.Address != "" {
		std.Address = us.Address
	}
	if us.IsActive != nil {
		std.IsActive = *us.IsActive
	}
	return *std, nil
}

func (repo *StudentRepository) Delete(ctx context.Context, userID int) error {
	repo.api.students.Lock()
	defer repo.api.students.Unlock()

	if _, ok := repo.api.students.table[userID]; !ok {
		return notFound("Étudiant introuvable.")
	}
	delete(repo.api.students.table, userID)
	return nil
}

func (repo *StudentRepository) ToggleActive(ctx context.Context, userID int) (student.Student, error) {
	repo.api.students.Lock()
	defer repo.api.students.Unlock()

	std, ok := repo.api.students.table[userID]
	if !ok {
		return student.Student{}, notFound("Étudiant introuvable.")
	}
	std.IsActive = !std.IsActive
	return *std, nil
}

func (repo *StudentRepository) BulkAction(ctx context.Context, ba student.BulkAction) error {
	repo.api.students.Lock()
	defer repo.api.students.Unlock()

	for _, userID := range ba.IDs {
		std, ok := repo.api.students.table[userID]
		if !ok {
			continue
		}
		switch ba.Action {
		case student.BulkActivate:
			std.IsActive = true
		case student.BulkDeactivate:
			std.IsActive = false
		case student.BulkDelete:
			delete(repo.api.students.table, userID)
		}
	}
	return nil
}

// Export renders the whole filtered set as CSV, ignoring pagination the
// way the real export endpoint does.
func (repo *StudentRepository) Export(ctx context.Context, filter student.ListFilter) (*upstream.Download, error) {
	students := repo.filtered(filter)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"id", "username", "email", "name", "level", "major", "phone_number", "is_active"})
	for _, std := range students {
		_ = w.Write([]string{
			strconv.Itoa(std.UserID),
			std.Username,
			std.Email,
			std.Name,
			std.Level.Code,
			std.Major.Code,
			std.PhoneNumber,
			strconv.FormatBool(std.IsActive),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return &upstream.Download{
		ContentType: "text/csv",
		Filename:    "etudiants.csv",
		Data:        buf.Bytes(),
	}, nil
}

func (repo *StudentRepository) levelRef(id int) student.Ref {
	repo.api.levels.RLock()
	defer repo.api.levels.RUnlock()

	if lvl, ok := repo.api.levels.table[id]; ok {
		return student.Ref{ID: lvl.ID, Code: lvl.Code, Name: lvl.Name}
	}
	return student.Ref{ID: id}
}

func (repo *StudentRepository) majorRef(id int) student.Ref {
	repo.api.majors.RLock()
	defer repo.api.majors.RUnlock()

	if mjr, ok := repo.api.majors.table[id]; ok {
		return student.Ref{ID: mjr.ID, Code: mjr.Code, Name: mjr.Name}
	}
	return student.Ref{ID: id}
}
