package subject

import (
	"net/url"
	"strconv"

	"github.com/volatiletech/null/v8"

	"github.com/courati/console/core"
)

// Subject is a course unit. The levels field is plural on the wire but the
// product only ever attaches one level per subject; majors are one-or-more.
type Subject struct {
	ID          int         `json:"id"`
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	Description null.String `json:"description,omitempty"`
	Levels      []Ref       `json:"levels"`
	Majors      []Ref       `json:"majors"`
	Credits     int         `json:"credits"`
	Semester    int         `json:"semester"`
	IsActive    bool        `json:"is_active"`
	Teachers    []TeacherRef `json:"teachers,omitempty"`
}

// Ref is a lightweight reference to a level or major.
type Ref struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// TeacherRef is an assigned teacher as seen from the subject side.
type TeacherRef struct {
	AssignmentID int    `json:"assignment_id"`
	TeacherID    int    `json:"teacher_id"`
	Name         string `json:"name"`
}

type NewSubject struct {
	Code        string `json:"code" validate:"required,alphanum_"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	LevelIDs    []int  `json:"levels"`
	MajorIDs    []int  `json:"majors"`
	Credits     int    `json:"credits" validate:"gte=0"`
	Semester    int    `json:"semester" validate:"gte=1,lte=2"`
}

type UpdateSubject struct {
	Code        string `json:"code,omitempty" validate:"omitempty,alphanum_"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	LevelIDs    []int  `json:"levels,omitempty"`
	MajorIDs    []int  `json:"majors,omitempty"`
	Credits     *int   `json:"credits,omitempty" validate:"omitempty,gte=0"`
	Semester    *int   `json:"semester,omitempty" validate:"omitempty,gte=1,lte=2"`
}

// AssignTeacher grants a teacher access to the subject with a per-assignment
// permission set.
type AssignTeacher struct {
	TeacherID          int    `json:"teacher_id" validate:"required"`
	CanEditContent     bool   `json:"can_edit_content"`
	CanUploadDocuments bool   `json:"can_upload_documents"`
	CanDeleteDocuments bool   `json:"can_delete_documents"`
	CanManageStudents  bool   `json:"can_manage_students"`
	Notes              string `json:"notes,omitempty"`
}

type ListFilter struct {
	Search   string
	LevelID  int
	MajorID  int
	IsActive *bool
}

func (f ListFilter) Clean() ListFilter {
	f.Search = core.CleanString(f.Search)
	return f
}

func (f ListFilter) Values() url.Values {
	v := make(url.Values)
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.LevelID != 0 {
		v.Set("level", strconv.Itoa(f.LevelID))
	}
	if f.MajorID != 0 {
		v.Set("major", strconv.Itoa(f.MajorID))
	}
	if f.IsActive != nil {
		v.Set("is_active", strconv.FormatBool(*f.IsActive))
	}
	return v
}
