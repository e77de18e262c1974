package student

import (
	"net/url"
	"strconv"

	"github.com/volatiletech/null/v8"

	"github.com/courati/console/core"
	"github.com/courati/console/core/teacher"
)

// Bulk actions accepted by the upstream bulk-action endpoint.
const (
	BulkActivate   = "activate"
	BulkDeactivate = "deactivate"
	BulkDelete     = "delete"
)

// Student carries two distinct identifiers like Teacher: ID is the profile
// id, UserID the account's; admin routes are keyed on UserID.
type Student struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	IsActive    bool      `json:"is_active"`
	LevelID     int       `json:"level_id"`
	Level       Ref       `json:"level"`
	MajorID     int       `json:"major_id"`
	Major       Ref       `json:"major"`
	PhoneNumber string    `json:"phone_number"`
	DateOfBirth null.Time `json:"date_of_birth,omitempty"`
	Address     string    `json:"address,omitempty"`
}

type Ref struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type NewStudent struct {
	Username    string `json:"username" validate:"required,alphanum_"`
	Email       string `json:"email" validate:"required,email"`
	Name        string `json:"name" validate:"required"`
	Password    string `json:"password" validate:"required,min=8"`
	LevelID     int    `json:"level_id" validate:"required"`
	MajorID     int    `json:"major_id" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required,digits8"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Address     string `json:"address,omitempty"`
}

type UpdateStudent struct {
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Name        string `json:"name,omitempty"`
	LevelID     *int   `json:"level_id,omitempty"`
	MajorID     *int   `json:"major_id,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty" validate:"omitempty,digits8"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Address     string `json:"address,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

type BulkAction struct {
	Action string `json:"action" validate:"required,oneof=activate deactivate delete"`
	IDs    []int  `json:"ids" validate:"required,min=1"` // user IDs
}

// Page is one server-driven page of students.
type Page struct {
	Results    []Student `json:"results"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	Total      int       `json:"total"`
	TotalPages int       `json:"total_pages"`
}

// ListFilter is sent upstream as-is: students are server-paginated.
type ListFilter struct {
	Search   string
	LevelID  int
	MajorID  int
	IsActive *bool
	Page     int
	PageSize int
}

func (f ListFilter) Clean() ListFilter {
	f.Search = core.CleanString(f.Search)
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}
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
	v.Set("page", strconv.Itoa(f.Page))
	v.Set("page_size", strconv.Itoa(f.PageSize))
	return v
}

// FullPhone / LocalPhone share the teacher rules (same country, same form).
func FullPhone(digits string) string { return teacher.FullPhone(digits) }
func LocalPhone(phone string) string { return teacher.LocalPhone(phone) }
