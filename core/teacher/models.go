package teacher

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/courati/console/core"
)

// PhonePrefix is prepended to the 8 digits typed in the form before the
// number is sent upstream.
const PhonePrefix = "+216"

// Bulk actions accepted by the upstream bulk-action endpoint.
const (
	BulkActivate   = "activate"
	BulkDeactivate = "deactivate"
	BulkDelete     = "delete"
)

// Teacher carries two distinct identifiers: ID is the profile-table id,
// UserID the underlying account's. All admin routes are keyed on UserID.
type Teacher struct {
	ID             int          `json:"id"`
	UserID         int          `json:"user_id"`
	Username       string       `json:"username"`
	Email          string       `json:"email"`
	Name           string       `json:"name"`
	IsActive       bool         `json:"is_active"`
	Specialization string       `json:"specialization"`
	PhoneNumber    string       `json:"phone_number"`
	Assignments    []Assignment `json:"assignments"`
}

// Assignment joins a teacher to a subject with a per-assignment permission set.
type Assignment struct {
	ID                 int        `json:"id"`
	Subject            SubjectRef `json:"subject"`
	CanEditContent     bool       `json:"can_edit_content"`
	CanUploadDocuments bool       `json:"can_upload_documents"`
	CanDeleteDocuments bool       `json:"can_delete_documents"`
	CanManageStudents  bool       `json:"can_manage_students"`
	Notes              string     `json:"notes,omitempty"`
}

type SubjectRef struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type NewTeacher struct {
	Username       string `json:"username" validate:"required,alphanum_"`
	Email          string `json:"email" validate:"required,email"`
	Name           string `json:"name" validate:"required"`
	Password       string `json:"password" validate:"required,min=8"`
	Specialization string `json:"specialization" validate:"required"`
	PhoneNumber    string `json:"phone_number" validate:"required,digits8"`
}

type UpdateTeacher struct {
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	Name           string `json:"name,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	PhoneNumber    string `json:"phone_number,omitempty" validate:"omitempty,digits8"`
	IsActive       *bool  `json:"is_active,omitempty"`
}

// FullPhone returns the stored wire format: the fixed country code plus the
// 8 digits from the form. Already-prefixed numbers pass through unchanged.
func FullPhone(digits string) string {
	if digits == "" || strings.HasPrefix(digits, PhonePrefix) {
		return digits
	}
	return PhonePrefix + digits
}

// LocalPhone strips the country code for display in the 8-digit form field.
func LocalPhone(phone string) string {
	return strings.TrimPrefix(phone, PhonePrefix)
}

type BulkAction struct {
	Action string `json:"action" validate:"required,oneof=activate deactivate delete"`
	IDs    []int  `json:"ids" validate:"required,min=1"` // user IDs
}

type ListFilter struct {
	Search    string
	SubjectID int
	IsActive  *bool
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
	if f.SubjectID != 0 {
		v.Set("subject", strconv.Itoa(f.SubjectID))
	}
	if f.IsActive != nil {
		v.Set("is_active", strconv.FormatBool(*f.IsActive))
	}
	return v
}
