package auth

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Roles, as returned by the upstream API.
const (
	RoleAdmin   = "ADMIN"
	RoleTeacher = "TEACHER"
	RoleStudent = "STUDENT"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// User is the account blob cached in the session at login time. The upstream
// API remains the source of truth; this copy only drives route guarding and
// chrome (name in the header, role-scoped menus).
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

func (u User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u User) IsTeacher() bool { return u.Role == RoleTeacher }

// DashboardPath is where a user lands when they hit a route outside their role.
func (u User) DashboardPath() string {
	if u.IsAdmin() {
		return "/admin"
	}
	return "/teacher"
}

func (u User) MarshalBlob() ([]byte, error) {
	data, err := json.Marshal(u)
	return data, errors.Wrap(err, "marshalling user blob")
}

// UnmarshalBlob parses a cached user blob. A corrupt blob is a hard error:
// the caller must drop the session and treat the visitor as anonymous.
func UnmarshalBlob(data []byte) (User, error) {
	var usr User
	if len(data) == 0 {
		return usr, errors.New("empty user blob")
	}
	if err := json.Unmarshal(data, &usr); err != nil {
		return usr, errors.Wrap(err, "parsing user blob")
	}
	if usr.ID == 0 || usr.Role == "" {
		return usr, errors.New("incomplete user blob")
	}
	return usr, nil
}

type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult mirrors the upstream login payload: {access, refresh, user}.
type LoginResult struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    User   `json:"user"`
}

// Profile is the editable account view behind the profile page.
type Profile struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

type UpdateProfile struct {
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber string `json:"phone_number,omitempty" validate:"omitempty,digits8"`
}

type ChangePassword struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

// Stats is the server-aggregated profile stats card (teacher surface).
type Stats struct {
	SubjectCount  int `json:"subject_count"`
	DocumentCount int `json:"document_count"`
	QuizCount     int `json:"quiz_count"`
	StudentCount  int `json:"student_count"`
}
