package major

import (
	"net/url"

	"github.com/volatiletech/null/v8"

	"github.com/courati/console/core"
)

// Major is a field of study (GLSI, RSI...). Referenced by subjects and students.
type Major struct {
	ID          int         `json:"id"`
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	Description null.String `json:"description,omitempty"`
}

type NewMajor struct {
	Code        string `json:"code" validate:"required,alphanum_"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

type UpdateMajor struct {
	Code        string `json:"code,omitempty" validate:"omitempty,alphanum_"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

type ListFilter struct {
	Search string
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
	return v
}
