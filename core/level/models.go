package level

import (
	"net/url"

	"github.com/volatiletech/null/v8"

	"github.com/courati/console/core"
)

// Level is an academic level (L1, L2, M1...). Referenced by subjects and students.
type Level struct {
	ID          int         `json:"id"`
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	Order       int         `json:"order"`
	Description null.String `json:"description,omitempty"`
}

type NewLevel struct {
	Code        string `json:"code" validate:"required,alphanum_"`
	Name        string `json:"name" validate:"required"`
	Order       int    `json:"order" validate:"gte=0"`
	Description string `json:"description,omitempty"`
}

type UpdateLevel struct {
	Code        string `json:"code,omitempty" validate:"omitempty,alphanum_"`
	Name        string `json:"name,omitempty"`
	Order       *int   `json:"order,omitempty" validate:"omitempty,gte=0"`
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
