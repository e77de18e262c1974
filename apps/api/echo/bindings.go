package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/courati/console/core"
)

const maxPageSize = 100

// ListQuery is the shared shape of list endpoints: a free-text search, the
// categorical filters each resource picks from, and pagination.
type ListQuery struct {
	Search       string `query:"search"`
	LevelID      int    `query:"level"`
	MajorID      int    `query:"major"`
	SubjectID    int    `query:"subject"`
	DocumentType string `query:"document_type"`
	IsActive     *bool  `query:"is_active"`
	Page         int    `query:"page"`
	PageSize     int    `query:"page_size"`
}

func bindListQuery(ctx echo.Context) (ListQuery, error) {
	var q ListQuery
	if err := ctx.Bind(&q); err != nil {
		return ListQuery{}, core.NewValidationError(errors.New("paramètres de recherche invalides"))
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
	return q, nil
}

// intParam parses a numeric path param; a garbage id is a 404, not a 400,
// matching how the upstream treats unparseable detail routes.
func intParam(ctx echo.Context, name string) (int, error) {
	val, err := strconv.Atoi(ctx.Param(name))
	if err != nil || val < 1 {
		return 0, core.NewNotFoundError("Ressource introuvable.")
	}
	return val, nil
}

type (
	// SuccessResponse carries the French toast shown after a mutation.
	SuccessResponse struct {
		Success string `json:"success"`
	}

	// GuardResponse is the envelope the route guards answer with: where to
	// log in and where to come back to, or the action left to a caller who
	// has no business here.
	GuardResponse struct {
		Error  string `json:"error"`
		Login  string `json:"login,omitempty"`
		Next   string `json:"next,omitempty"`
		Action string `json:"action,omitempty"`
	}
)
