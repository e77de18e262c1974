package subject

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/courati/console/core"
)

const (
	errExactlyOneLevel = "exactement un niveau doit être sélectionné"
	errAtLeastOneMajor = "au moins une filière doit être sélectionnée"
)

// Validate enforces the subject form rules: exactly one level selected,
// at least one major. Violations are collected and reported together.
func (ns *NewSubject) Validate(validate *validator.Validate) error {
	ns.Code = core.CleanString(ns.Code)
	ns.Name = core.CleanString(ns.Name)
	ns.Description = core.CleanString(ns.Description)
	if err := validate.Struct(ns); err != nil {
		return err
	}
	return checkRelations(ns.LevelIDs, ns.MajorIDs, true)
}

func (us *UpdateSubject) Validate(validate *validator.Validate) error {
	us.Code = core.CleanString(us.Code)
	us.Name = core.CleanString(us.Name)
	us.Description = core.CleanString(us.Description)
	if err := validate.Struct(us); err != nil {
		return err
	}
	// on update, untouched relation lists are omitted
	if us.LevelIDs == nil && us.MajorIDs == nil {
		return nil
	}
	return checkRelations(us.LevelIDs, us.MajorIDs, false)
}

func (at *AssignTeacher) Validate(validate *validator.Validate) error {
	at.Notes = core.CleanString(at.Notes)
	return validate.Struct(at)
}

func checkRelations(levelIDs, majorIDs []int, required bool) error {
	var flds []core.FieldError
	if len(levelIDs) != 1 && (required || levelIDs != nil) {
		flds = append(flds, core.FieldError{Field: "levels", Error: errExactlyOneLevel})
	}
	if len(majorIDs) < 1 && (required || majorIDs != nil) {
		flds = append(flds, core.FieldError{Field: "majors", Error: errAtLeastOneMajor})
	}
	if len(flds) > 0 {
		return core.NewValidationError(errors.New("invalid subject relations"), flds...)
	}
	return nil
}
