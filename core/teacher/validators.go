package teacher

import (
	"github.com/go-playground/validator/v10"

	"github.com/courati/console/core"
)

func (nt *NewTeacher) Validate(validate *validator.Validate) error {
	nt.Username = core.CleanString(nt.Username, true /* lower */)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.Name = core.CleanString(nt.Name)
	nt.Specialization = core.CleanString(nt.Specialization)
	nt.PhoneNumber = core.CleanString(nt.PhoneNumber)
	return validate.Struct(nt)
}

func (ut *UpdateTeacher) Validate(validate *validator.Validate) error {
	ut.Email = core.CleanString(ut.Email, true /* lower */)
	ut.Name = core.CleanString(ut.Name)
	ut.Specialization = core.CleanString(ut.Specialization)
	ut.PhoneNumber = core.CleanString(ut.PhoneNumber)
	return validate.Struct(ut)
}

func (ba *BulkAction) Validate(validate *validator.Validate) error {
	ba.Action = core.CleanString(ba.Action, true /* lower */)
	return validate.Struct(ba)
}
