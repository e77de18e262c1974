package student

import (
	"github.com/go-playground/validator/v10"

	"github.com/courati/console/core"
)

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Username = core.CleanString(ns.Username, true /* lower */)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Name = core.CleanString(ns.Name)
	ns.PhoneNumber = core.CleanString(ns.PhoneNumber)
	ns.Address = core.CleanString(ns.Address)
	return validate.Struct(ns)
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	us.Email = core.CleanString(us.Email, true /* lower */)
	us.Name = core.CleanString(us.Name)
	us.PhoneNumber = core.CleanString(us.PhoneNumber)
	us.Address = core.CleanString(us.Address)
	return validate.Struct(us)
}

func (ba *BulkAction) Validate(validate *validator.Validate) error {
	ba.Action = core.CleanString(ba.Action, true /* lower */)
	return validate.Struct(ba)
}
