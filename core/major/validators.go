package major

import (
	"github.com/go-playground/validator/v10"

	"github.com/courati/console/core"
)

func (nm *NewMajor) Validate(validate *validator.Validate) error {
	nm.Code = core.CleanString(nm.Code)
	nm.Name = core.CleanString(nm.Name)
	nm.Description = core.CleanString(nm.Description)
	return validate.Struct(nm)
}

func (um *UpdateMajor) Validate(validate *validator.Validate) error {
	um.Code = core.CleanString(um.Code)
	um.Name = core.CleanString(um.Name)
	um.Description = core.CleanString(um.Description)
	return validate.Struct(um)
}
