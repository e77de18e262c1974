package level

import (
	"github.com/go-playground/validator/v10"

	"github.com/courati/console/core"
)

func (nl *NewLevel) Validate(validate *validator.Validate) error {
	nl.Code = core.CleanString(nl.Code)
	nl.Name = core.CleanString(nl.Name)
	nl.Description = core.CleanString(nl.Description)
	return validate.Struct(nl)
}

func (ul *UpdateLevel) Validate(validate *validator.Validate) error {
	ul.Code = core.CleanString(ul.Code)
	ul.Name = core.CleanString(ul.Name)
	ul.Description = core.CleanString(ul.Description)
	return validate.Struct(ul)
}
