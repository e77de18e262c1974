package document

import (
	"github.com/go-playground/validator/v10"

	"github.com/courati/console/core"
)

func (up *Upload) Validate(validate *validator.Validate) error {
	up.Title = core.CleanString(up.Title)
	up.Description = core.CleanString(up.Description)
	up.DocumentType = core.CleanString(up.DocumentType)
	return validate.Struct(up)
}

func (ud *UpdateDocument) Validate(validate *validator.Validate) error {
	ud.Title = core.CleanString(ud.Title)
	ud.Description = core.CleanString(ud.Description)
	ud.DocumentType = core.CleanString(ud.DocumentType)
	return validate.Struct(ud)
}

func (ba *BulkAction) Validate(validate *validator.Validate) error {
	ba.Action = core.CleanString(ba.Action, true /* lower */)
	return validate.Struct(ba)
}
