package core

import (
	"reflect"
	"regexp"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// custom validation tags & texts
	alphaNumUnderTag   = "alphanum_"
	alphaNumUnderText  = "only alphanumeric characters and underscores are allowed"
	alphaNumUnderRegex = regexp.MustCompile(`^[\w\s]+$`)

	// local phone numbers: exactly 8 digits, the +216 prefix is added on save
	digits8Tag   = "digits8"
	digits8Text  = "must be exactly 8 digits"
	digits8Regex = regexp.MustCompile(`^[0-9]{8}$`)

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"

	eqfieldTag  = "eqfield"
	eqfieldText = "{0} must be equal to {1}"

	camelBoundaryRegex = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(alphaNumUnderTag, alphaNumUnderValidation)
	RegisterCustomTranslation(validate, translator, alphaNumUnderTag, alphaNumUnderText)

	_ = validate.RegisterValidation(digits8Tag, digits8Validation)
	RegisterCustomTranslation(validate, translator, digits8Tag, digits8Text)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)

	// eqfield's param names a sibling Go field (eqfield=NewPassword); render
	// it in JSON form so messages match the keys the API exposes.
	_ = validate.RegisterTranslation(
		eqfieldTag, translator,
		func(t ut.Translator) error { return t.Add(eqfieldTag, eqfieldText, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(eqfieldTag, fe.Field(), jsonFieldName(fe.Param()))
			return s
		},
	)
}

// jsonFieldName maps a Go field name to its conventional snake_case JSON name.
func jsonFieldName(name string) string {
	return strings.ToLower(camelBoundaryRegex.ReplaceAllString(name, "${1}_${2}"))
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Custom Global Validators

// alphaNumUnderValidation only allows alphanumeric characters and underscores.
func alphaNumUnderValidation(fl validator.FieldLevel) bool {
	return alphaNumUnderRegex.MatchString(fl.Field().String())
}

func digits8Validation(fl validator.FieldLevel) bool {
	return digits8Regex.MatchString(fl.Field().String())
}
