package validators

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// TagIdentifier validates service names and idempotency keys. Both end up in storage keys,
// so only a leading alphanumeric followed by up to 63 of [A-Za-z0-9._-] is allowed.
const TagIdentifier = "identifier"

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

type Validate = validator.Validate

type ValidationErrors = validator.ValidationErrors

type FieldError = validator.FieldError

// New creates a validator with the visit-analytics tags registered.
func New() *Validate {
	v := validator.New()
	// registration only fails on an empty tag or nil func
	_ = v.RegisterValidation(TagIdentifier, func(fl validator.FieldLevel) bool {
		return identifierPattern.MatchString(fl.Field().String())
	})
	return v
}
