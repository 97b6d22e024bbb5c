package models

import (
	"github.com/go-playground/validator/v10"
)

// Validator checks articles against the critical field rules
type Validator struct {
	validate *validator.Validate
	rules    map[string]interface{}
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New()
	// required only checks slices and maps for nil, truthy also rejects empty ones
	_ = v.RegisterValidation("truthy", func(fl validator.FieldLevel) bool {
		return Truthy(fl.Field().Interface())
	})

	rules := make(map[string]interface{}, len(CriticalFields))
	for _, f := range CriticalFields {
		rules[f] = "required,truthy"
	}
	return &Validator{validate: v, rules: rules}
}

// Validate returns a *ValidationError naming every critical field that is
// absent or holds an empty or zero value.
func (v *Validator) Validate(a Article) error {
	errs := v.validate.ValidateMap(a, v.rules)
	if len(errs) == 0 {
		return nil
	}

	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	return newValidationError(fields)
}

// Struct validates s using its `validate` struct tags
func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}
