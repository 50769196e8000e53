package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/kbukum/funckit/errors"
)

// FieldError is one failed check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// Validator accumulates failed checks for imperative validation, such as
// constructor arguments that have no struct to carry tags. Every check
// returns the receiver so calls chain.
type Validator struct {
	failed []FieldError
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{}
}

// AddError records a failure for field.
func (v *Validator) AddError(field, message string) {
	v.failed = append(v.failed, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any check failed.
func (v *Validator) HasErrors() bool {
	return len(v.failed) != 0
}

// Errors returns the failures in the order they were recorded.
func (v *Validator) Errors() []FieldError {
	return v.failed
}

// Validate returns nil when every check passed, otherwise an INVALID_INPUT
// AppError whose "fields" detail lists the failures.
func (v *Validator) Validate() error {
	if len(v.failed) == 0 {
		return nil
	}
	parts := make([]string, 0, len(v.failed))
	for _, fe := range v.failed {
		parts = append(parts, fe.String())
	}
	return errors.Validation(strings.Join(parts, "; ")).
		WithDetail("fields", slices.Clone(v.failed))
}

// Custom records message for field unless ok holds.
func (v *Validator) Custom(ok bool, field, message string) *Validator {
	if !ok {
		v.AddError(field, message)
	}
	return v
}

// Required fails on a blank value.
func (v *Validator) Required(field, value string) *Validator {
	return v.Custom(strings.TrimSpace(value) != "", field, "is required")
}

// RequiredUUID fails unless value parses as a non-nil UUID.
func (v *Validator) RequiredUUID(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		return v.Required(field, value)
	}
	id, err := uuid.Parse(value)
	switch {
	case err != nil:
		v.AddError(field, "must be a valid UUID")
	case id == uuid.Nil:
		v.AddError(field, "must not be empty")
	}
	return v
}

// Range fails unless lo <= value <= hi.
func (v *Validator) Range(field string, value, lo, hi int) *Validator {
	return v.Custom(value >= lo && value <= hi, field,
		fmt.Sprintf("must be between %d and %d", lo, hi))
}

// OneOf fails when value is set but not in allowed. Pair it with Required
// to reject empty values too.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	return v.Custom(value == "" || slices.Contains(allowed, value), field,
		"must be one of: "+strings.Join(allowed, ", "))
}
