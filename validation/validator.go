package validation

import (
	"fmt"
	"strings"

	"github.com/kbukum/order-service/errors"
)

// FieldError is one failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string { return e.Field + ": " + e.Message }

// Validator accumulates failed rules for hand-written checks such as call
// arguments. Rules chain; Validate reports all failures at once.
type Validator struct {
	failures []FieldError
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{}
}

// AddError records a failure for field.
func (v *Validator) AddError(field, message string) {
	v.failures = append(v.failures, FieldError{Field: field, Message: message})
}

// Check records message for field unless ok holds.
func (v *Validator) Check(ok bool, field, message string) *Validator {
	if !ok {
		v.AddError(field, message)
	}
	return v
}

// Required fails on empty or whitespace-only values.
func (v *Validator) Required(field, value string) *Validator {
	return v.Check(strings.TrimSpace(value) != "", field, "is required")
}

// Min fails when value is below minVal.
func (v *Validator) Min(field string, value, minVal int) *Validator {
	return v.Check(value >= minVal, field, fmt.Sprintf("must be at least %d", minVal))
}

// HasErrors reports whether any rule failed.
func (v *Validator) HasErrors() bool { return len(v.failures) > 0 }

// Errors returns the recorded failures in order.
func (v *Validator) Errors() []FieldError { return v.failures }

// Validate returns nil when every rule passed, otherwise an INVALID_INPUT
// AppError whose message joins all failures and whose "fields" detail lists
// them. The static type is error so a clean result compares equal to nil.
func (v *Validator) Validate() error {
	if !v.HasErrors() {
		return nil
	}
	parts := make([]string, len(v.failures))
	for i, f := range v.failures {
		parts[i] = f.String()
	}
	return errors.Validation(strings.Join(parts, "; ")).WithDetail("fields", v.failures)
}
