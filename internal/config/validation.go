package config

import (
	"fmt"
	"strings"

	"casebook/pkg/logging"
)

// OutputFormats lists the values accepted for output.
var OutputFormats = []string{"table", "json", "yaml"}

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value interface{}) {
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	})
}

// Validate checks every field and reports all problems at once.
func (c CasebookConfig) Validate() error {
	var errs ValidationErrors

	if err := ValidateOneOf("output", strings.ToLower(c.Output), OutputFormats); err != nil {
		errs = append(errs, err.(ValidationError))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs.Add("logLevel", "must be one of: debug, info, warn, error", c.LogLevel)
	}
	if c.NameWidth < 0 {
		errs.Add("nameWidth", "must not be negative", c.NameWidth)
	}
	if c.Parallelism < 0 {
		errs.Add("parallelism", "must not be negative", c.Parallelism)
	}
	if c.Watch.Debounce < 0 {
		errs.Add("watch.debounce", "must not be negative", c.Watch.Debounce)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateOneOf checks if a value is in a list of allowed values
func ValidateOneOf(field, value string, allowed []string) error {
	for _, allowedValue := range allowed {
		if value == allowedValue {
			return nil
		}
	}
	return ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}
