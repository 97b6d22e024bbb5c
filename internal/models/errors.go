package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotObject is returned when an input element is not a JSON object.
var ErrNotObject = errors.New("record is not a JSON object")

// ValidationError lists the fields of a record that failed validation.
type ValidationError struct {
	Fields []string
}

func newValidationError(fields []string) *ValidationError {
	sort.Strings(fields)
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing critical fields: %s", strings.Join(e.Fields, ", "))
}
