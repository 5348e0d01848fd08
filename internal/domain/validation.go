package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var alphanumericPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// ErrDimensionsNotAccepted is returned when dimension entries are present
// for a carrier that ships loose cartons only
var ErrDimensionsNotAccepted = errors.New("carrier accepts individual items only: enter the total item count as cartons and remove skids, carpets and boxes")

// FieldViolation describes a raw input field that failed a format rule
type FieldViolation struct {
	Field  string
	Reason string
}

// Error implements the error interface
func (e *FieldViolation) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// CountMismatchError reports a declared skid count that disagrees with
// the dimension list
type CountMismatchError struct {
	Declared int
	Actual   int
}

// Error implements the error interface
func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("declared skid count %d does not match %d skid dimensions entered", e.Declared, e.Actual)
}

// ValidateAlphanumeric checks that the trimmed value is a non-empty run
// of letters and digits
func ValidateAlphanumeric(value, field string) error {
	if alphanumericPattern.MatchString(strings.TrimSpace(value)) {
		return nil
	}
	return &FieldViolation{Field: field, Reason: "is required and must contain only letters and numbers"}
}

// ValidateNumeric checks that the trimmed value parses as a number.
// Decimals are accepted.
func ValidateNumeric(value, field string) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err != nil {
		return &FieldViolation{Field: field, Reason: "must be a valid number"}
	}
	return nil
}
