package healthcalc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInsufficientData is matched (errors.Is) by every InsufficientDataError. It marks a skipped
// optional stage, not a failure.
var ErrInsufficientData = errors.New("insufficient data")

// ValidationError is returned when a required input is missing or outside its documented range.
// Callers re-prompt the user; it is never fatal.
type ValidationError struct {
	Field  string
	Value  float64
	Min    float64
	Max    float64
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %g is outside [%g, %g]", e.Field, e.Value, e.Min, e.Max)
}

// InsufficientDataError reports that a stage was skipped because inputs it needs are absent
// or not supported by its formula (e.g. a gender other than male/female).
type InsufficientDataError struct {
	Stage   Stage
	Missing []string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s skipped: insufficient data (%s)", e.Stage, strings.Join(e.Missing, ", "))
}

// Is reports whether target is ErrInsufficientData.
func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func missingField(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "is required"}
}
