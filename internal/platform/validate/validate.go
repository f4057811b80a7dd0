// Package validate collects field-level input errors for request payloads.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// FieldError describes one invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is a list of field errors. It is returned as an error only when non-empty.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Checker accumulates errors across several checks.
type Checker struct {
	errs Errors
}

// Add records an error for field.
func (c *Checker) Add(field, format string, args ...any) {
	c.errs = append(c.errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Required fails when value is blank.
func (c *Checker) Required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		c.Add(field, "is required")
		return false
	}
	return true
}

// Length fails when the rune count of value is outside [min, max].
func (c *Checker) Length(field, value string, min, max int) bool {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		if min == 0 {
			c.Add(field, "must be at most %d characters", max)
		} else {
			c.Add(field, "must be between %d and %d characters", min, max)
		}
		return false
	}
	return true
}

// Range fails when v is not a finite number in [min, max].
func (c *Checker) Range(field string, v, min, max float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < min || v > max {
		c.Add(field, "must be between %g and %g", min, max)
		return false
	}
	return true
}

// OptionalRange applies Range when v is set.
func (c *Checker) OptionalRange(field string, v *float64, min, max float64) bool {
	if v == nil {
		return true
	}
	return c.Range(field, *v, min, max)
}

// OneOf fails when value is not among allowed.
func (c *Checker) OneOf(field, value string, allowed ...string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	c.Add(field, "must be one of %s", strings.Join(allowed, ", "))
	return false
}

// Email fails when value is not a plausible address of at most max characters.
func (c *Checker) Email(field, value string, max int) bool {
	if !c.Required(field, value) {
		return false
	}
	if len(value) > max {
		c.Add(field, "must be at most %d characters", max)
		return false
	}
	if !emailPattern.MatchString(value) {
		c.Add(field, "must be a valid email address")
		return false
	}
	return true
}

// Err returns the collected errors, or nil when every check passed.
func (c *Checker) Err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs
}
