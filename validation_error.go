package viewkit

import (
	"net/url"
	"sort"
	"strings"
)

// ValidationError maps field names to their validation messages. It shares
// the url.Values shape so form data and form errors travel the same way.
type ValidationError url.Values

// NewValidationError returns an empty, ready-to-use ValidationError.
func NewValidationError() ValidationError {
	return make(ValidationError)
}

// Error summarizes the failures, one "field: message" pair per field in
// field order.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "Validation failed"
	}

	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if len(e[field]) > 0 {
			parts = append(parts, field+": "+e[field][0])
		}
	}
	return "validation error: " + strings.Join(parts, ", ")
}

// Add appends a message to the field's error list.
func (e ValidationError) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Get returns the field's first message, or "" when the field is clean.
func (e ValidationError) Get(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Has reports whether the field collected any messages.
func (e ValidationError) Has(field string) bool {
	return len(e[field]) > 0
}

// IsEmpty reports whether no field collected a message.
func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}
