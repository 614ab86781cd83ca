package validator

import (
	"strings"
)

// ValidationError describes one invalid request field.
type ValidationError struct {
	Field   string
	Message string
}

// ValidationErrors collects every invalid field of a request so the
// response can report them all at once. It satisfies error.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

// ToMap flattens the errors into field -> message for the JSON error body.
// When a field appears more than once the last message wins.
func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}
