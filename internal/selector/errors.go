package selector

import "fmt"

// ParseError reports a syntax error in a textual selector expression.
type ParseError struct {
	// Pos is the byte offset of the offending token in the input.
	Pos int
	// Token is the offending token. Empty when the input ended early.
	Token string
	// Message describes what the parser expected.
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("parse error at position %d: %s", e.Pos, e.Message)
	}
	return fmt.Sprintf("parse error at position %d near %q: %s", e.Pos, e.Token, e.Message)
}

// ValidationError reports a label key, value or operator that violates
// the grammar or the configured length limits.
type ValidationError struct {
	// Field is the part that failed validation: "key", "value",
	// "values" or "operator".
	Field string
	// Value is the offending input.
	Value string
	// Message describes the violated rule.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
}
