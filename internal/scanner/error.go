package scanner

import "fmt"

// ErrorCode identifies a structural failure found while building or walking
// the index.
type ErrorCode int

const (
	// CodeUnterminatedString marks an odd number of unescaped quotes.
	CodeUnterminatedString ErrorCode = iota
	// CodeUnbalancedBrackets marks mismatched or leftover braces/brackets.
	CodeUnbalancedBrackets
	// CodeDepthExceeded marks nesting past the hard container ceiling.
	CodeDepthExceeded
	// CodeUnexpectedToken marks a span that is not a valid JSON value.
	CodeUnexpectedToken
)

// Error is a structural error with the byte offset where it was detected.
type Error struct {
	Code   ErrorCode
	Offset int
}

func (e *Error) Error() string {
	var what string
	switch e.Code {
	case CodeUnterminatedString:
		what = "unterminated string"
	case CodeUnbalancedBrackets:
		what = "unbalanced brackets"
	case CodeDepthExceeded:
		what = "nesting depth exceeded"
	default:
		what = "unexpected token"
	}
	return fmt.Sprintf("%s at offset %d", what, e.Offset)
}
