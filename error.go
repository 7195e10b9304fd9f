package mison

import (
	"fmt"

	"github.com/structindex/mison-go/internal/scanner"
)

// ParseErrorKind identifies the class of structural or lexical failure.
type ParseErrorKind int

const (
	// ParseErrUnterminatedString reports an odd number of unescaped quotes.
	ParseErrUnterminatedString ParseErrorKind = iota
	// ParseErrUnbalancedBrackets reports mismatched, unopened, or
	// unclosed braces and brackets.
	ParseErrUnbalancedBrackets
	// ParseErrInvalidEscape reports a malformed backslash escape inside
	// a string.
	ParseErrInvalidEscape
	// ParseErrUnexpectedToken reports bytes that cannot start or
	// complete a JSON value where one is required.
	ParseErrUnexpectedToken
	// ParseErrDepthExceeded reports nesting beyond the hard container
	// ceiling.
	ParseErrDepthExceeded
)

func (k ParseErrorKind) String() string {
	switch k {
	case ParseErrUnterminatedString:
		return "unterminated string"
	case ParseErrUnbalancedBrackets:
		return "unbalanced brackets"
	case ParseErrInvalidEscape:
		return "invalid escape"
	case ParseErrUnexpectedToken:
		return "unexpected token"
	case ParseErrDepthExceeded:
		return "depth exceeded"
	}
	return "unknown error"
}

// ParseError is the single error value a failed parse returns. Offset is
// the byte position where the failure was detected. No partial result
// accompanies a ParseError: a structural index is only meaningful for a
// well-formed document.
type ParseError struct {
	Kind   ParseErrorKind
	Offset int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("mison: %s at offset %d", e.Kind, e.Offset)
}

func parseErrorAt(kind ParseErrorKind, offset int) *ParseError {
	return &ParseError{Kind: kind, Offset: offset}
}

// fromScanError converts an internal scanner error at the API boundary.
func fromScanError(err *scanner.Error) *ParseError {
	var kind ParseErrorKind
	switch err.Code {
	case scanner.CodeUnterminatedString:
		kind = ParseErrUnterminatedString
	case scanner.CodeUnbalancedBrackets:
		kind = ParseErrUnbalancedBrackets
	case scanner.CodeDepthExceeded:
		kind = ParseErrDepthExceeded
	default:
		kind = ParseErrUnexpectedToken
	}
	return &ParseError{Kind: kind, Offset: err.Offset}
}

// PathErrorKind identifies why a query path was rejected.
type PathErrorKind int

const (
	// PathErrMalformed reports bad path syntax: a missing "$" root,
	// an empty segment, or a trailing dot.
	PathErrMalformed PathErrorKind = iota
	// PathErrUnsupported reports an array-index segment, which the
	// query engine does not implement.
	PathErrUnsupported
)

// PathError is returned by QueryTree.AddPath for an unusable path string.
type PathError struct {
	Kind PathErrorKind
	Path string
}

func (e *PathError) Error() string {
	switch e.Kind {
	case PathErrUnsupported:
		return fmt.Sprintf("mison: unsupported path %q: array indexing is not implemented", e.Path)
	default:
		return fmt.Sprintf("mison: malformed path %q", e.Path)
	}
}
