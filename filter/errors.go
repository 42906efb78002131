package filter

import "fmt"

// ErrKind classifies a syntax error.
type ErrKind uint8

const (
	// ErrKindSyntax is the catch-all for parse failures that don't fit
	// a more specific kind.
	ErrKindSyntax ErrKind = iota
	// ErrKindUnexpectedEOF means the input ended while more tokens were expected.
	ErrKindUnexpectedEOF
	// ErrKindInvalidChar means a character outside the grammar was found.
	ErrKindInvalidChar
	// ErrKindUnclosedString means a string literal was never terminated.
	ErrKindUnclosedString
	// ErrKindUnclosedParen means an opening parenthesis was never closed.
	ErrKindUnclosedParen
	// ErrKindInvalidEscape means a string contained an unsupported escape sequence.
	ErrKindInvalidEscape
	// ErrKindInvalidNumber means a numeric literal was malformed or
	// overflowed 64 bits.
	ErrKindInvalidNumber
	// ErrKindEmptyArray means an array literal had no elements.
	ErrKindEmptyArray
	// ErrKindNestingTooDeep means the expression exceeded the maximum
	// nesting depth.
	ErrKindNestingTooDeep
	// ErrKindInputTooLong means the filter text exceeded the maximum length.
	ErrKindInputTooLong
)

// String returns a short name for the error kind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindSyntax:
		return "syntax"
	case ErrKindUnexpectedEOF:
		return "unexpected_eof"
	case ErrKindInvalidChar:
		return "invalid_char"
	case ErrKindUnclosedString:
		return "unclosed_string"
	case ErrKindUnclosedParen:
		return "unclosed_paren"
	case ErrKindInvalidEscape:
		return "invalid_escape"
	case ErrKindInvalidNumber:
		return "invalid_number"
	case ErrKindEmptyArray:
		return "empty_array"
	case ErrKindNestingTooDeep:
		return "nesting_too_deep"
	case ErrKindInputTooLong:
		return "input_too_long"
	default:
		return "unknown"
	}
}

// SyntaxError describes a failure to parse a filter expression.
//
// Offset is the byte offset into the input; Line and Column are 1-based
// and suitable for rendering a pointer into the source text. Hint, when
// non-empty, is a one-line remediation suggestion. It is advisory only.
type SyntaxError struct {
	Kind   ErrKind
	Offset int
	Line   int
	Column int
	Msg    string
	Hint   string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	s := fmt.Sprintf("%s at offset %d (line %d, column %d): %s", e.Kind, e.Offset, e.Line, e.Column, e.Msg)
	if e.Hint != "" {
		s += " (" + e.Hint + ")"
	}
	return s
}

// newSyntaxError builds a SyntaxError, deriving line/column from the
// byte offset.
func newSyntaxError(input string, kind ErrKind, offset int, msg, hint string) *SyntaxError {
	if offset > len(input) {
		offset = len(input)
	}
	line, col := 1, 1
	for _, b := range []byte(input[:offset]) {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return &SyntaxError{
		Kind:   kind,
		Offset: offset,
		Line:   line,
		Column: col,
		Msg:    msg,
		Hint:   hint,
	}
}
