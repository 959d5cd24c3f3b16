package parser

import (
	"fmt"
	"strings"
)

type ErrorKind int

const (
	// SyntaxError is any malformed input: unexpected tokens, unterminated strings, unbalanced braces.
	SyntaxError ErrorKind = iota

	// EmptySelectionSetError is a selection set with no selections, e.g. "{ product {} }".
	EmptySelectionSetError
)

// Error describes why a document was rejected. Parsing stops at the first error.
type Error struct {
	Kind ErrorKind

	// The byte offset of the offending input.
	Offset int

	// A short, single-line piece of the document surrounding Offset.
	Excerpt string

	message string
}

func (err *Error) Error() string {
	if err.Excerpt == "" {
		return fmt.Sprintf("Syntax Error: %v at offset %v.", err.message, err.Offset)
	}
	return fmt.Sprintf("Syntax Error: %v at offset %v near %q.", err.message, err.Offset, err.Excerpt)
}

const excerptRadius = 16

func excerpt(src []byte, offset int) string {
	start := offset - excerptRadius
	if start < 0 {
		start = 0
	}
	end := offset + excerptRadius
	if end > len(src) {
		end = len(src)
	}
	if start > end {
		start = end
	}
	return strings.Join(strings.Fields(string(src[start:end])), " ")
}
