package checker

import (
	"fmt"

	"github.com/waxlang/waxc/internal/ast"
)

// ErrorKind distinguishes the type-error taxonomy.
type ErrorKind int

const (
	Invalid ErrorKind = iota
	Unexpected
	InvalidIdentifier
)

// Error is the checker's single error type, tagged by ErrorKind.
type Error struct {
	Kind ErrorKind

	// Invalid: the offending type.
	Type ast.Type

	// Unexpected: actual vs. required type.
	Got      ast.Type
	Expected ast.Type

	// InvalidIdentifier: the undefined name.
	Name string
}

func (e *Error) Error() string {
	switch e.Kind {
	case Unexpected:
		return fmt.Sprintf("unexpected type: got %s, expected %s", e.Got, e.Expected)
	case InvalidIdentifier:
		return fmt.Sprintf("undefined identifier %q", e.Name)
	default:
		return fmt.Sprintf("invalid type: %s", e.Type)
	}
}

func errInvalid(t ast.Type) *Error {
	return &Error{Kind: Invalid, Type: t}
}

func errUnexpected(got, expected ast.Type) *Error {
	return &Error{Kind: Unexpected, Got: got, Expected: expected}
}

func errInvalidIdentifier(name string) *Error {
	return &Error{Kind: InvalidIdentifier, Name: name}
}
