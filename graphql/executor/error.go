package executor

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error categories. Errors in the internal category are not safe to show to clients.
const (
	CategoryGraphQL  = "graphql"
	CategoryInternal = "internal"
	CategoryUser     = "user"
)

// Error codes.
const (
	CodeFieldNotFound     = "FIELD_NOT_FOUND"
	CodeMissingVariable   = "MISSING_VARIABLE"
	CodeNonNullViolation  = "NON_NULL_VIOLATION"
	CodeInvalidResult     = "INVALID_RESULT"
	CodeResolverError     = "RESOLVER_ERROR"
	CodeOperationNotFound = "OPERATION_NOT_FOUND"
	CodeNoRootType        = "NO_ROOT_TYPE"
)

type Error struct {
	// Executor error messages are formatted as sentences, e.g. "An error occurred."
	Message string

	// If the error occurred during the resolution of a particular field, a path will be present.
	Path []interface{}

	Category string
	Code     string

	originalError error
}

func (err *Error) Error() string {
	return err.Message
}

// Unwrap returns the typed cause, e.g. a *ResolverError or *NonNullViolationError.
func (err *Error) Unwrap() error {
	return err.originalError
}

// IsClientSafe returns true if the error's message may be shown to clients as-is.
func (err *Error) IsClientSafe() bool {
	return err.Category != CategoryInternal
}

func newError(code string, message string, args ...interface{}) *Error {
	return &Error{
		Message:  fmt.Sprintf(message, args...),
		Category: CategoryGraphQL,
		Code:     code,
	}
}

func newFieldError(p *path, cause error) *Error {
	ret := &Error{
		Message:       cause.Error(),
		Path:          p.Slice(),
		Category:      CategoryGraphQL,
		originalError: cause,
	}
	switch cause := cause.(type) {
	case *FieldNotFoundError:
		ret.Code = CodeFieldNotFound
	case *MissingVariableError:
		ret.Code = CodeMissingVariable
	case *NonNullViolationError:
		ret.Code = CodeNonNullViolation
	case *InvalidResultError:
		ret.Code = CodeInvalidResult
	case *ResolverError:
		ret.Code = CodeResolverError
		ret.Category = CategoryInternal
		var safe clientSafe
		if errors.As(cause.Err, &safe) && safe.ClientSafe() {
			ret.Category = CategoryUser
			if c, ok := safe.(categorized); ok && c.Category() != "" {
				ret.Category = c.Category()
			}
		}
	}
	return ret
}

// Resolver errors implementing this interface and returning true have their messages shown to
// clients.
type clientSafe interface {
	error
	ClientSafe() bool
}

type categorized interface {
	Category() string
}

// FieldNotFoundError indicates that a selection references a field the type doesn't have.
type FieldNotFoundError struct {
	TypeName  string
	FieldName string
}

func (err *FieldNotFoundError) Error() string {
	return fmt.Sprintf("Field %q not found on type %q.", err.FieldName, err.TypeName)
}

// MissingVariableError indicates that an argument references a variable that was neither given
// nor declared with a default.
type MissingVariableError struct {
	VariableName string
	FieldName    string
}

func (err *MissingVariableError) Error() string {
	return fmt.Sprintf("Variable \"$%v\" required by field %q was not provided.", err.VariableName, err.FieldName)
}

// ResolverError wraps an error returned by a resolver or a recovered resolver panic.
type ResolverError struct {
	TypeName  string
	FieldName string
	Err       error

	// For panics, the recovered value and the stack of the panicking goroutine.
	Panic interface{}
	Stack []byte
}

func (err *ResolverError) Error() string {
	return err.Err.Error()
}

func (err *ResolverError) Unwrap() error {
	return err.Err
}

// NonNullViolationError indicates that a non-null position resolved to null.
type NonNullViolationError struct {
	TypeName  string
	FieldName string
}

func (err *NonNullViolationError) Error() string {
	return fmt.Sprintf("Cannot return null for non-nullable field \"%v.%v\".", err.TypeName, err.FieldName)
}

// InvalidResultError indicates that a resolved value doesn't have the shape its declared type
// requires.
type InvalidResultError struct {
	TypeName  string
	FieldName string
	Reason    string
}

func (err *InvalidResultError) Error() string {
	return fmt.Sprintf("Invalid result for field \"%v.%v\": %v.", err.TypeName, err.FieldName, err.Reason)
}
