package schema

import "fmt"

// DuplicateTypeError is returned when a type or scalar name is registered more than once.
type DuplicateTypeError struct {
	Name string
}

func (err *DuplicateTypeError) Error() string {
	return fmt.Sprintf("multiple definitions for named type: %v", err.Name)
}

// DuplicateFieldError is returned when a field name is registered more than once on a type.
type DuplicateFieldError struct {
	TypeName  string
	FieldName string
}

func (err *DuplicateFieldError) Error() string {
	return fmt.Sprintf("multiple definitions for field: %v.%v", err.TypeName, err.FieldName)
}
