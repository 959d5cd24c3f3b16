package ast

import "strings"

type Document struct {
	Operations []*OperationDefinition
}

type OperationType string

const (
	OperationTypeQuery    OperationType = "query"
	OperationTypeMutation OperationType = "mutation"
)

func (t OperationType) IsValid() bool {
	switch t {
	case OperationTypeQuery, OperationTypeMutation:
		return true
	default:
		return false
	}
}

// OperationDefinition is a single query or mutation. Anonymous shorthand documents ("{ ... }") are
// parsed as queries with no name.
type OperationDefinition struct {
	Offset              int
	OperationType       OperationType
	Name                *Name
	VariableDefinitions []*VariableDefinition
	SelectionSet        *SelectionSet
}

// OperationName returns the operation's name or the empty string for anonymous operations.
func (op *OperationDefinition) OperationName() string {
	if op.Name == nil {
		return ""
	}
	return op.Name.Name
}

type VariableDefinition struct {
	Offset       int
	Variable     *Variable
	Type         Type
	DefaultValue Value
}

// NamedType, ListType, or NonNullType
type Type interface{}

type NamedType struct {
	Name *Name
}

type ListType struct {
	Type Type
}

type NonNullType struct {
	Type Type
}

// TypeString renders a type reference the way it's written in documents, e.g. "[Product!]!".
func TypeString(t Type) string {
	var b strings.Builder
	writeType(&b, t)
	return b.String()
}

func writeType(b *strings.Builder, t Type) {
	switch t := t.(type) {
	case *NamedType:
		b.WriteString(t.Name.Name)
	case *ListType:
		b.WriteByte('[')
		writeType(b, t.Type)
		b.WriteByte(']')
	case *NonNullType:
		writeType(b, t.Type)
		b.WriteByte('!')
	}
}

type SelectionSet struct {
	Selections []*Field
}

type Field struct {
	Offset       int
	Alias        *Name
	Name         *Name
	Arguments    []*Argument
	SelectionSet *SelectionSet
}

// ResponseKey is the key the field's value is written to: its alias if it has one, or its name.
func (f *Field) ResponseKey() string {
	if f.Alias != nil {
		return f.Alias.Name
	}
	return f.Name.Name
}

type Argument struct {
	Offset int
	Name   *Name
	Value  Value
}

type Name struct {
	Name string
}

// Variable, IntValue, FloatValue, StringValue, BooleanValue, NullValue, EnumValue, ListValue, or
// ObjectValue
type Value interface{}

type Variable struct {
	Name *Name
}

type BooleanValue struct {
	Value bool
}

type FloatValue struct {
	Value string
}

type IntValue struct {
	Value string
}

type StringValue struct {
	Value string
}

type EnumValue struct {
	Value string
}

type NullValue struct{}

type ListValue struct {
	Values []Value
}

type ObjectValue struct {
	Fields []*ObjectField
}

type ObjectField struct {
	Name  *Name
	Value Value
}
