package schema

import (
	"context"

	"github.com/pkg/errors"
)

// FieldContext contains important context passed to resolver implementations.
type FieldContext struct {
	// The execution's context. The engine passes it through without inspecting it, so it's where
	// authentication results and other request-scoped data belong.
	Context context.Context

	Schema *Schema

	// The parent's resolved value. For root fields, this is the execution's root value.
	Object interface{}

	// The bound argument values. Arguments that were not given are absent.
	Arguments map[string]interface{}

	// The result path of the field being resolved, e.g. ["products", 0, "name"].
	Path []interface{}

	Field *FieldDefinition
}

// ResolveFunc resolves a field's value. Returned errors, and panics, are isolated to the field.
type ResolveFunc func(ctx *FieldContext) (interface{}, error)

// FieldDefinition defines an object's field.
type FieldDefinition struct {
	// The field's name. This is required for fields given to RegisterType and ignored for root
	// fields, whose names are given separately.
	Name        string
	Description string

	// The declared return type, e.g. "String", "String!", or "[Product!]!".
	Type string

	// Maps argument names to their declared types.
	Arguments map[string]string

	// If nil, the field resolves to the same-named property of the parent value.
	Resolve ResolveFunc

	returnType    *TypeRef
	argumentTypes map[string]*TypeRef
}

// ReturnType is the parsed form of Type.
func (d *FieldDefinition) ReturnType() *TypeRef {
	return d.returnType
}

// ArgumentType returns the parsed declared type of an argument, or nil if the argument isn't
// declared.
func (d *FieldDefinition) ArgumentType(name string) *TypeRef {
	return d.argumentTypes[name]
}

// compile copies the definition and parses its type strings. The copy is owned by the schema.
func (d *FieldDefinition) compile(typeName, name string) (*FieldDefinition, error) {
	ret := *d
	ret.Name = name

	t, err := ResolveTypeString(d.Type)
	if err != nil {
		return nil, errors.Wrapf(err, "%v.%v has an invalid type", typeName, name)
	}
	ret.returnType = t

	ret.Arguments = make(map[string]string, len(d.Arguments))
	ret.argumentTypes = make(map[string]*TypeRef, len(d.Arguments))
	for argName, argType := range d.Arguments {
		if err := validateName("argument", argName); err != nil {
			return nil, errors.Wrapf(err, "%v.%v", typeName, name)
		}
		t, err := ResolveTypeString(argType)
		if err != nil {
			return nil, errors.Wrapf(err, "%v.%v(%v:) has an invalid type", typeName, name, argName)
		}
		ret.Arguments[argName] = argType
		ret.argumentTypes[argName] = t
	}
	return &ret, nil
}
