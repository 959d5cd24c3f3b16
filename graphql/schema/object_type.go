package schema

import "github.com/pkg/errors"

// ObjectType is a named object type. Its fields are kept in registration order.
type ObjectType struct {
	Name        string
	Description string

	fields     []*FieldDefinition
	fieldIndex map[string]*FieldDefinition
}

func newObjectType(name, description string) *ObjectType {
	return &ObjectType{
		Name:        name,
		Description: description,
		fieldIndex:  map[string]*FieldDefinition{},
	}
}

func (t *ObjectType) String() string {
	return t.Name
}

// Field returns the named field or nil.
func (t *ObjectType) Field(name string) *FieldDefinition {
	return t.fieldIndex[name]
}

// Fields returns the type's fields in registration order.
func (t *ObjectType) Fields() []*FieldDefinition {
	return t.fields
}

func (t *ObjectType) addField(name string, def *FieldDefinition) error {
	if def == nil {
		return errors.Errorf("%v.%v has no definition", t.Name, name)
	}
	if err := validateName("field", name); err != nil {
		return err
	}
	if _, ok := t.fieldIndex[name]; ok {
		return &DuplicateFieldError{TypeName: t.Name, FieldName: name}
	}
	field, err := def.compile(t.Name, name)
	if err != nil {
		return err
	}
	t.fields = append(t.fields, field)
	t.fieldIndex[name] = field
	return nil
}
