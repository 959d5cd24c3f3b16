package schema

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// ErrSealed is returned by registration methods once the schema has been sealed.
var ErrSealed = errors.New("the schema is sealed and can no longer be modified")

const (
	QueryTypeName    = "Query"
	MutationTypeName = "Mutation"
)

// Schema is the type registry. Types and root fields are registered while the schema is being
// built. Once sealed, the schema is immutable and may be shared by concurrent executions without
// locking.
type Schema struct {
	objectTypes map[string]*ObjectType
	scalarTypes map[string]*ScalarType

	// Object types in registration order.
	typeOrder []*ObjectType

	query    *ObjectType
	mutation *ObjectType

	sealed bool
}

// New creates an empty schema with the builtin scalars and empty Query and Mutation roots.
func New() *Schema {
	s := &Schema{
		objectTypes: map[string]*ObjectType{},
		scalarTypes: map[string]*ScalarType{},
		query:       newObjectType(QueryTypeName, ""),
		mutation:    newObjectType(MutationTypeName, ""),
	}
	for _, t := range builtins {
		s.scalarTypes[t.Name] = t
	}
	s.objectTypes[QueryTypeName] = s.query
	s.objectTypes[MutationTypeName] = s.mutation
	return s
}

var nameRegex = regexp.MustCompile(`^[_A-Za-z][_0-9A-Za-z]*$`)

func isName(s string) bool {
	return nameRegex.MatchString(s)
}

func validateName(kind, name string) error {
	if !isName(name) || strings.HasPrefix(name, "__") {
		return errors.Errorf("illegal %v name: %q", kind, name)
	}
	return nil
}

func (s *Schema) isNameTaken(name string) bool {
	_, isObject := s.objectTypes[name]
	_, isScalar := s.scalarTypes[name]
	return isObject || isScalar
}

// RegisterType adds a named object type. Field order is preserved and determines nothing about
// output order, which always follows the query.
func (s *Schema) RegisterType(name string, fields ...*FieldDefinition) error {
	return s.RegisterObjectType(&ObjectType{Name: name}, fields...)
}

// RegisterObjectType is like RegisterType, but allows a description to be given.
func (s *Schema) RegisterObjectType(t *ObjectType, fields ...*FieldDefinition) error {
	if s.sealed {
		return ErrSealed
	}
	if err := validateName("type", t.Name); err != nil {
		return err
	}
	if s.isNameTaken(t.Name) {
		return &DuplicateTypeError{Name: t.Name}
	}
	if len(fields) == 0 {
		return errors.Errorf("%v must have at least one field", t.Name)
	}
	objectType := newObjectType(t.Name, t.Description)
	for _, field := range fields {
		if field == nil {
			return errors.Errorf("%v has a nil field definition", t.Name)
		}
		if err := objectType.addField(field.Name, field); err != nil {
			return err
		}
	}
	s.objectTypes[t.Name] = objectType
	s.typeOrder = append(s.typeOrder, objectType)
	return nil
}

// RegisterScalar adds a named scalar type. Scalars are passed through to the response as-is
// unless the definition has a Serialize function.
func (s *Schema) RegisterScalar(name string) error {
	return s.RegisterScalarType(&ScalarType{Name: name})
}

// RegisterScalarType is like RegisterScalar, but allows a description and serialization function
// to be given.
func (s *Schema) RegisterScalarType(t *ScalarType) error {
	if s.sealed {
		return ErrSealed
	}
	if err := validateName("scalar", t.Name); err != nil {
		return err
	}
	if s.isNameTaken(t.Name) {
		return &DuplicateTypeError{Name: t.Name}
	}
	scalar := *t
	s.scalarTypes[t.Name] = &scalar
	return nil
}

// RegisterQueryField adds a root-level query field.
func (s *Schema) RegisterQueryField(name string, def *FieldDefinition) error {
	if s.sealed {
		return ErrSealed
	}
	return s.query.addField(name, def)
}

// RegisterMutationField adds a root-level mutation field. Query and mutation field names are
// independent of each other.
func (s *Schema) RegisterMutationField(name string, def *FieldDefinition) error {
	if s.sealed {
		return ErrSealed
	}
	return s.mutation.addField(name, def)
}

// Seal makes the schema immutable. It returns an error if any field references a type that was
// never registered.
func (s *Schema) Seal() error {
	if s.sealed {
		return nil
	}
	for _, t := range append([]*ObjectType{s.query, s.mutation}, s.typeOrder...) {
		for _, field := range t.fields {
			if !s.isNameTaken(field.returnType.BaseTypeName) {
				return errors.Errorf("%v.%v references undefined type %v", t.Name, field.Name, field.returnType.BaseTypeName)
			}
			for argName, argType := range field.argumentTypes {
				if !s.isNameTaken(argType.BaseTypeName) {
					return errors.Errorf("%v.%v(%v:) references undefined type %v", t.Name, field.Name, argName, argType.BaseTypeName)
				}
			}
		}
	}
	s.sealed = true
	return nil
}

// IsSealed returns true once Seal has succeeded.
func (s *Schema) IsSealed() bool {
	return s.sealed
}

func (s *Schema) QueryType() *ObjectType {
	return s.query
}

func (s *Schema) MutationType() *ObjectType {
	return s.mutation
}

// LookupType returns the named object type or nil.
func (s *Schema) LookupType(name string) *ObjectType {
	return s.objectTypes[name]
}

// LookupScalar returns the named scalar type or nil.
func (s *Schema) LookupScalar(name string) *ScalarType {
	return s.scalarTypes[name]
}

// LookupField returns the field definition for the named type's field.
func (s *Schema) LookupField(typeName, fieldName string) (*FieldDefinition, bool) {
	t := s.objectTypes[typeName]
	if t == nil {
		return nil, false
	}
	def := t.Field(fieldName)
	return def, def != nil
}

// ObjectTypes returns the registered object types, excluding the roots, in registration order.
func (s *Schema) ObjectTypes() []*ObjectType {
	return s.typeOrder
}
