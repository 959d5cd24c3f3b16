package gqlcore

import (
	"reflect"

	"github.com/ccbrown/gqlcore/graphql"
)

func fieldValue(object interface{}, name string) interface{} {
	v := reflect.ValueOf(object)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	f := v.FieldByName(name)
	if !f.IsValid() {
		return nil
	}
	return f.Interface()
}

// NonEmptyString returns a field that resolves to a string if the struct field's value is
// non-empty. Otherwise, the field resolves to nil.
func NonEmptyString(name, fieldName string) *graphql.FieldDefinition {
	return &graphql.FieldDefinition{
		Name: name,
		Type: graphql.StringType.Name,
		Resolve: func(ctx *graphql.FieldContext) (interface{}, error) {
			if s := fieldValue(ctx.Object, fieldName); s != "" {
				return s, nil
			}
			return nil, nil
		},
	}
}

// NonNull returns a non-null field of the named type that resolves to the given struct field.
func NonNull(name, typeName, fieldName string) *graphql.FieldDefinition {
	return &graphql.FieldDefinition{
		Name: name,
		Type: typeName + "!",
		Resolve: func(ctx *graphql.FieldContext) (interface{}, error) {
			return fieldValue(ctx.Object, fieldName), nil
		},
	}
}
