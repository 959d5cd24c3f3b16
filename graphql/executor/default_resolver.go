package executor

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ccbrown/gqlcore/graphql/schema"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// DefaultResolve is used for fields without resolvers. It reads the same-named property of the
// parent value, which may be a map, an *OrderedMap, a struct field (matched by name, json tag, or
// case-insensitively), or a method with no arguments. Missing properties resolve to nil.
func DefaultResolve(ctx *schema.FieldContext) (interface{}, error) {
	return PropertyValue(ctx.Object, ctx.Field.Name)
}

// PropertyValue returns the named property of v as DefaultResolve sees it.
func PropertyValue(v interface{}, name string) (interface{}, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case map[string]interface{}:
		return v[name], nil
	case *OrderedMap:
		if v == nil {
			return nil, nil
		}
		ret, _ := v.Get(name)
		return ret, nil
	}

	rv := reflect.ValueOf(v)
	if method, ok := propertyMethod(rv, name); ok {
		return callPropertyMethod(method)
	}
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, nil
		}
		item := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !item.IsValid() {
			return nil, nil
		}
		return item.Interface(), nil
	case reflect.Struct:
		if field, ok := structField(rv, name); ok {
			return field.Interface(), nil
		}
		if method, ok := propertyMethod(rv, name); ok {
			return callPropertyMethod(method)
		}
	}
	return nil, nil
}

func structField(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	if f, ok := t.FieldByName(name); ok && f.IsExported() {
		return v.FieldByIndex(f.Index), true
	}
	var fold *reflect.StructField
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if tag := strings.Split(f.Tag.Get("json"), ",")[0]; tag == name {
			return v.Field(i), true
		}
		if fold == nil && strings.EqualFold(f.Name, name) {
			fold = &f
		}
	}
	if fold != nil {
		return v.FieldByIndex(fold.Index), true
	}
	return reflect.Value{}, false
}

func propertyMethod(v reflect.Value, name string) (reflect.Value, bool) {
	if !v.IsValid() || name == "" {
		return reflect.Value{}, false
	}
	r, n := utf8.DecodeRuneInString(name)
	m := v.MethodByName(string(unicode.ToUpper(r)) + name[n:])
	if !m.IsValid() {
		return reflect.Value{}, false
	}
	t := m.Type()
	if t.NumIn() != 0 {
		return reflect.Value{}, false
	}
	switch t.NumOut() {
	case 1:
		return m, true
	case 2:
		return m, t.Out(1) == errorType
	}
	return reflect.Value{}, false
}

func callPropertyMethod(m reflect.Value) (interface{}, error) {
	out := m.Call(nil)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}
