package executor

import (
	"strconv"

	"github.com/ccbrown/gqlcore/graphql/ast"
	"github.com/ccbrown/gqlcore/graphql/schema"
)

// variableScope resolves variable references for a single operation.
type variableScope struct {
	definitions map[string]*ast.VariableDefinition
	values      map[string]interface{}
}

func newVariableScope(operation *ast.OperationDefinition, values map[string]interface{}) *variableScope {
	ret := &variableScope{
		definitions: make(map[string]*ast.VariableDefinition, len(operation.VariableDefinitions)),
		values:      values,
	}
	for _, def := range operation.VariableDefinitions {
		ret.definitions[def.Variable.Name.Name] = def
	}
	return ret
}

// lookup returns the variable's given value, or its declared default. Explicitly given nulls are
// values like any other.
func (s *variableScope) lookup(name string) (interface{}, bool) {
	def, ok := s.definitions[name]
	if !ok {
		return nil, false
	}
	if v, ok := s.values[name]; ok {
		return v, true
	}
	if def.DefaultValue != nil {
		v, _ := valueFromAST(def.DefaultValue, nil)
		return v, true
	}
	return nil, false
}

// bindArguments maps the field's literal arguments to Go values, substituting variables.
// Arguments that aren't given are absent from the result. Values are not coerced to the declared
// argument types.
func bindArguments(field *ast.Field, def *schema.FieldDefinition, scope *variableScope) (map[string]interface{}, error) {
	ret := make(map[string]interface{}, len(field.Arguments))
	for _, arg := range field.Arguments {
		v, missing := valueFromAST(arg.Value, scope)
		if missing != "" {
			return nil, &MissingVariableError{
				VariableName: missing,
				FieldName:    def.Name,
			}
		}
		ret[arg.Name.Name] = v
	}
	return ret, nil
}

// valueFromAST converts a literal into a Go value. Ints become int (or float64 if they overflow),
// floats become float64, enums become strings, lists become []interface{}, and objects become
// *OrderedMap. If a variable can't be resolved, its name is returned.
func valueFromAST(node ast.Value, scope *variableScope) (interface{}, string) {
	switch node := node.(type) {
	case *ast.Variable:
		if scope == nil {
			return nil, node.Name.Name
		}
		v, ok := scope.lookup(node.Name.Name)
		if !ok {
			return nil, node.Name.Name
		}
		return v, ""
	case *ast.IntValue:
		if n, err := strconv.ParseInt(node.Value, 10, 64); err == nil {
			return int(n), ""
		}
		f, _ := strconv.ParseFloat(node.Value, 64)
		return f, ""
	case *ast.FloatValue:
		f, _ := strconv.ParseFloat(node.Value, 64)
		return f, ""
	case *ast.StringValue:
		return node.Value, ""
	case *ast.BooleanValue:
		return node.Value, ""
	case *ast.EnumValue:
		return node.Value, ""
	case *ast.NullValue:
		return nil, ""
	case *ast.ListValue:
		ret := make([]interface{}, len(node.Values))
		for i, item := range node.Values {
			v, missing := valueFromAST(item, scope)
			if missing != "" {
				return nil, missing
			}
			ret[i] = v
		}
		return ret, ""
	case *ast.ObjectValue:
		ret := NewOrderedMapWithLength(len(node.Fields))
		for i, field := range node.Fields {
			v, missing := valueFromAST(field.Value, scope)
			if missing != "" {
				return nil, missing
			}
			ret.Set(i, field.Name.Name, v)
		}
		return ret, ""
	}
	return nil, ""
}
