package ast

import (
	"reflect"

	"github.com/pkg/errors"
)

// Inspect traverses the node depth-first, invoking f for each node. If f returns false, the node's
// children are skipped. After a node's children are visited, f is invoked with nil.
func Inspect(node interface{}, f func(interface{}) bool) {
	if node == nil || reflect.ValueOf(node).IsNil() || !f(node) {
		return
	}

	switch n := node.(type) {
	case *Document:
		for _, node := range n.Operations {
			Inspect(node, f)
		}
	case *OperationDefinition:
		Inspect(n.Name, f)
		for _, node := range n.VariableDefinitions {
			Inspect(node, f)
		}
		Inspect(n.SelectionSet, f)
	case *VariableDefinition:
		Inspect(n.Variable, f)
		Inspect(n.Type, f)
		Inspect(n.DefaultValue, f)
	case *ListType:
		Inspect(n.Type, f)
	case *NonNullType:
		Inspect(n.Type, f)
	case *SelectionSet:
		for _, node := range n.Selections {
			Inspect(node, f)
		}
	case *Field:
		Inspect(n.Alias, f)
		Inspect(n.Name, f)
		for _, node := range n.Arguments {
			Inspect(node, f)
		}
		Inspect(n.SelectionSet, f)
	case *Argument:
		Inspect(n.Name, f)
		Inspect(n.Value, f)
	case *NamedType:
		Inspect(n.Name, f)
	case *Variable:
		Inspect(n.Name, f)
	case *Name, *BooleanValue, *IntValue, *FloatValue, *StringValue, *EnumValue, *NullValue:
	case *ListValue:
		for _, node := range n.Values {
			Inspect(node, f)
		}
	case *ObjectValue:
		for _, node := range n.Fields {
			Inspect(node, f)
		}
	case *ObjectField:
		Inspect(n.Name, f)
		Inspect(n.Value, f)
	default:
		panic(errors.Errorf("unknown node type: %T", n))
	}

	f(nil)
}

// CountFields returns the number of field selections in the node, at any depth.
func CountFields(node interface{}) int {
	n := 0
	Inspect(node, func(node interface{}) bool {
		if _, ok := node.(*Field); ok {
			n++
		}
		return true
	})
	return n
}
