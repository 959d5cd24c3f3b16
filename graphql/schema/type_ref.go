package schema

import (
	"github.com/pkg/errors"

	"github.com/ccbrown/gqlcore/graphql/ast"
	"github.com/ccbrown/gqlcore/graphql/parser"
)

// TypeRef is the structural decomposition of a type reference string.
//
// For "[Product!]!", BaseTypeName is "Product", IsList, ItemNonNull, and OuterNonNull are true, and
// Item describes "Product!".
type TypeRef struct {
	BaseTypeName string
	IsList       bool
	ItemNonNull  bool
	OuterNonNull bool

	// For lists, the item type. Nil otherwise.
	Item *TypeRef
}

// ResolveTypeString parses a type reference such as "String", "String!", or "[Product!]!".
func ResolveTypeString(typeRef string) (*TypeRef, error) {
	t, err := parser.ParseType([]byte(typeRef))
	if err != nil {
		return nil, errors.Errorf("invalid type reference %q: %v", typeRef, err.Error())
	}
	return newTypeRef(t), nil
}

func newTypeRef(t ast.Type) *TypeRef {
	ret := &TypeRef{}
	if nonNull, ok := t.(*ast.NonNullType); ok {
		ret.OuterNonNull = true
		t = nonNull.Type
	}
	switch t := t.(type) {
	case *ast.ListType:
		ret.IsList = true
		ret.Item = newTypeRef(t.Type)
		ret.ItemNonNull = ret.Item.OuterNonNull
		ret.BaseTypeName = ret.Item.BaseTypeName
	case *ast.NamedType:
		ret.BaseTypeName = t.Name.Name
	}
	return ret
}

func (t *TypeRef) String() string {
	s := t.BaseTypeName
	if t.IsList {
		s = "[" + t.Item.String() + "]"
	}
	if t.OuterNonNull {
		s += "!"
	}
	return s
}

// Nullable returns the same type without the outermost non-null modifier.
func (t *TypeRef) Nullable() *TypeRef {
	if !t.OuterNonNull {
		return t
	}
	ret := *t
	ret.OuterNonNull = false
	return &ret
}
