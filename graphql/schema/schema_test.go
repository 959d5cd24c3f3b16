package schema

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema(t *testing.T) {
	s := New()
	require.NoError(t, s.RegisterType("Product",
		&FieldDefinition{Name: "id", Type: "ID!"},
		&FieldDefinition{Name: "name", Type: "String!"},
		&FieldDefinition{Name: "related", Type: "[Product!]", Arguments: map[string]string{"first": "Int"}},
	))
	require.NoError(t, s.RegisterQueryField("products", &FieldDefinition{
		Type:      "[Product!]!",
		Arguments: map[string]string{"limit": "Int"},
	}))
	require.NoError(t, s.RegisterMutationField("products", &FieldDefinition{
		Type: "Boolean",
	}))
	require.NoError(t, s.Seal())
	assert.True(t, s.IsSealed())

	product := s.LookupType("Product")
	require.NotNil(t, product)
	var names []string
	for _, field := range product.Fields() {
		names = append(names, field.Name)
	}
	assert.Equal(t, []string{"id", "name", "related"}, names)

	def, ok := s.LookupField("Product", "related")
	require.True(t, ok)
	assert.Equal(t, "Int", def.ArgumentType("first").BaseTypeName)
	assert.Nil(t, def.ArgumentType("after"))

	def, ok = s.LookupField("Query", "products")
	require.True(t, ok)
	assert.Equal(t, "products", def.Name)
	assert.Equal(t, &TypeRef{
		BaseTypeName: "Product",
		IsList:       true,
		ItemNonNull:  true,
		OuterNonNull: true,
		Item: &TypeRef{
			BaseTypeName: "Product",
			OuterNonNull: true,
		},
	}, def.ReturnType())

	_, ok = s.LookupField("Product", "price")
	assert.False(t, ok)
	_, ok = s.LookupField("Nope", "id")
	assert.False(t, ok)

	assert.NotNil(t, s.LookupScalar("String"))
	assert.Nil(t, s.LookupScalar("Product"))
	assert.Equal(t, ErrSealed, s.RegisterScalar("DateTime"))
	assert.Equal(t, ErrSealed, s.RegisterQueryField("more", &FieldDefinition{Type: "Int"}))
}

func TestSchema_RegistrationIsolated(t *testing.T) {
	s := New()
	def := &FieldDefinition{Name: "id", Type: "ID!"}
	require.NoError(t, s.RegisterType("Product", def))
	def.Type = "Int"
	field, _ := s.LookupField("Product", "id")
	assert.Equal(t, "ID!", field.Type)
}

func TestSchema_DuplicateType(t *testing.T) {
	s := New()
	require.NoError(t, s.RegisterType("Product", &FieldDefinition{Name: "id", Type: "ID!"}))
	require.NoError(t, s.RegisterScalar("DateTime"))

	for _, err := range []error{
		s.RegisterType("Product", &FieldDefinition{Name: "id", Type: "ID!"}),
		s.RegisterType("DateTime", &FieldDefinition{Name: "id", Type: "ID!"}),
		s.RegisterType("Query", &FieldDefinition{Name: "id", Type: "ID!"}),
		s.RegisterScalar("DateTime"),
		s.RegisterScalar("Product"),
		s.RegisterScalar("String"),
	} {
		var dup *DuplicateTypeError
		assert.True(t, errors.As(err, &dup), "%v", err)
	}
}

func TestSchema_DuplicateField(t *testing.T) {
	s := New()
	require.NoError(t, s.RegisterQueryField("product", &FieldDefinition{Type: "String"}))
	// Query and Mutation namespaces are independent.
	require.NoError(t, s.RegisterMutationField("product", &FieldDefinition{Type: "String"}))

	var dup *DuplicateFieldError
	err := s.RegisterQueryField("product", &FieldDefinition{Type: "Int"})
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "Query", dup.TypeName)
	assert.Equal(t, "product", dup.FieldName)

	err = s.RegisterMutationField("product", &FieldDefinition{Type: "Int"})
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "Mutation", dup.TypeName)

	err = s.RegisterType("Product",
		&FieldDefinition{Name: "id", Type: "ID!"},
		&FieldDefinition{Name: "id", Type: "String"},
	)
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "Product", dup.TypeName)
	assert.Nil(t, s.LookupType("Product"))
}

func TestSchema_InvalidDefinitions(t *testing.T) {
	for name, register := range map[string]func(s *Schema) error{
		"BadTypeName": func(s *Schema) error {
			return s.RegisterType("__Product", &FieldDefinition{Name: "id", Type: "ID"})
		},
		"NoFields": func(s *Schema) error {
			return s.RegisterType("Product")
		},
		"BadFieldName": func(s *Schema) error {
			return s.RegisterType("Product", &FieldDefinition{Name: "the-id", Type: "ID"})
		},
		"BadFieldType": func(s *Schema) error {
			return s.RegisterQueryField("products", &FieldDefinition{Type: "[Product"})
		},
		"BadArgumentType": func(s *Schema) error {
			return s.RegisterQueryField("products", &FieldDefinition{Type: "Int", Arguments: map[string]string{"limit": "Int!!"}})
		},
		"NilField": func(s *Schema) error {
			return s.RegisterQueryField("products", nil)
		},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, register(New()))
		})
	}
}

func TestSchema_SealUndefinedType(t *testing.T) {
	s := New()
	require.NoError(t, s.RegisterQueryField("products", &FieldDefinition{Type: "[Product!]!"}))
	assert.EqualError(t, s.Seal(), "Query.products references undefined type Product")
	assert.False(t, s.IsSealed())

	s = New()
	require.NoError(t, s.RegisterQueryField("products", &FieldDefinition{Type: "Int", Arguments: map[string]string{"filter": "ProductFilter"}}))
	assert.Error(t, s.Seal())
}

func TestResolveTypeString(t *testing.T) {
	for src, expected := range map[string]TypeRef{
		"String":  {BaseTypeName: "String"},
		"String!": {BaseTypeName: "String", OuterNonNull: true},
		"[Int]":   {BaseTypeName: "Int", IsList: true, Item: &TypeRef{BaseTypeName: "Int"}},
		"[Int!]":  {BaseTypeName: "Int", IsList: true, ItemNonNull: true, Item: &TypeRef{BaseTypeName: "Int", OuterNonNull: true}},
	} {
		actual, err := ResolveTypeString(src)
		require.NoError(t, err, src)
		assert.Equal(t, expected, *actual, src)
		assert.Equal(t, src, actual.String())
	}

	nested, err := ResolveTypeString("[[Int!]]!")
	require.NoError(t, err)
	assert.Equal(t, "Int", nested.BaseTypeName)
	assert.False(t, nested.ItemNonNull)
	assert.True(t, nested.Item.IsList)
	assert.True(t, nested.Item.ItemNonNull)
	assert.Equal(t, "[[Int!]]", nested.Nullable().String())
	assert.Equal(t, "[[Int!]]!", nested.String())

	for _, src := range []string{"", "[Int", "Int!!", "Int Float", "!"} {
		_, err := ResolveTypeString(src)
		assert.Error(t, err, src)
	}
}

func TestScalarType_SerializeValue(t *testing.T) {
	v, err := StringType.SerializeValue("foo")
	assert.NoError(t, err)
	assert.Equal(t, "foo", v)

	upper := &ScalarType{
		Name: "Cents",
		Serialize: func(v interface{}) (interface{}, error) {
			if n, ok := v.(int); ok {
				return float64(n) / 100, nil
			}
			return nil, errors.New("not an int")
		},
	}
	v, err = upper.SerializeValue(150)
	assert.NoError(t, err)
	assert.Equal(t, 1.5, v)
	_, err = upper.SerializeValue("x")
	assert.EqualError(t, err, "cannot serialize string as Cents: not an int")
	assert.EqualError(t, errors.Cause(err), "not an int")
}
