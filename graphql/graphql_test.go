package graphql

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccbrown/gqlcore/graphql/executor"
)

type product struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newStorefrontSchema(t *testing.T) *Schema {
	s := NewSchema()
	require.NoError(t, s.RegisterType("Product",
		&FieldDefinition{Name: "id", Type: "ID!"},
		&FieldDefinition{Name: "name", Type: "String!"},
		&FieldDefinition{
			Name: "price",
			Type: "Float",
			Resolve: func(*FieldContext) (interface{}, error) {
				return nil, fmt.Errorf("pricing service unavailable")
			},
		},
		&FieldDefinition{
			Name: "sku",
			Type: "String!",
			Resolve: func(*FieldContext) (interface{}, error) {
				panic("sku lookup failed")
			},
		},
	))
	require.NoError(t, s.RegisterQueryField("products", &FieldDefinition{
		Type:      "[Product!]!",
		Arguments: map[string]string{"limit": "Int"},
		Resolve: func(ctx *FieldContext) (interface{}, error) {
			return []*product{{ID: "1", Name: "Premium T-Shirt"}}, nil
		},
	}))
	require.NoError(t, s.RegisterQueryField("product", &FieldDefinition{
		Type:      "Product",
		Arguments: map[string]string{"id": "ID!"},
		Resolve: func(ctx *FieldContext) (interface{}, error) {
			if ctx.Arguments["id"] == "1" {
				return &product{ID: "1", Name: "Premium T-Shirt"}, nil
			}
			return nil, nil
		},
	}))
	require.NoError(t, s.Seal())
	return s
}

func execute(t *testing.T, s *Schema, query string, debug bool) string {
	logger := logrus.New()
	logger.Out = &strings.Builder{}
	resp := Execute(&Request{
		Context: context.Background(),
		Query:   query,
		Schema:  s,
		Logger:  logger,
		Debug:   debug,
	})
	buf, err := resp.Marshal()
	require.NoError(t, err)
	return string(buf)
}

func TestExecute(t *testing.T) {
	s := newStorefrontSchema(t)

	for name, tc := range map[string]struct {
		Query    string
		Expected string
	}{
		"Products": {
			Query:    `{ products(limit: 1) { id name } }`,
			Expected: `{"data":{"products":[{"id":"1","name":"Premium T-Shirt"}]}}`,
		},
		"NullableProduct": {
			Query:    `{ product(id: "999") { id name } }`,
			Expected: `{"data":{"product":null}}`,
		},
		"PartialFailure": {
			Query:    `{ product(id: "1") { name price } }`,
			Expected: `{"data":{"product":{"name":"Premium T-Shirt","price":null}},"errors":[{"message":"Internal server error","path":["product","price"],"extensions":{"category":"internal","code":"RESOLVER_ERROR"}}]}`,
		},
		"NonNullPropagation": {
			Query:    `{ product(id: "1") { id sku } }`,
			Expected: `{"data":{"product":null},"errors":[{"message":"Internal server error","path":["product","sku"],"extensions":{"category":"internal","code":"RESOLVER_ERROR"}}]}`,
		},
		"NonNullPropagationToRoot": {
			Query:    `{ products { id sku } }`,
			Expected: `{"data":null,"errors":[{"message":"Internal server error","path":["products",0,"sku"],"extensions":{"category":"internal","code":"RESOLVER_ERROR"}}]}`,
		},
		"FieldNotFound": {
			Query:    `{ product(id: "1") { id cost } }`,
			Expected: `{"data":{"product":{"id":"1","cost":null}},"errors":[{"message":"Field \"cost\" not found on type \"Product\".","path":["product","cost"],"extensions":{"category":"graphql","code":"FIELD_NOT_FOUND"}}]}`,
		},
		"SyntaxError": {
			Query:    `{ products(`,
			Expected: `{"errors":[{"message":"Syntax Error: expected name, found end of document at offset 11 near \"{ products(\".","extensions":{"category":"syntax"}}]}`,
		},
		"AmbiguousOperation": {
			Query:    `query a { products { id } } query b { products { name } }`,
			Expected: `{"errors":[{"message":"Must provide operation name if query contains multiple operations.","extensions":{"category":"graphql","code":"OPERATION_NOT_FOUND"}}]}`,
		},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, execute(t, s, tc.Query, false))
		})
	}
}

func TestExecute_SyntaxErrors(t *testing.T) {
	s := newStorefrontSchema(t)

	for _, query := range []string{
		`{ products(`,
		`{ products { id } `,
		`{ product(id: "1) { id } }`,
		`{ product { } }`,
		`{ a { b { c { d { e { f(x: [1, 2, {y: }]) } } } } } }`,
		`query ($id: ID! = $other) { product(id: $id) { id } }`,
		`subscription { products { id } }`,
		`{ products { id } } ?`,
	} {
		t.Run(query, func(t *testing.T) {
			resp := Execute(&Request{
				Query:  query,
				Schema: s,
			})
			assert.Nil(t, resp.Data)
			require.Len(t, resp.Errors, 1)
			assert.Equal(t, map[string]interface{}{"category": CategorySyntax}, resp.Errors[0].Extensions)
			assert.True(t, strings.HasPrefix(resp.Errors[0].Message, "Syntax Error: "), resp.Errors[0].Message)
		})
	}
}

func TestExecute_Debug(t *testing.T) {
	s := newStorefrontSchema(t)

	t.Run("ResolverError", func(t *testing.T) {
		resp := Execute(&Request{
			Query:  `{ product(id: "1") { price } }`,
			Schema: s,
			Debug:  true,
		})
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, InternalErrorMessage, resp.Errors[0].Message)
		assert.Equal(t, "pricing service unavailable", resp.Errors[0].Extensions["debugMessage"])
		assert.NotContains(t, resp.Errors[0].Extensions, "trace")
	})

	t.Run("Panic", func(t *testing.T) {
		logger := logrus.New()
		logger.Out = &strings.Builder{}
		resp := Execute(&Request{
			Query:  `{ product(id: "1") { sku } }`,
			Schema: s,
			Logger: logger,
			Debug:  true,
		})
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "panic: sku lookup failed", resp.Errors[0].Extensions["debugMessage"])
		assert.Contains(t, resp.Errors[0].Extensions["trace"], "goroutine")
	})

	t.Run("SyntaxError", func(t *testing.T) {
		resp := Execute(&Request{
			Query:  `{ products(`,
			Schema: s,
			Debug:  true,
		})
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, map[string]interface{}{"category": CategorySyntax, "offset": 11}, resp.Errors[0].Extensions)
	})
}

type soldOutError struct{}

func (soldOutError) Error() string    { return "Product is sold out." }
func (soldOutError) ClientSafe() bool { return true }
func (soldOutError) Category() string { return "inventory" }

func TestExecute_ClientSafeErrors(t *testing.T) {
	s := NewSchema()
	require.NoError(t, s.RegisterQueryField("reserve", &FieldDefinition{
		Type: "Boolean",
		Resolve: func(*FieldContext) (interface{}, error) {
			return nil, soldOutError{}
		},
	}))
	require.NoError(t, s.Seal())

	assert.Equal(t,
		`{"data":{"reserve":null},"errors":[{"message":"Product is sold out.","path":["reserve"],"extensions":{"category":"inventory","code":"RESOLVER_ERROR"}}]}`,
		execute(t, s, `{reserve}`, false),
	)
}

func TestResponse_MarshalIndent(t *testing.T) {
	s := newStorefrontSchema(t)
	resp := Execute(&Request{
		Query:  `{ products { id } }`,
		Schema: s,
	})
	buf, err := resp.MarshalIndent("", "  ")
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"products":[{"id":"1"}]}}`, string(buf))
	assert.Contains(t, string(buf), "\n  ")
}

func TestNewResponse(t *testing.T) {
	t.Run("NotExecuted", func(t *testing.T) {
		resp := NewResponse(&executor.Result{}, false)
		assert.Nil(t, resp.Data)
		assert.Empty(t, resp.Errors)
	})

	t.Run("NullData", func(t *testing.T) {
		resp := NewResponse(&executor.Result{Executed: true}, false)
		require.NotNil(t, resp.Data)
		assert.Nil(t, *resp.Data)
		buf, err := resp.Marshal()
		require.NoError(t, err)
		assert.Equal(t, `{"data":null}`, string(buf))
	})
}
