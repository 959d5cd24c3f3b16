package gqlcore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccbrown/gqlcore/graphql"
)

func TestFields(t *testing.T) {
	var cfg Config
	cfg.RegisterType("Object",
		NonNull("int", "Int", "Int"),
		NonEmptyString("s0", "S0"),
		NonEmptyString("s1", "S1"),
		NonNull("missing", "String", "Missing"),
	)
	cfg.AddQueryField("obj", &graphql.FieldDefinition{
		Type: "Object",
		Resolve: func(ctx *graphql.FieldContext) (interface{}, error) {
			return &struct {
				Int int
				S0  string
				S1  string
			}{
				S1: "foo",
			}, nil
		},
	})

	engine, err := NewEngine(&cfg)
	require.NoError(t, err)
	defer engine.Close()

	resp := engine.Execute(context.Background(), `{
		obj {
			int
			s0
			s1
		}
	}`, nil, "")
	body, err := resp.Marshal()
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"obj":{"int":0,"s0":null,"s1":"foo"}}}`, string(body))

	resp = engine.Execute(context.Background(), `{obj {missing}}`, nil, "")
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, map[string]interface{}{"category": "graphql", "code": "NON_NULL_VIOLATION"}, resp.Errors[0].Extensions)
}
