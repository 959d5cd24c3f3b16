package graphql

import (
	"context"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ccbrown/gqlcore/graphql/ast"
	"github.com/ccbrown/gqlcore/graphql/executor"
	"github.com/ccbrown/gqlcore/graphql/parser"
	"github.com/ccbrown/gqlcore/graphql/schema"
)

type Schema = schema.Schema
type ObjectType = schema.ObjectType
type ScalarType = schema.ScalarType
type FieldContext = schema.FieldContext
type FieldDefinition = schema.FieldDefinition
type ResolveFunc = schema.ResolveFunc

var IDType = schema.IDType
var StringType = schema.StringType
var IntType = schema.IntType
var FloatType = schema.FloatType
var BooleanType = schema.BooleanType

// NewSchema creates an empty schema with the builtin scalars registered.
func NewSchema() *Schema {
	return schema.New()
}

// CategorySyntax is the category of errors for documents that couldn't be parsed.
const CategorySyntax = "syntax"

// InternalErrorMessage replaces the messages of errors that aren't safe to show to clients.
const InternalErrorMessage = "Internal server error"

type Request struct {
	Context context.Context

	Query string

	// In some cases, you may want to optimize by providing the parsed AST document instead of
	// Query.
	Document *ast.Document

	Schema         *Schema
	OperationName  string
	VariableValues map[string]interface{}
	InitialValue   interface{}

	Logger         logrus.FieldLogger
	MaxConcurrency int

	// If true, error extensions carry debug detail such as original messages and stack traces.
	// This should only be enabled for development.
	Debug bool
}

type Error struct {
	Message    string                 `json:"message"`
	Path       []interface{}          `json:"path,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// Response is the envelope returned to clients. Data is nil if the document failed as a whole, and
// points to a nil value if a null propagated to the root.
type Response struct {
	Data   *interface{} `json:"data,omitempty"`
	Errors []*Error     `json:"errors,omitempty"`
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Marshal serializes the response. Keys of result objects are written in selection order.
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// MarshalIndent is like Marshal, but indents the output.
func (r *Response) MarshalIndent(prefix, indent string) ([]byte, error) {
	return json.MarshalIndent(r, prefix, indent)
}

// Execute parses and executes the request. It never panics on account of the document or
// resolvers. Failures are always expressed in the response.
func Execute(r *Request) *Response {
	doc := r.Document
	if doc == nil {
		parsed, err := parser.ParseDocument([]byte(r.Query))
		if err != nil {
			return NewSyntaxErrorResponse(err, r.Debug)
		}
		doc = parsed
	}

	ctx := r.Context
	if ctx == nil {
		ctx = context.Background()
	}

	return NewResponse(executor.ExecuteRequest(ctx, &executor.Request{
		Document:       doc,
		Schema:         r.Schema,
		OperationName:  r.OperationName,
		VariableValues: r.VariableValues,
		InitialValue:   r.InitialValue,
		Logger:         r.Logger,
		MaxConcurrency: r.MaxConcurrency,
	}), r.Debug)
}

// NewSyntaxErrorResponse creates an errors-only response for a document that couldn't be parsed.
func NewSyntaxErrorResponse(err *parser.Error, debug bool) *Response {
	ret := &Error{
		Message: err.Error(),
		Extensions: map[string]interface{}{
			"category": CategorySyntax,
		},
	}
	if debug {
		ret.Extensions["offset"] = err.Offset
	}
	return &Response{
		Errors: []*Error{ret},
	}
}

// NewResponse creates the envelope for an executor result.
func NewResponse(result *executor.Result, debug bool) *Response {
	ret := &Response{}
	if result.Executed {
		var data interface{}
		if result.Data != nil {
			data = result.Data
		}
		ret.Data = &data
	}
	for _, err := range result.Errors {
		ret.Errors = append(ret.Errors, newError(err, debug))
	}
	return ret
}

func newError(err *executor.Error, debug bool) *Error {
	ret := &Error{
		Message: err.Message,
		Path:    err.Path,
		Extensions: map[string]interface{}{
			"category": err.Category,
		},
	}
	if err.Code != "" {
		ret.Extensions["code"] = err.Code
	}
	if !err.IsClientSafe() {
		ret.Message = InternalErrorMessage
	}
	if debug {
		ret.Extensions["debugMessage"] = err.Message
		var resolverErr *executor.ResolverError
		if errors.As(err, &resolverErr) && resolverErr.Stack != nil {
			ret.Extensions["trace"] = string(resolverErr.Stack)
		}
	}
	return ret
}
