package gqlcore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ccbrown/gqlcore/graphql"
	"github.com/ccbrown/gqlcore/graphql/ast"
	"github.com/ccbrown/gqlcore/graphql/executor"
	"github.com/ccbrown/gqlcore/graphql/parser"
)

const tracerName = "github.com/ccbrown/gqlcore"

// Engine executes documents against an immutable schema. It is safe for concurrent use.
type Engine struct {
	schema *graphql.Schema
	config *Config
	logger logrus.FieldLogger
	tracer trace.Tracer

	// Parsed documents keyed by the hex SHA-256 of their text. Nil if caching is disabled.
	documents *ristretto.Cache[string, *ast.Document]
}

// NewEngine seals the config's schema and creates an engine for it. The config must not be
// modified afterwards.
func NewEngine(cfg *Config) (*Engine, error) {
	schema, err := cfg.graphqlSchema()
	if err != nil {
		return nil, errors.Wrap(err, "error building graphql schema")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	tracerProvider := cfg.TracerProvider
	if tracerProvider == nil {
		tracerProvider = otel.GetTracerProvider()
	}
	ret := &Engine{
		schema: schema,
		config: cfg,
		logger: logger,
		tracer: tracerProvider.Tracer(tracerName),
	}
	if cfg.DocumentCacheSize > 0 {
		ret.documents, err = ristretto.NewCache(&ristretto.Config[string, *ast.Document]{
			NumCounters: cfg.DocumentCacheSize * 10,
			MaxCost:     cfg.DocumentCacheSize,
			BufferItems: 64,
		})
		if err != nil {
			return nil, errors.Wrap(err, "error creating document cache")
		}
	}
	return ret, nil
}

// Schema returns the engine's sealed schema.
func (e *Engine) Schema() *graphql.Schema {
	return e.schema
}

// Close releases the engine's resources.
func (e *Engine) Close() {
	if e.documents != nil {
		e.documents.Close()
	}
}

// Execute parses and executes a document. The context is passed through to resolvers unchanged.
// The response is always well-formed: failures never escape as panics or errors.
func (e *Engine) Execute(ctx context.Context, query string, variables map[string]interface{}, operationName string) *graphql.Response {
	return e.ExecuteWithRoot(ctx, query, variables, operationName, nil)
}

// ExecuteWithRoot is like Execute, but gives root resolvers the given object.
func (e *Engine) ExecuteWithRoot(ctx context.Context, query string, variables map[string]interface{}, operationName string, root interface{}) *graphql.Response {
	startTime := time.Now()
	logger := e.logger.WithField("execution_id", uuid.NewString())

	ctx, span := e.tracer.Start(ctx, "graphql.execute")
	defer span.End()

	var resp *graphql.Response
	if doc, err := e.parseDocument(query); err != nil {
		span.SetAttributes(attribute.String("graphql.operation.name", operationName))
		resp = graphql.NewSyntaxErrorResponse(err, e.config.Debug)
	} else {
		if op, err := executor.GetOperation(doc, operationName); err == nil {
			span.SetAttributes(
				attribute.String("graphql.operation.type", string(op.OperationType)),
				attribute.String("graphql.operation.name", op.OperationName()),
			)
		} else {
			span.SetAttributes(attribute.String("graphql.operation.name", operationName))
		}
		resp = e.execute(&graphql.Request{
			Context:        ctx,
			Document:       doc,
			Schema:         e.schema,
			OperationName:  operationName,
			VariableValues: variables,
			InitialValue:   root,
			Logger:         logger,
			MaxConcurrency: e.config.MaxConcurrency,
			Debug:          e.config.Debug,
		})
	}

	span.SetAttributes(attribute.Int("graphql.error_count", len(resp.Errors)))
	if resp.Data == nil || *resp.Data == nil {
		message := "no data"
		if len(resp.Errors) > 0 {
			message = resp.Errors[0].Message
		}
		span.SetStatus(codes.Error, message)
	}

	logger.WithFields(logrus.Fields{
		"operation": operationName,
		"duration":  time.Since(startTime),
		"errors":    len(resp.Errors),
	}).Debug("executed graphql request")

	return resp
}

func (e *Engine) execute(r *graphql.Request) *graphql.Response {
	if e.config.Execute != nil {
		return e.config.Execute(r)
	}
	return graphql.Execute(r)
}

func documentCacheKey(query string) string {
	hash := sha256.Sum256([]byte(query))
	return hex.EncodeToString(hash[:])
}

func (e *Engine) parseDocument(query string) (*ast.Document, *parser.Error) {
	if e.documents == nil {
		return parser.ParseDocument([]byte(query))
	}
	key := documentCacheKey(query)
	if doc, ok := e.documents.Get(key); ok {
		return doc, nil
	}
	doc, err := parser.ParseDocument([]byte(query))
	if err != nil {
		return nil, err
	}
	e.documents.Set(key, doc, int64(ast.CountFields(doc)))
	return doc, nil
}
