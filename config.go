package gqlcore

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"github.com/ccbrown/gqlcore/graphql"
)

// Config defines the schema and other parameters for an Engine.
type Config struct {
	Logger logrus.FieldLogger

	// If true, error extensions carry debug detail such as original messages, stack traces, and
	// syntax error offsets. Production configurations should leave this false.
	Debug bool

	// The maximum number of sibling fields or list items resolved concurrently. Zero or one
	// resolves everything serially on the calling goroutine.
	MaxConcurrency int

	// If positive, parsed documents are cached. The size is the total number of selected fields
	// the cache may hold.
	DocumentCacheSize int64

	// Used to create a span for each execution. If nil, the global provider is used.
	TracerProvider trace.TracerProvider

	// Execute is invoked to execute a GraphQL request. If not given, this is simply
	// graphql.Execute. You may wish to provide this to perform request logging or
	// pre/post-processing.
	Execute func(*graphql.Request) *graphql.Response

	initOnce sync.Once
	schema   *graphql.Schema
	errs     []error
}

func (cfg *Config) init() {
	cfg.initOnce.Do(func() {
		cfg.schema = graphql.NewSchema()
	})
}

func (cfg *Config) record(err error) {
	if err != nil {
		cfg.errs = append(cfg.errs, err)
	}
}

// RegisterType adds an object type to your schema. Registration errors, such as duplicate names,
// are returned by NewEngine.
func (cfg *Config) RegisterType(name string, fields ...*graphql.FieldDefinition) {
	cfg.init()
	cfg.record(cfg.schema.RegisterType(name, fields...))
}

// RegisterObjectType is like RegisterType, but allows a description to be given.
func (cfg *Config) RegisterObjectType(t *graphql.ObjectType, fields ...*graphql.FieldDefinition) {
	cfg.init()
	cfg.record(cfg.schema.RegisterObjectType(t, fields...))
}

// RegisterScalar adds a scalar type to your schema. Its values are written to responses as-is.
func (cfg *Config) RegisterScalar(name string) {
	cfg.init()
	cfg.record(cfg.schema.RegisterScalar(name))
}

// RegisterScalarType is like RegisterScalar, but allows a serialization function to be given.
func (cfg *Config) RegisterScalarType(t *graphql.ScalarType) {
	cfg.init()
	cfg.record(cfg.schema.RegisterScalarType(t))
}

// AddQueryField adds a field to your schema's query object.
func (cfg *Config) AddQueryField(name string, def *graphql.FieldDefinition) {
	cfg.init()
	cfg.record(cfg.schema.RegisterQueryField(name, def))
}

// AddMutationField adds a mutation to your schema. Mutations in a single operation are always
// executed serially, in the order they're selected.
func (cfg *Config) AddMutationField(name string, def *graphql.FieldDefinition) {
	cfg.init()
	cfg.record(cfg.schema.RegisterMutationField(name, def))
}

// graphqlSchema seals and returns the schema. It returns the first registration error, if any.
func (cfg *Config) graphqlSchema() (*graphql.Schema, error) {
	cfg.init()
	if len(cfg.errs) > 0 {
		return nil, cfg.errs[0]
	}
	if err := cfg.schema.Seal(); err != nil {
		return nil, errors.Wrap(err, "invalid schema")
	}
	return cfg.schema, nil
}
