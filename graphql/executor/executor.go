package executor

import (
	"context"
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"runtime/debug"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ccbrown/gqlcore/graphql/ast"
	"github.com/ccbrown/gqlcore/graphql/schema"
)

type Request struct {
	Document       *ast.Document
	Schema         *schema.Schema
	OperationName  string
	VariableValues map[string]interface{}
	InitialValue   interface{}

	// Resolver panics are logged here. If nil, logrus.StandardLogger() is used.
	Logger logrus.FieldLogger

	// The maximum number of sibling fields or list items that are resolved concurrently. Values
	// below 2 resolve everything serially. Mutation root fields are always resolved serially.
	MaxConcurrency int
}

// Result is the outcome of a request.
type Result struct {
	// Nil if the request failed before execution began or if a null propagated to the root.
	Data *OrderedMap

	Errors []*Error

	// False if the request failed before execution began, in which case the response should have
	// no data at all.
	Executed bool
}

// ExecuteRequest executes the request. Field-level failures are recorded in the result alongside
// whatever data could still be produced.
func ExecuteRequest(ctx context.Context, r *Request) *Result {
	e, err := newExecutor(ctx, r)
	if err != nil {
		return &Result{Errors: []*Error{err}}
	}

	rootType, serial := e.Schema.QueryType(), false
	if e.Operation.OperationType == ast.OperationTypeMutation {
		rootType, serial = e.Schema.MutationType(), true
	}
	if len(rootType.Fields()) == 0 {
		return &Result{
			Errors: []*Error{newError(CodeNoRootType, "Schema is not configured for %vs.", e.Operation.OperationType)},
		}
	}

	var errs []*Error
	data, ok := e.executeSelections(rootType, e.Operation.SelectionSet.Selections, r.InitialValue, nil, serial, &errs)
	ret := &Result{
		Errors:   errs,
		Executed: true,
	}
	if ok {
		ret.Data = data
	}
	return ret
}

// GetOperation selects the operation to execute. If the name is empty, the document must contain
// exactly one operation.
func GetOperation(doc *ast.Document, operationName string) (*ast.OperationDefinition, *Error) {
	if operationName == "" {
		switch len(doc.Operations) {
		case 0:
			return nil, newError(CodeOperationNotFound, "Document does not contain any operations.")
		case 1:
			return doc.Operations[0], nil
		}
		return nil, newError(CodeOperationNotFound, "Must provide operation name if query contains multiple operations.")
	}
	for _, op := range doc.Operations {
		if op.OperationName() == operationName {
			return op, nil
		}
	}
	return nil, newError(CodeOperationNotFound, "Unknown operation named %q.", operationName)
}

type executor struct {
	Context        context.Context
	Schema         *schema.Schema
	Operation      *ast.OperationDefinition
	Variables      *variableScope
	Logger         logrus.FieldLogger
	MaxConcurrency int
}

func newExecutor(ctx context.Context, r *Request) (*executor, *Error) {
	operation, err := GetOperation(r.Document, r.OperationName)
	if err != nil {
		return nil, err
	}
	logger := r.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &executor{
		Context:        ctx,
		Schema:         r.Schema,
		Operation:      operation,
		Variables:      newVariableScope(operation, r.VariableValues),
		Logger:         logger,
		MaxConcurrency: r.MaxConcurrency,
	}, nil
}

// forEach invokes f for 0 through n-1, concurrently if configured to. In serial mode, iteration
// stops at the first call that returns false.
func (e *executor) forEach(n int, serial bool, f func(i int) bool) {
	if serial || e.MaxConcurrency < 2 || n < 2 {
		for i := 0; i < n; i++ {
			if !f(i) && serial {
				return
			}
		}
		return
	}
	var g errgroup.Group
	g.SetLimit(e.MaxConcurrency)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			f(i)
			return nil
		})
	}
	g.Wait()
}

// executeSelections returns false if a non-null field failed, in which case the object itself
// becomes null. Errors are appended to errs in selection order regardless of the order in which
// fields are resolved.
func (e *executor) executeSelections(objectType *schema.ObjectType, selections []*ast.Field, objectValue interface{}, path *path, serial bool, errs *[]*Error) (*OrderedMap, bool) {
	items := CollectFields(selections).Items()
	resultMap := NewOrderedMapWithLength(len(items))
	branchErrs := make([][]*Error, len(items))
	failed := make([]bool, len(items))

	e.forEach(len(items), serial, func(i int) bool {
		item := items[i]
		v, ok := e.executeField(objectType, objectValue, item.Fields, path.WithComponent(item.Key), &branchErrs[i])
		resultMap.Set(i, item.Key, v)
		failed[i] = !ok
		return ok
	})

	for _, branch := range branchErrs {
		*errs = append(*errs, branch...)
	}
	for _, f := range failed {
		if f {
			return nil, false
		}
	}
	return resultMap, true
}

type fieldInfo struct {
	ParentType *schema.ObjectType
	Definition *schema.FieldDefinition
	Fields     []*ast.Field
}

func (info *fieldInfo) invalidResult(reason string, args ...interface{}) *InvalidResultError {
	return &InvalidResultError{
		TypeName:  info.ParentType.Name,
		FieldName: info.Definition.Name,
		Reason:    fmt.Sprintf(reason, args...),
	}
}

func (e *executor) executeField(objectType *schema.ObjectType, objectValue interface{}, fields []*ast.Field, path *path, errs *[]*Error) (interface{}, bool) {
	field := fields[0]
	fieldName := field.Name.Name

	if fieldName == "__typename" {
		return objectType.Name, true
	}

	fieldDef, ok := e.Schema.LookupField(objectType.Name, fieldName)
	if !ok {
		*errs = append(*errs, newFieldError(path, &FieldNotFoundError{
			TypeName:  objectType.Name,
			FieldName: fieldName,
		}))
		return nil, true
	}
	info := &fieldInfo{
		ParentType: objectType,
		Definition: fieldDef,
		Fields:     fields,
	}
	returnType := fieldDef.ReturnType()
	nullable := !returnType.OuterNonNull

	if isLeaf := e.Schema.LookupScalar(returnType.BaseTypeName) != nil; isLeaf && hasSelectionSet(fields) {
		*errs = append(*errs, newFieldError(path, info.invalidResult("subfields cannot be selected on leaf type %v", returnType.BaseTypeName)))
		return nil, nullable
	} else if !isLeaf && !hasSelectionSet(fields) {
		*errs = append(*errs, newFieldError(path, info.invalidResult("a selection set is required for type %v", returnType.BaseTypeName)))
		return nil, nullable
	}

	arguments, err := bindArguments(field, fieldDef, e.Variables)
	if err != nil {
		*errs = append(*errs, newFieldError(path, err))
		return nil, nullable
	}

	resolvedValue, resolveErr := e.resolve(info, &schema.FieldContext{
		Context:   e.Context,
		Schema:    e.Schema,
		Object:    objectValue,
		Arguments: arguments,
		Path:      path.Slice(),
		Field:     fieldDef,
	})
	if resolveErr != nil {
		*errs = append(*errs, newFieldError(path, resolveErr))
		return nil, nullable
	}
	return e.completeValue(info, returnType, resolvedValue, path, errs)
}

// resolve invokes the field's resolver, converting returned errors and panics to a
// *ResolverError.
func (e *executor) resolve(info *fieldInfo, ctx *schema.FieldContext) (result interface{}, resolverErr *ResolverError) {
	resolve := info.Definition.Resolve
	if resolve == nil {
		resolve = DefaultResolve
	}

	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			e.Logger.WithFields(logrus.Fields{
				"path":  ctx.Path,
				"field": info.ParentType.Name + "." + info.Definition.Name,
				"panic": r,
			}).Error("recovered from resolver panic")
			result = nil
			resolverErr = &ResolverError{
				TypeName:  info.ParentType.Name,
				FieldName: info.Definition.Name,
				Err:       errors.Errorf("panic: %v", r),
				Panic:     r,
				Stack:     stack,
			}
		}
	}()

	v, err := resolve(ctx)
	if !isNil(err) {
		return nil, &ResolverError{
			TypeName:  info.ParentType.Name,
			FieldName: info.Definition.Name,
			Err:       err,
		}
	}
	return v, nil
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// completeValue returns false if the value is null in a non-null position, in which case the
// null propagates to the enclosing nullable position.
func (e *executor) completeValue(info *fieldInfo, t *schema.TypeRef, result interface{}, path *path, errs *[]*Error) (interface{}, bool) {
	if t.OuterNonNull {
		completedResult, ok := e.completeNullableValue(info, t, result, path, errs)
		if !ok {
			return nil, false
		} else if completedResult == nil {
			*errs = append(*errs, newFieldError(path, &NonNullViolationError{
				TypeName:  info.ParentType.Name,
				FieldName: info.Definition.Name,
			}))
			return nil, false
		}
		return completedResult, true
	}
	completedResult, _ := e.completeNullableValue(info, t, result, path, errs)
	return completedResult, true
}

func (e *executor) completeNullableValue(info *fieldInfo, t *schema.TypeRef, result interface{}, path *path, errs *[]*Error) (interface{}, bool) {
	if isNil(result) {
		return nil, true
	}

	if t.IsList {
		rv := reflect.ValueOf(result)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			*errs = append(*errs, newFieldError(path, info.invalidResult("expected a list, got %T", result)))
			return nil, false
		}
		n := rv.Len()
		completedResult := make([]interface{}, n)
		itemErrs := make([][]*Error, n)
		failed := make([]bool, n)
		e.forEach(n, false, func(i int) bool {
			v, ok := e.completeValue(info, t.Item, rv.Index(i).Interface(), path.WithComponent(i), &itemErrs[i])
			completedResult[i] = v
			failed[i] = !ok
			return ok
		})
		for _, itemErr := range itemErrs {
			*errs = append(*errs, itemErr...)
		}
		for _, f := range failed {
			if f {
				return nil, false
			}
		}
		return completedResult, true
	}

	if scalarType := e.Schema.LookupScalar(t.BaseTypeName); scalarType != nil {
		leaf, ok := leafValue(result)
		if !ok {
			*errs = append(*errs, newFieldError(path, info.invalidResult("expected a %v value, got %T", scalarType.Name, result)))
			return nil, false
		} else if leaf == nil {
			return nil, true
		}
		serialized, err := scalarType.SerializeValue(leaf)
		if err != nil {
			*errs = append(*errs, newFieldError(path, info.invalidResult("%v", err.Error())))
			return nil, false
		}
		return serialized, true
	}

	if objectType := e.Schema.LookupType(t.BaseTypeName); objectType != nil {
		if !isObjectValue(result) {
			*errs = append(*errs, newFieldError(path, info.invalidResult("expected a %v object, got %T", objectType.Name, result)))
			return nil, false
		}
		completedResult, ok := e.executeSelections(objectType, mergeSelectionSets(info.Fields), result, path, false, errs)
		if !ok {
			return nil, false
		}
		return completedResult, true
	}

	*errs = append(*errs, newFieldError(path, info.invalidResult("undefined type %v", t.BaseTypeName)))
	return nil, false
}

var (
	jsonMarshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// leafValue dereferences pointers and checks that the result can be written as a scalar. A nil
// pointer is a null leaf.
func leafValue(result interface{}) (interface{}, bool) {
	rv := reflect.ValueOf(result)
	for {
		if t := rv.Type(); t.Implements(jsonMarshalerType) || t.Implements(textMarshalerType) {
			return rv.Interface(), true
		}
		if rv.Kind() != reflect.Ptr {
			break
		}
		if rv.IsNil() {
			return nil, true
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return rv.Interface(), true
	}
	return nil, false
}

func isObjectValue(result interface{}) bool {
	rv := reflect.ValueOf(result)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return false
	}
	return true
}
