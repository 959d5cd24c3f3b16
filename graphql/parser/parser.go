package parser

import (
	"fmt"
	"strconv"

	"github.com/ccbrown/gqlcore/graphql/ast"
	"github.com/ccbrown/gqlcore/graphql/scanner"
	"github.com/ccbrown/gqlcore/graphql/token"
)

// ParseDocument parses a query document. Parsing has no knowledge of any schema.
func ParseDocument(src []byte) (doc *ast.Document, err *Error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	defer p.recover(&err)
	return p.parseDocument(), nil
}

// ParseValue parses a single value, e.g. `{name: "shirt", tags: ["new"]}`.
func ParseValue(src []byte) (value ast.Value, err *Error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	defer p.recover(&err)
	value = p.parseValue(false)
	p.expectEOF()
	return value, nil
}

// ParseType parses a type reference such as "[Product!]!".
func ParseType(src []byte) (t ast.Type, err *Error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	defer p.recover(&err)
	t = p.parseType()
	p.expectEOF()
	return t, nil
}

type parserToken struct {
	Token  token.Token
	Value  string
	Offset int
}

type parser struct {
	src       []byte
	tokens    []*parserToken
	eof       *parserToken
	recursion int
}

func newParser(src []byte) (*parser, *Error) {
	var tokens []*parserToken
	s := scanner.New(src, 0)
	for s.Scan() {
		tokens = append(tokens, &parserToken{
			Token:  s.Token(),
			Value:  s.StringValue(),
			Offset: s.Offset(),
		})
	}
	if errs := s.Errors(); len(errs) > 0 {
		return nil, &Error{
			Kind:    SyntaxError,
			Offset:  errs[0].Offset,
			Excerpt: excerpt(src, errs[0].Offset),
			message: errs[0].Error(),
		}
	}
	return &parser{
		src:    src,
		tokens: tokens,
		eof:    &parserToken{Offset: len(src)},
	}, nil
}

func (p *parser) recover(err **Error) {
	if r := recover(); r != nil {
		if perr, ok := r.(*Error); ok {
			*err = perr
		} else {
			panic(r)
		}
	}
}

const maxRecursion = 1000

func (p *parser) enter() {
	p.recursion++
	if p.recursion > maxRecursion {
		panic(p.errorf(SyntaxError, "maximum recursion depth exceeded"))
	}
}

func (p *parser) exit() {
	p.recursion--
}

func (p *parser) peek() *parserToken {
	if len(p.tokens) > 0 {
		return p.tokens[0]
	}
	return p.eof
}

func (p *parser) peekPunctuator(value string) bool {
	t := p.peek()
	return t.Token == token.PUNCTUATOR && t.Value == value
}

func (p *parser) consumeToken() *parserToken {
	t := p.peek()
	if len(p.tokens) > 0 {
		p.tokens = p.tokens[1:]
	}
	return t
}

func (p *parser) errorf(kind ErrorKind, message string, args ...interface{}) *Error {
	offset := p.peek().Offset
	return &Error{
		Kind:    kind,
		Offset:  offset,
		Excerpt: excerpt(p.src, offset),
		message: fmt.Sprintf(message, args...),
	}
}

func describe(t *parserToken) string {
	switch t.Token {
	case token.INVALID:
		return "end of document"
	case token.STRING_VALUE:
		return "string " + strconv.Quote(t.Value)
	case token.PUNCTUATOR:
		return strconv.Quote(t.Value)
	default:
		return t.Token.String() + " " + strconv.Quote(t.Value)
	}
}

func (p *parser) unexpected(expected string) *Error {
	return p.errorf(SyntaxError, "expected %v, found %v", expected, describe(p.peek()))
}

func (p *parser) expectPunctuator(value string) {
	if !p.peekPunctuator(value) {
		panic(p.unexpected(strconv.Quote(value)))
	}
	p.consumeToken()
}

func (p *parser) expectEOF() {
	if p.peek() != p.eof {
		panic(p.unexpected("end of document"))
	}
}

func (p *parser) parseDocument() *ast.Document {
	p.enter()

	ret := &ast.Document{}
	for {
		ret.Operations = append(ret.Operations, p.parseOperationDefinition())
		if p.peek() == p.eof {
			break
		}
	}

	p.exit()
	return ret
}

func (p *parser) parseOperationDefinition() *ast.OperationDefinition {
	p.enter()

	ret := &ast.OperationDefinition{
		Offset:        p.peek().Offset,
		OperationType: ast.OperationTypeQuery,
	}
	if !p.peekPunctuator("{") {
		if t := p.peek(); t.Token != token.NAME || !ast.OperationType(t.Value).IsValid() {
			panic(p.unexpected(`"query", "mutation", or "{"`))
		} else {
			ret.OperationType = ast.OperationType(t.Value)
			p.consumeToken()
		}

		if t := p.peek(); t.Token == token.NAME {
			ret.Name = p.parseName()
		}

		ret.VariableDefinitions = p.parseOptionalVariableDefinitions()
	}
	ret.SelectionSet = p.parseSelectionSet()

	p.exit()
	return ret
}

func (p *parser) parseOptionalSelectionSet() *ast.SelectionSet {
	if p.peekPunctuator("{") {
		return p.parseSelectionSet()
	}
	return nil
}

func (p *parser) parseSelectionSet() *ast.SelectionSet {
	p.enter()

	p.expectPunctuator("{")

	ret := &ast.SelectionSet{}
	for {
		if p.peekPunctuator("}") {
			if len(ret.Selections) == 0 {
				panic(p.errorf(EmptySelectionSetError, "selection sets must contain at least one field"))
			}
			p.consumeToken()
			break
		}
		ret.Selections = append(ret.Selections, p.parseField())
	}

	p.exit()
	return ret
}

func (p *parser) parseField() *ast.Field {
	p.enter()

	ret := &ast.Field{
		Offset: p.peek().Offset,
	}
	ret.Name = p.parseName()
	if p.peekPunctuator(":") {
		p.consumeToken()
		ret.Alias = ret.Name
		ret.Name = p.parseName()
	}
	ret.Arguments = p.parseOptionalArguments()
	ret.SelectionSet = p.parseOptionalSelectionSet()

	p.exit()
	return ret
}

func (p *parser) parseOptionalArguments() []*ast.Argument {
	p.enter()

	var ret []*ast.Argument
	if p.peekPunctuator("(") {
		p.consumeToken()

		for {
			if p.peekPunctuator(")") {
				if len(ret) == 0 {
					panic(p.unexpected("argument"))
				}
				p.consumeToken()
				break
			}
			ret = append(ret, p.parseArgument())
		}
	}

	p.exit()
	return ret
}

func (p *parser) parseArgument() *ast.Argument {
	p.enter()

	ret := &ast.Argument{
		Offset: p.peek().Offset,
	}
	ret.Name = p.parseName()
	p.expectPunctuator(":")
	ret.Value = p.parseValue(false)

	p.exit()
	return ret
}

func (p *parser) parseOptionalVariableDefinitions() []*ast.VariableDefinition {
	p.enter()

	var ret []*ast.VariableDefinition
	if p.peekPunctuator("(") {
		p.consumeToken()

		for {
			if p.peekPunctuator(")") {
				if len(ret) == 0 {
					panic(p.unexpected("variable definition"))
				}
				p.consumeToken()
				break
			}
			ret = append(ret, p.parseVariableDefinition())
		}
	}

	p.exit()
	return ret
}

func (p *parser) parseVariableDefinition() *ast.VariableDefinition {
	p.enter()

	ret := &ast.VariableDefinition{
		Offset:   p.peek().Offset,
		Variable: p.parseVariable(),
	}
	p.expectPunctuator(":")
	ret.Type = p.parseType()
	if p.peekPunctuator("=") {
		p.consumeToken()
		ret.DefaultValue = p.parseValue(true)
	}

	p.exit()
	return ret
}

func (p *parser) parseType() ast.Type {
	p.enter()

	var ret ast.Type
	if p.peekPunctuator("[") {
		p.consumeToken()
		typ := p.parseType()
		p.expectPunctuator("]")
		ret = &ast.ListType{
			Type: typ,
		}
	} else {
		ret = &ast.NamedType{
			Name: p.parseName(),
		}
	}
	if p.peekPunctuator("!") {
		p.consumeToken()
		ret = &ast.NonNullType{
			Type: ret,
		}
	}

	p.exit()
	return ret
}

func (p *parser) parseName() *ast.Name {
	t := p.peek()
	if t.Token != token.NAME {
		panic(p.unexpected("name"))
	}
	p.consumeToken()
	return &ast.Name{
		Name: t.Value,
	}
}

func (p *parser) parseVariable() *ast.Variable {
	p.expectPunctuator("$")
	return &ast.Variable{
		Name: p.parseName(),
	}
}

func (p *parser) parseValue(constant bool) ast.Value {
	p.enter()

	var ret ast.Value

	switch t := p.peek(); t.Token {
	case token.INT_VALUE:
		p.consumeToken()
		ret = &ast.IntValue{
			Value: t.Value,
		}
	case token.FLOAT_VALUE:
		p.consumeToken()
		ret = &ast.FloatValue{
			Value: t.Value,
		}
	case token.STRING_VALUE:
		p.consumeToken()
		ret = &ast.StringValue{
			Value: t.Value,
		}
	case token.NAME:
		p.consumeToken()
		switch v := t.Value; v {
		case "true", "false":
			ret = &ast.BooleanValue{
				Value: v == "true",
			}
		case "null":
			ret = &ast.NullValue{}
		default:
			ret = &ast.EnumValue{
				Value: v,
			}
		}
	case token.PUNCTUATOR:
		switch t.Value {
		case "$":
			if constant {
				panic(p.unexpected("constant value"))
			}
			ret = p.parseVariable()
		case "[":
			p.consumeToken()
			list := &ast.ListValue{}
			for !p.peekPunctuator("]") {
				list.Values = append(list.Values, p.parseValue(constant))
			}
			p.consumeToken()
			ret = list
		case "{":
			p.consumeToken()
			object := &ast.ObjectValue{}
			for !p.peekPunctuator("}") {
				name := p.parseName()
				p.expectPunctuator(":")
				object.Fields = append(object.Fields, &ast.ObjectField{
					Name:  name,
					Value: p.parseValue(constant),
				})
			}
			p.consumeToken()
			ret = object
		}
	}

	if ret == nil {
		panic(p.unexpected("value"))
	}

	p.exit()
	return ret
}
