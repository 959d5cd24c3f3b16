package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccbrown/gqlcore/graphql/token"
)

func scanAll(s *Scanner) (tokens []token.Token, literals []string) {
	for s.Scan() {
		tokens = append(tokens, s.Token())
		literals = append(literals, s.Literal())
	}
	return
}

func TestScanner(t *testing.T) {
	s := New([]byte(`{ products(limit: 1) { id }}`), ScanIgnored)
	tokens, literals := scanAll(s)
	assert.Equal(t, []token.Token{
		token.PUNCTUATOR,
		token.WHITE_SPACE,
		token.NAME,
		token.PUNCTUATOR,
		token.NAME,
		token.PUNCTUATOR,
		token.WHITE_SPACE,
		token.INT_VALUE,
		token.PUNCTUATOR,
		token.WHITE_SPACE,
		token.PUNCTUATOR,
		token.WHITE_SPACE,
		token.NAME,
		token.WHITE_SPACE,
		token.PUNCTUATOR,
		token.PUNCTUATOR,
	}, tokens)
	assert.Equal(t, []string{"{", " ", "products", "(", "limit", ":", " ", "1", ")", " ", "{", " ", "id", " ", "}", "}"}, literals)
	assert.Empty(t, s.Errors())
}

func TestScanner_Offsets(t *testing.T) {
	s := New([]byte("{\n  name # comment\n}"), 0)
	var offsets []int
	for s.Scan() {
		offsets = append(offsets, s.Offset())
	}
	assert.Equal(t, []int{0, 4, 19}, offsets)
}

func TestScanner_IllegalCharacter(t *testing.T) {
	s := New([]byte(`{ ... }`), 0)
	tokens, _ := scanAll(s)
	assert.Equal(t, []token.Token{token.PUNCTUATOR}, tokens)
	require.Len(t, s.Errors(), 1)
	assert.Equal(t, 2, s.Errors()[0].Offset)
}

func TestScanner_UnterminatedString(t *testing.T) {
	s := New([]byte(`{ product(id: "999) }`), 0)
	scanAll(s)
	require.Len(t, s.Errors(), 1)
	assert.Equal(t, 14, s.Errors()[0].Offset)
	assert.Equal(t, "unterminated string", s.Errors()[0].Error())
}

func TestScanner_Strings(t *testing.T) {
	for src, value := range map[string]string{
		`"simple"`:                                  `simple`,
		`" white space "`:                           ` white space `,
		`"quote \""`:                                `quote "`,
		`"escaped \n\r\b\t\f"`:                      "escaped \n\r\b\t\f",
		`"slashes \\ \/"`:                           `slashes \ /`,
		`"unicode \u1234\u5678\u90AB\uCDEF"`:        "unicode \u1234\u5678\u90AB\uCDEF",
		`"""simple"""`:                              `simple`,
		`"""contains " quote"""`:                    `contains " quote`,
		`"""contains \""" triplequote"""`:           `contains """ triplequote`,
		`"""multi` + "\n" + `line"""`:               "multi\nline",
		`"""` + "multi\rline\r\nnormalized" + `"""`: "multi\nline\nnormalized",
		`"""unescaped \n\r\b\t\f\u1234"""`:          `unescaped \n\r\b\t\f\u1234`,
		`"""slashes \\ \/"""`:                       `slashes \\ \/`,
		`"""

          spans
            multiple
              lines

          """`: "spans\n  multiple\n    lines",
	} {
		s := New([]byte(src), ScanIgnored)
		require.True(t, s.Scan(), src)
		assert.Equal(t, src, s.Literal())
		assert.Equal(t, value, s.StringValue())
		assert.False(t, s.Scan())
		assert.Empty(t, s.Errors())
	}
}

func TestScanner_Numbers(t *testing.T) {
	for src, tok := range map[string]token.Token{
		"4":        token.INT_VALUE,
		"-4":       token.INT_VALUE,
		"0":        token.INT_VALUE,
		"4.123":    token.FLOAT_VALUE,
		"-0.123":   token.FLOAT_VALUE,
		"123e4":    token.FLOAT_VALUE,
		"123E-4":   token.FLOAT_VALUE,
		"-123e+4":  token.FLOAT_VALUE,
		"1.5e4567": token.FLOAT_VALUE,
	} {
		s := New([]byte(src), ScanIgnored)
		require.True(t, s.Scan(), src)
		assert.Equal(t, tok, s.Token(), src)
		assert.Equal(t, src, s.Literal())
		assert.False(t, s.Scan())
		assert.Empty(t, s.Errors())
	}
}

func TestScanner_InvalidNumbers(t *testing.T) {
	for _, src := range []string{"01", "1.", "1e", "12abc", "-"} {
		s := New([]byte(src), 0)
		scanAll(s)
		assert.Len(t, s.Errors(), 1, src)
	}
}

func TestScanner_BOM(t *testing.T) {
	s := New([]byte("\ufefffoo"), ScanIgnored)
	tokens, _ := scanAll(s)
	assert.Equal(t, []token.Token{token.UNICODE_BOM, token.NAME}, tokens)
	assert.Empty(t, s.Errors())
}

func TestScanner_SkipsIgnored(t *testing.T) {
	s := New([]byte("{\n product {\n  #foo\n },\n}"), 0)
	tokens, literals := scanAll(s)
	assert.Equal(t, []token.Token{
		token.PUNCTUATOR,
		token.NAME,
		token.PUNCTUATOR,
		token.PUNCTUATOR,
		token.PUNCTUATOR,
	}, tokens)
	assert.Equal(t, []string{"{", "product", "{", "}", "}"}, literals)
	assert.Empty(t, s.Errors())
}
