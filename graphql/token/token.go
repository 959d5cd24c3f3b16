package token

type Token int

const (
	INVALID Token = iota

	PUNCTUATOR
	NAME
	INT_VALUE
	FLOAT_VALUE
	STRING_VALUE

	UNICODE_BOM
	WHITE_SPACE
	LINE_TERMINATOR
	COMMENT
	COMMA
)

var names = [...]string{
	INVALID:         "invalid token",
	PUNCTUATOR:      "punctuator",
	NAME:            "name",
	INT_VALUE:       "int",
	FLOAT_VALUE:     "float",
	STRING_VALUE:    "string",
	UNICODE_BOM:     "byte order mark",
	WHITE_SPACE:     "white space",
	LINE_TERMINATOR: "line terminator",
	COMMENT:         "comment",
	COMMA:           "comma",
}

func (t Token) String() string {
	if t >= 0 && int(t) < len(names) {
		return names[t]
	}
	return names[INVALID]
}

// Commas are insignificant, so trailing commas between arguments or selections are accepted.
func (t Token) IsIgnored() bool {
	switch t {
	case UNICODE_BOM, WHITE_SPACE, LINE_TERMINATOR, COMMENT, COMMA:
		return true
	default:
		return false
	}
}
