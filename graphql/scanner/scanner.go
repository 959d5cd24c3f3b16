package scanner

import (
	"fmt"
	"unicode/utf8"

	"github.com/ccbrown/gqlcore/graphql/token"
)

// Error describes a lexical error. Offset is the byte offset of the offending input.
type Error struct {
	Offset  int
	message string
}

func (err *Error) Error() string {
	return err.message
}

type Scanner struct {
	src    []byte
	mode   Mode
	offset int
	errors []*Error

	nextRune     rune
	nextRuneSize int

	token            token.Token
	tokenOffset      int
	tokenLength      int
	tokenStringValue string
}

type Mode uint

const (
	ScanIgnored Mode = 1 << iota
)

func New(src []byte, mode Mode) *Scanner {
	s := &Scanner{
		src:  src,
		mode: mode,
	}
	s.readNextRune()
	return s
}

func (s *Scanner) Errors() []*Error {
	return s.errors
}

func (s *Scanner) errorf(offset int, message string, args ...interface{}) {
	s.errors = append(s.errors, &Error{
		Offset:  offset,
		message: fmt.Sprintf(message, args...),
	})
}

func (s *Scanner) readNextRune() {
	if s.offset >= len(s.src) {
		s.nextRune = -1
		s.nextRuneSize = 0
	} else if r, size := utf8.DecodeRune(s.src[s.offset:]); r == utf8.RuneError && size != 0 {
		s.nextRune = r
		s.nextRuneSize = 1
	} else {
		s.nextRune = r
		s.nextRuneSize = size
	}
}

func (s *Scanner) peek() rune {
	if s.offset+s.nextRuneSize >= len(s.src) {
		return -1
	}
	r, _ := utf8.DecodeRune(s.src[s.offset+s.nextRuneSize:])
	return r
}

func (s *Scanner) consumeRune() rune {
	r := s.nextRune
	s.offset += s.nextRuneSize
	s.readNextRune()
	return r
}

func isNameStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isNameContinue(r rune) bool {
	return isNameStart(r) || isDigit(r)
}

func (s *Scanner) consumeName() bool {
	if !isNameStart(s.nextRune) {
		return false
	}
	for s.consumeRune(); isNameContinue(s.nextRune); {
		s.consumeRune()
	}
	return true
}

func isSourceCharacter(r rune) bool {
	return r == '\t' || r == '\n' || r == '\r' || (r >= 0x20 && r <= 0xffff)
}

// The parser rejects a document on its first error, so there's no point in scanning further.
func (s *Scanner) isDone() bool {
	return len(s.errors) > 0 || len(s.src) == s.offset
}

// Scan advances to the next token. It returns false at the end of the input or after an error.
func (s *Scanner) Scan() bool {
	for {
		if s.isDone() {
			return false
		}

		s.token = token.INVALID
		s.tokenOffset = s.offset

		switch s.nextRune {
		case '\t', ' ':
			s.consumeRune()
			s.token = token.WHITE_SPACE
		case '!', '$', '(', ')', ':', '=', '[', ']', '{', '}':
			s.consumeRune()
			s.token = token.PUNCTUATOR
		case ',':
			s.consumeRune()
			s.token = token.COMMA
		case '\r', '\n':
			if s.consumeRune() == '\r' && s.nextRune == '\n' {
				s.consumeRune()
			}
			s.token = token.LINE_TERMINATOR
		case '#':
			for s.nextRune != '\r' && s.nextRune != '\n' && s.nextRune != -1 {
				s.consumeRune()
			}
			s.token = token.COMMENT
		case '"':
			s.tokenStringValue = s.consumeStringValue()
			s.token = token.STRING_VALUE
		case utf8.RuneError:
			s.errorf(s.offset, "invalid utf-8 character")
			s.consumeRune()
		case 0xfeff:
			if s.offset == 0 {
				s.token = token.UNICODE_BOM
			} else {
				s.errorf(s.offset, "illegal byte order mark")
			}
			s.consumeRune()
		default:
			if s.consumeIntegerPart() {
				if s.consumeFractionalPart() {
					s.consumeExponentPart()
					s.token = token.FLOAT_VALUE
				} else if s.consumeExponentPart() {
					s.token = token.FLOAT_VALUE
				} else {
					s.token = token.INT_VALUE
				}
				if isNameStart(s.nextRune) || s.nextRune == '.' {
					s.errorf(s.offset, "invalid number, unexpected %q", s.nextRune)
				}
			} else if s.consumeName() {
				s.token = token.NAME
			} else {
				s.errorf(s.offset, "unexpected character %#U", s.nextRune)
				s.consumeRune()
			}
		}

		if len(s.errors) > 0 {
			return false
		}

		if s.token == token.INVALID || (s.token.IsIgnored() && (s.mode&ScanIgnored) == 0) {
			continue
		}

		s.tokenLength = s.offset - s.tokenOffset
		return true
	}
}

func (s *Scanner) Token() token.Token {
	return s.token
}

// Offset returns the byte offset of the current token.
func (s *Scanner) Offset() int {
	return s.tokenOffset
}

func (s *Scanner) Literal() string {
	return string(s.src[s.tokenOffset : s.tokenOffset+s.tokenLength])
}

// StringValue returns the unescaped value of a string token, or the literal for anything else.
func (s *Scanner) StringValue() string {
	if s.token == token.STRING_VALUE {
		return s.tokenStringValue
	}
	return s.Literal()
}
