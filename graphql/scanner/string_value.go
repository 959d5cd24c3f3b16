package scanner

import "strings"

func hexRuneValue(r rune) rune {
	switch {
	case r >= '0' && r <= '9':
		return r - '0'
	case r >= 'a' && r <= 'f':
		return 10 + r - 'a'
	case r >= 'A' && r <= 'F':
		return 10 + r - 'A'
	}
	return -1
}

func isBlank(line string) bool {
	return strings.TrimLeft(line, " \t") == ""
}

// blockStringValue strips the common indentation and the leading and trailing blank lines of a
// block string.
func blockStringValue(raw string) string {
	raw = strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(raw)
	lines := strings.Split(raw, "\n")

	commonIndent := -1
	for _, line := range lines[1:] {
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < len(line) && (commonIndent == -1 || indent < commonIndent) {
			commonIndent = indent
		}
	}
	if commonIndent > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= commonIndent {
				lines[i] = lines[i][commonIndent:]
			}
		}
	}

	for len(lines) > 0 && isBlank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func (s *Scanner) consumeEscapeSequence(b *strings.Builder) {
	escapeOffset := s.offset
	switch r := s.consumeRune(); r {
	case '"', '\\', '/':
		b.WriteRune(r)
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case 'u':
		var code rune
		for i := 0; i < 4; i++ {
			v := hexRuneValue(s.nextRune)
			if v < 0 {
				s.errorf(escapeOffset, "illegal unicode escape sequence")
				return
			}
			code = code<<4 | v
			s.consumeRune()
		}
		b.WriteRune(code)
	default:
		s.errorf(escapeOffset, "illegal escape sequence")
	}
}

func (s *Scanner) consumeStringValue() string {
	startOffset := s.offset
	s.consumeRune() // '"'

	isBlock := false
	if s.nextRune == '"' && s.peek() == '"' {
		s.consumeRune()
		s.consumeRune()
		isBlock = true
	}

	var b strings.Builder
	for {
		switch r := s.nextRune; {
		case r == -1 || (!isBlock && (r == '\n' || r == '\r')):
			s.errorf(startOffset, "unterminated string")
			return b.String()
		case r == '"':
			s.consumeRune()
			if !isBlock {
				return b.String()
			}
			if s.nextRune == '"' && s.peek() == '"' {
				s.consumeRune()
				s.consumeRune()
				return blockStringValue(b.String())
			}
			b.WriteByte('"')
		case r == '\\':
			s.consumeRune()
			if !isBlock {
				s.consumeEscapeSequence(&b)
			} else if s.nextRune == '"' && s.peek() == '"' {
				s.consumeRune()
				s.consumeRune()
				if s.nextRune == '"' {
					s.consumeRune()
					b.WriteString(`"""`)
				} else {
					b.WriteString(`\""`)
				}
			} else {
				b.WriteByte('\\')
			}
		case !isSourceCharacter(r):
			s.errorf(s.offset, "illegal character %#U in string", r)
			s.consumeRune()
		default:
			b.WriteRune(s.consumeRune())
		}
		if len(s.errors) > 0 {
			return b.String()
		}
	}
}
