package scanner

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (s *Scanner) consumeDigits() {
	for isDigit(s.nextRune) {
		s.consumeRune()
	}
}

func (s *Scanner) consumeIntegerPart() bool {
	if s.nextRune == '-' && isDigit(s.peek()) {
		s.consumeRune()
	}

	switch {
	case s.nextRune == '0':
		s.consumeRune()
		if isDigit(s.nextRune) {
			s.errorf(s.offset, "invalid number, unexpected digit after 0")
		}
		return true
	case isDigit(s.nextRune):
		s.consumeDigits()
		return true
	}
	return false
}

func (s *Scanner) consumeFractionalPart() bool {
	if s.nextRune != '.' || !isDigit(s.peek()) {
		return false
	}
	s.consumeRune()
	s.consumeDigits()
	return true
}

func (s *Scanner) consumeExponentPart() bool {
	if s.nextRune != 'e' && s.nextRune != 'E' {
		return false
	}
	s.consumeRune()
	if s.nextRune == '+' || s.nextRune == '-' {
		s.consumeRune()
	}
	if !isDigit(s.nextRune) {
		s.errorf(s.offset, "exponent digit expected")
	}
	s.consumeDigits()
	return true
}
