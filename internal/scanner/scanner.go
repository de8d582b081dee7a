// Package scanner provides the lexical layer of the document parser: a cursor over
// the input text with whitespace and comment skipping, number, string and keyword
// recognition, and a latched error that stops all further scanning.
package scanner

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrorKind identifies why scanning or parsing stopped
type ErrorKind int

const (
	NoError ErrorKind = iota
	UnexpectedEOF
	WrongNumericConstant
	ExpectedStringNotFound
	NewlineInString
	UnknownEscapeSequence
	UnicodeUnsupported
	ExpectedColonNotFound
	UnknownSymbol
	EOFInComment

	// Raised only by the parser's strict mode.
	ExpectedCommaNotFound
	TrailingData

	// Raised by the parser when containers nest deeper than its limit.
	NestingTooDeep
)

// String returns the human readable message for the error kind
func (k ErrorKind) String() string {
	switch k {
	case NoError:
		return "no error"
	case UnexpectedEOF:
		return "unexpected end of input"
	case WrongNumericConstant:
		return "wrong numeric constant"
	case ExpectedStringNotFound:
		return "expected string constant not found"
	case NewlineInString:
		return "new line in string constant"
	case UnknownEscapeSequence:
		return "unknown escape sequence"
	case UnicodeUnsupported:
		return "unicode character not supported"
	case ExpectedColonNotFound:
		return "expected ':' not found"
	case UnknownSymbol:
		return "unknown symbol"
	case EOFInComment:
		return "end of input in multi-line comment"
	case ExpectedCommaNotFound:
		return "expected ',' not found"
	case TrailingData:
		return "unexpected data after document"
	case NestingTooDeep:
		return "containers nested too deeply"
	default:
		return "unknown error"
	}
}

// Number is the result of ParseNumber. Only one of Int and Float is meaningful,
// selected by IsFloat.
type Number struct {
	IsFloat bool
	Int     int32
	Float   float32
}

// Scanner is a cursor over an input text. A NUL byte ends the input the same way
// the end of the string does.
type Scanner struct {
	input string
	pos   int
	err   ErrorKind
}

// New creates a Scanner positioned at the start of input
func New(input string) *Scanner {
	return &Scanner{input: input}
}

// Input returns the text being scanned
func (s *Scanner) Input() string {
	return s.input
}

// Offset returns the byte offset of the cursor
func (s *Scanner) Offset() int {
	return s.pos
}

// Err returns the latched error kind, NoError if scanning has not failed
func (s *Scanner) Err() ErrorKind {
	return s.err
}

// Failed reports whether an error has been latched
func (s *Scanner) Failed() bool {
	return s.err != NoError
}

// Peek returns the byte under the cursor, 0 at the end of input
func (s *Scanner) Peek() byte {
	return s.byteAt(s.pos)
}

// PeekAt returns the byte n positions after the cursor, 0 past the end of input
func (s *Scanner) PeekAt(n int) byte {
	return s.byteAt(s.pos + n)
}

func (s *Scanner) byteAt(i int) byte {
	if i < 0 || i >= len(s.input) {
		return 0
	}
	return s.input[i]
}

// EOF reports whether the cursor reached the end of input
func (s *Scanner) EOF() bool {
	return s.Peek() == 0
}

// Advance moves the cursor n bytes forward, stopping at the end of input.
// It does nothing once an error is latched so the failure position is kept.
func (s *Scanner) Advance(n int) {
	if s.Failed() {
		return
	}
	for ; n > 0 && !s.EOF(); n-- {
		s.pos++
	}
}

func (s *Scanner) anyOf(set string) bool {
	c := s.Peek()
	return c != 0 && strings.IndexByte(set, c) >= 0
}

// SkipWhitespace skips spaces, tabs and line breaks and returns the number of bytes skipped
func (s *Scanner) SkipWhitespace() int {
	start := s.pos
	for !s.Failed() && s.anyOf(" \t\n\r") {
		s.Advance(1)
	}
	return s.pos - start
}

// SkipComment skips one line (//) or block (/* */) comment and returns the number
// of bytes skipped. An unterminated block comment latches EOFInComment.
func (s *Scanner) SkipComment() int {
	if s.Failed() || s.Peek() != '/' {
		return 0
	}
	start := s.pos
	switch s.PeekAt(1) {
	case '/':
		s.Advance(2)
		for !s.EOF() && !s.anyOf("\n\r") {
			s.Advance(1)
		}
	case '*':
		s.Advance(2)
		for {
			if s.EOF() {
				s.RaiseError(EOFInComment)
				break
			}
			if s.Peek() == '*' && s.PeekAt(1) == '/' {
				s.Advance(2)
				break
			}
			s.Advance(1)
		}
	}
	return s.pos - start
}

// NextToken skips whitespace and comments until the cursor rests on a significant
// byte, the end of input, or an error is latched.
func (s *Scanner) NextToken() {
	for !s.Failed() {
		if s.SkipWhitespace() == 0 && s.SkipComment() == 0 {
			return
		}
	}
}

// IsNumber reports whether the cursor is on a byte that can start a number
func (s *Scanner) IsNumber() bool {
	return !s.Failed() && s.anyOf("0123456789+-.")
}

func (s *Scanner) skipDigits() int {
	n := 0
	for s.anyOf("0123456789") {
		s.Advance(1)
		n++
	}
	return n
}

// ParseNumber consumes an integer or a float constant. A float needs digits after
// the '.', and its optional exponent needs an explicit sign and digits.
func (s *Scanner) ParseNumber() (Number, bool) {
	if !s.IsNumber() {
		return Number{}, s.RaiseError(WrongNumericConstant)
	}

	start := s.pos
	if s.Peek() == '-' {
		s.Advance(1)
	}
	digits := s.skipDigits()

	if s.Peek() == '.' {
		s.Advance(1)
		if s.skipDigits() == 0 {
			return Number{}, s.RaiseError(WrongNumericConstant)
		}
		if s.anyOf("eE") {
			s.Advance(1)
			if !s.anyOf("+-") {
				return Number{}, s.RaiseError(WrongNumericConstant)
			}
			s.Advance(1)
			if s.skipDigits() == 0 {
				return Number{}, s.RaiseError(WrongNumericConstant)
			}
		}
		f, err := strconv.ParseFloat(s.input[start:s.pos], 32)
		if err != nil {
			return Number{}, s.RaiseError(WrongNumericConstant)
		}
		return Number{IsFloat: true, Float: float32(f)}, true
	}

	if digits == 0 {
		return Number{}, s.RaiseError(WrongNumericConstant)
	}
	n, err := strconv.ParseInt(s.input[start:s.pos], 10, 64)
	if err != nil {
		return Number{}, s.RaiseError(WrongNumericConstant)
	}
	// wider constants wrap, unsigned 32-bit input lands on its signed counterpart
	return Number{Int: int32(n)}, true
}

// IsString reports whether the cursor is on an opening quote
func (s *Scanner) IsString() bool {
	return !s.Failed() && s.Peek() == '"'
}

// ParseString consumes a quoted string constant and returns its unescaped text.
// \u escapes are limited to code points up to 0xFF.
func (s *Scanner) ParseString() (string, bool) {
	if !s.IsString() {
		return "", s.RaiseError(ExpectedStringNotFound)
	}
	s.Advance(1)

	var b strings.Builder
	for {
		if s.EOF() {
			return "", s.RaiseError(UnexpectedEOF)
		}

		c := s.Peek()
		switch c {
		case '"':
			s.Advance(1)
			return b.String(), true
		case '\n', '\r':
			return "", s.RaiseError(NewlineInString)
		case '\\':
			if !s.parseEscape(&b) {
				return "", false
			}
		default:
			b.WriteByte(c)
			s.Advance(1)
		}
	}
}

func (s *Scanner) parseEscape(b *strings.Builder) bool {
	var out byte
	switch s.PeekAt(1) {
	case '"':
		out = '"'
	case '\\':
		out = '\\'
	case '/':
		out = '/'
	case 'b':
		out = '\b'
	case 'f':
		out = '\f'
	case 'n':
		out = '\n'
	case 'r':
		out = '\r'
	case 't':
		out = '\t'
	case 'u':
		s.Advance(2)
		return s.parseUnicode(b)
	case 0:
		s.Advance(1)
		return s.RaiseError(UnexpectedEOF)
	default:
		return s.RaiseError(UnknownEscapeSequence)
	}
	b.WriteByte(out)
	s.Advance(2)
	return true
}

func (s *Scanner) parseUnicode(b *strings.Builder) bool {
	var code rune
	for i := 0; i < 4; i++ {
		d, ok := hexValue(s.Peek())
		if !ok {
			return s.RaiseError(WrongNumericConstant)
		}
		code = code<<4 | d
		s.Advance(1)
	}
	if code > 0xFF {
		return s.RaiseError(UnicodeUnsupported)
	}
	var buf [utf8.UTFMax]byte
	b.Write(buf[:utf8.EncodeRune(buf[:], code)])
	return true
}

func hexValue(c byte) (rune, bool) {
	switch {
	case c >= '0' && c <= '9':
		return rune(c - '0'), true
	case c >= 'a' && c <= 'f':
		return rune(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return rune(c-'A') + 10, true
	}
	return 0, false
}

// MatchLiteral reports whether the input at the cursor starts with word, ignoring case.
// The cursor is not moved.
func (s *Scanner) MatchLiteral(word string) bool {
	if s.Failed() || len(s.input)-s.pos < len(word) {
		return false
	}
	return strings.EqualFold(s.input[s.pos:s.pos+len(word)], word)
}

// RaiseError latches kind unless an error is already latched. It always returns
// false so callers can write `return s.RaiseError(...)`.
func (s *Scanner) RaiseError(kind ErrorKind) bool {
	if s.err == NoError {
		s.err = kind
	}
	return false
}

// Position converts a byte offset into a 1-based line and column. "\r\n", "\n" and a
// lone "\r" each end one line.
func Position(input string, offset int) (line, column int) {
	line, column = 1, 1
	for i := 0; i < offset && i < len(input); i++ {
		switch input[i] {
		case '\r':
			if i+1 < len(input) && input[i+1] == '\n' {
				i++
			}
			line++
			column = 0
		case '\n':
			line++
			column = 0
		}
		column++
	}
	return line, column
}
