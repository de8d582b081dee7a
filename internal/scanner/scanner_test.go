package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner_Advance(t *testing.T) {
	s := New("abc")
	s.Advance(2)
	assert.Equal(t, byte('c'), s.Peek())

	s.Advance(10)
	assert.True(t, s.EOF())
	assert.Equal(t, 3, s.Offset())
}

func TestScanner_NulEndsInput(t *testing.T) {
	s := New("ab\x00cd")
	s.Advance(5)
	assert.True(t, s.EOF())
	assert.Equal(t, 2, s.Offset())
}

func TestScanner_NextToken(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected byte
	}{
		{"whitespace", " \t\r\n x", 'x'},
		{"line comment", "// note\nx", 'x'},
		{"block comment", "/* a\n b */x", 'x'},
		{"mixed", "  // one\n /* two */ \n// three\r\n  x", 'x'},
		{"nothing to skip", "x", 'x'},
		{"only comment", "// trailing", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.input)
			s.NextToken()
			assert.False(t, s.Failed())
			assert.Equal(t, tt.expected, s.Peek())
		})
	}
}

func TestScanner_UnterminatedBlockComment(t *testing.T) {
	s := New("  /* never closed")
	s.NextToken()
	assert.Equal(t, EOFInComment, s.Err())
}

func TestScanner_ParseNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Number
		rest     string
	}{
		{"integer", "42", Number{Int: 42}, ""},
		{"negative integer", "-17,", Number{Int: -17}, ","},
		{"float", "1.5", Number{IsFloat: true, Float: 1.5}, ""},
		{"negative float", "-0.25]", Number{IsFloat: true, Float: -0.25}, "]"},
		{"leading dot", ".5", Number{IsFloat: true, Float: 0.5}, ""},
		{"exponent", "1.5e+2", Number{IsFloat: true, Float: 150}, ""},
		{"negative exponent", "2.0E-1", Number{IsFloat: true, Float: 0.2}, ""},
		{"unsigned input wraps", "4294967295", Number{Int: -1}, ""},
		{"integer stops at exponent", "1e5", Number{Int: 1}, "e5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.input)
			require.True(t, s.IsNumber())
			n, ok := s.ParseNumber()
			require.True(t, ok, "error: %v", s.Err())
			assert.Equal(t, tt.expected, n)
			assert.Equal(t, tt.rest, s.Input()[s.Offset():])
		})
	}
}

func TestScanner_ParseNumberErrors(t *testing.T) {
	for _, input := range []string{"1.", "-", "+1", "1.5e2", "1.5e+", ".", "99999999999999999999"} {
		t.Run(input, func(t *testing.T) {
			s := New(input)
			_, ok := s.ParseNumber()
			assert.False(t, ok)
			assert.Equal(t, WrongNumericConstant, s.Err())
		})
	}
}

func TestScanner_ParseString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", `"hello"`, "hello"},
		{"empty", `""`, ""},
		{"escapes", `"a\\b\/c\bd\fe\nf\rg\th"`, "a\\b/c\bd\fe\nf\rg\th"},
		{"latin1 escape", `"caf\u00e9"`, "café"},
		{"ascii escape", `"\u0041"`, "A"},
		{"quote escape", `"say \"hi\""`, `say "hi"`},
		{"raw utf8 is kept", `"żółw"`, "żółw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.input)
			str, ok := s.ParseString()
			require.True(t, ok, "error: %v", s.Err())
			assert.Equal(t, tt.expected, str)
			assert.True(t, s.EOF())
		})
	}
}

func TestScanner_ParseStringErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ErrorKind
	}{
		{"not a string", `abc`, ExpectedStringNotFound},
		{"newline", "\"ab\ncd\"", NewlineInString},
		{"carriage return", "\"ab\rcd\"", NewlineInString},
		{"unknown escape", `"\q"`, UnknownEscapeSequence},
		{"wide unicode", `"\u0141"`, UnicodeUnsupported},
		{"bad hex", `"\u00zz"`, WrongNumericConstant},
		{"unterminated", `"abc`, UnexpectedEOF},
		{"trailing backslash", `"abc\`, UnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.input)
			_, ok := s.ParseString()
			assert.False(t, ok)
			assert.Equal(t, tt.expected, s.Err())
		})
	}
}

func TestScanner_MatchLiteral(t *testing.T) {
	s := New("TrUe")
	assert.True(t, s.MatchLiteral("true"))
	assert.False(t, s.MatchLiteral("false"))
	assert.Equal(t, 0, s.Offset())

	assert.False(t, New("nul").MatchLiteral("null"))
}

func TestScanner_ErrorIsLatched(t *testing.T) {
	s := New(`"\q" 123`)
	_, ok := s.ParseString()
	require.False(t, ok)
	offset := s.Offset()

	s.RaiseError(UnknownSymbol)
	s.NextToken()
	s.Advance(3)

	assert.Equal(t, UnknownEscapeSequence, s.Err())
	assert.Equal(t, offset, s.Offset())
	assert.False(t, s.IsNumber())
	assert.False(t, s.IsString())
	_, ok = s.ParseNumber()
	assert.False(t, ok)
}

func TestPosition(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		offset int
		line   int
		column int
	}{
		{"start", "abc", 0, 1, 1},
		{"same line", "abc", 2, 1, 3},
		{"after LF", "ab\ncd", 4, 2, 2},
		{"after CRLF", "ab\r\ncd", 5, 2, 2},
		{"after lone CR", "ab\rcd", 4, 2, 2},
		{"several lines", "a\n\nb\r\n\rc", 7, 5, 1},
		{"offset past end", "ab", 10, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, column := Position(tt.input, tt.offset)
			assert.Equal(t, tt.line, line)
			assert.Equal(t, tt.column, column)
		})
	}
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "unicode character not supported", UnicodeUnsupported.String())
	assert.Equal(t, "expected ':' not found", ExpectedColonNotFound.String())
	assert.Equal(t, "containers nested too deeply", NestingTooDeep.String())
	assert.Equal(t, "unknown error", ErrorKind(99).String())
}
