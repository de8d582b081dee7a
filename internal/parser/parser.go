// Package parser reads documents into value trees with a recursive-descent parser.
//
// The grammar is lenient: commas between array elements and object entries are
// optional, a trailing comma is accepted, literals are case-insensitive and both
// line and block comments may appear between tokens. Options.Strict tightens the
// separators and rejects data after the document.
package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcncl/jsondoc/internal/errors"
	"github.com/mcncl/jsondoc/internal/scanner"
	"github.com/mcncl/jsondoc/internal/value"
	"github.com/rs/zerolog"
)

// SyntaxError reports the first problem found in a document. Line and Column are
// 1-based and computed against the original text.
type SyntaxError struct {
	Kind   scanner.ErrorKind
	Line   int
	Column int
	Offset int
}

// Error implements error interface
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Kind)
}

// DefaultMaxDepth is the nesting limit used when Options.MaxDepth is unset
const DefaultMaxDepth = 10000

// Options tune the grammar
type Options struct {
	// Strict requires ',' between elements, rejects trailing commas and any
	// non-comment data after the top-level value.
	Strict bool
	// MaxDepth bounds how deeply arrays and objects may nest. Zero means DefaultMaxDepth.
	MaxDepth int
}

// Parser turns text into value trees. A Parser holds no per-document state and
// may be reused.
type Parser struct {
	opts   Options
	logger zerolog.Logger
}

// New creates a Parser. Load failures are reported through logger.
func New(opts Options, logger zerolog.Logger) *Parser {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Parser{opts: opts, logger: logger}
}

// Default returns a lenient Parser that does not log
func Default() *Parser {
	return New(Options{}, zerolog.Nop())
}

// Parse parses text with the default lenient parser
func Parse(text string) (*value.Value, error) {
	return Default().Parse(text)
}

// Parse parses text into a new value. The error, if any, is a *SyntaxError.
func (p *Parser) Parse(text string) (*value.Value, error) {
	v := value.Null()
	if err := p.ParseInto(v, text); err != nil {
		return nil, err
	}
	return v, nil
}

// ParseInto parses text into dst. On failure dst keeps whatever was built before the
// error was found.
func (p *Parser) ParseInto(dst *value.Value, text string) error {
	s := scanner.New(text)

	ok := p.parseValue(s, dst, 0)
	if ok && p.opts.Strict {
		s.NextToken()
		if !s.EOF() {
			s.RaiseError(scanner.TrailingData)
		}
		ok = !s.Failed()
	}
	if ok {
		return nil
	}

	line, column := scanner.Position(text, s.Offset())
	return &SyntaxError{
		Kind:   s.Err(),
		Line:   line,
		Column: column,
		Offset: s.Offset(),
	}
}

func (p *Parser) parseValue(s *scanner.Scanner, v *value.Value, depth int) bool {
	s.NextToken()
	if s.Failed() {
		return false
	}

	switch {
	case s.EOF():
		v.SetNull()
	case s.IsNumber():
		n, ok := s.ParseNumber()
		if !ok {
			return false
		}
		if n.IsFloat {
			v.SetFloat(n.Float)
		} else {
			v.SetInt(n.Int)
		}
	case s.IsString():
		str, ok := s.ParseString()
		if !ok {
			return false
		}
		v.SetString(str)
	case s.MatchLiteral("true"):
		s.Advance(4)
		v.SetBool(true)
	case s.MatchLiteral("false"):
		s.Advance(5)
		v.SetBool(false)
	case s.MatchLiteral("null"):
		s.Advance(4)
		v.SetNull()
	case s.Peek() == '[' || s.Peek() == '{':
		if depth >= p.opts.MaxDepth {
			return s.RaiseError(scanner.NestingTooDeep)
		}
		if s.Peek() == '[' {
			s.Advance(1)
			v.SetType(value.TypeArray).Clear()
			return p.parseArray(s, v, depth+1)
		}
		s.Advance(1)
		v.SetType(value.TypeObject).Clear()
		return p.parseObject(s, v, depth+1)
	default:
		return s.RaiseError(scanner.UnknownSymbol)
	}
	return true
}

func (p *Parser) parseArray(s *scanner.Scanner, v *value.Value, depth int) bool {
	for {
		s.NextToken()
		if s.Failed() {
			return false
		}
		if s.Peek() == ']' {
			s.Advance(1)
			return true
		}
		if s.EOF() {
			return s.RaiseError(scanner.UnexpectedEOF)
		}

		if !p.parseValue(s, v.Append(), depth) {
			return false
		}

		if !p.parseSeparator(s, ']') {
			return false
		}
	}
}

func (p *Parser) parseObject(s *scanner.Scanner, v *value.Value, depth int) bool {
	for {
		s.NextToken()
		if s.Failed() {
			return false
		}
		if s.Peek() == '}' {
			s.Advance(1)
			return true
		}
		if s.EOF() {
			return s.RaiseError(scanner.UnexpectedEOF)
		}

		key, ok := s.ParseString()
		if !ok {
			// the entry is added before its key is read, a bad key leaves it behind
			v.AppendEntry("")
			return false
		}
		// duplicate keys are kept, lookups return the first one
		item := v.AppendEntry(key)

		s.NextToken()
		if s.Peek() != ':' {
			return s.RaiseError(scanner.ExpectedColonNotFound)
		}
		s.Advance(1)

		if !p.parseValue(s, item, depth) {
			return false
		}

		if !p.parseSeparator(s, '}') {
			return false
		}
	}
}

// parseSeparator consumes the optional ',' after an element. In strict mode the comma
// is required unless the container closes, and may not be followed by the closer.
func (p *Parser) parseSeparator(s *scanner.Scanner, closer byte) bool {
	s.NextToken()
	if s.Failed() {
		return false
	}

	if s.Peek() == ',' {
		s.Advance(1)
		if p.opts.Strict {
			s.NextToken()
			if s.Peek() == closer {
				return s.RaiseError(scanner.UnknownSymbol)
			}
		}
		return !s.Failed()
	}

	if p.opts.Strict && s.Peek() != closer {
		if s.EOF() {
			return s.RaiseError(scanner.UnexpectedEOF)
		}
		return s.RaiseError(scanner.ExpectedCommaNotFound)
	}
	return true
}

// ParseReader reads a whole document from reader and parses it
func (p *Parser) ParseReader(reader io.Reader) (*value.Value, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.NewInputError("failed to read input", err)
	}
	return p.parseInput(string(data), "document")
}

func (p *Parser) parseInput(text, name string) (*value.Value, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	v, err := p.Parse(text)
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to parse %s", name), err)
	}
	return v, nil
}

// ParseFile parses the document stored at filePath
func (p *Parser) ParseFile(filePath string) (*value.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(fmt.Sprintf("failed to read file '%s'", filePath), err)
	}
	if len(data) == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return p.parseInput(string(data), fmt.Sprintf("'%s'", filePath))
}
