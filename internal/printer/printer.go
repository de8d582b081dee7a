// Package printer renders value trees back to text.
package printer

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mcncl/jsondoc/internal/errors"
	"github.com/mcncl/jsondoc/internal/value"
)

// Options control the text layout
type Options struct {
	// Indent is repeated once per nesting level
	Indent string
	// InlineLimit is the element count from which arrays are always broken over lines
	InlineLimit int
}

// DefaultOptions returns tab indentation with arrays of up to four scalars kept on one line
func DefaultOptions() Options {
	return Options{Indent: "\t", InlineLimit: 5}
}

// Printer serializes values. It holds no per-document state.
type Printer struct {
	opts Options
}

// New creates a Printer, filling unset options with their defaults
func New(opts Options) *Printer {
	defaults := DefaultOptions()
	if opts.Indent == "" {
		opts.Indent = defaults.Indent
	}
	if opts.InlineLimit < 1 {
		opts.InlineLimit = defaults.InlineLimit
	}
	return &Printer{opts: opts}
}

// Default returns a Printer with DefaultOptions
func Default() *Printer {
	return New(DefaultOptions())
}

// Print renders v with the default layout
func Print(v *value.Value) string {
	return Default().Print(v)
}

// Print renders v as text
func (p *Printer) Print(v *value.Value) string {
	var buf bytes.Buffer
	p.writeValue(&buf, v, 0)
	return buf.String()
}

// Save writes the text form of v to w
func (p *Printer) Save(v *value.Value, w io.Writer) error {
	if _, err := io.WriteString(w, p.Print(v)); err != nil {
		return errors.NewOutputError("failed to write document", err)
	}
	return nil
}

// Inline reports whether an array is short enough and flat enough to stay on one line
func (p *Printer) Inline(v *value.Value) bool {
	if v.Len() >= p.opts.InlineLimit {
		return false
	}
	for _, item := range v.Elements() {
		if item.IsContainer() {
			return false
		}
	}
	return true
}

func (p *Printer) writeValue(buf *bytes.Buffer, v *value.Value, depth int) {
	switch v.Type() {
	case value.TypeBool:
		buf.WriteString(strconv.FormatBool(v.AsBool()))
	case value.TypeInt:
		buf.WriteString(strconv.FormatInt(int64(v.AsInt()), 10))
	case value.TypeFloat:
		if !finite(v.AsFloat()) {
			buf.WriteString("null")
			return
		}
		buf.WriteString(value.FormatFloat(v.AsFloat()))
	case value.TypeString:
		writeString(buf, v.AsString())
	case value.TypeArray:
		p.writeArray(buf, v, depth)
	case value.TypeObject:
		p.writeObject(buf, v, depth)
	default:
		buf.WriteString("null")
	}
}

func (p *Printer) writeArray(buf *bytes.Buffer, v *value.Value, depth int) {
	inline := p.Inline(v)
	items := v.Elements()

	buf.WriteByte('[')
	for i, item := range items {
		if !inline {
			buf.WriteByte('\n')
			p.indent(buf, depth+1)
		}
		p.writeValue(buf, item, depth+1)
		if i < len(items)-1 {
			buf.WriteByte(',')
			if inline {
				buf.WriteByte(' ')
			}
		}
	}
	if !inline {
		buf.WriteByte('\n')
		p.indent(buf, depth)
	}
	buf.WriteByte(']')
}

func (p *Printer) writeObject(buf *bytes.Buffer, v *value.Value, depth int) {
	entries := v.Entries()

	buf.WriteString("{\n")
	for i, entry := range entries {
		p.indent(buf, depth+1)
		writeString(buf, entry.Key)
		buf.WriteString(" : ")
		p.writeValue(buf, entry.Value, depth+1)
		if i < len(entries)-1 {
			buf.WriteString(",\n")
		}
	}
	if len(entries) > 0 {
		buf.WriteByte('\n')
	}
	p.indent(buf, depth)
	buf.WriteByte('}')
}

func (p *Printer) indent(buf *bytes.Buffer, depth int) {
	buf.WriteString(strings.Repeat(p.opts.Indent, depth))
}

// finite reports whether f has a decimal form; NaN and infinities print as null
func finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			if c < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, c)
			} else {
				buf.WriteByte(c)
			}
		}
	}
	buf.WriteByte('"')
}
