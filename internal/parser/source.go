package parser

import (
	"fmt"
	"io"
	"os"

	"github.com/mcncl/jsondoc/internal/value"
)

// ByteSource is a named stream of known size, such as an opened file or an archive entry
type ByteSource interface {
	Name() string
	Size() int64
	Read(p []byte) (int, error)
}

// Load reads the whole of src and parses it into dst. Failures are logged together
// with the source name; dst is then left as far as parsing got.
func (p *Parser) Load(src ByteSource, dst *value.Value) bool {
	size := src.Size()
	if size < 0 {
		p.logger.Error().Str("source", src.Name()).Int64("size", size).Msg("invalid source size")
		return false
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(src, data); err != nil {
		p.logger.Error().Str("source", src.Name()).Err(err).Msg("failed to read document")
		return false
	}

	if err := p.ParseInto(dst, string(data)); err != nil {
		p.logger.Error().Str("source", src.Name()).Err(err).Msg("failed to parse document")
		return false
	}

	p.logger.Debug().Str("source", src.Name()).Str("type", dst.Type().String()).Msg("document loaded")
	return true
}

// FileSource adapts an opened file to ByteSource
type FileSource struct {
	*os.File
	size int64
}

// OpenFile opens path for reading as a ByteSource. The caller closes it.
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to stat '%s': %w", path, err)
	}
	return &FileSource{File: f, size: info.Size()}, nil
}

// Size returns the file size at the time it was opened
func (f *FileSource) Size() int64 {
	return f.size
}
