package resource

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/iancoleman/strcase"
	"github.com/mcncl/jsondoc/internal/errors"
	"github.com/mcncl/jsondoc/internal/parser"
	"github.com/mcncl/jsondoc/internal/value"
)

// TextureTypeName is the registry name of texture resources
const TextureTypeName = "Texture"

// TextureKind selects between flat and volume textures
type TextureKind string

const (
	TextureDefault TextureKind = "default"
	TextureVolume  TextureKind = "volume"
)

// TextureDesc describes how a texture image is to be loaded
type TextureDesc struct {
	Type           TextureKind `validate:"oneof=default volume"`
	Source         string      `validate:"required"`
	FlipX          bool
	FlipY          bool
	UseCompression bool
}

var validate = validator.New()

// DecodeTextureDesc reads a texture descriptor document. Keys are matched exactly first,
// then by their CamelCase form so "flip_x" or "use-compression" are accepted too.
func DecodeTextureDesc(doc *value.Value) (TextureDesc, error) {
	if !doc.IsObject() {
		return TextureDesc{}, errors.NewDescriptorError(
			fmt.Sprintf("texture descriptor must be an object, got %s", doc.Type()),
			errors.ErrInvalidDocument,
		)
	}

	desc := TextureDesc{Type: TextureDefault}
	if v, ok := field(doc, "Type"); ok && !v.IsNull() && v.AsString() != "" {
		desc.Type = TextureKind(strings.ToLower(v.AsString()))
	}
	if v, ok := field(doc, "Source"); ok && !v.IsNull() {
		desc.Source = v.AsString()
	}
	if v, ok := field(doc, "FlipX"); ok {
		desc.FlipX = v.AsBool()
	}
	if v, ok := field(doc, "FlipY"); ok {
		desc.FlipY = v.AsBool()
	}
	if v, ok := field(doc, "UseCompression"); ok {
		desc.UseCompression = v.AsBool()
	}

	if err := validate.Struct(desc); err != nil {
		return TextureDesc{}, errors.NewDescriptorError("invalid texture descriptor", err)
	}
	return desc, nil
}

func field(doc *value.Value, key string) (*value.Value, bool) {
	if v, ok := doc.Find(key); ok {
		return v, true
	}
	for _, entry := range doc.Entries() {
		if strcase.ToCamel(entry.Key) == key {
			return entry.Value, true
		}
	}
	return nil, false
}

// Texture is an image resource, optionally described by a descriptor document
type Texture struct {
	name   string
	parser *parser.Parser
	desc   TextureDesc
	loaded bool
}

// NewTexture creates an unloaded texture that reads descriptors with p
func NewTexture(name string, p *parser.Parser) *Texture {
	if p == nil {
		p = parser.Default()
	}
	return &Texture{name: name, parser: p}
}

// TextureFactory returns a Factory for textures sharing p
func TextureFactory(p *parser.Parser) Factory {
	return func(name string) Resource {
		return NewTexture(name, p)
	}
}

// Name returns the resource name
func (t *Texture) Name() string { return t.name }

// TypeName returns TextureTypeName
func (t *Texture) TypeName() string { return TextureTypeName }

// Desc returns the descriptor of a loaded texture
func (t *Texture) Desc() TextureDesc { return t.desc }

// Loaded reports whether Load has succeeded
func (t *Texture) Loaded() bool { return t.loaded }

// Load reads the texture from src. A ".json" source is a descriptor naming the image;
// any other source is the image itself.
func (t *Texture) Load(src parser.ByteSource) error {
	if !strings.EqualFold(filepath.Ext(src.Name()), ".json") {
		t.desc = TextureDesc{Type: TextureDefault, Source: src.Name()}
		t.loaded = true
		return nil
	}

	doc := value.Null()
	if !t.parser.Load(src, doc) {
		return errors.NewDescriptorError(
			fmt.Sprintf("unable to load texture '%s' from '%s'", t.name, src.Name()),
			errors.ErrInvalidDocument,
		)
	}

	desc, err := DecodeTextureDesc(doc)
	if err != nil {
		return err
	}
	t.desc = desc
	t.loaded = true
	return nil
}
