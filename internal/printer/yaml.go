package printer

import (
	"bytes"
	"strconv"

	"github.com/mcncl/jsondoc/internal/errors"
	"github.com/mcncl/jsondoc/internal/value"
	"gopkg.in/yaml.v3"
)

// ToYAML renders v as YAML with the default layout
func ToYAML(v *value.Value) ([]byte, error) {
	return Default().ToYAML(v)
}

// ToYAML renders v as a YAML document. Key order and repeated keys are preserved;
// arrays that would print inline use flow style.
func (p *Printer) ToYAML(v *value.Value) ([]byte, error) {
	doc := &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{p.yamlNode(v)},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, errors.NewOutputError("failed to encode YAML", err)
	}
	if err := enc.Close(); err != nil {
		return nil, errors.NewOutputError("failed to encode YAML", err)
	}
	return buf.Bytes(), nil
}

func (p *Printer) yamlNode(v *value.Value) *yaml.Node {
	switch v.Type() {
	case value.TypeBool:
		return scalar("!!bool", strconv.FormatBool(v.AsBool()))
	case value.TypeInt:
		return scalar("!!int", strconv.FormatInt(int64(v.AsInt()), 10))
	case value.TypeFloat:
		if !finite(v.AsFloat()) {
			return scalar("!!null", "null")
		}
		return scalar("!!float", value.FormatFloat(v.AsFloat()))
	case value.TypeString:
		return scalar("!!str", v.AsString())
	case value.TypeArray:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if p.Inline(v) {
			node.Style = yaml.FlowStyle
		}
		for _, item := range v.Elements() {
			node.Content = append(node.Content, p.yamlNode(item))
		}
		return node
	case value.TypeObject:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if v.Len() == 0 {
			node.Style = yaml.FlowStyle
		}
		for _, entry := range v.Entries() {
			node.Content = append(node.Content, scalar("!!str", entry.Key), p.yamlNode(entry.Value))
		}
		return node
	default:
		return scalar("!!null", "null")
	}
}

func scalar(tag, text string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: text}
}
