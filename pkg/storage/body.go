package storage

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Body is a request body as written in a request file: either a plain
// string or structured YAML data. Structured bodies keep their key order
// when converted to JSON.
type Body struct {
	node *yaml.Node
}

// TextBody returns a Body holding s verbatim.
func TextBody(s string) Body {
	if s == "" {
		return Body{}
	}
	return Body{node: &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}}
}

func (b *Body) UnmarshalYAML(node *yaml.Node) error {
	b.node = node
	return nil
}

func (b Body) MarshalYAML() (interface{}, error) {
	if b.node == nil {
		return nil, nil
	}
	return b.node, nil
}

// IsZero reports whether no body was written. It lets omitempty drop the field.
func (b Body) IsZero() bool {
	return b.node == nil || (b.node.Kind == yaml.ScalarNode && b.node.Tag == "!!null")
}

// Text returns the body as sent on the wire: strings as-is, structured data
// as compact JSON in file order.
func (b Body) Text() (string, error) {
	if b.IsZero() {
		return "", nil
	}
	n := resolve(b.node)
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" {
		return n.Value, nil
	}

	var buf bytes.Buffer
	if err := writeJSON(&buf, n); err != nil {
		return "", fmt.Errorf("failed to convert body to JSON: %w", err)
	}
	return buf.String(), nil
}

// mapScalars returns a copy of b with fn applied to every string scalar.
func (b Body) mapScalars(fn func(string) string) Body {
	if b.node == nil {
		return b
	}
	return Body{node: mapNode(b.node, fn)}
}

func mapNode(n *yaml.Node, fn func(string) string) *yaml.Node {
	out := *n
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" {
		out.Value = fn(n.Value)
	}
	if len(n.Content) > 0 {
		out.Content = make([]*yaml.Node, len(n.Content))
		for i, c := range n.Content {
			out.Content[i] = mapNode(c, fn)
		}
	}
	return &out
}

func resolve(n *yaml.Node) *yaml.Node {
	for {
		switch {
		case n.Kind == yaml.DocumentNode && len(n.Content) > 0:
			n = n.Content[0]
		case n.Kind == yaml.AliasNode && n.Alias != nil:
			n = n.Alias
		default:
			return n
		}
	}
}

func writeJSON(buf *bytes.Buffer, n *yaml.Node) error {
	n = resolve(n)
	switch n.Kind {
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(resolve(n.Content[i]).Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeJSON(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, c); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case yaml.ScalarNode:
		return writeScalar(buf, n)
	default:
		return fmt.Errorf("line %d: unsupported YAML node", n.Line)
	}
	return nil
}

func writeScalar(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Tag {
	case "!!null":
		buf.WriteString("null")
	case "!!bool":
		var v bool
		if err := n.Decode(&v); err != nil {
			return err
		}
		buf.WriteString(strconv.FormatBool(v))
	case "!!int", "!!float":
		var v float64
		if err := n.Decode(&v); err != nil {
			return err
		}
		// keep the number as written when it is already valid JSON
		if json.Valid([]byte(n.Value)) && !strings.HasPrefix(n.Value, "+") {
			buf.WriteString(n.Value)
			return nil
		}
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(b)
	default:
		b, err := json.Marshal(n.Value)
		if err != nil {
			return err
		}
		buf.Write(b)
	}
	return nil
}
