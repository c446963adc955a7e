package storage

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/blackcoderx/reqport/pkg/request"
)

// Request represents a saved API request in YAML format.
type Request struct {
	Name    string            `yaml:"name"`              // Unique name for the request
	Method  string            `yaml:"method"`            // HTTP method (GET, POST, etc.)
	URL     string            `yaml:"url"`               // Request URL (can contain variables)
	Headers HeaderMap         `yaml:"headers,omitempty"` // HTTP headers, in file order
	Query   map[string]string `yaml:"query,omitempty"`   // Query parameters
	Body    Body              `yaml:"body,omitempty"`    // Request body (structured data or string)
}

// Collection represents a named group of requests exported together.
type Collection struct {
	Name        string    `yaml:"name"`                  // Collection name
	Description string    `yaml:"description,omitempty"` // Optional description
	Requests    []Request `yaml:"requests,omitempty"`    // List of requests in the collection
}

// HeaderMap is a YAML mapping of header names to values that keeps the
// order the entries were written in. Repeated names keep the last value.
type HeaderMap request.Headers

func (h *HeaderMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: headers must be a mapping", node.Line)
	}

	var headers request.Headers
	for i := 0; i+1 < len(node.Content); i += 2 {
		var name, value string
		if err := node.Content[i].Decode(&name); err != nil {
			return fmt.Errorf("line %d: invalid header name: %w", node.Content[i].Line, err)
		}
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("line %d: invalid value for header %q: %w", node.Content[i+1].Line, name, err)
		}
		headers = headers.Set(name, value)
	}
	*h = HeaderMap(headers)
	return nil
}

func (h HeaderMap) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, hdr := range h {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: hdr.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: hdr.Value},
		)
	}
	return node, nil
}
