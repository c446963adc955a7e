// Package export renders a request.Config into external representations:
// shell commands (curl, HTTPie), REST-client collection documents (Postman,
// Insomnia) and source snippets (fetch, Python requests).
//
// Every renderer is a pure function of its input. The collection exporters
// take their identifier source and clock as parameters so output can be
// reproduced under test.
package export

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"

	"github.com/blackcoderx/reqport/pkg/request"
)

// continuation separates tokens of a multi-line shell command.
const continuation = " \\\n  "

func joinContinued(tokens []string) string {
	return strings.Join(tokens, continuation)
}

// doubleQuote wraps s in double quotes without escaping its contents.
func doubleQuote(s string) string {
	return `"` + s + `"`
}

// quoteJSON returns s as a JSON string literal. HTML characters are left
// as-is so the output matches what a browser's JSON.stringify produces.
func quoteJSON(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return doubleQuote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// headersObject renders headers as a JSON object in insertion order, one
// entry per line, each entry prefixed by indent.
func headersObject(headers request.Headers, indent string) string {
	if headers.Len() == 0 {
		return "{}"
	}
	entries := make([]string, 0, headers.Len())
	for _, h := range headers {
		entries = append(entries, indent+quoteJSON(h.Name)+": "+quoteJSON(h.Value))
	}
	return "{\n" + strings.Join(entries, ",\n") + "\n}"
}

// MarshalDocument renders a collection document as two-space indented JSON.
func MarshalDocument(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
