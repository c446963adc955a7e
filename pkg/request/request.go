// Package request defines the canonical in-memory description of a single
// HTTP request that every exporter renders from.
package request

import (
	"errors"
	"strings"
)

// Method is an HTTP method. Methods are case-sensitive and uppercase by convention.
type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodPatch   Method = "PATCH"
	MethodDelete  Method = "DELETE"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
)

var (
	ErrMissingMethod = errors.New("method is required")
	ErrMissingURL    = errors.New("url is required")
)

// ParseMethod normalizes user input into a Method. Unknown methods are kept
// as-is (upper-cased) since servers may accept extension methods.
func ParseMethod(s string) Method {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return MethodGet
	}
	return Method(s)
}

// Lower returns the method in lower case, e.g. for use as a function selector.
func (m Method) Lower() string {
	return strings.ToLower(string(m))
}

// Config is one HTTP request: method, absolute URL, ordered headers and an
// optional raw body. An empty Body means no body.
//
// A Config is read-only once built; exporters never modify it.
type Config struct {
	Method  Method
	URL     string
	Headers Headers
	Body    string
}

// Option configures a Config built with New.
type Option func(*Config)

// WithHeader sets a header. Setting the same name twice keeps the last value.
func WithHeader(name, value string) Option {
	return func(c *Config) {
		c.Headers = c.Headers.Set(name, value)
	}
}

// WithBody sets the raw body text.
func WithBody(body string) Option {
	return func(c *Config) {
		c.Body = body
	}
}

// New builds a Config.
func New(method Method, rawURL string, opts ...Option) Config {
	c := Config{
		Method: method,
		URL:    rawURL,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// HasBody reports whether body text was supplied, regardless of method.
func (c Config) HasBody() bool {
	return c.Body != ""
}

// SendsBody reports whether a command or snippet should carry the body.
// GET requests never do, even when a body was supplied.
func (c Config) SendsBody() bool {
	return c.HasBody() && c.Method != MethodGet
}

// Validate checks the fields every exporter relies on.
func (c Config) Validate() error {
	if c.Method == "" {
		return ErrMissingMethod
	}
	if strings.TrimSpace(c.URL) == "" {
		return ErrMissingURL
	}
	return nil
}
