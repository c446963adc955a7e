package export

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/blackcoderx/reqport/pkg/request"
)

const (
	// PostmanSchema identifies the collection format version.
	PostmanSchema = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"

	// DefaultCollectionName names collections and workspaces when the caller gives none.
	DefaultCollectionName = "API Collection"
)

// ErrInvalidURL is returned when a URL cannot be split into its parts.
var ErrInvalidURL = errors.New("invalid url")

// PostmanCollection is a Postman v2.1 collection document.
type PostmanCollection struct {
	Info PostmanInfo   `json:"info"`
	Item []PostmanItem `json:"item"`
}

// PostmanInfo holds collection metadata.
type PostmanInfo struct {
	PostmanID string `json:"_postman_id"`
	Name      string `json:"name"`
	Schema    string `json:"schema"`
}

// PostmanItem is one saved request in a collection.
type PostmanItem struct {
	Name    string         `json:"name"`
	Request PostmanRequest `json:"request"`
}

// PostmanRequest represents an HTTP request in Postman format
type PostmanRequest struct {
	Method string          `json:"method"`
	Header []PostmanHeader `json:"header"`
	Body   *PostmanBody    `json:"body,omitempty"`
	URL    PostmanURL      `json:"url"`
}

// PostmanHeader represents a header in Postman format
type PostmanHeader struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

// PostmanBody represents a raw request body
type PostmanBody struct {
	Mode    string              `json:"mode"`
	Raw     string              `json:"raw"`
	Options *PostmanBodyOptions `json:"options,omitempty"`
}

type PostmanBodyOptions struct {
	Raw PostmanRawOptions `json:"raw"`
}

type PostmanRawOptions struct {
	Language string `json:"language"`
}

// PostmanURL is a URL split into the parts Postman stores.
type PostmanURL struct {
	Raw      string              `json:"raw"`
	Protocol string              `json:"protocol"`
	Host     []string            `json:"host"`
	Port     string              `json:"port,omitempty"`
	Path     []string            `json:"path"`
	Query    []PostmanQueryParam `json:"query,omitempty"`
}

// PostmanQueryParam represents a query parameter in Postman format
type PostmanQueryParam struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Postman builds a collection holding one item per config, in order. An
// empty name falls back to DefaultCollectionName. If any URL cannot be
// decomposed the whole export fails.
func Postman(cfgs []request.Config, name string, ids IDGenerator) (*PostmanCollection, error) {
	if name == "" {
		name = DefaultCollectionName
	}

	items := make([]PostmanItem, 0, len(cfgs))
	for i, cfg := range cfgs {
		item, err := postmanItem(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to export request %d: %w", i, err)
		}
		items = append(items, item)
	}

	return &PostmanCollection{
		Info: PostmanInfo{
			PostmanID: ids.NewID(),
			Name:      name,
			Schema:    PostmanSchema,
		},
		Item: items,
	}, nil
}

func postmanItem(cfg request.Config) (PostmanItem, error) {
	u, err := parseAbsoluteURL(cfg.URL)
	if err != nil {
		return PostmanItem{}, err
	}
	pURL, err := decomposeURL(cfg.URL, u)
	if err != nil {
		return PostmanItem{}, err
	}

	headers := make([]PostmanHeader, 0, cfg.Headers.Len())
	for _, h := range cfg.Headers {
		headers = append(headers, PostmanHeader{Key: h.Name, Value: h.Value, Type: "text"})
	}

	req := PostmanRequest{
		Method: string(cfg.Method),
		Header: headers,
		URL:    pURL,
	}
	if cfg.HasBody() {
		req.Body = &PostmanBody{
			Mode:    "raw",
			Raw:     cfg.Body,
			Options: &PostmanBodyOptions{Raw: PostmanRawOptions{Language: "json"}},
		}
	}

	return PostmanItem{
		Name:    itemName(cfg.Method, u.EscapedPath()),
		Request: req,
	}, nil
}

// parseAbsoluteURL parses raw and requires a scheme and host.
func parseAbsoluteURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not an absolute url", ErrInvalidURL, raw)
	}
	return u, nil
}

func decomposeURL(raw string, u *url.URL) (PostmanURL, error) {
	query, err := queryPairs(u.RawQuery)
	if err != nil {
		return PostmanURL{}, err
	}
	return PostmanURL{
		Raw:      raw,
		Protocol: u.Scheme,
		Host:     strings.Split(u.Hostname(), "."),
		Port:     explicitPort(u),
		Path:     pathSegments(u.EscapedPath()),
		Query:    query,
	}, nil
}

var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
	"ws":    "80",
	"wss":   "443",
	"ftp":   "21",
}

// explicitPort returns the URL's port unless it is the scheme's default.
func explicitPort(u *url.URL) string {
	port := u.Port()
	if defaultPorts[strings.ToLower(u.Scheme)] == port {
		return ""
	}
	return port
}

// pathSegments splits an escaped path, so %2F stays inside its segment.
func pathSegments(p string) []string {
	segments := make([]string, 0)
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// queryPairs decodes a query string keeping the source order, which
// url.Values would lose.
func queryPairs(rawQuery string) ([]PostmanQueryParam, error) {
	var pairs []PostmanQueryParam
	for _, part := range strings.Split(rawQuery, "&") {
		if part == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("%w: query key %q: %w", ErrInvalidURL, rawKey, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("%w: query value %q: %w", ErrInvalidURL, rawValue, err)
		}
		pairs = append(pairs, PostmanQueryParam{Key: key, Value: value})
	}
	return pairs, nil
}

// itemName labels a saved request with its method and path only.
func itemName(method request.Method, path string) string {
	if path == "" {
		path = "/"
	}
	return string(method) + " " + path
}
