package storage

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/blackcoderx/reqport/pkg/request"
)

// ToConfig converts a saved request into the model the exporters render.
// Query parameters are appended to the URL in key order.
func (r *Request) ToConfig() (request.Config, error) {
	body, err := r.Body.Text()
	if err != nil {
		return request.Config{}, fmt.Errorf("request %q: %w", r.Name, err)
	}

	cfg := request.Config{
		Method:  request.ParseMethod(r.Method),
		URL:     withQuery(r.URL, r.Query),
		Headers: append(request.Headers(nil), r.Headers...),
		Body:    body,
	}
	if err := cfg.Validate(); err != nil {
		return request.Config{}, fmt.Errorf("request %q: %w", r.Name, err)
	}
	return cfg, nil
}

// FromConfig builds a saved request from a model, e.g. one assembled from
// command-line flags.
func FromConfig(name string, cfg request.Config) Request {
	return Request{
		Name:    name,
		Method:  string(cfg.Method),
		URL:     cfg.URL,
		Headers: HeaderMap(cfg.Headers),
		Body:    TextBody(cfg.Body),
	}
}

func withQuery(rawURL string, query map[string]string) string {
	if len(query) == 0 {
		return rawURL
	}

	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, url.QueryEscape(k)+"="+url.QueryEscape(query[k]))
	}

	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + strings.Join(pairs, "&")
}
