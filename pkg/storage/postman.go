package storage

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/blackcoderx/reqport/pkg/request"
)

// ErrNotPostman is returned for documents that are not a Postman collection.
var ErrNotPostman = errors.New("not a postman collection")

type postmanDoc struct {
	Info struct {
		Name        string `json:"name"`
		Description any    `json:"description"`
	} `json:"info"`
	Item     []postmanItem `json:"item"`
	Variable []struct {
		Key      string `json:"key"`
		Value    any    `json:"value"`
		Disabled bool   `json:"disabled"`
	} `json:"variable"`
}

type postmanItem struct {
	Name    string          `json:"name"`
	Item    []postmanItem   `json:"item"`
	Request *postmanRequest `json:"request"`
}

type postmanRequest struct {
	Method string `json:"method"`
	Header []struct {
		Key      string `json:"key"`
		Value    string `json:"value"`
		Disabled bool   `json:"disabled"`
	} `json:"header"`
	Body *struct {
		Mode       string `json:"mode"`
		Raw        string `json:"raw"`
		URLEncoded []struct {
			Key      string `json:"key"`
			Value    string `json:"value"`
			Disabled bool   `json:"disabled"`
		} `json:"urlencoded"`
	} `json:"body"`
	URL postmanURL `json:"url"`
}

// postmanURL accepts both the string and the object form of "url".
type postmanURL struct {
	raw string
}

func (u *postmanURL) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		u.raw = s
		return nil
	}

	var obj struct {
		Raw      string   `json:"raw"`
		Protocol string   `json:"protocol"`
		Host     []string `json:"host"`
		Port     string   `json:"port"`
		Path     []string `json:"path"`
		Query    []struct {
			Key      string `json:"key"`
			Value    string `json:"value"`
			Disabled bool   `json:"disabled"`
		} `json:"query"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("url must be a string or an object: %w", err)
	}
	if obj.Raw != "" {
		u.raw = obj.Raw
		return nil
	}

	var sb strings.Builder
	if obj.Protocol != "" {
		sb.WriteString(obj.Protocol + "://")
	}
	sb.WriteString(strings.Join(obj.Host, "."))
	if obj.Port != "" {
		sb.WriteString(":" + obj.Port)
	}
	if len(obj.Path) > 0 {
		sb.WriteString("/" + strings.Join(obj.Path, "/"))
	}
	sep := "?"
	for _, q := range obj.Query {
		if q.Disabled {
			continue
		}
		sb.WriteString(sep + url.QueryEscape(q.Key) + "=" + url.QueryEscape(q.Value))
		sep = "&"
	}
	u.raw = sb.String()
	return nil
}

// ImportPostman reads a Postman v2.0/v2.1 collection. Folders are flattened
// in document order, each request named "<folder>/<name>". Disabled headers
// are skipped. Raw bodies are kept as text and urlencoded bodies become a
// form string; other body modes are dropped. Collection variables are
// returned so they can be saved as an environment, since {{name}}
// placeholders use the same syntax.
func ImportPostman(data []byte) (*Collection, map[string]string, error) {
	var doc postmanDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse postman collection: %w", err)
	}
	if doc.Item == nil {
		return nil, nil, fmt.Errorf("%w: missing item list", ErrNotPostman)
	}

	c := &Collection{Name: doc.Info.Name}
	if d, ok := doc.Info.Description.(string); ok {
		c.Description = d
	}
	if err := collectItems(doc.Item, "", c); err != nil {
		return nil, nil, err
	}

	vars := make(map[string]string)
	for _, v := range doc.Variable {
		if v.Disabled || v.Key == "" {
			continue
		}
		vars[v.Key] = fmt.Sprint(v.Value)
	}
	return c, vars, nil
}

func collectItems(items []postmanItem, prefix string, c *Collection) error {
	for _, item := range items {
		name := item.Name
		if prefix != "" {
			name = prefix + "/" + item.Name
		}

		// folders carry item, requests carry request
		if item.Item != nil {
			if err := collectItems(item.Item, name, c); err != nil {
				return err
			}
			continue
		}
		if item.Request == nil {
			continue
		}
		req, err := importRequest(name, item.Request)
		if err != nil {
			return fmt.Errorf("failed to import %q: %w", name, err)
		}
		c.Requests = append(c.Requests, req)
	}
	return nil
}

func importRequest(name string, pr *postmanRequest) (Request, error) {
	if pr.URL.raw == "" {
		return Request{}, request.ErrMissingURL
	}

	var headers request.Headers
	for _, h := range pr.Header {
		if h.Disabled {
			continue
		}
		headers = headers.Set(h.Key, h.Value)
	}

	req := Request{
		Name:    name,
		Method:  string(request.ParseMethod(pr.Method)),
		URL:     pr.URL.raw,
		Headers: HeaderMap(headers),
	}

	if pr.Body != nil {
		switch pr.Body.Mode {
		case "raw":
			req.Body = TextBody(pr.Body.Raw)
		case "urlencoded":
			pairs := make([]string, 0, len(pr.Body.URLEncoded))
			for _, p := range pr.Body.URLEncoded {
				if p.Disabled {
					continue
				}
				pairs = append(pairs, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value))
			}
			req.Body = TextBody(strings.Join(pairs, "&"))
		}
	}
	return req, nil
}
