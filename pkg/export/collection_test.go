package export

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackcoderx/reqport/pkg/request"
)

var exportTime = time.Date(2024, 1, 2, 3, 4, 5, 678_000_000, time.UTC)

func TestPostman_Document(t *testing.T) {
	cfgs := []request.Config{
		request.New(request.MethodGet, "https://api.example.com/v1/users?active=true",
			request.WithHeader("Accept", "application/json"),
		),
		postItems(),
	}

	got, err := Postman(cfgs, "", &SequenceGenerator{Prefix: "id-"})
	require.NoError(t, err)

	want := &PostmanCollection{
		Info: PostmanInfo{
			PostmanID: "id-1",
			Name:      DefaultCollectionName,
			Schema:    PostmanSchema,
		},
		Item: []PostmanItem{
			{
				Name: "GET /v1/users",
				Request: PostmanRequest{
					Method: "GET",
					Header: []PostmanHeader{{Key: "Accept", Value: "application/json", Type: "text"}},
					URL: PostmanURL{
						Raw:      "https://api.example.com/v1/users?active=true",
						Protocol: "https",
						Host:     []string{"api", "example", "com"},
						Path:     []string{"v1", "users"},
						Query:    []PostmanQueryParam{{Key: "active", Value: "true"}},
					},
				},
			},
			{
				Name: "POST /items",
				Request: PostmanRequest{
					Method: "POST",
					Header: []PostmanHeader{{Key: "Content-Type", Value: "application/json", Type: "text"}},
					Body: &PostmanBody{
						Mode:    "raw",
						Raw:     `{"name":"a"}`,
						Options: &PostmanBodyOptions{Raw: PostmanRawOptions{Language: "json"}},
					},
					URL: PostmanURL{
						Raw:      "https://x.test/items",
						Protocol: "https",
						Host:     []string{"x", "test"},
						Path:     []string{"items"},
					},
				},
			},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Postman() mismatch (-want +got):\n%s", diff)
	}
}

func TestPostman_URLDecomposition(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		want  PostmanURL
		label string
	}{
		{
			name:  "explicit port and trailing slash",
			url:   "http://localhost:8080/api//v2/",
			label: "GET /api//v2/",
			want: PostmanURL{
				Raw:      "http://localhost:8080/api//v2/",
				Protocol: "http",
				Host:     []string{"localhost"},
				Port:     "8080",
				Path:     []string{"api", "v2"},
			},
		},
		{
			name:  "no path",
			url:   "https://example.com",
			label: "GET /",
			want: PostmanURL{
				Raw:      "https://example.com",
				Protocol: "https",
				Host:     []string{"example", "com"},
				Path:     []string{},
			},
		},
		{
			name:  "encoded segments stay encoded",
			url:   "https://x.test/files/a%2Fb/my%20doc",
			label: "GET /files/a%2Fb/my%20doc",
			want: PostmanURL{
				Raw:      "https://x.test/files/a%2Fb/my%20doc",
				Protocol: "https",
				Host:     []string{"x", "test"},
				Path:     []string{"files", "a%2Fb", "my%20doc"},
			},
		},
		{
			name:  "default https port dropped",
			url:   "https://x.test:443/a",
			label: "GET /a",
			want: PostmanURL{
				Raw:      "https://x.test:443/a",
				Protocol: "https",
				Host:     []string{"x", "test"},
				Path:     []string{"a"},
			},
		},
		{
			name:  "default http port dropped",
			url:   "http://localhost:80",
			label: "GET /",
			want: PostmanURL{
				Raw:      "http://localhost:80",
				Protocol: "http",
				Host:     []string{"localhost"},
				Path:     []string{},
			},
		},
		{
			name:  "non-default port for scheme kept",
			url:   "http://x.test:443/a",
			label: "GET /a",
			want: PostmanURL{
				Raw:      "http://x.test:443/a",
				Protocol: "http",
				Host:     []string{"x", "test"},
				Port:     "443",
				Path:     []string{"a"},
			},
		},
		{
			name:  "query order and decoding",
			url:   "https://example.com/search?q=hello%20world&b=2&a=1&flag",
			label: "GET /search",
			want: PostmanURL{
				Raw:      "https://example.com/search?q=hello%20world&b=2&a=1&flag",
				Protocol: "https",
				Host:     []string{"example", "com"},
				Path:     []string{"search"},
				Query: []PostmanQueryParam{
					{Key: "q", Value: "hello world"},
					{Key: "b", Value: "2"},
					{Key: "a", Value: "1"},
					{Key: "flag", Value: ""},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Postman([]request.Config{request.New(request.MethodGet, tt.url)}, "c", &SequenceGenerator{})
			require.NoError(t, err)
			require.Len(t, doc.Item, 1)
			assert.Equal(t, tt.label, doc.Item[0].Name)
			if diff := cmp.Diff(tt.want, doc.Item[0].Request.URL); diff != "" {
				t.Errorf("url mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPostman_InvalidURLFails(t *testing.T) {
	urls := []string{
		"/relative/path",
		"not a url",
		"http://[::1",
		"https://example.com/?q=%zz",
	}

	for _, u := range urls {
		t.Run(u, func(t *testing.T) {
			cfgs := []request.Config{postItems(), request.New(request.MethodGet, u)}
			doc, err := Postman(cfgs, "c", &SequenceGenerator{})
			assert.Nil(t, doc)
			assert.True(t, errors.Is(err, ErrInvalidURL), "err = %v", err)
		})
	}
}

func TestPostman_StoresBodyForGet(t *testing.T) {
	cfg := request.New(request.MethodGet, "https://x.test", request.WithBody(`{"q":1}`))
	doc, err := Postman([]request.Config{cfg}, "c", &SequenceGenerator{})
	require.NoError(t, err)
	require.NotNil(t, doc.Item[0].Request.Body)
	assert.Equal(t, `{"q":1}`, doc.Item[0].Request.Body.Raw)
}

func TestPostman_Empty(t *testing.T) {
	doc, err := Postman(nil, "Empty", &SequenceGenerator{})
	require.NoError(t, err)
	assert.Empty(t, doc.Item)

	b, err := MarshalDocument(doc)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"item": []`)
}

func TestPostman_OrderPreserved(t *testing.T) {
	var cfgs []request.Config
	for i := 0; i < 10; i++ {
		cfgs = append(cfgs, request.New(request.MethodGet, fmt.Sprintf("https://x.test/r%d", i)))
	}

	doc, err := Postman(cfgs, "c", &SequenceGenerator{})
	require.NoError(t, err)
	require.Len(t, doc.Item, len(cfgs))
	for i, item := range doc.Item {
		assert.Equal(t, fmt.Sprintf("GET /r%d", i), item.Name)
	}
}

func TestInsomnia_NameKeepsEscapedPath(t *testing.T) {
	doc := Insomnia([]request.Config{request.New(request.MethodGet, "https://x.test/files/a%2Fb")}, "c", &SequenceGenerator{}, FixedClock(exportTime))
	require.Len(t, doc.Resources, 2)
	assert.Equal(t, "GET /files/a%2Fb", doc.Resources[1].(InsomniaRequest).Name)
}

func TestInsomnia_Document(t *testing.T) {
	cfgs := []request.Config{
		request.New(request.MethodGet, "https://api.example.com/v1/users?active=true",
			request.WithHeader("Accept", "application/json"),
		),
		postItems(),
	}

	got := Insomnia(cfgs, "Team API", &SequenceGenerator{Prefix: "base"}, FixedClock(exportTime))

	want := &InsomniaExport{
		Type:         "export",
		ExportFormat: 4,
		ExportDate:   "2024-01-02T03:04:05.678Z",
		ExportSource: InsomniaExportSource,
		Resources: []InsomniaResource{
			InsomniaWorkspace{ID: "wrk_base1", Type: "workspace", Name: "Team API"},
			InsomniaRequest{
				ID:       "req_base1_0",
				Type:     "request",
				ParentID: "wrk_base1",
				Name:     "GET /v1/users",
				Method:   "GET",
				URL:      "https://api.example.com/v1/users?active=true",
				Headers:  []InsomniaHeader{{Name: "Accept", Value: "application/json"}},
			},
			InsomniaRequest{
				ID:       "req_base1_1",
				Type:     "request",
				ParentID: "wrk_base1",
				Name:     "POST /items",
				Method:   "POST",
				URL:      "https://x.test/items",
				Headers:  []InsomniaHeader{{Name: "Content-Type", Value: "application/json"}},
				Body:     &InsomniaBody{MimeType: "application/json", Text: `{"name":"a"}`},
			},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Insomnia() mismatch (-want +got):\n%s", diff)
	}
}

func TestInsomnia_UniqueIDs(t *testing.T) {
	for _, n := range []int{0, 1, 7} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			var cfgs []request.Config
			for i := 0; i < n; i++ {
				// identical requests must still get distinct ids
				cfgs = append(cfgs, request.New(request.MethodGet, "https://x.test/same"))
			}

			doc := Insomnia(cfgs, "", ULIDGenerator{}, SystemClock)
			require.Len(t, doc.Resources, n+1)
			assert.Equal(t, "workspace", doc.Resources[0].ResourceType())

			seen := make(map[string]bool)
			for _, r := range doc.Resources {
				assert.False(t, seen[r.ResourceID()], "duplicate id %s", r.ResourceID())
				seen[r.ResourceID()] = true
			}
		})
	}
}

func TestInsomnia_KeepsMalformedURL(t *testing.T) {
	doc := Insomnia([]request.Config{request.New(request.MethodGet, "not a url")}, "", &SequenceGenerator{}, SystemClock)
	req, ok := doc.Resources[1].(InsomniaRequest)
	require.True(t, ok)
	assert.Equal(t, "not a url", req.URL)
	assert.Nil(t, req.Body)
	assert.NotNil(t, req.Headers)
}

func TestInsomnia_JSONShape(t *testing.T) {
	doc := Insomnia([]request.Config{request.New(request.MethodGet, "https://x.test/a")}, "W", &SequenceGenerator{Prefix: "b"}, FixedClock(exportTime))
	b, err := MarshalDocument(doc)
	require.NoError(t, err)

	want := `{
  "_type": "export",
  "__export_format": 4,
  "__export_date": "2024-01-02T03:04:05.678Z",
  "__export_source": "reqport:v1",
  "resources": [
    {
      "_id": "wrk_b1",
      "_type": "workspace",
      "name": "W",
      "description": ""
    },
    {
      "_id": "req_b1_0",
      "_type": "request",
      "parentId": "wrk_b1",
      "name": "GET /a",
      "method": "GET",
      "url": "https://x.test/a",
      "headers": []
    }
  ]
}`
	assert.Equal(t, want, string(b))
}

func TestCollections_Idempotent(t *testing.T) {
	cfgs := []request.Config{postItems(), request.New(request.MethodGet, "https://api.example.com/v1/users?active=true")}

	render := func() (string, string) {
		e := &Exporter{
			CollectionName: "Idem",
			PostmanIDs:     &SequenceGenerator{Prefix: "p"},
			InsomniaIDs:    &SequenceGenerator{Prefix: "i"},
			Clock:          FixedClock(exportTime),
		}
		p, err := e.Render(TargetPostman, cfgs)
		require.NoError(t, err)
		i, err := e.Render(TargetInsomnia, cfgs)
		require.NoError(t, err)
		return p.Content, i.Content
	}

	p1, i1 := render()
	p2, i2 := render()
	assert.Equal(t, p1, p2)
	assert.Equal(t, i1, i2)
}

func TestSequenceGenerator(t *testing.T) {
	g := &SequenceGenerator{Prefix: "x"}
	assert.Equal(t, "x1", g.NewID())
	assert.Equal(t, "x2", g.NewID())
}

func TestRandomGenerators_Distinct(t *testing.T) {
	for _, g := range []IDGenerator{UUIDGenerator{}, ULIDGenerator{}} {
		assert.NotEqual(t, g.NewID(), g.NewID())
	}
}
