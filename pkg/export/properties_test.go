package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackcoderx/reqport/pkg/request"
)

// Properties that hold across every target.

func threeHeaders(method request.Method, body string) request.Config {
	return request.New(method, "https://api.example.com/v1/things",
		request.WithHeader("X-One", "1"),
		request.WithHeader("X-Two", "2"),
		request.WithHeader("X-Three", "3"),
		request.WithBody(body),
	)
}

func TestGetNeverSendsBody(t *testing.T) {
	cfg := threeHeaders(request.MethodGet, `{"secret":"s3cr3t"}`)

	assert.NotContains(t, Curl(cfg), "-d ")
	assert.NotContains(t, HTTPie(cfg), "secret")
	assert.NotContains(t, HTTPie(cfg), "--raw")
	assert.NotContains(t, Fetch(cfg), "body:")
	assert.NotContains(t, Requests(cfg), "payload")
	assert.NotContains(t, Requests(cfg), "json=")

	// collections store the body unconditionally
	doc, err := Postman([]request.Config{cfg}, "", &SequenceGenerator{})
	require.NoError(t, err)
	assert.NotNil(t, doc.Item[0].Request.Body)
	ins := Insomnia([]request.Config{cfg}, "", &SequenceGenerator{}, SystemClock)
	assert.NotNil(t, ins.Resources[1].(InsomniaRequest).Body)
}

func TestHeaderCountMatches(t *testing.T) {
	for _, method := range []request.Method{request.MethodGet, request.MethodPost} {
		t.Run(string(method), func(t *testing.T) {
			cfg := threeHeaders(method, `{"a":1}`)

			for name, out := range map[string]string{
				"curl":     Curl(cfg),
				"httpie":   HTTPie(cfg),
				"fetch":    Fetch(cfg),
				"requests": Requests(cfg),
			} {
				assert.Equal(t, 3, strings.Count(out, "X-"), name)
			}

			doc, err := Postman([]request.Config{cfg}, "", &SequenceGenerator{})
			require.NoError(t, err)
			assert.Len(t, doc.Item[0].Request.Header, 3)

			ins := Insomnia([]request.Config{cfg}, "", &SequenceGenerator{}, SystemClock)
			assert.Len(t, ins.Resources[1].(InsomniaRequest).Headers, 3)
		})
	}
}

func TestRenderersDoNotMutateInput(t *testing.T) {
	cfg := threeHeaders(request.MethodPost, `{"a":"b"}`)
	snapshot := request.Config{
		Method:  cfg.Method,
		URL:     cfg.URL,
		Headers: append(request.Headers(nil), cfg.Headers...),
		Body:    cfg.Body,
	}

	_ = Curl(cfg)
	_ = HTTPie(cfg)
	_ = Fetch(cfg)
	_ = Requests(cfg)
	_, _ = Postman([]request.Config{cfg}, "", &SequenceGenerator{})
	_ = Insomnia([]request.Config{cfg}, "", &SequenceGenerator{}, SystemClock)

	assert.Equal(t, snapshot, cfg)
}

func TestPureRenderersIdempotent(t *testing.T) {
	cfg := threeHeaders(request.MethodPut, `{"a":"b","n":[1,2]}`)
	for _, render := range []func(request.Config) string{Curl, HTTPie, Fetch, Requests} {
		assert.Equal(t, render(cfg), render(cfg))
	}
}
