package export

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blackcoderx/reqport/pkg/request"
)

func TestFetch(t *testing.T) {
	tests := []struct {
		name string
		cfg  request.Config
		want string
	}{
		{
			name: "post with headers and body",
			cfg:  postItems(),
			want: `fetch("https://x.test/items", {
  method: "POST",
  headers: {
    "Content-Type": "application/json"
  },
  body: JSON.stringify({"name":"a"})
})
  .then(response => response.json())
  .then(data => console.log(data))
  .catch(error => console.error('Error:', error));`,
		},
		{
			name: "get without headers",
			cfg:  request.New(request.MethodGet, "https://x.test/items", request.WithBody(`{"a":1}`)),
			want: `fetch("https://x.test/items", {
  method: "GET"
})
  .then(response => response.json())
  .then(data => console.log(data))
  .catch(error => console.error('Error:', error));`,
		},
		{
			name: "several headers keep order and skip html escaping",
			cfg: request.New(request.MethodDelete, "https://x.test/items/1",
				request.WithHeader("X-B", "<b>"),
				request.WithHeader("X-A", `say "hi"`),
			),
			want: `fetch("https://x.test/items/1", {
  method: "DELETE",
  headers: {
    "X-B": "<b>",
    "X-A": "say \"hi\""
  }
})
  .then(response => response.json())
  .then(data => console.log(data))
  .catch(error => console.error('Error:', error));`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fetch(tt.cfg))
		})
	}
}

func TestRequests(t *testing.T) {
	tests := []struct {
		name string
		cfg  request.Config
		want string
	}{
		{
			name: "post with headers and body",
			cfg:  postItems(),
			want: `import requests

url = "https://x.test/items"
headers = {
    "Content-Type": "application/json"
}
payload = {"name":"a"}

response = requests.post(url, headers=headers, json=payload)
print(response.json())`,
		},
		{
			name: "get drops payload",
			cfg:  request.New(request.MethodGet, "https://x.test/items", request.WithBody(`{"a":1}`)),
			want: `import requests

url = "https://x.test/items"

response = requests.get(url)
print(response.json())`,
		},
		{
			name: "body without headers",
			cfg:  request.New(request.MethodPatch, "https://x.test/items/1", request.WithBody(`[1, 2]`)),
			want: `import requests

url = "https://x.test/items/1"
payload = [1, 2]

response = requests.patch(url, json=payload)
print(response.json())`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Requests(tt.cfg))
		})
	}
}

func TestSnippets_BodyNotReescaped(t *testing.T) {
	body := `{"quote": "it's \"quoted\"", "n": 1}`
	cfg := request.New(request.MethodPost, "https://x.test", request.WithBody(body))

	assert.Contains(t, Fetch(cfg), "JSON.stringify("+body+")")
	assert.Contains(t, Requests(cfg), "payload = "+body+"\n")
}

func TestHeadersObject(t *testing.T) {
	assert.Equal(t, "{}", headersObject(nil, "  "))
	assert.Equal(t, "{\n\t\"a\": \"1\"\n}", headersObject(request.Headers{{Name: "a", Value: "1"}}, "\t"))
}
