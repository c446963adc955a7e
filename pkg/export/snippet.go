package export

import (
	"strings"

	"github.com/blackcoderx/reqport/pkg/request"
)

// Fetch renders cfg as a JavaScript fetch call. The body is inserted as a
// raw expression inside JSON.stringify, so it must already be a valid
// literal; free text has to be serialized by the caller.
func Fetch(cfg request.Config) string {
	fields := []string{"  method: " + quoteJSON(string(cfg.Method))}
	if cfg.Headers.Len() > 0 {
		obj := headersObject(cfg.Headers, "  ")
		fields = append(fields, "  headers: "+strings.ReplaceAll(obj, "\n", "\n  "))
	}
	if cfg.SendsBody() {
		fields = append(fields, "  body: JSON.stringify("+cfg.Body+")")
	}

	var sb strings.Builder
	sb.WriteString("fetch(" + doubleQuote(cfg.URL) + ", {\n")
	sb.WriteString(strings.Join(fields, ",\n"))
	sb.WriteString("\n})\n")
	sb.WriteString("  .then(response => response.json())\n")
	sb.WriteString("  .then(data => console.log(data))\n")
	sb.WriteString("  .catch(error => console.error('Error:', error));")
	return sb.String()
}

// Requests renders cfg as a Python script using the requests library.
// The payload is the body inserted verbatim.
func Requests(cfg request.Config) string {
	var sb strings.Builder
	sb.WriteString("import requests\n\n")
	sb.WriteString("url = " + doubleQuote(cfg.URL) + "\n")

	args := []string{"url"}
	if cfg.Headers.Len() > 0 {
		sb.WriteString("headers = " + headersObject(cfg.Headers, "    ") + "\n")
		args = append(args, "headers=headers")
	}
	if cfg.SendsBody() {
		sb.WriteString("payload = " + cfg.Body + "\n")
		args = append(args, "json=payload")
	}

	sb.WriteString("\nresponse = requests." + cfg.Method.Lower() + "(" + strings.Join(args, ", ") + ")\n")
	sb.WriteString("print(response.json())")
	return sb.String()
}
