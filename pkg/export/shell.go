package export

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/blackcoderx/reqport/pkg/request"
)

// Curl renders cfg as a curl command. The method flag is omitted for GET.
// Header values and the URL are embedded verbatim inside double quotes; a
// value containing a double quote produces a broken command.
func Curl(cfg request.Config) string {
	tokens := []string{"curl"}
	if cfg.Method != request.MethodGet {
		tokens = append(tokens, "-X "+string(cfg.Method))
	}
	for _, h := range cfg.Headers {
		tokens = append(tokens, "-H "+doubleQuote(h.Name+": "+h.Value))
	}
	if cfg.SendsBody() {
		tokens = append(tokens, "-d "+singleQuote(cfg.Body))
	}
	tokens = append(tokens, doubleQuote(cfg.URL))
	return joinContinued(tokens)
}

// HTTPie renders cfg as an HTTPie command. The method is always explicit.
//
// A JSON object body is split into one request item per top-level key:
// strings become key="value" and every other value becomes key:=<json>,
// passed through untouched. Any other body is sent as a single --raw item.
func HTTPie(cfg request.Config) string {
	tokens := []string{"http", string(cfg.Method)}
	for _, h := range cfg.Headers {
		tokens = append(tokens, doubleQuote(h.Name+":"+h.Value))
	}
	if cfg.SendsBody() {
		tokens = append(tokens, httpieBodyItems(cfg.Body)...)
	}
	tokens = append(tokens, doubleQuote(cfg.URL))
	return joinContinued(tokens)
}

func httpieBodyItems(body string) []string {
	raw := []string{"--raw=" + singleQuote(body)}
	if !gjson.Valid(body) {
		return raw
	}
	parsed := gjson.Parse(body)
	if !parsed.IsObject() {
		return raw
	}

	var items []string
	parsed.ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.String {
			items = append(items, key.String()+"="+doubleQuote(value.String()))
		} else {
			items = append(items, key.String()+":="+value.Raw)
		}
		return true
	})
	// {} has no items to carry it
	if len(items) == 0 {
		return raw
	}
	return items
}

// singleQuote wraps s in single quotes, closing and reopening the quoted
// string around each embedded quote so the shell reproduces s exactly.
func singleQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
