package export

import (
	"net/url"
	"strconv"

	"github.com/blackcoderx/reqport/pkg/request"
)

const (
	InsomniaExportFormat = 4
	InsomniaExportSource = "reqport:v1"

	// insomniaDateLayout matches JavaScript's Date.toISOString.
	insomniaDateLayout = "2006-01-02T15:04:05.000Z07:00"
)

// InsomniaExport is an Insomnia v4 export document.
type InsomniaExport struct {
	Type         string             `json:"_type"`
	ExportFormat int                `json:"__export_format"`
	ExportDate   string             `json:"__export_date"`
	ExportSource string             `json:"__export_source"`
	Resources    []InsomniaResource `json:"resources"`
}

// InsomniaResource is an entry of the resources list: a workspace or a request.
type InsomniaResource interface {
	ResourceID() string
	ResourceType() string
}

type InsomniaWorkspace struct {
	ID          string `json:"_id"`
	Type        string `json:"_type"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (w InsomniaWorkspace) ResourceID() string   { return w.ID }
func (w InsomniaWorkspace) ResourceType() string { return w.Type }

type InsomniaRequest struct {
	ID       string           `json:"_id"`
	Type     string           `json:"_type"`
	ParentID string           `json:"parentId"`
	Name     string           `json:"name"`
	Method   string           `json:"method"`
	URL      string           `json:"url"`
	Headers  []InsomniaHeader `json:"headers"`
	Body     *InsomniaBody    `json:"body,omitempty"`
}

func (r InsomniaRequest) ResourceID() string   { return r.ID }
func (r InsomniaRequest) ResourceType() string { return r.Type }

type InsomniaHeader struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type InsomniaBody struct {
	MimeType string `json:"mimeType"`
	Text     string `json:"text"`
}

// Insomnia builds an export with one workspace followed by one request per
// config, in order. URLs are stored as given, so this export never fails.
//
// The generator is drawn once per call; request ids combine that value with
// the request's position, keeping every id in the document distinct.
func Insomnia(cfgs []request.Config, name string, ids IDGenerator, clock Clock) *InsomniaExport {
	if name == "" {
		name = DefaultCollectionName
	}

	base := ids.NewID()
	workspaceID := "wrk_" + base

	resources := make([]InsomniaResource, 0, len(cfgs)+1)
	resources = append(resources, InsomniaWorkspace{
		ID:   workspaceID,
		Type: "workspace",
		Name: name,
	})

	for i, cfg := range cfgs {
		headers := make([]InsomniaHeader, 0, cfg.Headers.Len())
		for _, h := range cfg.Headers {
			headers = append(headers, InsomniaHeader{Name: h.Name, Value: h.Value})
		}

		req := InsomniaRequest{
			ID:       "req_" + base + "_" + strconv.Itoa(i),
			Type:     "request",
			ParentID: workspaceID,
			Name:     insomniaName(cfg),
			Method:   string(cfg.Method),
			URL:      cfg.URL,
			Headers:  headers,
		}
		if cfg.HasBody() {
			req.Body = &InsomniaBody{MimeType: "application/json", Text: cfg.Body}
		}
		resources = append(resources, req)
	}

	return &InsomniaExport{
		Type:         "export",
		ExportFormat: InsomniaExportFormat,
		ExportDate:   clock().UTC().Format(insomniaDateLayout),
		ExportSource: InsomniaExportSource,
		Resources:    resources,
	}
}

func insomniaName(cfg request.Config) string {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return string(cfg.Method) + " " + cfg.URL
	}
	return itemName(cfg.Method, u.EscapedPath())
}
