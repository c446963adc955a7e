package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blackcoderx/reqport/pkg/request"
)

// Target is one of the fixed export formats.
type Target int

const (
	TargetCurl Target = iota
	TargetHTTPie
	TargetPostman
	TargetInsomnia
	TargetFetch
	TargetRequests
)

var (
	ErrUnknownTarget = errors.New("unknown export target")
	ErrNoRequests    = errors.New("no requests to export")
)

var targetNames = [...]string{
	TargetCurl:     "curl",
	TargetHTTPie:   "httpie",
	TargetPostman:  "postman",
	TargetInsomnia: "insomnia",
	TargetFetch:    "fetch",
	TargetRequests: "python",
}

// Targets lists every target in display order.
func Targets() []Target {
	return []Target{TargetCurl, TargetHTTPie, TargetPostman, TargetInsomnia, TargetFetch, TargetRequests}
}

func (t Target) String() string {
	if t < 0 || int(t) >= len(targetNames) {
		return fmt.Sprintf("Target(%d)", int(t))
	}
	return targetNames[t]
}

// ParseTarget maps a user-facing name to a Target.
func ParseTarget(name string) (Target, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range Targets() {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTarget, name)
}

// IsCollection reports whether the target bundles all requests into one document.
func (t Target) IsCollection() bool {
	return t == TargetPostman || t == TargetInsomnia
}

// Filename is the suggested download name for the target's artifact.
func (t Target) Filename() string {
	switch t {
	case TargetCurl:
		return "request.sh"
	case TargetHTTPie:
		return "request.httpie.sh"
	case TargetPostman:
		return "postman_collection.json"
	case TargetInsomnia:
		return "insomnia_export.json"
	case TargetFetch:
		return "request.js"
	case TargetRequests:
		return "request.py"
	}
	return "export.txt"
}

// MIMEType is the content type used when the artifact is downloaded.
func (t Target) MIMEType() string {
	switch t {
	case TargetCurl, TargetHTTPie:
		return "application/x-sh"
	case TargetPostman, TargetInsomnia:
		return "application/json"
	case TargetFetch:
		return "text/javascript"
	case TargetRequests:
		return "text/x-python"
	}
	return "text/plain"
}

// Artifact is a finished export ready to hand to a sink.
type Artifact struct {
	Target   Target
	Content  string
	Filename string
	MIMEType string
}

// Exporter holds the collaborators the collection targets need. The zero
// value is not usable; build one with NewExporter.
type Exporter struct {
	CollectionName string
	PostmanIDs     IDGenerator
	InsomniaIDs    IDGenerator
	Clock          Clock
}

// NewExporter returns an Exporter with random identifiers and the wall clock.
func NewExporter(collectionName string) *Exporter {
	return &Exporter{
		CollectionName: collectionName,
		PostmanIDs:     UUIDGenerator{},
		InsomniaIDs:    ULIDGenerator{},
		Clock:          SystemClock,
	}
}

// Render produces the artifact for target. Collection targets bundle every
// config into one document; the other targets render each config and
// separate them with a blank line.
func (e *Exporter) Render(target Target, cfgs []request.Config) (Artifact, error) {
	var content string

	switch target {
	case TargetPostman:
		doc, err := Postman(cfgs, e.CollectionName, e.PostmanIDs)
		if err != nil {
			return Artifact{}, err
		}
		b, err := MarshalDocument(doc)
		if err != nil {
			return Artifact{}, fmt.Errorf("failed to marshal postman collection: %w", err)
		}
		content = string(b)
	case TargetInsomnia:
		b, err := MarshalDocument(Insomnia(cfgs, e.CollectionName, e.InsomniaIDs, e.Clock))
		if err != nil {
			return Artifact{}, fmt.Errorf("failed to marshal insomnia export: %w", err)
		}
		content = string(b)
	case TargetCurl, TargetHTTPie, TargetFetch, TargetRequests:
		if len(cfgs) == 0 {
			return Artifact{}, ErrNoRequests
		}
		render := singleRenderer(target)
		parts := make([]string, 0, len(cfgs))
		for _, cfg := range cfgs {
			parts = append(parts, render(cfg))
		}
		content = strings.Join(parts, "\n\n")
	default:
		return Artifact{}, fmt.Errorf("%w: %s", ErrUnknownTarget, target)
	}

	return Artifact{
		Target:   target,
		Content:  content,
		Filename: target.Filename(),
		MIMEType: target.MIMEType(),
	}, nil
}

func singleRenderer(t Target) func(request.Config) string {
	switch t {
	case TargetCurl:
		return Curl
	case TargetHTTPie:
		return HTTPie
	case TargetFetch:
		return Fetch
	default:
		return Requests
	}
}
