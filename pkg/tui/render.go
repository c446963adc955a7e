// Package tui holds the terminal presentation of reqport: highlighted
// artifact previews, status lines and interactive prompts.
package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/blackcoderx/reqport/pkg/export"
)

// Language returns the code fence language used to highlight a target's output.
func Language(t export.Target) string {
	switch t {
	case export.TargetCurl, export.TargetHTTPie:
		return "bash"
	case export.TargetPostman, export.TargetInsomnia:
		return "json"
	case export.TargetFetch:
		return "javascript"
	case export.TargetRequests:
		return "python"
	default:
		return ""
	}
}

// RenderArtifact returns a syntax-highlighted preview of the artifact.
// Theme is "dark", "light" or "auto"; anything else means auto.
// If rendering fails the raw content is returned.
func RenderArtifact(a export.Artifact, theme string) string {
	fence := "```"
	if strings.Contains(a.Content, fence) {
		fence = "~~~~"
	}

	var sb strings.Builder
	sb.WriteString(fence)
	sb.WriteString(Language(a.Target))
	sb.WriteString("\n")
	sb.WriteString(a.Content)
	if !strings.HasSuffix(a.Content, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString(fence)

	renderer, err := glamour.NewTermRenderer(
		styleOption(theme),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return a.Content
	}

	out, err := renderer.Render(sb.String())
	if err != nil {
		return a.Content
	}

	return strings.Trim(out, "\n")
}

func styleOption(theme string) glamour.TermRendererOption {
	switch theme {
	case "dark", "light":
		return glamour.WithStandardStyle(theme)
	default:
		return glamour.WithAutoStyle()
	}
}
