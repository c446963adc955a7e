package sink

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aymanbagabas/go-udiff"
	"go.uber.org/zap"

	"github.com/blackcoderx/reqport/pkg/export"
)

// ErrOverwriteRejected is returned when an existing file differs and the
// confirm callback declines the overwrite.
var ErrOverwriteRejected = errors.New("overwrite rejected")

// maxArtifactSize guards against writing runaway output.
const maxArtifactSize = 10 * 1024 * 1024

// Overwrite describes a pending change to an existing file.
type Overwrite struct {
	Path string
	Diff string
}

// ConfirmFunc decides whether an existing file may be replaced.
type ConfirmFunc func(Overwrite) bool

// FileSink writes artifacts below a work directory.
type FileSink struct {
	workDir string
	confirm ConfirmFunc
	logger  *zap.Logger
}

// NewFileSink creates a file sink rooted at workDir. A nil confirm refuses
// every overwrite of a file whose content differs.
func NewFileSink(workDir string, confirm ConfirmFunc, logger *zap.Logger) *FileSink {
	if workDir == "" {
		workDir, _ = os.Getwd()
	}
	return &FileSink{workDir: workDir, confirm: confirm, logger: logger}
}

// Result reports what Download did.
type Result struct {
	Path      string
	Created   bool
	Unchanged bool
}

// Download writes the artifact to name, or to the artifact's suggested
// filename when name is empty. Writing identical content is a no-op.
func (s *FileSink) Download(a export.Artifact, name string) (Result, error) {
	if name == "" {
		name = a.Filename
	}
	if name == "" {
		return Result{}, fmt.Errorf("path is required")
	}

	absPath, err := Confine(s.workDir, name)
	if err != nil {
		return Result{}, err
	}

	if len(a.Content) > maxArtifactSize {
		return Result{}, fmt.Errorf("content too large (>10MB)")
	}

	existing, err := os.ReadFile(absPath)
	created := false
	switch {
	case os.IsNotExist(err):
		created = true
	case err != nil:
		return Result{}, fmt.Errorf("failed to read existing file: %w", err)
	case string(existing) == a.Content:
		return Result{Path: absPath, Unchanged: true}, nil
	default:
		change := Overwrite{Path: name, Diff: Diff(name, string(existing), a.Content)}
		if s.confirm == nil || !s.confirm(change) {
			return Result{}, fmt.Errorf("%w: %s", ErrOverwriteRejected, name)
		}
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return Result{}, fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(absPath, []byte(a.Content), 0644); err != nil {
		return Result{}, fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug("artifact written",
		zap.String("path", absPath),
		zap.String("target", a.Target.String()),
		zap.String("mime", a.MIMEType),
		zap.Bool("created", created),
	)
	return Result{Path: absPath, Created: created}, nil
}

// Diff returns a unified diff between the original and modified content,
// with three lines of context.
func Diff(filename, original, modified string) string {
	edits := udiff.Strings(original, modified)
	unified, err := udiff.ToUnified("a/"+filename, "b/"+filename, original, edits, 3)
	if err != nil {
		return fmt.Sprintf("--- a/%s\n+++ b/%s\n(diff generation failed)\n", filename, filename)
	}
	return unified
}
