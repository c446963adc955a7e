package sink

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrOutsideWorkDir is returned for download targets that escape the work directory.
var ErrOutsideWorkDir = errors.New("access denied: path outside project directory")

// Confine resolves an artifact destination against workDir and returns its
// absolute path. Relative names are joined to workDir; anything resolving
// outside it, such as "../request.sh" or an absolute path elsewhere, yields
// ErrOutsideWorkDir. workDir itself is accepted.
func Confine(workDir, name string) (string, error) {
	root, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve work directory: %w", err)
	}

	target := name
	if !filepath.IsAbs(target) {
		target = filepath.Join(root, target)
	}
	target = filepath.Clean(target)

	rel, err := filepath.Rel(root, target)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrOutsideWorkDir, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrOutsideWorkDir
	}
	return target, nil
}
