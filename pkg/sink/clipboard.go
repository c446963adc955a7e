// Package sink delivers finished export artifacts: to the system clipboard
// or to a file inside the project directory.
package sink

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

// ErrClipboardUnavailable is returned when the platform offers no clipboard
// (for example a headless Linux box without xclip, xsel or wl-clipboard).
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Clipboard copies artifacts to the system clipboard.
type Clipboard struct {
	logger *zap.Logger
	write  func(string) error
}

// NewClipboard creates a clipboard sink backed by the system clipboard.
func NewClipboard(logger *zap.Logger) *Clipboard {
	return &Clipboard{logger: logger, write: clipboard.WriteAll}
}

// Copy places content on the clipboard.
func (c *Clipboard) Copy(content string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	if err := c.write(content); err != nil {
		c.logger.Debug("clipboard write failed", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrClipboardUnavailable, err)
	}
	c.logger.Debug("copied to clipboard", zap.Int("bytes", len(content)))
	return nil
}
