package tui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/blackcoderx/reqport/pkg/export"
	"github.com/blackcoderx/reqport/pkg/sink"
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("cancelled")

// IsInteractive reports whether stdin is a terminal we can prompt on.
func IsInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// TargetOptions lists every export target as a select option, collection
// formats labelled as such.
func TargetOptions() []huh.Option[export.Target] {
	targets := export.Targets()
	opts := make([]huh.Option[export.Target], len(targets))
	for i, t := range targets {
		label := t.String()
		if t.IsCollection() {
			label += " (collection)"
		}
		opts[i] = huh.NewOption(label, t)
	}
	return opts
}

// SelectTarget asks which format to export, starting on def.
func SelectTarget(def export.Target) (export.Target, error) {
	selected := def
	sel := huh.NewSelect[export.Target]().
		Title("Export as").
		Options(TargetOptions()...).
		Value(&selected)

	if err := huh.NewForm(huh.NewGroup(sel)).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return def, ErrCancelled
		}
		return def, fmt.Errorf("prompt error: %w", err)
	}
	return selected, nil
}

// ConfirmOverwrite shows the pending diff and asks before replacing a file.
// It satisfies sink.ConfirmFunc.
func ConfirmOverwrite(o sink.Overwrite) bool {
	overwrite := false
	confirm := huh.NewConfirm().
		Title(fmt.Sprintf("Overwrite %s?", o.Path)).
		Description(o.Diff).
		Affirmative("Overwrite").
		Negative("Keep").
		Value(&overwrite)

	if err := huh.NewForm(huh.NewGroup(confirm)).Run(); err != nil {
		return false
	}
	return overwrite
}
