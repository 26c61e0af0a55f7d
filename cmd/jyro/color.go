package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// colorMode mirrors the usual CLI tri-state: auto-detect, force on,
// force off. It implements pflag.Value directly (String/Set/Type)
// rather than binding a bare string flag, so an invalid --color value
// is rejected by cobra's flag parsing instead of silently falling back
// to "auto" deep inside colorEnabled.
type colorMode string

const (
	colorAuto   colorMode = "auto"
	colorAlways colorMode = "always"
	colorNever  colorMode = "never"
)

func (m *colorMode) String() string {
	if *m == "" {
		return string(colorAuto)
	}
	return string(*m)
}

func (m *colorMode) Set(s string) error {
	switch colorMode(s) {
	case colorAuto, colorAlways, colorNever:
		*m = colorMode(s)
		return nil
	default:
		return fmt.Errorf("must be one of auto, always, never (got %q)", s)
	}
}

func (m *colorMode) Type() string {
	return "colorMode"
}

// colorEnabled resolves mode against whether stdout is a real terminal.
// Non-tty stdout (a pipe, a CI log, a redirected file) never gets
// styled output under "auto" — only "always" forces it.
func colorEnabled(mode colorMode) bool {
	switch mode {
	case colorAlways:
		return true
	case colorNever:
		return false
	default:
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
}

// styles mirrors the teacher's pkg/ux.Styles table (lipgloss.NewStyle
// chains keyed by purpose rather than raw color), narrowed to the
// handful of roles this CLI actually renders: diagnostic severities
// and added/removed diff lines.
var styles = struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Bold    lipgloss.Style
	Added   lipgloss.Style
	Removed lipgloss.Style
}{
	Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C")),
	Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#F4D03F")),
	Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("#157483")),
	Bold:    lipgloss.NewStyle().Bold(true),
	Added:   lipgloss.NewStyle().Foreground(lipgloss.Color("#2CD7C7")),
	Removed: lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C")),
}

// colorize renders s through style when enabled, otherwise returns s
// unchanged — the same enabled-gate the teacher's ux helpers leave to
// their callers, just applied to a lipgloss.Style instead of raw ANSI.
func colorize(enabled bool, style lipgloss.Style, s string) string {
	if !enabled {
		return s
	}
	return style.Render(s)
}
