package usecase

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// terminalRenderer carries a fixed ANSI color profile so that escape output
// never depends on terminal detection or process-global state. The writer is
// irrelevant: styles only render strings.
var terminalRenderer = newTerminalRenderer()

func newTerminalRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)
	return r
}

// ansiColors maps semantic colors to the basic ANSI palette.
var ansiColors = map[Color]lipgloss.Color{
	ColorBlue:   lipgloss.Color("4"),
	ColorGreen:  lipgloss.Color("2"),
	ColorRed:    lipgloss.Color("1"),
	ColorYellow: lipgloss.Color("3"),
}

// zshColors lists the color names supported by the zsh %F escape table.
var zshColors = map[Color]string{
	ColorBlue:   "blue",
	ColorGreen:  "green",
	ColorRed:    "red",
	ColorYellow: "yellow",
}

// FormatColor renders text with the given semantic color under mode.
//
// Plain mode returns the text unchanged. Terminal mode wraps it in ANSI
// styling. Zsh mode wraps it in a %F{name}...%f prompt escape; a color
// missing from the zsh table substitutes the literal "not implemented yet"
// for the name, kept for compatibility with existing prompt setups.
func FormatColor(text string, color Color, mode RenderMode) string {
	switch mode {
	case RenderTerminal:
		c, ok := ansiColors[color]
		if !ok {
			return text
		}
		return terminalRenderer.NewStyle().Foreground(c).Render(text)
	case RenderZsh:
		name, ok := zshColors[color]
		if !ok {
			name = "not implemented yet"
		}
		return fmt.Sprintf("%%F{%s}%s%%f", name, text)
	default:
		return text
	}
}
