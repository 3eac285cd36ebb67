// ABOUTME: Lipgloss styles for the train screen.
// ABOUTME: Themes are looked up by name; unknown names keep the current theme.
package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Name      string
	Base      lipgloss.Style
	Header    lipgloss.Style
	Routine   lipgloss.Style
	Exercise  lipgloss.Style
	Selected  lipgloss.Style
	Value     lipgloss.Style
	Adjusting lipgloss.Style
	Saved     lipgloss.Style
	Error     lipgloss.Style
	Dim       lipgloss.Style
}

var Themes = map[string]Theme{
	"default": {
		Name:      "Default",
		Base:      lipgloss.NewStyle().Margin(1, 2),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Routine:   lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true),
		Exercise:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Selected:  lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Value:     lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
		Adjusting: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Saved:     lipgloss.NewStyle().Foreground(lipgloss.Color("120")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	},
	"dracula": {
		Name:      "Dracula",
		Base:      lipgloss.NewStyle().Margin(1, 2),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("50")).Bold(true),  // Cyan
		Routine:   lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Bold(true), // Purple
		Exercise:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Selected:  lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true), // Pink
		Value:     lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Bold(true),
		Adjusting: lipgloss.NewStyle().Foreground(lipgloss.Color("215")).Bold(true), // Orange
		Saved:     lipgloss.NewStyle().Foreground(lipgloss.Color("120")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
	},
}

// CurrentTheme holds the active theme.
var CurrentTheme = Themes["default"]

// SetTheme switches to the named theme and reports whether it exists.
func SetTheme(name string) bool {
	t, ok := Themes[name]
	if ok {
		CurrentTheme = t
	}
	return ok
}
