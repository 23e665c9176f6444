package report

import "github.com/charmbracelet/lipgloss"

// Color palette for console rendering. Muted, single accent.
const (
	colorCyan   = "86"  // headers, section titles
	colorGreen  = "114" // pass outcomes
	colorYellow = "220" // fail outcomes, anomalies
	colorRed    = "196" // error outcomes
	colorGray   = "245" // labels, secondary text
)

// Styles holds the lipgloss styles used by the console renderer.
type Styles struct {
	Header  lipgloss.Style
	Pass    lipgloss.Style
	Fail    lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
}

// DefaultStyles returns the colored styles for interactive terminals.
func DefaultStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorCyan)),
		Pass:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)),
		Fail:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow)),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow)),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)),
		Value:   lipgloss.NewStyle(),
	}
}

// PlainStyles returns unstyled components for pipes and non-TTY output.
func PlainStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle(),
		Pass:    lipgloss.NewStyle(),
		Fail:    lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
		Warning: lipgloss.NewStyle(),
		Label:   lipgloss.NewStyle(),
		Value:   lipgloss.NewStyle(),
	}
}
