package ui

import "github.com/charmbracelet/lipgloss"

// Color palette - lime accent on grays.
const (
	ColorLime     = "154" // Cursor, enabled rail letters
	ColorLimeDim  = "106" // Section headings
	ColorWhite    = "255" // Title
	ColorGray     = "245" // Descriptions, help
	ColorDarkGray = "238" // Borders, disabled rail letters
	ColorRed      = "196" // Errors
	ColorYellow   = "220" // Rail mode prompt
)

// Styles holds the styles used by the picker sheet.
type Styles struct {
	Title       lipgloss.Style
	Heading     lipgloss.Style
	Cursor      lipgloss.Style
	Item        lipgloss.Style
	Selected    lipgloss.Style
	Description lipgloss.Style
	RailOn      lipgloss.Style
	RailOff     lipgloss.Style
	Prompt      lipgloss.Style
	Help        lipgloss.Style
	Border      lipgloss.Style
}

// DefaultStyles returns styled components for TUI mode.
func DefaultStyles() Styles {
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		Heading:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLimeDim)),
		Cursor:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLime)),
		Item:        lipgloss.NewStyle(),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLime)),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		RailOn:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLime)),
		RailOff:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Prompt:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorYellow)),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Border:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
	}
}

// NoColorStyles returns unstyled components.
func NoColorStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:       plain,
		Heading:     plain,
		Cursor:      plain,
		Item:        plain,
		Selected:    plain,
		Description: plain,
		RailOn:      plain,
		RailOff:     plain,
		Prompt:      plain,
		Help:        plain,
		Border:      plain,
	}
}

// GetStyles returns the appropriate styles based on color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}
