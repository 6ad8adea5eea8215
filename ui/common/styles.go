package common

import "github.com/charmbracelet/lipgloss"

const (
	COLOR_GREY      = "241"
	COLOR_MAGENTA   = "170"
	COLOR_LIGHTBLUE = "69"
	COLOR_PURPLE    = "#7D56F4"
	COLOR_GREEN     = "78"
	COLOR_RED       = "160"
)

var (
	HelpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(COLOR_GREY)).Padding(0, 2)
	CaptionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(COLOR_MAGENTA)).Padding(2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(COLOR_LIGHTBLUE)).
			MarginBottom(1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			MarginBottom(1)

	SelectedCardStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(COLOR_LIGHTBLUE)).
				Padding(0, 1).
				MarginBottom(1)

	AuthorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	BodyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	TimeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(COLOR_GREY)).Faint(true)
	EmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(COLOR_GREY)).Italic(true)

	PopupStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color(COLOR_MAGENTA)).
			Padding(0, 2)
)

func DefaultWindowWidth(width int) int {
	return width - 10
}

func DefaultWindowHeight(height int) int {
	return height - 10
}
