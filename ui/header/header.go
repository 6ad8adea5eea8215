package header

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ReksiGustio/SimpleWalls/session"
	"github.com/ReksiGustio/SimpleWalls/ui/common"
	"github.com/ReksiGustio/SimpleWalls/util"
)

type Model struct {
	Width int
	Core  *session.Core
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) View() string {
	snap := m.Core.Snapshot()

	overhead := 12
	availableWidth := m.Width - overhead
	if availableWidth < 40 {
		availableWidth = 40
	}

	nameWidth := availableWidth / 4
	userWidth := availableWidth / 4
	versionWidth := availableWidth - nameWidth - userWidth

	name := lipgloss.
		NewStyle().
		SetString(snap.User.Profile.DisplayName()).
		Align(lipgloss.Left).
		Background(lipgloss.Color(common.COLOR_PURPLE)).
		Padding(0, 1).
		Width(nameWidth).
		Border(lipgloss.NormalBorder(), true, false, true, false).
		BorderForeground(lipgloss.Color(common.COLOR_MAGENTA)).
		String()

	user := lipgloss.
		NewStyle().
		SetString("@" + snap.User.UserName).
		Foreground(lipgloss.Color(common.COLOR_MAGENTA)).
		Padding(0, 1).
		Width(userWidth).
		Border(lipgloss.NormalBorder(), true, false, true, false).
		BorderForeground(lipgloss.Color(common.COLOR_MAGENTA)).
		String()

	status := util.GetNameAndVersion()
	if snap.Loading == session.Loading {
		status += "  ···"
	}

	version := lipgloss.
		NewStyle().
		SetString(status).
		Width(versionWidth).
		Background(lipgloss.Color(common.COLOR_GREY)).
		Padding(0, 1).
		Border(lipgloss.NormalBorder(), true, false, true, false).
		BorderForeground(lipgloss.Color(common.COLOR_MAGENTA)).
		String()

	return lipgloss.JoinHorizontal(lipgloss.Left, name, user, version)
}
