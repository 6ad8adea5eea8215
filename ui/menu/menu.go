package menu

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/ReksiGustio/SimpleWalls/api"
	"github.com/ReksiGustio/SimpleWalls/feed"
	"github.com/ReksiGustio/SimpleWalls/session"
	"github.com/ReksiGustio/SimpleWalls/ui/common"
	"github.com/ReksiGustio/SimpleWalls/util"
)

const (
	itemThemeLight = iota
	itemThemeDark
	itemExportRSS
	itemLogout
	itemCount
)

// Model is the settings screen: wall background colors per appearance
// mode, RSS export of the own wall, and logout.
type Model struct {
	Core    *session.Core
	Client  *api.Client
	Cursor  int
	Editing bool
	Slot    string
	Channel int // 0=red 1=green 2=blue
	Width   int
	Height  int
}

func InitialModel(core *session.Core, client *api.Client, width, height int) Model {
	return Model{Core: core, Client: client, Width: width, Height: height}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		return m, nil

	case tea.KeyMsg:
		if m.Editing {
			return m.updateEditing(msg)
		}

		switch msg.String() {
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < itemCount-1 {
				m.Cursor++
			}
		case "enter":
			switch m.Cursor {
			case itemThemeLight:
				m.Editing = true
				m.Slot = session.ThemeLight
				m.Channel = 0
			case itemThemeDark:
				m.Editing = true
				m.Slot = session.ThemeDark
				m.Channel = 0
			case itemExportRSS:
				return m, exportRSS(m.Core, m.Client)
			case itemLogout:
				core := m.Core
				return m, func() tea.Msg {
					core.Logout()
					return common.SessionChangedMsg{}
				}
			}
		}
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.Editing = false
	case "r":
		m.Channel = 0
	case "g":
		m.Channel = 1
	case "b":
		m.Channel = 2
	case "+", "=", "right":
		m.adjust(0.05)
	case "-", "left":
		m.adjust(-0.05)
	}
	return m, nil
}

func (m *Model) adjust(delta float64) {
	c := m.Core.Theme().Mode(m.Slot)
	switch m.Channel {
	case 0:
		c.Red = clamp(c.Red + delta)
	case 1:
		c.Green = clamp(c.Green + delta)
	case 2:
		c.Blue = clamp(c.Blue + delta)
	}
	m.Core.SetThemeColor(m.Slot, c)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ActiveSlot picks the theme slot matching the terminal's background.
func ActiveSlot() string {
	if termenv.HasDarkBackground() {
		return session.ThemeDark
	}
	return session.ThemeLight
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.TitleStyle.Render("Menu"))
	s.WriteString("\n")

	theme := m.Core.Theme()
	items := []string{
		fmt.Sprintf("Light wall color  %s", swatch(theme.Mode(session.ThemeLight))),
		fmt.Sprintf("Dark wall color   %s", swatch(theme.Mode(session.ThemeDark))),
		"Export my wall as RSS",
		"Log out",
	}

	for i, item := range items {
		if i == m.Cursor {
			s.WriteString(common.SelectedCardStyle.Render(item))
		} else {
			s.WriteString(common.CardStyle.Render(item))
		}
		s.WriteString("\n")
	}

	s.WriteString("\n")
	if m.Editing {
		channel := [3]string{"red", "green", "blue"}[m.Channel]
		c := theme.Mode(m.Slot)
		s.WriteString(common.CaptionStyle.Render(
			fmt.Sprintf("editing %s (%s): %.2f / %.2f / %.2f", m.Slot, channel, c.Red, c.Green, c.Blue)))
		s.WriteString("\n")
		s.WriteString(common.HelpStyle.Render("r/g/b: channel • +/-: adjust • esc: done"))
	} else {
		s.WriteString(common.HelpStyle.Render("enter: select • tab: switch view"))
	}
	return s.String()
}

func swatch(c session.RGB) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("      ")
}

type exportDoneMsg struct{}

// exportRSS writes the published posts as an RSS file next to the config.
func exportRSS(core *session.Core, client *api.Client) tea.Cmd {
	return func() tea.Msg {
		user := core.User()
		rss, err := feed.BuildRSS(client.BaseURL(), user)
		if err != nil {
			core.Popup().Post("Nothing published to export")
			return exportDoneMsg{}
		}

		dir, err := util.GetConfigDir()
		if err != nil {
			core.Popup().Post("Could not resolve the export directory")
			return exportDoneMsg{}
		}
		path := filepath.Join(dir, fmt.Sprintf("%s-wall.rss", user.UserName))
		if err := os.WriteFile(path, []byte(rss), 0o644); err != nil {
			core.Popup().Post("Could not write the RSS file")
			return exportDoneMsg{}
		}

		core.Popup().Post(fmt.Sprintf("Wall exported to %s", path))
		return exportDoneMsg{}
	}
}
