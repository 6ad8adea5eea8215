package login

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ReksiGustio/SimpleWalls/session"
	"github.com/ReksiGustio/SimpleWalls/util"
)

var Style = lipgloss.NewStyle().Height(25).Width(80).
	Align(lipgloss.Center, lipgloss.Center).
	BorderStyle(lipgloss.ThickBorder()).
	Margin(0, 3)

// Mode switches the form between signing in and creating an account.
type Mode int

const (
	SignIn Mode = iota
	Register
)

type Model struct {
	Core     *session.Core
	Username textinput.Model
	Password textinput.Model
	Name     textinput.Model
	Mode     Mode
	Step     int
	Busy     bool
}

// DoneMsg reports that an authentication attempt finished; the root model
// re-reads the session to see whether it succeeded.
type DoneMsg struct{}

func InitialModel(core *session.Core) Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.Focus()
	username.CharLimit = 30
	username.Width = 30

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	password.CharLimit = 64
	password.Width = 30

	name := textinput.New()
	name.Placeholder = "display name (optional)"
	name.CharLimit = 50
	name.Width = 30

	return Model{Core: core, Username: username, Password: password, Name: name}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case DoneMsg:
		m.Busy = false
		return m, nil

	case tea.KeyMsg:
		if m.Busy {
			return m, nil
		}
		switch msg.String() {
		case "tab":
			if m.Mode == SignIn {
				m.Mode = Register
			} else {
				m.Mode = SignIn
			}
			m.Step = 0
			m.focusStep()
			return m, nil
		case "enter":
			if m.Step < m.lastStep() {
				m.Step++
				m.focusStep()
				return m, nil
			}
			return m.submit()
		}
	}

	switch m.Step {
	case 0:
		m.Username, cmd = m.Username.Update(msg)
	case 1:
		m.Password, cmd = m.Password.Update(msg)
	case 2:
		m.Name, cmd = m.Name.Update(msg)
	}
	return m, cmd
}

func (m *Model) lastStep() int {
	if m.Mode == Register {
		return 2
	}
	return 1
}

func (m *Model) focusStep() {
	m.Username.Blur()
	m.Password.Blur()
	m.Name.Blur()
	switch m.Step {
	case 0:
		m.Username.Focus()
	case 1:
		m.Password.Focus()
	case 2:
		m.Name.Focus()
	}
}

func (m Model) submit() (Model, tea.Cmd) {
	username := util.NormalizeInput(m.Username.Value())
	password := m.Password.Value()
	if username == "" || password == "" {
		m.Step = 0
		m.focusStep()
		return m, nil
	}

	m.Busy = true
	core := m.Core

	if m.Mode == Register {
		var name *string
		if v := util.NormalizeInput(m.Name.Value()); v != "" {
			name = &v
		}
		return m, func() tea.Msg {
			core.RegisterUser(username, password, name)
			return DoneMsg{}
		}
	}

	return m, func() tea.Msg {
		core.LoginUser(username, password)
		return DoneMsg{}
	}
}

func (m Model) View() string {
	var action, help string
	if m.Mode == Register {
		action = "Create your account"
		help = "(enter: next field / submit, tab: sign in instead, ctrl-c: quit)"
	} else {
		action = "Sign in to your wall"
		help = "(enter: next field / submit, tab: register instead, ctrl-c: quit)"
	}

	if m.Busy {
		help = "talking to the server..."
	}

	fields := m.Username.View() + "\n" + m.Password.View()
	if m.Mode == Register {
		fields += "\n" + m.Name.View()
	}

	return fmt.Sprintf(
		"SimpleWalls v%s\n\n%s\n\n%s\n\n%s",
		util.GetVersion(),
		action,
		fields,
		help,
	) + "\n"
}

// ViewWithWidth centers the bordered form on the terminal.
func (m Model) ViewWithWidth(termWidth, termHeight int) string {
	contentWidth := termWidth - 8
	if contentWidth < 40 {
		contentWidth = 40
	}
	bordered := Style.Width(contentWidth).Render(m.View())
	return lipgloss.Place(termWidth, termHeight, lipgloss.Center, lipgloss.Center, bordered)
}
