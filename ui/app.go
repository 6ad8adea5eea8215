package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ReksiGustio/SimpleWalls/api"
	"github.com/ReksiGustio/SimpleWalls/picture"
	"github.com/ReksiGustio/SimpleWalls/session"
	"github.com/ReksiGustio/SimpleWalls/ui/common"
	"github.com/ReksiGustio/SimpleWalls/ui/detail"
	"github.com/ReksiGustio/SimpleWalls/ui/header"
	"github.com/ReksiGustio/SimpleWalls/ui/login"
	"github.com/ReksiGustio/SimpleWalls/ui/menu"
	"github.com/ReksiGustio/SimpleWalls/ui/notifications"
	"github.com/ReksiGustio/SimpleWalls/ui/profile"
	"github.com/ReksiGustio/SimpleWalls/ui/search"
	"github.com/ReksiGustio/SimpleWalls/ui/walls"
	"github.com/ReksiGustio/SimpleWalls/util"
)

var splashStyle = lipgloss.NewStyle().
	Align(lipgloss.Center, lipgloss.Center).
	BorderStyle(lipgloss.ThickBorder()).
	Padding(2, 6)

// MainModel is the composite root: it owns the screen models and routes
// messages between them. Which screen shows is decided first by the
// session's login state, then by the dashboard view state.
type MainModel struct {
	width  int
	height int

	core     *session.Core
	client   *api.Client
	pictures *picture.Manager

	state       common.SessionState
	headerModel header.Model
	loginModel  login.Model
	wallsModel  walls.Model
	detailModel detail.Model
	hasDetail   bool
	profileModel profile.Model
	searchModel  search.Model
	notifModel   notifications.Model
	menuModel    menu.Model

	spin       spinner.Model
	dragStartY int
}

type openedMsg struct{}

func NewModel(core *session.Core, client *api.Client, pictures *picture.Manager, width, height int) MainModel {
	m := MainModel{
		core:     core,
		client:   client,
		pictures: pictures,
		width:    width,
		height:   height,
		state:    common.WallsView,
	}
	m.headerModel = header.Model{Width: width, Core: core}
	m.loginModel = login.InitialModel(core)
	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot
	m.spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(common.COLOR_MAGENTA))
	return m
}

func (m MainModel) Init() tea.Cmd {
	core := m.core
	return tea.Batch(
		m.loginModel.Init(),
		m.spin.Tick,
		func() tea.Msg {
			core.Open()
			return openedMsg{}
		},
	)
}

func (m *MainModel) buildDashboard() tea.Cmd {
	width := common.DefaultWindowWidth(m.width)
	height := common.DefaultWindowHeight(m.height)

	m.state = common.WallsView
	m.hasDetail = false
	m.wallsModel = walls.InitialModel(m.core, m.client, width, height)
	m.profileModel = profile.InitialModel(m.core, m.client, m.pictures, 0, width, height)
	m.searchModel = search.InitialModel(m.core, m.client, width, height)
	m.notifModel = notifications.InitialModel(m.core, m.client, m.pictures, width, height)
	m.menuModel = menu.InitialModel(m.core, m.client, width, height)

	return tea.Batch(
		m.wallsModel.Init(),
		m.profileModel.Init(),
		m.notifModel.Init(),
	)
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.headerModel.Width = msg.Width
		return m, nil

	case openedMsg, login.DoneMsg:
		if _, ok := msg.(login.DoneMsg); ok {
			m.loginModel, _ = m.loginModel.Update(login.DoneMsg{})
		}
		if m.core.LoginState() == session.Login {
			return m, m.buildDashboard()
		}
		return m, nil

	case common.SessionChangedMsg:
		// Logout: back to the auth screen with a fresh form
		m.loginModel = login.InitialModel(m.core)
		return m, m.loginModel.Init()

	case common.RedrawMsg:
		return m, nil

	case spinner.TickMsg:
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case common.OpenPostMsg:
		m.detailModel = detail.InitialModel(m.core, m.client, msg.Post,
			common.DefaultWindowWidth(m.width), common.DefaultWindowHeight(m.height))
		m.hasDetail = true
		m.state = common.DetailView
		return m, m.detailModel.Init()

	case common.OpenUserMsg:
		m.profileModel = profile.InitialModel(m.core, m.client, m.pictures, msg.UserId,
			common.DefaultWindowWidth(m.width), common.DefaultWindowHeight(m.height))
		m.state = common.ProfileView
		return m, m.profileModel.Init()

	case common.BackMsg:
		m.state = common.WallsView
		m.hasDetail = false
		return m, nil

	case tea.MouseMsg:
		if msg.Type == tea.MouseLeft {
			m.dragStartY = msg.Y
		}
		if msg.Type == tea.MouseRelease {
			if _, visible := m.core.Popup().Message(); visible && abs(msg.Y-m.dragStartY) >= 3 {
				m.core.Popup().Dismiss()
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// A visible popup takes esc before any screen does
			if _, visible := m.core.Popup().Message(); visible {
				m.core.Popup().Dismiss()
				return m, nil
			}
		case "tab":
			if m.core.LoginState() == session.Login {
				m.state = nextView(m.state)
				return m, nil
			}
		case "shift+tab":
			if m.core.LoginState() == session.Login {
				m.state = prevView(m.state)
				return m, nil
			}
		}
	}

	if m.core.LoginState() != session.Login {
		m.loginModel, cmd = m.loginModel.Update(msg)
		return m, cmd
	}

	// Loader results reach every screen, keystrokes only the active one
	if _, isKey := msg.(tea.KeyMsg); !isKey {
		m.wallsModel, cmd = m.wallsModel.Update(msg)
		cmds = append(cmds, cmd)
		m.profileModel, cmd = m.profileModel.Update(msg)
		cmds = append(cmds, cmd)
		m.searchModel, cmd = m.searchModel.Update(msg)
		cmds = append(cmds, cmd)
		m.notifModel, cmd = m.notifModel.Update(msg)
		cmds = append(cmds, cmd)
		m.menuModel, cmd = m.menuModel.Update(msg)
		cmds = append(cmds, cmd)
		if m.hasDetail {
			m.detailModel, cmd = m.detailModel.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	switch m.state {
	case common.WallsView:
		m.wallsModel, cmd = m.wallsModel.Update(msg)
	case common.DetailView:
		m.detailModel, cmd = m.detailModel.Update(msg)
	case common.ProfileView:
		m.profileModel, cmd = m.profileModel.Update(msg)
	case common.SearchView:
		m.searchModel, cmd = m.searchModel.Update(msg)
	case common.NotificationsView:
		m.notifModel, cmd = m.notifModel.Update(msg)
	case common.MenuView:
		m.menuModel, cmd = m.menuModel.Update(msg)
	}
	return m, cmd
}

func nextView(s common.SessionState) common.SessionState {
	switch s {
	case common.WallsView, common.DetailView:
		return common.SearchView
	case common.SearchView:
		return common.NotificationsView
	case common.NotificationsView:
		return common.ProfileView
	case common.ProfileView:
		return common.MenuView
	default:
		return common.WallsView
	}
}

func prevView(s common.SessionState) common.SessionState {
	switch s {
	case common.WallsView, common.DetailView:
		return common.MenuView
	case common.MenuView:
		return common.ProfileView
	case common.ProfileView:
		return common.NotificationsView
	case common.NotificationsView:
		return common.SearchView
	default:
		return common.WallsView
	}
}

func (m MainModel) View() string {
	snap := m.core.Snapshot()

	switch snap.Login {
	case session.Opening:
		splash := splashStyle.Render(fmt.Sprintf("SimpleWalls v%s\n\nchecking your session...", util.GetVersion()))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, splash)
	case session.Logout:
		return m.overlayPopup(m.loginModel.ViewWithWidth(m.width, m.height))
	}

	var body string
	switch m.state {
	case common.DetailView:
		body = m.detailModel.View()
	case common.ProfileView:
		body = m.profileModel.View()
	case common.SearchView:
		body = m.searchModel.View()
	case common.NotificationsView:
		body = m.notifModel.View()
	case common.MenuView:
		body = m.menuModel.View()
	default:
		body = m.wallsModel.View()
	}

	background := snap.Theme.Mode(menu.ActiveSlot())
	frame := lipgloss.NewStyle().
		Background(lipgloss.Color(background.Hex())).
		Width(common.DefaultWindowWidth(m.width))

	headerLine := m.headerModel.View()
	if snap.Loading == session.Loading {
		headerLine += "\n" + m.spin.View() + common.EmptyStyle.Render("working...")
	}

	s := headerLine + "\n" + frame.Render(body)
	return m.overlayPopup(s)
}

func (m MainModel) overlayPopup(view string) string {
	text, visible := m.core.Popup().Message()
	if !visible {
		return view
	}
	popup := common.PopupStyle.Render(text + "  (esc to dismiss)")
	return view + "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Center, popup)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
