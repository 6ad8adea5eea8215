package search

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ReksiGustio/SimpleWalls/api"
	"github.com/ReksiGustio/SimpleWalls/domain"
	"github.com/ReksiGustio/SimpleWalls/session"
	"github.com/ReksiGustio/SimpleWalls/ui/common"
	"github.com/ReksiGustio/SimpleWalls/util"
)

type scope int

const (
	users scope = iota
	posts
)

type Model struct {
	Core   *session.Core
	Client *api.Client
	Input  textinput.Model
	Scope  scope
	Typing bool
	Users  []domain.PartialUser
	Posts  []domain.Post
	Cursor int
	Width  int
	Height int
}

func InitialModel(core *session.Core, client *api.Client, width, height int) Model {
	input := textinput.New()
	input.Placeholder = "search walls"
	input.CharLimit = 100
	input.Width = 40
	input.Focus()

	return Model{
		Core:   core,
		Client: client,
		Input:  input,
		Typing: true,
		Width:  width,
		Height: height,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case usersFoundMsg:
		m.Users = msg.users
		m.Posts = nil
		m.Cursor = 0
		return m, nil

	case postsFoundMsg:
		m.Posts = msg.posts
		m.Users = nil
		m.Cursor = 0
		return m, nil

	case searchFailedMsg:
		return m, nil

	case tea.KeyMsg:
		if m.Typing {
			switch msg.String() {
			case "esc":
				m.Typing = false
				m.Input.Blur()
				return m, nil
			case "ctrl+f":
				m.toggleScope()
				return m, nil
			case "enter":
				query := util.NormalizeInput(m.Input.Value())
				if query == "" {
					return m, nil
				}
				m.Typing = false
				m.Input.Blur()
				if m.Scope == users {
					return m, searchUsers(m.Core, m.Client, query)
				}
				return m, searchPosts(m.Core, m.Client, query)
			}
			m.Input, cmd = m.Input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "/":
			m.Typing = true
			m.Input.Focus()
			return m, textinput.Blink
		case "ctrl+f":
			m.toggleScope()
			return m, nil
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < m.resultCount()-1 {
				m.Cursor++
			}
		case "enter":
			if m.Scope == users && m.Cursor < len(m.Users) {
				userId := m.Users[m.Cursor].Id
				return m, func() tea.Msg { return common.OpenUserMsg{UserId: userId} }
			}
			if m.Scope == posts && m.Cursor < len(m.Posts) {
				post := m.Posts[m.Cursor]
				return m, func() tea.Msg { return common.OpenPostMsg{Post: post} }
			}
		}
	}
	return m, nil
}

func (m *Model) toggleScope() {
	if m.Scope == users {
		m.Scope = posts
	} else {
		m.Scope = users
	}
	m.Cursor = 0
}

func (m Model) resultCount() int {
	if m.Scope == users {
		return len(m.Users)
	}
	return len(m.Posts)
}

func (m Model) View() string {
	var s strings.Builder

	label := "users"
	if m.Scope == posts {
		label = "posts"
	}
	s.WriteString(common.TitleStyle.Render(fmt.Sprintf("Search %s", label)))
	s.WriteString("\n")
	s.WriteString(m.Input.View())
	s.WriteString("\n\n")

	switch {
	case m.Scope == users && len(m.Users) > 0:
		for i, u := range m.Users {
			line := fmt.Sprintf("%s %s",
				common.AuthorStyle.Render(u.Profile.DisplayName()),
				common.TimeStyle.Render("@"+u.UserName))
			if i == m.Cursor && !m.Typing {
				s.WriteString(common.SelectedCardStyle.Render(line))
			} else {
				s.WriteString(common.CardStyle.Render(line))
			}
			s.WriteString("\n")
		}
	case m.Scope == posts && len(m.Posts) > 0:
		for i, p := range m.Posts {
			line := fmt.Sprintf("%s\n%s",
				common.BodyStyle.Render(util.Truncate(p.TitleText(), 70)),
				common.TimeStyle.Render(util.FormatRelativeTime(p.Created())))
			if i == m.Cursor && !m.Typing {
				s.WriteString(common.SelectedCardStyle.Render(line))
			} else {
				s.WriteString(common.CardStyle.Render(line))
			}
			s.WriteString("\n")
		}
	default:
		s.WriteString(common.EmptyStyle.Render("Type a query and press enter."))
	}

	s.WriteString("\n")
	s.WriteString(common.HelpStyle.Render("enter: search / open • ctrl-f: users/posts • /: edit query"))
	return s.String()
}

type usersFoundMsg struct {
	users []domain.PartialUser
}

type postsFoundMsg struct {
	posts []domain.Post
}

type searchFailedMsg struct{}

func searchUsers(core *session.Core, client *api.Client, query string) tea.Cmd {
	return func() tea.Msg {
		raw := client.SearchUsers(query)
		env, err := domain.DecodeEnvelope[[]domain.PartialUser](raw)
		if err != nil {
			core.HandleError(raw)
			return searchFailedMsg{}
		}
		return usersFoundMsg{users: env.Data}
	}
}

func searchPosts(core *session.Core, client *api.Client, query string) tea.Cmd {
	return func() tea.Msg {
		raw := client.SearchPosts(query)
		env, err := domain.DecodeEnvelope[[]domain.Post](raw)
		if err != nil {
			core.HandleError(raw)
			return searchFailedMsg{}
		}
		return postsFoundMsg{posts: env.Data}
	}
}
