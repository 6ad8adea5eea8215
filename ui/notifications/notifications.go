package notifications

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ReksiGustio/SimpleWalls/api"
	"github.com/ReksiGustio/SimpleWalls/domain"
	"github.com/ReksiGustio/SimpleWalls/picture"
	"github.com/ReksiGustio/SimpleWalls/session"
	"github.com/ReksiGustio/SimpleWalls/store"
	"github.com/ReksiGustio/SimpleWalls/ui/common"
	"github.com/ReksiGustio/SimpleWalls/util"
)

// Model lists the notifications addressed to the session user, newest
// first, paginated the same way the walls are. Actor avatars are fetched
// through the picture cache and rendered next to the selected entry.
type Model struct {
	Core     *session.Core
	Client   *api.Client
	Pictures *picture.Manager
	Items    []domain.Notification
	Avatars  map[int]string // actor user id -> rendered art
	State    common.ViewState
	Cursor   int
	Width    int
	Height   int
}

func InitialModel(core *session.Core, client *api.Client, pictures *picture.Manager, width, height int) Model {
	return Model{
		Core:     core,
		Client:   client,
		Pictures: pictures,
		Avatars:  make(map[int]string),
		State:    common.Downloading,
		Width:    width,
		Height:   height,
	}
}

func (m Model) Init() tea.Cmd {
	return loadNotifications(m.Core, m.Client, 0, true)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pageLoadedMsg:
		m.State = common.Downloaded
		if msg.reset {
			m.Items = msg.items
			m.Cursor = 0
		} else {
			m.Items = domain.MergePage(m.Items, msg.items)
		}
		var cmds []tea.Cmd
		for _, n := range msg.items {
			if _, ok := m.Avatars[n.UserId]; ok {
				continue
			}
			if cmd := loadAvatar(m.Pictures, n); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case avatarLoadedMsg:
		if msg.art != "" {
			m.Avatars[msg.userId] = msg.art
		}
		return m, nil

	case loadFailedMsg:
		m.State = common.Failed
		return m, nil

	case markedReadMsg:
		m.Items = domain.ReplaceById(m.Items, msg.item)
		return m, nil

	case actionFailedMsg:
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
			}
		case "m":
			return m, loadNotifications(m.Core, m.Client, len(m.Items), false)
		case "r":
			m.State = common.Downloading
			return m, loadNotifications(m.Core, m.Client, 0, true)
		case "enter":
			if m.Cursor < len(m.Items) {
				n := m.Items[m.Cursor]
				var cmds []tea.Cmd
				if !n.Read {
					cmds = append(cmds, markRead(m.Core, m.Client, n.Id))
				}
				if n.PostId != nil {
					postId := *n.PostId
					cmds = append(cmds, openPost(m.Core, m.Client, postId))
				}
				return m, tea.Batch(cmds...)
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	unread := 0
	for _, n := range m.Items {
		if !n.Read {
			unread++
		}
	}
	s.WriteString(common.TitleStyle.Render(fmt.Sprintf("Notifications (%d unread)", unread)))
	s.WriteString("\n")

	switch {
	case m.State == common.Downloading:
		s.WriteString(common.EmptyStyle.Render("Loading notifications..."))
	case m.State == common.Failed:
		s.WriteString(common.EmptyStyle.Render("Could not load notifications, press r to retry."))
	case len(m.Items) == 0:
		s.WriteString(common.EmptyStyle.Render("Nothing yet. Post something people will like!"))
	default:
		for i, n := range m.Items {
			marker := "  "
			if !n.Read {
				marker = "● "
			}
			line := fmt.Sprintf("%s%s\n%s",
				marker,
				common.BodyStyle.Render(n.Object),
				common.TimeStyle.Render(util.FormatRelativeTime(n.Created())))
			if art, ok := m.Avatars[n.UserId]; ok && i == m.Cursor {
				line = art + "\n" + line
			}
			if i == m.Cursor {
				s.WriteString(common.SelectedCardStyle.Render(line))
			} else {
				s.WriteString(common.CardStyle.Render(line))
			}
			s.WriteString("\n")
		}
	}

	s.WriteString("\n")
	s.WriteString(common.HelpStyle.Render("enter: open & mark read • m: more • r: refresh"))
	return s.String()
}

type pageLoadedMsg struct {
	items []domain.Notification
	reset bool
}

type loadFailedMsg struct{}

type markedReadMsg struct {
	item domain.Notification
}

type actionFailedMsg struct{}

type avatarLoadedMsg struct {
	userId int
	art    string
}

func loadAvatar(pictures *picture.Manager, n domain.Notification) tea.Cmd {
	if pictures == nil || n.ActorImage == nil || *n.ActorImage == "" {
		return nil
	}
	url := *n.ActorImage
	key := store.ImageKey{Kind: store.UserImage, Id: n.UserId}
	return func() tea.Msg {
		data := pictures.Fetch(key, url)
		return avatarLoadedMsg{userId: n.UserId, art: picture.Render(data, 6)}
	}
}

func loadNotifications(core *session.Core, client *api.Client, startPoint int, reset bool) tea.Cmd {
	return func() tea.Msg {
		raw := client.ListNotifications(startPoint)
		env, err := domain.DecodeEnvelope[[]domain.Notification](raw)
		if err != nil {
			core.HandleError(raw)
			return loadFailedMsg{}
		}
		return pageLoadedMsg{items: env.Data, reset: reset}
	}
}

func markRead(core *session.Core, client *api.Client, id int) tea.Cmd {
	return func() tea.Msg {
		raw := client.ReadNotification(id)
		env, err := domain.DecodeEnvelope[domain.Notification](raw)
		if err != nil {
			core.HandleError(raw)
			return actionFailedMsg{}
		}
		return markedReadMsg{item: env.Data}
	}
}

func openPost(core *session.Core, client *api.Client, postId int) tea.Cmd {
	return func() tea.Msg {
		raw := client.PostById(postId)
		env, err := domain.DecodeEnvelope[domain.Post](raw)
		if err != nil {
			core.HandleError(raw)
			return actionFailedMsg{}
		}
		return common.OpenPostMsg{Post: env.Data}
	}
}
