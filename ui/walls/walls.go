package walls

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ReksiGustio/SimpleWalls/api"
	"github.com/ReksiGustio/SimpleWalls/domain"
	"github.com/ReksiGustio/SimpleWalls/session"
	"github.com/ReksiGustio/SimpleWalls/ui/common"
	"github.com/ReksiGustio/SimpleWalls/util"
)

// Model is the main feed. Posts accumulate across pages; the next page is
// requested with the current count as the offset and merged by id, so a
// post created between fetches never duplicates an entry.
type Model struct {
	Core   *session.Core
	Client *api.Client
	Posts  []domain.Post
	State  common.ViewState
	Cursor int
	Width  int
	Height int
}

func InitialModel(core *session.Core, client *api.Client, width, height int) Model {
	return Model{
		Core:   core,
		Client: client,
		State:  common.Downloading,
		Width:  width,
		Height: height,
	}
}

func (m Model) Init() tea.Cmd {
	return loadPosts(m.Core, m.Client, 0, true)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pageLoadedMsg:
		m.State = common.Downloaded
		if msg.reset {
			m.Posts = msg.posts
			m.Cursor = 0
		} else {
			m.Posts = domain.MergePage(m.Posts, msg.posts)
		}
		if m.Cursor >= len(m.Posts) {
			m.Cursor = max(0, len(m.Posts)-1)
		}
		return m, nil

	case loadFailedMsg:
		m.State = common.Failed
		return m, nil

	case actionFailedMsg:
		// The popup already carries the reason, the list stays as-is
		return m, nil

	case postDeletedMsg:
		m.Posts = domain.RemoveById(m.Posts, msg.postId)
		if m.Cursor >= len(m.Posts) {
			m.Cursor = max(0, len(m.Posts)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Posts)-1 {
				m.Cursor++
			}
		case "enter":
			if m.Cursor < len(m.Posts) {
				post := m.Posts[m.Cursor]
				return m, func() tea.Msg { return common.OpenPostMsg{Post: post} }
			}
		case "m":
			// Next page from the current count, duplicates merged away
			return m, loadPosts(m.Core, m.Client, len(m.Posts), false)
		case "r":
			m.State = common.Downloading
			return m, loadPosts(m.Core, m.Client, 0, true)
		case "d":
			if m.Cursor < len(m.Posts) {
				post := m.Posts[m.Cursor]
				if post.AuthorId == m.Core.User().Id {
					return m, deletePost(m.Core, m.Client, post.Id)
				}
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.TitleStyle.Render(fmt.Sprintf("Walls (%d posts)", len(m.Posts))))
	s.WriteString("\n")

	switch {
	case m.State == common.Downloading:
		s.WriteString(common.EmptyStyle.Render("Loading posts..."))
	case m.State == common.Failed:
		s.WriteString(common.EmptyStyle.Render("Could not load the walls, press r to retry."))
	case len(m.Posts) == 0:
		s.WriteString(common.EmptyStyle.Render("Nothing here yet. Follow people or write the first post!"))
	default:
		visible := min(len(m.Posts), max(1, (m.Height-6)/4))
		start := 0
		if m.Cursor >= visible {
			start = m.Cursor - visible + 1
		}
		for i := start; i < min(len(m.Posts), start+visible); i++ {
			s.WriteString(renderCard(m.Posts[i], i == m.Cursor, m.Core.User().Id))
			s.WriteString("\n")
		}
	}

	s.WriteString("\n")
	s.WriteString(common.HelpStyle.Render("enter: open • m: more • r: refresh • d: delete own • tab: switch view"))
	return s.String()
}

func renderCard(p domain.Post, selected bool, viewerId int) string {
	author := "unknown"
	if p.Author != nil {
		author = p.Author.Profile.DisplayName()
	}

	var markers []string
	if p.LikedBy(viewerId) {
		markers = append(markers, "♥")
	}
	switch att := p.Attachment(); att.Kind {
	case domain.AttachmentImage:
		markers = append(markers, "[img]")
	case domain.AttachmentShared:
		markers = append(markers, fmt.Sprintf("[shared #%d]", att.PostId))
	}

	line := fmt.Sprintf("%s\n%s\n%s %s",
		common.AuthorStyle.Render(author),
		common.BodyStyle.Render(util.Truncate(p.TitleText(), 80)),
		common.TimeStyle.Render(util.FormatRelativeTime(p.Created())),
		strings.Join(markers, " "),
	)

	if selected {
		return common.SelectedCardStyle.Render(line)
	}
	return common.CardStyle.Render(line)
}

type pageLoadedMsg struct {
	posts []domain.Post
	reset bool
}

type loadFailedMsg struct{}

type actionFailedMsg struct{}

type postDeletedMsg struct {
	postId int
}

func loadPosts(core *session.Core, client *api.Client, startPoint int, reset bool) tea.Cmd {
	return func() tea.Msg {
		raw := client.FindPosts(startPoint)
		env, err := domain.DecodeEnvelope[[]domain.Post](raw)
		if err != nil {
			core.HandleError(raw)
			return loadFailedMsg{}
		}
		core.SetLoading(false)
		return pageLoadedMsg{posts: env.Data, reset: reset}
	}
}

func deletePost(core *session.Core, client *api.Client, postId int) tea.Cmd {
	return func() tea.Msg {
		raw := client.DeletePost(postId)
		msg, err := domain.DecodeMessage(raw)
		if err != nil || domain.ParseOutcome(msg.Message) != domain.OutcomeDeleted {
			core.HandleError(raw)
			return actionFailedMsg{}
		}
		core.Popup().Post(msg.Message)
		return postDeletedMsg{postId: postId}
	}
}