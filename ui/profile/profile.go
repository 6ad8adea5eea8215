package profile

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ReksiGustio/SimpleWalls/api"
	"github.com/ReksiGustio/SimpleWalls/domain"
	"github.com/ReksiGustio/SimpleWalls/picture"
	"github.com/ReksiGustio/SimpleWalls/session"
	"github.com/ReksiGustio/SimpleWalls/store"
	"github.com/ReksiGustio/SimpleWalls/ui/common"
	"github.com/ReksiGustio/SimpleWalls/util"
)

type mode int

const (
	viewing mode = iota
	editing
	composing
)

// Model shows a wall owner: the session user by default, or any other user
// opened from search or a post. Following overwrites the whole session
// identity with the server's copy, the client never patches its own
// following list.
type Model struct {
	Core     *session.Core
	Client   *api.Client
	Pictures *picture.Manager
	UserId   int // 0 means the session user
	User     domain.User
	Avatar   string
	State    common.ViewState
	Mode     mode

	NameInput  textinput.Model
	BioInput   textinput.Model
	PicInput   textinput.Model
	TitleInput textinput.Model
	Publish    bool
	Step       int

	Width  int
	Height int
}

func InitialModel(core *session.Core, client *api.Client, pictures *picture.Manager, userId, width, height int) Model {
	name := textinput.New()
	name.Placeholder = "display name"
	name.CharLimit = 50
	name.Width = 40

	bio := textinput.New()
	bio.Placeholder = "bio"
	bio.CharLimit = 200
	bio.Width = 60

	pic := textinput.New()
	pic.Placeholder = "path to profile picture (optional)"
	pic.CharLimit = 200
	pic.Width = 60

	title := textinput.New()
	title.Placeholder = "what's on your wall?"
	title.CharLimit = 280
	title.Width = 60

	return Model{
		Core:       core,
		Client:     client,
		Pictures:   pictures,
		UserId:     userId,
		State:      common.Downloading,
		NameInput:  name,
		BioInput:   bio,
		PicInput:   pic,
		TitleInput: title,
		Publish:    true,
		Width:      width,
		Height:     height,
	}
}

func (m Model) Init() tea.Cmd {
	if m.UserId == 0 || m.UserId == m.Core.User().Id {
		return refreshSelf(m.Core)
	}
	return loadUser(m.Core, m.Client, m.UserId)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case userLoadedMsg:
		m.User = msg.user
		m.State = common.Downloaded
		return m, loadAvatar(m.Pictures, msg.user)

	case avatarLoadedMsg:
		if msg.userId == m.User.Id {
			m.Avatar = msg.art
		}
		return m, nil

	case followDoneMsg:
		// The session identity was already overwritten inside the cmd;
		// reload the viewed user so the follower count reflects the server
		return m, loadUser(m.Core, m.Client, m.UserId)

	case savedMsg:
		m.Mode = viewing
		return m, refreshSelf(m.Core)

	case actionFailedMsg:
		m.State = common.Downloaded
		return m, nil

	case tea.KeyMsg:
		switch m.Mode {
		case editing:
			return m.updateEditing(msg)
		case composing:
			return m.updateComposing(msg)
		}

		switch msg.String() {
		case "esc", "b":
			return m, func() tea.Msg { return common.BackMsg{} }
		case "f":
			if m.viewingOther() {
				return m, toggleFollow(m.Core, m.Client, m.User)
			}
		case "e":
			if !m.viewingOther() {
				m.Mode = editing
				m.Step = 0
				if m.User.Profile.Name != nil {
					m.NameInput.SetValue(*m.User.Profile.Name)
				}
				if m.User.Profile.Bio != nil {
					m.BioInput.SetValue(*m.User.Profile.Bio)
				}
				m.PicInput.SetValue("")
				m.focusEditStep()
				return m, textinput.Blink
			}
		case "n":
			if !m.viewingOther() {
				m.Mode = composing
				m.TitleInput.SetValue("")
				m.TitleInput.Focus()
				m.Publish = true
				return m, textinput.Blink
			}
		case "enter":
			if len(m.User.Posts) > 0 {
				post := m.User.Posts[0]
				return m, func() tea.Msg { return common.OpenPostMsg{Post: post} }
			}
		}
	}

	return m, cmd
}

func (m Model) updateEditing(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		m.Mode = viewing
		return m, nil
	case "enter":
		if m.Step < 2 {
			m.Step++
			m.focusEditStep()
			return m, nil
		}
		m.Mode = viewing
		return m, saveProfile(m.Core, m.Client, m.Pictures,
			util.NormalizeInput(m.NameInput.Value()),
			util.NormalizeInput(m.BioInput.Value()),
			util.NormalizeInput(m.PicInput.Value()))
	}

	switch m.Step {
	case 0:
		m.NameInput, cmd = m.NameInput.Update(msg)
	case 1:
		m.BioInput, cmd = m.BioInput.Update(msg)
	case 2:
		m.PicInput, cmd = m.PicInput.Update(msg)
	}
	return m, cmd
}

func (m Model) updateComposing(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		m.Mode = viewing
		m.TitleInput.Blur()
		return m, nil
	case "ctrl+p":
		m.Publish = !m.Publish
		return m, nil
	case "enter":
		title := util.NormalizeInput(m.TitleInput.Value())
		m.Mode = viewing
		m.TitleInput.Blur()
		if title == "" {
			return m, nil
		}
		return m, createPost(m.Core, m.Client, title, m.Publish)
	}

	m.TitleInput, cmd = m.TitleInput.Update(msg)
	return m, cmd
}

func (m *Model) focusEditStep() {
	m.NameInput.Blur()
	m.BioInput.Blur()
	m.PicInput.Blur()
	switch m.Step {
	case 0:
		m.NameInput.Focus()
	case 1:
		m.BioInput.Focus()
	case 2:
		m.PicInput.Focus()
	}
}

func (m Model) viewingOther() bool {
	return m.UserId != 0 && m.UserId != m.Core.User().Id
}

func (m Model) View() string {
	var s strings.Builder

	if m.State == common.Downloading {
		s.WriteString(common.EmptyStyle.Render("Loading profile..."))
		return s.String()
	}

	s.WriteString(common.TitleStyle.Render(m.User.Profile.DisplayName()))
	s.WriteString("\n")

	if m.Avatar != "" {
		s.WriteString(m.Avatar)
		s.WriteString("\n")
	}

	bio := ""
	if m.User.Profile.Bio != nil {
		bio = *m.User.Profile.Bio
	}
	s.WriteString(common.BodyStyle.Render(bio))
	s.WriteString("\n")
	s.WriteString(common.TimeStyle.Render(fmt.Sprintf("@%s • %d posts • %d following • %d followers",
		m.User.UserName, len(m.User.Posts), len(m.User.Following), len(m.User.Followers))))
	s.WriteString("\n\n")

	if m.viewingOther() {
		if m.Core.User().IsFollowing(m.User.Id) {
			s.WriteString(common.CaptionStyle.Render("following ✓"))
		}
	}

	for i, p := range m.User.Posts {
		if i >= 5 {
			s.WriteString(common.EmptyStyle.Render(fmt.Sprintf("... and %d more posts", len(m.User.Posts)-5)))
			break
		}
		draft := ""
		if !p.Published {
			draft = " [draft]"
		}
		s.WriteString(common.CardStyle.Render(fmt.Sprintf("%s%s\n%s",
			common.BodyStyle.Render(util.Truncate(p.TitleText(), 70)),
			draft,
			common.TimeStyle.Render(util.FormatRelativeTime(p.Created())))))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	switch m.Mode {
	case editing:
		s.WriteString(m.NameInput.View() + "\n" + m.BioInput.View() + "\n" + m.PicInput.View())
		s.WriteString("\n")
		s.WriteString(common.HelpStyle.Render("enter: next / save • esc: cancel"))
	case composing:
		publish := "published"
		if !m.Publish {
			publish = "draft"
		}
		s.WriteString(m.TitleInput.View())
		s.WriteString("\n")
		s.WriteString(common.HelpStyle.Render(fmt.Sprintf("enter: post (%s) • ctrl-p: toggle draft • esc: cancel", publish)))
	default:
		if m.viewingOther() {
			s.WriteString(common.HelpStyle.Render("f: follow/unfollow • esc: back"))
		} else {
			s.WriteString(common.HelpStyle.Render("e: edit profile • n: new post • esc: back"))
		}
	}
	return s.String()
}

type userLoadedMsg struct {
	user domain.User
}

type avatarLoadedMsg struct {
	userId int
	art    string
}

type followDoneMsg struct{}

type savedMsg struct{}

type actionFailedMsg struct{}

func refreshSelf(core *session.Core) tea.Cmd {
	return func() tea.Msg {
		return userLoadedMsg{user: core.User()}
	}
}

func loadUser(core *session.Core, client *api.Client, userId int) tea.Cmd {
	return func() tea.Msg {
		raw := client.StatusById(userId)
		env, err := domain.DecodeEnvelope[domain.User](raw)
		if err != nil {
			core.HandleError(raw)
			return actionFailedMsg{}
		}
		return userLoadedMsg{user: env.Data}
	}
}

func loadAvatar(pictures *picture.Manager, user domain.User) tea.Cmd {
	if user.Profile.ProfilePicture == nil || *user.Profile.ProfilePicture == "" {
		return nil
	}
	url := *user.Profile.ProfilePicture
	key := store.ImageKey{Kind: store.UserImage, Id: user.Id}
	return func() tea.Msg {
		data := pictures.Fetch(key, url)
		return avatarLoadedMsg{userId: user.Id, art: picture.Render(data, 16)}
	}
}

// toggleFollow is pessimistic like every other mutation: the reply carries
// the authoritative Follow edge, which is merged into (or removed from) the
// identity's following list. The list is never toggled ahead of the server.
func toggleFollow(core *session.Core, client *api.Client, target domain.User) tea.Cmd {
	viewer := core.User()
	name := viewer.Profile.DisplayName()

	return func() tea.Msg {
		var raw []byte
		following := viewer.IsFollowing(target.Id)
		if following {
			raw = client.UnfollowUser(target.Id)
		} else {
			raw = client.FollowUser(target.Id, &name, viewer.Profile.ProfilePicture)
		}

		env, err := domain.DecodeEnvelope[domain.Follow](raw)
		if err != nil {
			core.HandleError(raw)
			return actionFailedMsg{}
		}

		user := core.User()
		if following {
			if domain.ParseOutcome(env.Message) != domain.OutcomeUnfollowed {
				core.HandleError(raw)
				return actionFailedMsg{}
			}
			user.Following = domain.RemoveById(user.Following, env.Data.Id)
		} else {
			user.Following = domain.MergePage(user.Following, []domain.Follow{env.Data})
		}
		core.SetUser(user)
		core.Popup().Post(env.Message)

		if !following {
			if reply := client.CreateNotification("followed you", nil, viewer.Id, target.Id); reply == nil {
				log.Printf("sending follow notification to user %d failed", target.Id)
			}
		}

		return followDoneMsg{}
	}
}

func saveProfile(core *session.Core, client *api.Client, pictures *picture.Manager, name, bio, picPath string) tea.Cmd {
	viewer := core.User()

	return func() tea.Msg {
		var namePtr, bioPtr *string
		if name != "" {
			namePtr = &name
		}
		if bio != "" {
			bioPtr = &bio
		}

		raw := client.UpdateStatus(namePtr, bioPtr, viewer.Profile.ProfilePicture)
		env, err := domain.DecodeEnvelope[domain.User](raw)
		if err != nil {
			core.HandleError(raw)
			return actionFailedMsg{}
		}
		core.SetUser(env.Data)
		core.Popup().Post(env.Message)

		if picPath != "" {
			data, err := os.ReadFile(picPath)
			if err != nil {
				log.Printf("reading picture %s: %v", picPath, err)
			} else if reply := client.UploadImage(data, "user", viewer.Id); reply == nil {
				log.Printf("uploading profile picture failed")
			} else {
				pictures.Invalidate(store.ImageKey{Kind: store.UserImage, Id: viewer.Id})
			}
		}

		return savedMsg{}
	}
}

func createPost(core *session.Core, client *api.Client, title string, publish bool) tea.Cmd {
	return func() tea.Msg {
		raw := client.UploadPost(&title, publish, nil)
		env, err := domain.DecodeEnvelope[domain.Post](raw)
		if err != nil || domain.ParseOutcome(env.Message) != domain.OutcomePosted {
			core.HandleError(raw)
			return actionFailedMsg{}
		}
		core.Popup().Post(env.Message)
		return savedMsg{}
	}
}
