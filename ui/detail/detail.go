package detail

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ReksiGustio/SimpleWalls/api"
	"github.com/ReksiGustio/SimpleWalls/domain"
	"github.com/ReksiGustio/SimpleWalls/session"
	"github.com/ReksiGustio/SimpleWalls/ui/common"
	"github.com/ReksiGustio/SimpleWalls/util"
)

// Model shows one post with its comment thread. Every mutation is
// pessimistic: the request runs first and the server's returned copy
// overwrites the local one, nothing is toggled optimistically.
type Model struct {
	Core      *session.Core
	Client    *api.Client
	Post      domain.Post
	Shared    *domain.Post
	Comments  []domain.Comment
	State     common.ViewState
	Cursor    int
	Input     textinput.Model
	Composing bool

	EditInput   textinput.Model
	Editing     bool
	EditPublish bool

	Width  int
	Height int
}

func InitialModel(core *session.Core, client *api.Client, post domain.Post, width, height int) Model {
	input := textinput.New()
	input.Placeholder = "write a comment"
	input.CharLimit = 280
	input.Width = 60

	edit := textinput.New()
	edit.Placeholder = "edit the post title"
	edit.CharLimit = 280
	edit.Width = 60

	return Model{
		Core:      core,
		Client:    client,
		Post:      post,
		State:     common.Downloading,
		Input:     input,
		EditInput: edit,
		Width:     width,
		Height:    height,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadComments(m.Core, m.Client, m.Post.Id, 0)}
	if att := m.Post.Attachment(); att.Kind == domain.AttachmentShared {
		cmds = append(cmds, loadShared(m.Client, att.PostId))
	}
	if m.Post.Author == nil && m.Post.AuthorId != 0 {
		cmds = append(cmds, loadAuthor(m.Client, m.Post))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case commentsLoadedMsg:
		if msg.postId != m.Post.Id {
			return m, nil
		}
		m.State = common.Downloaded
		m.Comments = domain.MergePage(m.Comments, msg.comments)
		return m, nil

	case sharedLoadedMsg:
		m.Shared = &msg.post
		return m, nil

	case postUpdatedMsg:
		if msg.post.Id == m.Post.Id {
			// Server copy wins, whatever we held locally
			m.Post = msg.post
		}
		return m, nil

	case authorLoadedMsg:
		if msg.postId == m.Post.Id && m.Post.Author == nil {
			author := msg.author
			m.Post.Author = &author
		}
		return m, nil

	case commentAddedMsg:
		if msg.comment.PostId == nil || *msg.comment.PostId == m.Post.Id {
			m.Comments = domain.MergePage(m.Comments, []domain.Comment{msg.comment})
		}
		return m, nil

	case commentUpdatedMsg:
		m.Comments = domain.ReplaceById(m.Comments, msg.comment)
		return m, nil

	case commentDeletedMsg:
		m.Comments = domain.RemoveById(m.Comments, msg.commentId)
		if m.Cursor >= len(m.Comments) {
			m.Cursor = 0
		}
		return m, nil

	case shareDoneMsg:
		return m, nil

	case actionFailedMsg:
		m.State = common.Downloaded
		return m, nil

	case tea.KeyMsg:
		if m.Editing {
			switch msg.String() {
			case "esc":
				m.Editing = false
				m.EditInput.Blur()
				return m, nil
			case "ctrl+p":
				m.EditPublish = !m.EditPublish
				return m, nil
			case "enter":
				title := util.NormalizeInput(m.EditInput.Value())
				m.Editing = false
				m.EditInput.Blur()
				if title == "" {
					return m, nil
				}
				return m, updatePost(m.Core, m.Client, m.Post, title, m.EditPublish)
			}
			m.EditInput, cmd = m.EditInput.Update(msg)
			return m, cmd
		}

		if m.Composing {
			switch msg.String() {
			case "esc":
				m.Composing = false
				m.Input.Blur()
				m.Input.SetValue("")
				return m, nil
			case "enter":
				text := util.NormalizeInput(m.Input.Value())
				m.Composing = false
				m.Input.Blur()
				m.Input.SetValue("")
				if text == "" {
					return m, nil
				}
				return m, addComment(m.Core, m.Client, m.Post, text)
			}
			m.Input, cmd = m.Input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "esc", "b":
			return m, func() tea.Msg { return common.BackMsg{} }
		case "l":
			return m, toggleLike(m.Core, m.Client, m.Post)
		case "c":
			m.Composing = true
			m.Input.Focus()
			return m, textinput.Blink
		case "e":
			if m.Post.AuthorId == m.Core.User().Id {
				m.Editing = true
				m.EditInput.SetValue(m.Post.TitleText())
				m.EditInput.Focus()
				m.EditPublish = m.Post.Published
				return m, textinput.Blink
			}
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Comments)-1 {
				m.Cursor++
			}
		case "m":
			return m, loadComments(m.Core, m.Client, m.Post.Id, len(m.Comments))
		case "L":
			if m.Cursor < len(m.Comments) {
				return m, toggleCommentLike(m.Core, m.Client, m.Comments[m.Cursor])
			}
		case "d":
			if m.Cursor < len(m.Comments) {
				c := m.Comments[m.Cursor]
				if c.UserId != nil && *c.UserId == m.Core.User().Id {
					return m, deleteComment(m.Core, m.Client, c.Id)
				}
			}
		case "s":
			return m, sharePost(m.Core, m.Client, m.Post)
		case "o":
			if m.Shared != nil {
				shared := *m.Shared
				return m, func() tea.Msg { return common.OpenPostMsg{Post: shared} }
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	author := "unknown"
	if m.Post.Author != nil {
		author = m.Post.Author.Profile.DisplayName()
	}

	s.WriteString(common.TitleStyle.Render("Post"))
	s.WriteString("\n")

	body := fmt.Sprintf("%s\n%s\n%s  ♥ %d  💬 %d",
		common.AuthorStyle.Render(author),
		common.BodyStyle.Render(m.Post.TitleText()),
		common.TimeStyle.Render(util.FormatRelativeTime(m.Post.Created())),
		len(m.Post.Likes),
		len(m.Comments),
	)
	s.WriteString(common.SelectedCardStyle.Render(body))
	s.WriteString("\n")

	if m.Shared != nil {
		sharedAuthor := "unknown"
		if m.Shared.Author != nil {
			sharedAuthor = m.Shared.Author.Profile.DisplayName()
		}
		s.WriteString(common.CardStyle.Render(fmt.Sprintf("↪ %s: %s",
			common.AuthorStyle.Render(sharedAuthor),
			util.Truncate(m.Shared.TitleText(), 60))))
		s.WriteString("\n")
	}

	switch {
	case m.State == common.Downloading:
		s.WriteString(common.EmptyStyle.Render("Loading comments..."))
	case len(m.Comments) == 0:
		s.WriteString(common.EmptyStyle.Render("No comments yet."))
	default:
		for i, c := range m.Comments {
			liked := ""
			if c.LikedBy(m.Core.User().Id) {
				liked = " ♥"
			}
			line := fmt.Sprintf("%s%s\n%s",
				common.BodyStyle.Render(util.Truncate(c.TextValue(), 70)),
				liked,
				common.TimeStyle.Render(util.FormatRelativeTime(c.Created())),
			)
			if i == m.Cursor {
				s.WriteString(common.SelectedCardStyle.Render(line))
			} else {
				s.WriteString(common.CardStyle.Render(line))
			}
			s.WriteString("\n")
		}
	}

	s.WriteString("\n")
	switch {
	case m.Editing:
		publish := "published"
		if !m.EditPublish {
			publish = "draft"
		}
		s.WriteString(m.EditInput.View())
		s.WriteString("\n")
		s.WriteString(common.HelpStyle.Render(fmt.Sprintf("enter: save (%s) • ctrl-p: toggle draft • esc: cancel", publish)))
	case m.Composing:
		s.WriteString(m.Input.View())
		s.WriteString("\n")
		s.WriteString(common.HelpStyle.Render("enter: send • esc: cancel"))
	default:
		s.WriteString(common.HelpStyle.Render("l: like post • c: comment • e: edit own • s: share to my wall • L: like comment • d: delete own • m: more • esc: back"))
	}
	return s.String()
}

type commentsLoadedMsg struct {
	postId   int
	comments []domain.Comment
}

type sharedLoadedMsg struct {
	post domain.Post
}

type postUpdatedMsg struct {
	post domain.Post
}

type authorLoadedMsg struct {
	postId int
	author domain.PartialUser
}

type commentAddedMsg struct {
	comment domain.Comment
}

type commentUpdatedMsg struct {
	comment domain.Comment
}

type commentDeletedMsg struct {
	commentId int
}

type shareDoneMsg struct{}

type actionFailedMsg struct{}

func loadComments(core *session.Core, client *api.Client, postId, startPoint int) tea.Cmd {
	return func() tea.Msg {
		raw := client.FindComments(postId, startPoint)
		env, err := domain.DecodeEnvelope[[]domain.Comment](raw)
		if err != nil {
			core.HandleError(raw)
			return actionFailedMsg{}
		}
		return commentsLoadedMsg{postId: postId, comments: env.Data}
	}
}

func loadShared(client *api.Client, postId int) tea.Cmd {
	return func() tea.Msg {
		raw := client.PostById(postId)
		env, err := domain.DecodeEnvelope[domain.Post](raw)
		if err != nil {
			// The referenced post may be deleted, nothing to surface
			log.Printf("loading shared post %d: %v", postId, err)
			return nil
		}
		return sharedLoadedMsg{post: env.Data}
	}
}

// loadAuthor backfills the trimmed author snapshot when the post arrived
// without one, e.g. opened from a notification. The partial status request
// returns the lightweight user record without posts or follow lists.
func loadAuthor(client *api.Client, post domain.Post) tea.Cmd {
	return func() tea.Msg {
		raw := client.PartialStatus(post.AuthorId)
		env, err := domain.DecodeEnvelope[domain.User](raw)
		if err != nil {
			// The card falls back to "unknown", nothing to surface
			log.Printf("loading author %d: %v", post.AuthorId, err)
			return nil
		}
		return authorLoadedMsg{postId: post.Id, author: env.Data.Partial()}
	}
}

// updatePost saves an edit to the viewer's own post and applies the
// server's returned copy, same as every other mutation.
func updatePost(core *session.Core, client *api.Client, post domain.Post, title string, publish bool) tea.Cmd {
	return func() tea.Msg {
		raw := client.UpdatePost(post.Id, &title, post.ImageURL, publish)
		env, err := domain.DecodeEnvelope[domain.Post](raw)
		if err != nil {
			core.HandleError(raw)
			return actionFailedMsg{}
		}
		core.Popup().Post(env.Message)
		return postUpdatedMsg{post: env.Data}
	}
}

// toggleLike runs the pessimistic like flow: request, then overwrite the
// local post with the server's copy. The notification to the author is
// fire-and-forget, its reply is logged and never blocks the flow.
func toggleLike(core *session.Core, client *api.Client, post domain.Post) tea.Cmd {
	viewer := core.User()
	name := viewer.Profile.DisplayName()

	return func() tea.Msg {
		var raw []byte
		liked := post.LikedBy(viewer.Id)
		if liked {
			raw = client.UnlikePost(post.Id)
		} else {
			raw = client.LikePost(viewer.Id, post.Id, &name)
		}

		env, err := domain.DecodeEnvelope[domain.Post](raw)
		if err != nil {
			core.HandleError(raw)
			return actionFailedMsg{}
		}

		if post.AuthorId != viewer.Id {
			postId := post.Id
			if liked {
				if reply := client.DeleteNotification(postId, viewer.Id); reply == nil {
					log.Printf("removing like notification for post %d failed", postId)
				}
			} else {
				if reply := client.CreateNotification("liked your post", &postId, viewer.Id, post.AuthorId); reply == nil {
					log.Printf("sending like notification for post %d failed", postId)
				}
			}
		}

		return postUpdatedMsg{post: env.Data}
	}
}

// sharePost re-posts to the viewer's own wall: a new post whose attachment
// slot carries the shared post's id.
func sharePost(core *session.Core, client *api.Client, post domain.Post) tea.Cmd {
	return func() tea.Msg {
		title := ""
		ref := domain.SharedPostRef(post.Id)
		raw := client.UploadPost(&title, true, &ref)
		env, err := domain.DecodeEnvelope[domain.Post](raw)
		if err != nil || domain.ParseOutcome(env.Message) != domain.OutcomePosted {
			core.HandleError(raw)
			return actionFailedMsg{}
		}
		core.Popup().Post(env.Message)
		return shareDoneMsg{}
	}
}

func addComment(core *session.Core, client *api.Client, post domain.Post, text string) tea.Cmd {
	viewer := core.User()

	return func() tea.Msg {
		raw := client.UploadComment(&text, nil, post.Id, viewer.Id)
		env, err := domain.DecodeEnvelope[domain.Comment](raw)
		if err != nil {
			core.HandleError(raw)
			return actionFailedMsg{}
		}

		if post.AuthorId != viewer.Id {
			postId := post.Id
			if reply := client.CreateNotification("commented on your post", &postId, viewer.Id, post.AuthorId); reply == nil {
				log.Printf("sending comment notification for post %d failed", postId)
			}
		}

		return commentAddedMsg{comment: env.Data}
	}
}

func toggleCommentLike(core *session.Core, client *api.Client, comment domain.Comment) tea.Cmd {
	viewer := core.User()
	name := viewer.Profile.DisplayName()

	return func() tea.Msg {
		var raw []byte
		if comment.LikedBy(viewer.Id) {
			raw = client.UnlikeComment(comment.Id)
		} else {
			raw = client.LikeComment(viewer.Id, comment.Id, &name)
		}

		env, err := domain.DecodeEnvelope[domain.Comment](raw)
		if err != nil {
			core.HandleError(raw)
			return actionFailedMsg{}
		}
		return commentUpdatedMsg{comment: env.Data}
	}
}

func deleteComment(core *session.Core, client *api.Client, commentId int) tea.Cmd {
	return func() tea.Msg {
		raw := client.DeleteComment(commentId)
		msg, err := domain.DecodeMessage(raw)
		if err != nil || domain.ParseOutcome(msg.Message) != domain.OutcomeDeleted {
			core.HandleError(raw)
			return actionFailedMsg{}
		}
		core.Popup().Post(msg.Message)
		return commentDeletedMsg{commentId: commentId}
	}
}
