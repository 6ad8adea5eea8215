package common

import "github.com/ReksiGustio/SimpleWalls/domain"

// SessionState selects the active dashboard screen.
type SessionState uint

const (
	WallsView SessionState = iota
	DetailView
	ProfileView
	SearchView
	NotificationsView
	MenuView
)

// ViewState tracks one screen's fetch lifecycle.
type ViewState uint

const (
	Downloading ViewState = iota
	Downloaded
	Failed
)

// OpenPostMsg asks the root model to show a post's detail screen.
type OpenPostMsg struct {
	Post domain.Post
}

// OpenUserMsg asks the root model to show a user's profile.
type OpenUserMsg struct {
	UserId int
}

// BackMsg returns to the walls screen.
type BackMsg struct{}

// RedrawMsg forces a render pass, sent by the popup timer.
type RedrawMsg struct{}

// SessionChangedMsg tells screens the identity was replaced and cached
// copies derived from it are stale.
type SessionChangedMsg struct{}
