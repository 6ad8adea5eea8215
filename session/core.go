// Package session owns the client's global state: the authenticated user,
// the login and loading machines, the popup, and the theme. One Core is
// created at startup and injected into every screen, there are no package
// singletons.
package session

import (
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/ReksiGustio/SimpleWalls/api"
	"github.com/ReksiGustio/SimpleWalls/domain"
	"github.com/ReksiGustio/SimpleWalls/store"
)

// LoginState is the top-level screen selector.
type LoginState int

const (
	// Opening is the splash state while the persisted identity is probed.
	Opening LoginState = iota
	// Login means an authenticated session is live.
	Login
	// Logout means no session, the auth screen is showing.
	Logout
)

func (s LoginState) String() string {
	switch s {
	case Opening:
		return "opening"
	case Login:
		return "login"
	default:
		return "logout"
	}
}

// LoadingState gates the global activity indicator.
type LoadingState int

const (
	Loaded LoadingState = iota
	Loading
)

const (
	msgConnectFailed   = "Unable to connect to the server"
	msgSessionExpired  = "Session expired, please log in again"
	msgLogout          = "Logout successfully"
	msgUnreadableReply = "Received an unreadable reply from the server"
)

// Core holds the shared client state. All mutation goes through its
// methods under one mutex; screens read consistent copies via Snapshot.
type Core struct {
	mu      sync.Mutex
	client  *api.Client
	store   *store.Store
	user    domain.User
	login   LoginState
	loading LoadingState
	theme   Theme
	popup   *Popup
}

// New builds the core, restoring the persisted identity and theme.
// The login state starts at Opening until Open decides where to go.
func New(st *store.Store, client *api.Client, popupInterval time.Duration) *Core {
	c := &Core{
		client:  client,
		store:   st,
		user:    domain.AnonymousUser(),
		login:   Opening,
		loading: Loaded,
		theme:   DefaultTheme(),
		popup:   NewPopup(popupInterval),
	}

	if data := st.LoadIdentity(); data != nil {
		var u domain.User
		if err := json.Unmarshal(data, &u); err != nil {
			log.Printf("restoring identity: %v", err)
		} else {
			c.user = u
		}
	}
	if t, ok := decodeTheme(st.LoadTheme()); ok {
		c.theme = t
	}
	return c
}

func (c *Core) Popup() *Popup { return c.popup }

// Snapshot is a consistent copy of the shared state for rendering.
type Snapshot struct {
	User    domain.User
	Login   LoginState
	Loading LoadingState
	Theme   Theme
}

func (c *Core) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{User: c.user, Login: c.login, Loading: c.loading, Theme: c.theme}
}

func (c *Core) User() domain.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

func (c *Core) LoginState() LoginState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.login
}

func (c *Core) LoadingState() LoadingState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Core) SetLoading(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if on {
		c.loading = Loading
	} else {
		c.loading = Loaded
	}
}

// SetUser replaces the identity wholesale with the server's copy and
// persists it synchronously.
func (c *Core) SetUser(u domain.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setUserLocked(u)
}

func (c *Core) setUserLocked(u domain.User) {
	c.user = u
	data, err := json.Marshal(u)
	if err != nil {
		log.Printf("encoding identity: %v", err)
		return
	}
	if err := c.store.SaveIdentity(data); err != nil {
		log.Printf("persisting identity: %v", err)
	}
}

// Open decides the first real state after the splash: with no persisted
// username there is nothing to probe and the auth screen shows, otherwise
// the status probe validates the stored session.
func (c *Core) Open() {
	c.mu.Lock()
	empty := strings.TrimSpace(c.user.UserName) == ""
	if empty {
		c.login = Logout
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.GetStatus()
}

// GetStatus revalidates the session against the server. The popup timer is
// suspended for the duration so a visible message does not vanish mid-probe.
func (c *Core) GetStatus() {
	c.popup.Suspend()
	c.SetLoading(true)

	raw := c.client.UserStatus()

	env, err := domain.DecodeEnvelope[domain.User](raw)
	if err != nil {
		c.HandleError(raw)
		c.popup.Resume()
		return
	}

	c.mu.Lock()
	c.setUserLocked(env.Data)
	c.login = Login
	c.loading = Loaded
	c.mu.Unlock()

	c.popup.Resume()
}

// Authenticate runs login or register and applies the shared success rule:
// only a reply whose message carries the logged-in marker opens a session.
func (c *Core) Authenticate(raw []byte) {
	env, err := domain.DecodeEnvelope[domain.User](raw)
	if err != nil || domain.ParseOutcome(env.Message) != domain.OutcomeLoggedIn {
		c.HandleError(raw)
		return
	}

	c.mu.Lock()
	c.setUserLocked(env.Data)
	c.login = Login
	c.loading = Loaded
	c.mu.Unlock()

	c.popup.Post(env.Message)
}

func (c *Core) LoginUser(username, password string) {
	c.SetLoading(true)
	c.Authenticate(c.client.Login(username, password))
}

func (c *Core) RegisterUser(username, password string, name *string) {
	c.SetLoading(true)
	c.Authenticate(c.client.Register(username, password, name))
}

// Logout tears the session down locally: cookies wiped, identity replaced
// with the anonymous placeholder, image cache emptied. The server is not
// consulted.
func (c *Core) Logout() {
	c.client.ClearCookies()

	c.mu.Lock()
	c.setUserLocked(domain.AnonymousUser())
	c.login = Logout
	c.loading = Loaded
	c.mu.Unlock()

	if err := c.store.ClearImages(); err != nil {
		log.Printf("clearing image cache: %v", err)
	}

	c.popup.Post(msgLogout)
}

// HandleError is the shared failure path for every route reply. Empty bytes
// mean the transport failed; a decodable message is surfaced as-is unless it
// signals an expired session, which forces logout from any state; anything
// else is reported as unreadable.
func (c *Core) HandleError(raw []byte) {
	c.SetLoading(false)

	if len(raw) == 0 {
		c.popup.Post(msgConnectFailed)
		return
	}

	msg, err := domain.DecodeMessage(raw)
	if err != nil || msg.Message == "" {
		c.popup.Post(msgUnreadableReply)
		return
	}

	if domain.ParseOutcome(msg.Message) == domain.OutcomeUnauthorized {
		c.mu.Lock()
		c.login = Logout
		c.mu.Unlock()
		c.popup.Post(msgSessionExpired)
		return
	}

	c.popup.Post(msg.Message)
}

// Theme returns the active theme copy.
func (c *Core) Theme() Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := make(Theme, len(c.theme))
	for k, v := range c.theme {
		t[k] = v
	}
	return t
}

// SetThemeColor customizes one appearance slot and persists the theme.
func (c *Core) SetThemeColor(mode string, color RGB) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.theme == nil {
		c.theme = DefaultTheme()
	}
	c.theme[mode] = color
	if err := c.store.SaveTheme(c.theme.encode()); err != nil {
		log.Printf("persisting theme: %v", err)
	}
}
