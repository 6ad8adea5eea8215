package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/ReksiGustio/SimpleWalls/api"
	"github.com/ReksiGustio/SimpleWalls/domain"
	"github.com/ReksiGustio/SimpleWalls/store"
)

func setupTestCore(t *testing.T, handler http.Handler) (*Core, *store.Store) {
	t.Helper()

	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	baseURL := "http://127.0.0.1:0"
	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		baseURL = srv.URL
	}

	c := New(st, api.New(baseURL), time.Minute)
	t.Cleanup(c.Popup().Stop)
	return c, st
}

func envelopeHandler(t *testing.T, message string, user domain.User) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"message": message, "data": user})
	})
}

func strPtr(s string) *string { return &s }

func TestHandleErrorEmptyBytes(t *testing.T) {
	c, _ := setupTestCore(t, nil)
	c.SetLoading(true)

	c.HandleError(nil)

	if text, visible := c.Popup().Message(); !visible || text != "Unable to connect to the server" {
		t.Errorf("Expected connection failure popup, got %q visible=%v", text, visible)
	}
	if c.LoadingState() != Loaded {
		t.Error("Expected loading cleared after error")
	}
}

func TestHandleErrorUnauthorizedForcesLogout(t *testing.T) {
	for _, start := range []LoginState{Opening, Login, Logout} {
		c, _ := setupTestCore(t, nil)
		c.mu.Lock()
		c.login = start
		c.mu.Unlock()

		c.HandleError([]byte(`{"message":"Unauthorized"}`))

		if c.LoginState() != Logout {
			t.Errorf("From %v: expected forced logout, got %v", start, c.LoginState())
		}
		if text, _ := c.Popup().Message(); text != "Session expired, please log in again" {
			t.Errorf("From %v: expected session-expired popup, got %q", start, text)
		}
	}
}

func TestHandleErrorUnreadableReply(t *testing.T) {
	c, _ := setupTestCore(t, nil)

	c.HandleError([]byte("<html>502 Bad Gateway</html>"))

	if text, _ := c.Popup().Message(); text != "Received an unreadable reply from the server" {
		t.Errorf("Expected unreadable-reply popup, got %q", text)
	}
}

func TestHandleErrorSurfacesServerMessage(t *testing.T) {
	c, _ := setupTestCore(t, nil)

	c.HandleError([]byte(`{"message":"Wrong password"}`))

	if c.LoginState() != Opening {
		t.Errorf("Plain failure must not change login state, got %v", c.LoginState())
	}
	if text, _ := c.Popup().Message(); text != "Wrong password" {
		t.Errorf("Expected server message surfaced, got %q", text)
	}
}

func TestLoginHappyPath(t *testing.T) {
	user := domain.User{
		Id:       3,
		UserName: "reksi",
		Profile:  domain.Profile{Id: 3, Name: strPtr("Reksi"), UserId: 3},
	}
	c, st := setupTestCore(t, envelopeHandler(t, "Logged in successfully", user))
	c.mu.Lock()
	c.login = Logout
	c.mu.Unlock()

	c.LoginUser("reksi", "secret")

	if c.LoginState() != Login {
		t.Fatalf("Expected Login state, got %v", c.LoginState())
	}
	if got := c.User(); got.Id != 3 || got.UserName != "reksi" {
		t.Errorf("Expected server identity installed, got %+v", got)
	}
	if text, _ := c.Popup().Message(); text != "Logged in successfully" {
		t.Errorf("Expected login message popup, got %q", text)
	}

	// Identity persisted synchronously
	var saved domain.User
	if err := json.Unmarshal(st.LoadIdentity(), &saved); err != nil || saved.Id != 3 {
		t.Errorf("Expected identity persisted, got %s (%v)", st.LoadIdentity(), err)
	}
}

func TestLoginWithoutSentinelStaysLoggedOut(t *testing.T) {
	// A decodable envelope whose message lacks the logged-in marker must not
	// open a session
	c, _ := setupTestCore(t, envelopeHandler(t, "Account pending review", domain.User{Id: 3}))
	c.mu.Lock()
	c.login = Logout
	c.mu.Unlock()

	c.LoginUser("reksi", "secret")

	if c.LoginState() != Logout {
		t.Errorf("Expected Logout preserved, got %v", c.LoginState())
	}
	if text, _ := c.Popup().Message(); text != "Account pending review" {
		t.Errorf("Expected server message popup, got %q", text)
	}
}

func TestLoginConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	c := New(st, api.New(srv.URL), time.Minute)
	defer c.Popup().Stop()

	c.LoginUser("reksi", "secret")

	if text, _ := c.Popup().Message(); text != "Unable to connect to the server" {
		t.Errorf("Expected connection failure popup, got %q", text)
	}
	if c.LoadingState() != Loaded {
		t.Error("Expected loading cleared after failed login")
	}
}

func TestOpenWithoutIdentityGoesToLogout(t *testing.T) {
	c, _ := setupTestCore(t, nil)

	c.Open()

	if c.LoginState() != Logout {
		t.Errorf("Expected Logout with no persisted identity, got %v", c.LoginState())
	}
}

func TestOpenWithIdentityProbesStatus(t *testing.T) {
	fresh := domain.User{Id: 3, UserName: "reksi", Profile: domain.Profile{Name: strPtr("Updated")}}
	c, _ := setupTestCore(t, envelopeHandler(t, "ok", fresh))

	c.SetUser(domain.User{Id: 3, UserName: "reksi"})
	c.Open()

	if c.LoginState() != Login {
		t.Fatalf("Expected Login after successful probe, got %v", c.LoginState())
	}
	if got := c.User(); got.Profile.DisplayName() != "Updated" {
		t.Errorf("Expected server copy to overwrite identity, got %+v", got.Profile)
	}
}

func TestGetStatusExpiredSession(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Unauthorized"}`))
	})
	c, _ := setupTestCore(t, handler)

	c.SetUser(domain.User{Id: 3, UserName: "reksi"})
	c.Open()

	if c.LoginState() != Logout {
		t.Errorf("Expected forced logout on expired session, got %v", c.LoginState())
	}
	if text, _ := c.Popup().Message(); text != "Session expired, please log in again" {
		t.Errorf("Expected session-expired popup, got %q", text)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	c, st := setupTestCore(t, nil)

	c.SetUser(domain.User{Id: 3, UserName: "reksi"})
	c.mu.Lock()
	c.login = Login
	c.mu.Unlock()
	st.PutImage(store.ImageKey{Kind: store.UserImage, Id: 3}, []byte{1})

	c.Logout()

	if c.LoginState() != Logout {
		t.Errorf("Expected Logout state, got %v", c.LoginState())
	}
	if got := c.User(); got.Id != 0 || got.UserName != "" {
		t.Errorf("Expected anonymous identity, got %+v", got)
	}
	if data := st.GetImage(store.ImageKey{Kind: store.UserImage, Id: 3}); data != nil {
		t.Error("Expected image cache cleared on logout")
	}
	if text, _ := c.Popup().Message(); text != "Logout successfully" {
		t.Errorf("Expected logout popup, got %q", text)
	}

	// Persisted identity is the anonymous placeholder, not absent
	var saved domain.User
	if err := json.Unmarshal(st.LoadIdentity(), &saved); err != nil || saved.UserName != "" {
		t.Errorf("Expected anonymous identity persisted, got %s", st.LoadIdentity())
	}
}

func TestIdentityRestoredAcrossCores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walls.db")

	st, err := store.Open(path)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	c := New(st, api.New("http://127.0.0.1:0"), time.Minute)
	c.SetUser(domain.User{Id: 7, UserName: "walls"})
	c.SetThemeColor(ThemeDark, RGB{Red: 0.2, Green: 0.2, Blue: 0.3})
	st.Close()

	st2, err := store.Open(path)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer st2.Close()

	c2 := New(st2, api.New("http://127.0.0.1:0"), time.Minute)
	if got := c2.User(); got.Id != 7 || got.UserName != "walls" {
		t.Errorf("Expected identity restored, got %+v", got)
	}
	if got := c2.Theme().Mode(ThemeDark); got.Blue != 0.3 {
		t.Errorf("Expected customized theme restored, got %+v", got)
	}
	if got := c2.Theme().Mode(ThemeLight); got.Red != 0.9 {
		t.Errorf("Expected untouched slot to fall back to default, got %+v", got)
	}
}

func TestThemeHex(t *testing.T) {
	if got := (RGB{Red: 1, Green: 0, Blue: 0.5}).Hex(); got != "#ff0080" {
		t.Errorf("Hex = %q, want #ff0080", got)
	}
	if got := (RGB{Red: -1, Green: 2, Blue: 0}).Hex(); got != "#00ff00" {
		t.Errorf("Hex clamps out-of-range components, got %q", got)
	}
}
