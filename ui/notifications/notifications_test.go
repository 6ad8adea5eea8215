package notifications

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ReksiGustio/SimpleWalls/api"
	"github.com/ReksiGustio/SimpleWalls/domain"
	"github.com/ReksiGustio/SimpleWalls/picture"
	"github.com/ReksiGustio/SimpleWalls/session"
	"github.com/ReksiGustio/SimpleWalls/store"
)

func strPtr(s string) *string { return &s }

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 40, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func testModel(t *testing.T, handler http.Handler) Model {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	var client *api.Client
	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		client = api.New(srv.URL)
	} else {
		client = api.New("http://127.0.0.1:0")
	}

	core := session.New(st, client, time.Minute)
	t.Cleanup(core.Popup().Stop)
	return InitialModel(core, client, picture.NewManager(st, client), 80, 24)
}

func TestMarkReadReplacesItem(t *testing.T) {
	m := testModel(t, nil)

	m, _ = m.Update(pageLoadedMsg{items: []domain.Notification{
		{Id: 1, Object: "liked your post", Read: false, UserId: 2},
	}, reset: true})

	m, _ = m.Update(markedReadMsg{item: domain.Notification{Id: 1, Object: "liked your post", Read: true, UserId: 2}})
	if !m.Items[0].Read {
		t.Error("Expected server copy to mark the notification read")
	}
}

func TestActorAvatarFetchedAndRendered(t *testing.T) {
	data := testPNG(t)
	mux := http.NewServeMux()
	mux.HandleFunc("/images/2.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	})

	m := testModel(t, mux)
	url := m.Client.BaseURL() + "/images/2.png"

	m, cmd := m.Update(pageLoadedMsg{items: []domain.Notification{
		{Id: 1, Object: "liked your post", UserId: 2, ActorImage: &url},
	}, reset: true})
	if cmd == nil {
		t.Fatal("Expected an avatar load command for the actor image")
	}

	applyAvatarMsgs(t, &m, cmd())
	art, ok := m.Avatars[2]
	if !ok || art == "" {
		t.Fatal("Expected the actor avatar cached on the model")
	}
	if !strings.Contains(art, "▀") {
		t.Error("Expected half-block art for the avatar")
	}
	if !strings.Contains(m.View(), "▀") {
		t.Error("Expected the selected entry to show the avatar")
	}
}

func TestItemsWithoutImageLoadNoAvatar(t *testing.T) {
	m := testModel(t, nil)

	_, cmd := m.Update(pageLoadedMsg{items: []domain.Notification{
		{Id: 1, Object: "followed you", UserId: 2},
		{Id: 2, Object: "liked your post", UserId: 3, ActorImage: strPtr("")},
	}, reset: true})
	if cmd != nil {
		t.Error("Expected no avatar commands without an actor image")
	}
}

// tea.Batch wraps commands, so unwrap until the avatar message surfaces.
func applyAvatarMsgs(t *testing.T, m *Model, msg tea.Msg) {
	t.Helper()
	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			applyAvatarMsgs(t, m, c())
		}
	case avatarLoadedMsg:
		*m, _ = m.Update(msg)
	default:
		t.Fatalf("Unexpected message %T", msg)
	}
}
