package picture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ReksiGustio/SimpleWalls/api"
	"github.com/ReksiGustio/SimpleWalls/store"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func TestFetchCachesDownload(t *testing.T) {
	data := testPNG(t, 4, 4)

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(data)
	}))
	defer srv.Close()

	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	m := NewManager(st, api.New(srv.URL))
	key := store.ImageKey{Kind: store.PostImage, Id: 12}

	if got := m.Fetch(key, srv.URL+"/img.png"); !bytes.Equal(got, data) {
		t.Fatalf("Fetch returned %d bytes, want %d", len(got), len(data))
	}
	if got := m.Fetch(key, srv.URL+"/img.png"); !bytes.Equal(got, data) {
		t.Fatalf("Second fetch returned %d bytes, want %d", len(got), len(data))
	}

	if hits.Load() != 1 {
		t.Errorf("Expected exactly one download, server saw %d", hits.Load())
	}
}

func TestFetchFailureReturnsNil(t *testing.T) {
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	m := NewManager(st, api.New("http://127.0.0.1:0"))
	key := store.ImageKey{Kind: store.UserImage, Id: 3}

	if got := m.Fetch(key, "http://127.0.0.1:0/missing.png"); got != nil {
		t.Errorf("Expected nil on failed download, got %d bytes", len(got))
	}
	if got := m.Fetch(key, ""); got != nil {
		t.Errorf("Expected nil for empty URL, got %d bytes", len(got))
	}
}

func TestRenderProducesHalfBlocks(t *testing.T) {
	out := Render(testPNG(t, 8, 8), 4)
	if out == "" {
		t.Fatal("Expected rendered output for a valid image")
	}
	if !strings.Contains(out, "▀") {
		t.Error("Expected half-block cells in output")
	}
	// 4 wide, aspect-matched height, two pixel rows per line
	if lines := strings.Count(out, "\n") + 1; lines != 2 {
		t.Errorf("Expected 2 lines for a square image at width 4, got %d", lines)
	}
}

func TestRenderRejectsGarbage(t *testing.T) {
	if out := Render([]byte("not an image"), 10); out != "" {
		t.Errorf("Expected empty string for undecodable bytes, got %q", out)
	}
	if out := Render(nil, 10); out != "" {
		t.Errorf("Expected empty string for nil bytes, got %q", out)
	}
}
