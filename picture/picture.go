// Package picture fetches and renders the app's images: profile pictures
// and post attachments. Bytes are cached in the local store keyed by what
// they belong to, and rendered as half-block cells for the terminal.
package picture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	"github.com/ReksiGustio/SimpleWalls/api"
	"github.com/ReksiGustio/SimpleWalls/store"
)

type Manager struct {
	store  *store.Store
	client *api.Client
}

func NewManager(st *store.Store, client *api.Client) *Manager {
	return &Manager{store: st, client: client}
}

// Fetch returns the image bytes for a key, cache first. A download that
// succeeds is cached before returning; a miss plus a failed download yields
// nil and the caller shows a placeholder.
func (m *Manager) Fetch(key store.ImageKey, url string) []byte {
	if data := m.store.GetImage(key); data != nil {
		return data
	}
	data := m.client.Download(url)
	if data == nil {
		return nil
	}
	if err := m.store.PutImage(key, data); err != nil {
		log.Printf("caching image %s: %v", key, err)
	}
	return data
}

// Invalidate drops one cache entry, used after an upload replaces the
// server-side image so the stale copy is not served again.
func (m *Manager) Invalidate(key store.ImageKey) {
	if err := m.store.PutImage(key, nil); err != nil {
		log.Printf("invalidating image %s: %v", key, err)
	}
}

// Render decodes image bytes and draws them as ANSI half blocks scaled to
// the given cell width. Returns "" when the bytes do not decode.
func Render(data []byte, width int) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return ""
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return ""
	}

	// A terminal cell is roughly twice as tall as wide, and each cell holds
	// two pixel rows via the half block, so pixel height ends up at
	// width * aspect.
	height := bounds.Dy() * width / bounds.Dx()
	if height < 2 {
		height = 2
	}
	if height%2 != 0 {
		height++
	}

	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)

	var b strings.Builder
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			top := rgbSeq(scaled.At(x, y))
			bottom := rgbSeq(scaled.At(x, y+1))
			b.WriteString(fmt.Sprintf("\x1b[38;2;%sm\x1b[48;2;%sm▀", top, bottom))
		}
		b.WriteString("\x1b[0m\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func rgbSeq(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("%d;%d;%d", r>>8, g>>8, b>>8)
}
