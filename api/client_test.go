package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestFailureReturnsEmptyBytes(t *testing.T) {
	// Grab a port that nothing listens on
	srv := httptest.NewServer(http.NotFoundHandler())
	deadURL := srv.URL
	srv.Close()

	c := New(deadURL)

	if data := c.UserStatus(); len(data) != 0 {
		t.Errorf("Expected empty bytes for unreachable server, got %d bytes", len(data))
	}
	if data := c.Login("a", "b"); len(data) != 0 {
		t.Errorf("Expected empty bytes for unreachable server, got %d bytes", len(data))
	}
	if data := c.DeletePost(1); len(data) != 0 {
		t.Errorf("Expected empty bytes for unreachable server, got %d bytes", len(data))
	}
}

func TestDownloadEmptyURL(t *testing.T) {
	c := New("http://localhost:0")
	if data := c.Download(""); len(data) != 0 {
		t.Errorf("Expected empty bytes for empty URL, got %d bytes", len(data))
	}
}

func TestCookiePersistsAcrossRequests(t *testing.T) {
	r := gin.New()
	r.POST("/login", func(ctx *gin.Context) {
		ctx.SetCookie("session", "abc123", 3600, "/", "", false, true)
		ctx.JSON(http.StatusOK, gin.H{"message": "Logged in successfully"})
	})
	r.GET("/user/status", func(ctx *gin.Context) {
		cookie, err := ctx.Cookie("session")
		if err != nil || cookie != "abc123" {
			ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized, please log in"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	c := New(srv.URL)
	c.Login("reksi", "secret")

	if body := string(c.UserStatus()); !strings.Contains(body, `"ok"`) {
		t.Errorf("Expected session cookie to ride along, got %s", body)
	}

	c.ClearCookies()
	if body := string(c.UserStatus()); !strings.Contains(body, "Unauthorized") {
		t.Errorf("Expected unauthorized after ClearCookies, got %s", body)
	}
}

func TestGzipResponsesAreTransparent(t *testing.T) {
	r := gin.New()
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.GET("/user/status", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": strings.Repeat("compressible ", 50)})
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	c := New(srv.URL)
	body := string(c.UserStatus())
	if !strings.Contains(body, "compressible") {
		t.Errorf("Expected decompressed JSON body, got %q", body)
	}
}

func TestUploadImageForm(t *testing.T) {
	var gotField, gotFilename, gotContentType string
	var gotBytes int

	r := gin.New()
	r.POST("/upload/:field/:id", func(ctx *gin.Context) {
		gotContentType = ctx.GetHeader("Content-Type")
		file, err := ctx.FormFile("user_pic")
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		gotField = "user_pic"
		gotFilename = file.Filename
		gotBytes = int(file.Size)
		ctx.JSON(http.StatusOK, gin.H{"message": "uploaded"})
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	c := New(srv.URL)
	image := []byte{0x89, 'P', 'N', 'G', 1, 2, 3}
	resp := c.UploadImage(image, "user", 7)

	if !strings.Contains(string(resp), "uploaded") {
		t.Fatalf("Upload failed: %s", resp)
	}
	if gotField != "user_pic" {
		t.Errorf("Expected field 'user_pic', got %q", gotField)
	}
	if gotFilename != "user_pic.jpg" {
		t.Errorf("Expected filename 'user_pic.jpg', got %q", gotFilename)
	}
	if gotBytes != len(image) {
		t.Errorf("Expected %d body bytes, got %d", len(image), gotBytes)
	}
	if !strings.Contains(gotContentType, "boundary=Boundary-") {
		t.Errorf("Expected generated boundary token, got %q", gotContentType)
	}
}
