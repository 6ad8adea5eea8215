// Package api talks to the wall server. Every verb helper returns the raw
// response bytes and converts any network, URL or encoding failure into an
// empty slice: callers treat "no bytes" as the single transport failure
// signal and never see an error value from this layer.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/textproto"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	readTimeout   = 5 * time.Second
	writeTimeout  = 20 * time.Second
	uploadTimeout = 10 * time.Second
)

// Client handles all communication with the wall server. The session rides
// on a server-set cookie, so one jar is shared by every verb.
type Client struct {
	baseURL string

	mu         sync.Mutex
	httpClient *http.Client
}

func New(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Jar: jar},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// ClearCookies drops the session cookie, the client half of logout.
func (c *Client) ClearCookies() {
	jar, _ := cookiejar.New(nil)
	c.mu.Lock()
	c.httpClient.Jar = jar
	c.mu.Unlock()
}

func (c *Client) client() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.httpClient
}

// do runs one request with the verb's timeout and returns the body bytes,
// or nil on any failure.
func (c *Client) do(method, url string, body []byte, timeout time.Duration) []byte {
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		log.Printf("%s %s: %v", method, url, err)
		return nil
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client().Do(req)
	if err != nil {
		log.Printf("%s %s: %v", method, url, err)
		return nil
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("%s %s: reading body: %v", method, url, err)
		return nil
	}
	return data
}

func (c *Client) get(path string) []byte {
	return c.do(http.MethodGet, c.baseURL+path, nil, readTimeout)
}

func (c *Client) post(body []byte, path string) []byte {
	return c.do(http.MethodPost, c.baseURL+path, body, writeTimeout)
}

func (c *Client) put(body []byte, path string) []byte {
	return c.do(http.MethodPut, c.baseURL+path, body, writeTimeout)
}

func (c *Client) del(path string) []byte {
	return c.do(http.MethodDelete, c.baseURL+path, nil, readTimeout)
}

// Download fetches raw bytes from an absolute URL, without a timeout: image
// payloads can be large and slow links are common.
func (c *Client) Download(rawURL string) []byte {
	if rawURL == "" {
		return nil
	}
	return c.do(http.MethodGet, rawURL, nil, 0)
}

// UploadImage posts a single-field multipart image to /upload/{field}/{id}.
// The encoder supports exactly one field, matching the server's handler.
func (c *Client) UploadImage(image []byte, field string, id int) []byte {
	body, contentType, err := buildImageForm(field, image)
	if err != nil {
		log.Printf("upload %s/%d: %v", field, id, err)
		return nil
	}

	url := fmt.Sprintf("%s/upload/%s/%d", c.baseURL, field, id)

	ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Printf("upload %s/%d: %v", field, id, err)
		return nil
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client().Do(req)
	if err != nil {
		log.Printf("upload %s/%d: %v", field, id, err)
		return nil
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("upload %s/%d: reading body: %v", field, id, err)
		return nil
	}
	return data
}

func buildImageForm(field string, image []byte) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.SetBoundary("Boundary-" + uuid.NewString()); err != nil {
		return nil, "", err
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s_pic"; filename="%s_pic.jpg"`, field, field))
	h.Set("Content-Type", "image/png")

	part, err := writer.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(image); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}
