package store

import (
	"bytes"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestIdentityRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	if data := s.LoadIdentity(); data != nil {
		t.Errorf("Expected no identity in fresh store, got %d bytes", len(data))
	}

	blob := []byte(`{"id":3,"userName":"reksi"}`)
	if err := s.SaveIdentity(blob); err != nil {
		t.Fatalf("SaveIdentity failed: %v", err)
	}

	if got := s.LoadIdentity(); !bytes.Equal(got, blob) {
		t.Errorf("LoadIdentity = %s, want %s", got, blob)
	}

	// Overwrite replaces, no duplicate keys
	blob2 := []byte(`{"id":4,"userName":"other"}`)
	if err := s.SaveIdentity(blob2); err != nil {
		t.Fatalf("SaveIdentity failed: %v", err)
	}
	if got := s.LoadIdentity(); !bytes.Equal(got, blob2) {
		t.Errorf("LoadIdentity after overwrite = %s, want %s", got, blob2)
	}

	if err := s.ClearIdentity(); err != nil {
		t.Fatalf("ClearIdentity failed: %v", err)
	}
	if data := s.LoadIdentity(); data != nil {
		t.Error("Expected identity cleared")
	}
}

func TestThemeRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	blob := []byte(`{"light":{"red":0.9,"green":0.9,"blue":0.9}}`)
	if err := s.SaveTheme(blob); err != nil {
		t.Fatalf("SaveTheme failed: %v", err)
	}
	if got := s.LoadTheme(); !bytes.Equal(got, blob) {
		t.Errorf("LoadTheme = %s, want %s", got, blob)
	}
}

func TestImageKeyString(t *testing.T) {
	if got := (ImageKey{UserImage, 3}).String(); got != "userId:3" {
		t.Errorf("Expected 'userId:3', got %q", got)
	}
	if got := (ImageKey{PostImage, 12}).String(); got != "postId:12" {
		t.Errorf("Expected 'postId:12', got %q", got)
	}
}

func TestImageCache(t *testing.T) {
	s := setupTestStore(t)

	userKey := ImageKey{UserImage, 3}
	postKey := ImageKey{PostImage, 3}

	if data := s.GetImage(userKey); data != nil {
		t.Error("Expected miss on empty cache")
	}

	img := []byte{0x89, 'P', 'N', 'G', 9, 9}
	if err := s.PutImage(userKey, img); err != nil {
		t.Fatalf("PutImage failed: %v", err)
	}

	if got := s.GetImage(userKey); !bytes.Equal(got, img) {
		t.Errorf("GetImage returned %v, want %v", got, img)
	}

	// Same id, different kind is a different entry
	if data := s.GetImage(postKey); data != nil {
		t.Error("Expected postId:3 to miss when only userId:3 is cached")
	}

	if err := s.ClearImages(); err != nil {
		t.Fatalf("ClearImages failed: %v", err)
	}
	if data := s.GetImage(userKey); data != nil {
		t.Error("Expected cache emptied")
	}
}

func TestConcurrentWrites(t *testing.T) {
	s := setupTestStore(t)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			key := ImageKey{PostImage, n}
			if err := s.PutImage(key, []byte{byte(n)}); err != nil {
				t.Errorf("PutImage(%d) failed: %v", n, err)
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	for i := 0; i < 8; i++ {
		got := s.GetImage(ImageKey{PostImage, i})
		if len(got) != 1 || got[0] != byte(i) {
			t.Errorf("GetImage(%d) = %v", i, got)
		}
	}
}
