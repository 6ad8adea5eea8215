package domain

import (
	"testing"
)

func strPtr(s string) *string { return &s }

func TestAttachmentNone(t *testing.T) {
	post := Post{Id: 1}
	if att := post.Attachment(); att.Kind != AttachmentNone {
		t.Errorf("Expected AttachmentNone, got %v", att.Kind)
	}

	post.ImageURL = strPtr("")
	if att := post.Attachment(); att.Kind != AttachmentNone {
		t.Errorf("Expected AttachmentNone for empty string, got %v", att.Kind)
	}
}

func TestAttachmentImage(t *testing.T) {
	tests := []string{
		"http://walls.example.com/uploads/post_pic.jpg",
		"https://walls.example.com/uploads/post_pic.jpg",
		// Relative paths used to be misread as shares, they are images now
		"uploads/post_pic.jpg",
		"./post_pic.jpg",
	}

	for _, url := range tests {
		post := Post{Id: 1, ImageURL: strPtr(url)}
		att := post.Attachment()
		if att.Kind != AttachmentImage {
			t.Errorf("Expected AttachmentImage for %q, got %v", url, att.Kind)
		}
		if att.URL != url {
			t.Errorf("Expected URL %q, got %q", url, att.URL)
		}
	}
}

func TestAttachmentShared(t *testing.T) {
	post := Post{Id: 1, ImageURL: strPtr("42")}
	att := post.Attachment()
	if att.Kind != AttachmentShared {
		t.Fatalf("Expected AttachmentShared, got %v", att.Kind)
	}
	if att.PostId != 42 {
		t.Errorf("Expected shared post id 42, got %d", att.PostId)
	}
}

func TestSharedPostRefRoundTrip(t *testing.T) {
	ref := SharedPostRef(7)
	post := Post{Id: 1, ImageURL: &ref}
	att := post.Attachment()
	if att.Kind != AttachmentShared || att.PostId != 7 {
		t.Errorf("SharedPostRef round trip failed: %+v", att)
	}
}

func TestLikedBy(t *testing.T) {
	post := Post{
		Id: 5,
		Likes: []PostLike{
			{DisplayName: "a", PostId: 5, UserId: 1},
			{DisplayName: "b", PostId: 5, UserId: 2},
		},
	}

	if !post.LikedBy(1) {
		t.Error("Expected post to be liked by user 1")
	}
	if post.LikedBy(3) {
		t.Error("Expected post not to be liked by user 3")
	}
}

func TestParseServerTime(t *testing.T) {
	parsed := ParseServerTime("2024-07-02T10:30:00.000+07:00")
	if parsed.IsZero() {
		t.Error("Expected server layout to parse")
	}

	parsed = ParseServerTime("2024-07-02T10:30:00Z")
	if parsed.IsZero() {
		t.Error("Expected RFC3339 fallback to parse")
	}

	parsed = ParseServerTime("garbage")
	if !parsed.IsZero() {
		t.Error("Expected zero time for unparseable input")
	}
}
