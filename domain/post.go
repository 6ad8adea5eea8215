package domain

import (
	"strconv"
	"time"
)

// serverTimeLayout matches the timestamp strings the wall server emits.
const serverTimeLayout = "2006-01-02T15:04:05.000Z07:00"

type Post struct {
	Id        int          `json:"id"`
	Title     *string      `json:"title"`
	ImageURL  *string      `json:"imageURL"`
	Likes     []PostLike   `json:"likes,omitempty"`
	Comments  []Comment    `json:"comments,omitempty"`
	CreatedAt string       `json:"createdAt"`
	UpdatedAt string       `json:"updatedAt"`
	Published bool         `json:"published"`
	AuthorId  int          `json:"authorId"`
	Author    *PartialUser `json:"author,omitempty"`
}

type PostLike struct {
	DisplayName string `json:"displayName"`
	PostId      int    `json:"postId"`
	UserId      int    `json:"userId"`
}

func (p Post) Key() int { return p.Id }

func (p Post) LikedBy(userId int) bool {
	for _, l := range p.Likes {
		if l.UserId == userId {
			return true
		}
	}
	return false
}

func (p Post) TitleText() string {
	if p.Title == nil {
		return ""
	}
	return *p.Title
}

// Created parses the server timestamp, falling back to the zero time when
// the string is absent or unreadable.
func (p Post) Created() time.Time {
	return ParseServerTime(p.CreatedAt)
}

func ParseServerTime(s string) time.Time {
	if t, err := time.Parse(serverTimeLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

// AttachmentKind discriminates the historically overloaded imageURL field:
// the wall server stores either an image location or, for re-shares, the
// decimal id of the shared post in the same column.
type AttachmentKind int

const (
	AttachmentNone AttachmentKind = iota
	AttachmentImage
	AttachmentShared
)

type Attachment struct {
	Kind   AttachmentKind
	URL    string
	PostId int
}

// Attachment classifies the wire value. A value is a share only when it
// parses entirely as a decimal post id; everything else with content is
// treated as an image reference, so a relative path can no longer be
// mistaken for a share.
func (p Post) Attachment() Attachment {
	if p.ImageURL == nil || *p.ImageURL == "" {
		return Attachment{Kind: AttachmentNone}
	}
	if id, err := strconv.Atoi(*p.ImageURL); err == nil && id > 0 {
		return Attachment{Kind: AttachmentShared, PostId: id}
	}
	return Attachment{Kind: AttachmentImage, URL: *p.ImageURL}
}

// SharedPostRef builds the wire value that marks a post as a re-share.
func SharedPostRef(postId int) string {
	return strconv.Itoa(postId)
}
