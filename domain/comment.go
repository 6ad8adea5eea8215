package domain

import "time"

type Comment struct {
	Id        int           `json:"id"`
	Text      *string       `json:"text"`
	ImageURL  *string       `json:"imageURL"`
	Likes     []CommentLike `json:"likes,omitempty"`
	CreatedAt *string       `json:"createdAt"`
	UpdatedAt *string       `json:"updatedAt"`
	UserId    *int          `json:"userId"`
	PostId    *int          `json:"postId"`
}

type CommentLike struct {
	DisplayName *string `json:"displayName"`
	CommentId   int     `json:"commentId"`
	UserId      int     `json:"userId"`
}

func (c Comment) Key() int { return c.Id }

func (c Comment) LikedBy(userId int) bool {
	for _, l := range c.Likes {
		if l.UserId == userId {
			return true
		}
	}
	return false
}

func (c Comment) TextValue() string {
	if c.Text == nil {
		return ""
	}
	return *c.Text
}

func (c Comment) Created() time.Time {
	if c.CreatedAt == nil {
		return time.Time{}
	}
	return ParseServerTime(*c.CreatedAt)
}
