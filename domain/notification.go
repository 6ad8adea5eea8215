package domain

import "time"

type Notification struct {
	Id         int     `json:"id"`
	Object     string  `json:"object"`
	Read       bool    `json:"read"`
	CreatedAt  string  `json:"createdAt"`
	PostId     *int    `json:"postId"`
	UserId     int     `json:"userId"`
	// The wire names the acting user's picture "userImage"
	ActorImage *string `json:"userImage"`
	OwnerId    int     `json:"ownerId"`
}

func (n Notification) Key() int { return n.Id }

func (n Notification) Created() time.Time {
	return ParseServerTime(n.CreatedAt)
}
