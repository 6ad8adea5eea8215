package domain

// Request bodies, one struct per backend operation that carries one.

type LoginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterBody struct {
	UserName string  `json:"userName"`
	Password string  `json:"password"`
	Name     *string `json:"name"`
}

type PartialBody struct {
	Partial string `json:"partial"`
}

type ProfileBody struct {
	Name           *string `json:"name"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profilePicture"`
}

type SearchBody struct {
	TextField string `json:"textField"`
}

type PostsBody struct {
	StartPoint int `json:"startPoint"`
}

type NewPostBody struct {
	Title     *string `json:"title"`
	Published bool    `json:"published"`
	ImageURL  *string `json:"imageURL"`
}

type UpdatePostBody struct {
	Title     *string `json:"title"`
	ImageURL  *string `json:"imageURL"`
	Published bool    `json:"published"`
}

type LikeBody struct {
	UserId      int     `json:"userId"`
	DisplayName *string `json:"displayName"`
}

type CommentBody struct {
	Text     *string `json:"text"`
	ImageURL *string `json:"imageURL"`
	PostId   int     `json:"postId"`
	UserId   int     `json:"userId"`
}

type CommentsBody struct {
	Id         int `json:"id"`
	StartPoint int `json:"startPoint"`
}

type FollowBody struct {
	DisplayName *string `json:"displayName"`
	ImageURL    *string `json:"imageURL"`
}

type NewNotificationBody struct {
	Object  string `json:"object"`
	PostId  *int   `json:"postId"`
	UserId  int    `json:"userId"`
	OwnerId int    `json:"ownerId"`
}

type DeleteNotificationBody struct {
	PostId int `json:"postId"`
	UserId int `json:"userId"`
}
