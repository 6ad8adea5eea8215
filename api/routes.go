package api

import (
	"fmt"
	"log"

	"github.com/ReksiGustio/SimpleWalls/domain"
)

// One function per backend operation. Each builds its typed body, encodes
// it, and hands off to the verb helper; an encoding failure returns empty
// bytes immediately, the same signal a transport failure produces. The raw
// reply goes back unparsed, decoding belongs to the caller.

func (c *Client) Login(username, password string) []byte {
	body, err := domain.Encode(domain.LoginBody{Username: username, Password: password})
	if err != nil {
		log.Printf("encoding login body: %v", err)
		return nil
	}
	return c.post(body, "/login")
}

func (c *Client) Register(username, password string, name *string) []byte {
	body, err := domain.Encode(domain.RegisterBody{UserName: username, Password: password, Name: name})
	if err != nil {
		log.Printf("encoding register body: %v", err)
		return nil
	}
	return c.post(body, "/register")
}

func (c *Client) UserStatus() []byte {
	return c.get("/user/status")
}

func (c *Client) StatusById(id int) []byte {
	return c.get(fmt.Sprintf("/users/%d", id))
}

func (c *Client) PartialStatus(id int) []byte {
	body, err := domain.Encode(domain.PartialBody{Partial: "partial"})
	if err != nil {
		log.Printf("encoding partial body: %v", err)
		return nil
	}
	return c.post(body, fmt.Sprintf("/users/%d", id))
}

func (c *Client) UpdateStatus(name, bio, profilePicture *string) []byte {
	body, err := domain.Encode(domain.ProfileBody{Name: name, Bio: bio, ProfilePicture: profilePicture})
	if err != nil {
		log.Printf("encoding profile body: %v", err)
		return nil
	}
	return c.put(body, "/user/update")
}

func (c *Client) FindPosts(startPoint int) []byte {
	body, err := domain.Encode(domain.PostsBody{StartPoint: startPoint})
	if err != nil {
		log.Printf("encoding posts body: %v", err)
		return nil
	}
	return c.post(body, "/posts")
}

func (c *Client) UploadPost(title *string, published bool, imageURL *string) []byte {
	body, err := domain.Encode(domain.NewPostBody{Title: title, Published: published, ImageURL: imageURL})
	if err != nil {
		log.Printf("encoding new post body: %v", err)
		return nil
	}
	return c.post(body, "/post")
}

func (c *Client) UpdatePost(id int, title, imageURL *string, published bool) []byte {
	body, err := domain.Encode(domain.UpdatePostBody{Title: title, ImageURL: imageURL, Published: published})
	if err != nil {
		log.Printf("encoding update post body: %v", err)
		return nil
	}
	return c.put(body, fmt.Sprintf("/post/%d", id))
}

func (c *Client) DeletePost(postId int) []byte {
	return c.del(fmt.Sprintf("/post/%d", postId))
}

func (c *Client) PostById(id int) []byte {
	return c.get(fmt.Sprintf("/post/%d", id))
}

func (c *Client) SearchUsers(textField string) []byte {
	body, err := domain.Encode(domain.SearchBody{TextField: textField})
	if err != nil {
		log.Printf("encoding search body: %v", err)
		return nil
	}
	return c.post(body, "/users/search")
}

func (c *Client) SearchPosts(textField string) []byte {
	body, err := domain.Encode(domain.SearchBody{TextField: textField})
	if err != nil {
		log.Printf("encoding search body: %v", err)
		return nil
	}
	return c.post(body, "/posts/search")
}

func (c *Client) LikePost(userId, postId int, displayName *string) []byte {
	body, err := domain.Encode(domain.LikeBody{UserId: userId, DisplayName: displayName})
	if err != nil {
		log.Printf("encoding like body: %v", err)
		return nil
	}
	return c.post(body, fmt.Sprintf("/post/like/%d", postId))
}

func (c *Client) UnlikePost(postId int) []byte {
	return c.del(fmt.Sprintf("/post/like/%d", postId))
}

func (c *Client) UploadComment(text, imageURL *string, postId, userId int) []byte {
	body, err := domain.Encode(domain.CommentBody{Text: text, ImageURL: imageURL, PostId: postId, UserId: userId})
	if err != nil {
		log.Printf("encoding comment body: %v", err)
		return nil
	}
	return c.post(body, fmt.Sprintf("/comment/%d", postId))
}

func (c *Client) FindComments(id, startPoint int) []byte {
	body, err := domain.Encode(domain.CommentsBody{Id: id, StartPoint: startPoint})
	if err != nil {
		log.Printf("encoding comments body: %v", err)
		return nil
	}
	return c.post(body, "/comments")
}

func (c *Client) DeleteComment(commentId int) []byte {
	return c.del(fmt.Sprintf("/comment/%d", commentId))
}

func (c *Client) LikeComment(userId, commentId int, displayName *string) []byte {
	body, err := domain.Encode(domain.LikeBody{UserId: userId, DisplayName: displayName})
	if err != nil {
		log.Printf("encoding like body: %v", err)
		return nil
	}
	return c.post(body, fmt.Sprintf("/comment/like/%d", commentId))
}

func (c *Client) UnlikeComment(commentId int) []byte {
	return c.del(fmt.Sprintf("/comment/like/%d", commentId))
}

func (c *Client) FollowUser(id int, displayName, imageURL *string) []byte {
	body, err := domain.Encode(domain.FollowBody{DisplayName: displayName, ImageURL: imageURL})
	if err != nil {
		log.Printf("encoding follow body: %v", err)
		return nil
	}
	return c.post(body, fmt.Sprintf("/user/follow/%d", id))
}

func (c *Client) UnfollowUser(id int) []byte {
	return c.del(fmt.Sprintf("/user/follow/%d", id))
}

func (c *Client) CreateNotification(object string, postId *int, userId, ownerId int) []byte {
	body, err := domain.Encode(domain.NewNotificationBody{Object: object, PostId: postId, UserId: userId, OwnerId: ownerId})
	if err != nil {
		log.Printf("encoding notification body: %v", err)
		return nil
	}
	return c.post(body, "/notification")
}

func (c *Client) DeleteNotification(postId, userId int) []byte {
	body, err := domain.Encode(domain.DeleteNotificationBody{PostId: postId, UserId: userId})
	if err != nil {
		log.Printf("encoding notification body: %v", err)
		return nil
	}
	return c.post(body, "/notification/delete")
}

func (c *Client) ListNotifications(startPoint int) []byte {
	body, err := domain.Encode(domain.PostsBody{StartPoint: startPoint})
	if err != nil {
		log.Printf("encoding notifications body: %v", err)
		return nil
	}
	return c.post(body, "/notifications")
}

func (c *Client) ReadNotification(id int) []byte {
	return c.put(nil, fmt.Sprintf("/notification/%d", id))
}
