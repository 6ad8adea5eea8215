package domain

// Follow is the denormalized snapshot of a followed/follower user stored
// inside the identity's lists. The server owns it, the client only copies
// server responses in.
type Follow struct {
	Id          int     `json:"id"`
	DisplayName *string `json:"displayName"`
	ImageURL    *string `json:"imageURL"`
	// The wire calls the followed user's id "userId"
	TargetId int `json:"userId"`
}

func (f Follow) Key() int { return f.Id }

func (f Follow) Name() string {
	if f.DisplayName == nil || *f.DisplayName == "" {
		return "New User"
	}
	return *f.DisplayName
}
