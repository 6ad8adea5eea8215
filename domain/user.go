package domain

// User is the full identity record the server returns on login, register
// and status probes. The session core replaces its copy wholesale, screens
// never patch individual fields.
type User struct {
	Id        int      `json:"id"`
	UserName  string   `json:"userName"`
	Profile   Profile  `json:"profile"`
	Posts     []Post   `json:"posts,omitempty"`
	Following []Follow `json:"following,omitempty"`
	Followers []Follow `json:"followers,omitempty"`
}

// PartialUser is the trimmed author snapshot embedded in posts and
// returned by user search.
type PartialUser struct {
	Id       int     `json:"id"`
	UserName string  `json:"userName"`
	Profile  Profile `json:"profile"`
}

type Profile struct {
	Id             int     `json:"id"`
	Name           *string `json:"name"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profilePicture"`
	UserId         int     `json:"userId"`
}

// AnonymousUser is the placeholder identity installed on logout and before
// the first login.
func AnonymousUser() User {
	return User{
		Id:       0,
		UserName: "",
		Profile:  Profile{},
	}
}

// DisplayName resolves the name screens should show for a profile.
func (p Profile) DisplayName() string {
	if p.Name == nil || *p.Name == "" {
		return "New User"
	}
	return *p.Name
}

func (u User) Partial() PartialUser {
	return PartialUser{Id: u.Id, UserName: u.UserName, Profile: u.Profile}
}

func (u User) IsFollowing(targetId int) bool {
	for _, f := range u.Following {
		if f.TargetId == targetId {
			return true
		}
	}
	return false
}

func (p PartialUser) Key() int { return p.Id }
