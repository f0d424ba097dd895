package models

// User is stored in the users collection and addressed by ID, never by _id.
type User struct {
	ID         string    `json:"id" bson:"id"`
	Email      string    `json:"email" bson:"email"`
	Name       string    `json:"name" bson:"name"`
	Password   string    `json:"-" bson:"password"`
	Headline   string    `json:"headline" bson:"headline"`
	Bio        string    `json:"bio" bson:"bio"`
	Avatar     string    `json:"avatar" bson:"avatar"`
	CoverImage string    `json:"cover_image" bson:"cover_image"`
	Location   string    `json:"location" bson:"location"`
	Website    string    `json:"website" bson:"website"`
	Following  []string  `json:"following" bson:"following"`
	Followers  []string  `json:"followers" bson:"followers"`
	Bookmarks  []string  `json:"bookmarks" bson:"bookmarks"`
	CreatedAt  Timestamp `json:"created_at" bson:"created_at"`
}

// IsFollowing reports whether u follows userID
func (u *User) IsFollowing(userID string) bool {
	return contains(u.Following, userID)
}

// HasBookmarked reports whether postID is in u's bookmarks
func (u *User) HasBookmarked(postID string) bool {
	return contains(u.Bookmarks, postID)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Headline string `json:"headline,omitempty" validate:"omitempty,max=200"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// FirebaseLoginRequest carries an ID token issued by Firebase Authentication
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// UpdateProfileRequest leaves nil fields untouched
type UpdateProfileRequest struct {
	Bio        *string `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Avatar     *string `json:"avatar,omitempty"`
	CoverImage *string `json:"cover_image,omitempty"`
	Headline   *string `json:"headline,omitempty" validate:"omitempty,max=200"`
	Location   *string `json:"location,omitempty" validate:"omitempty,max=200"`
	Website    *string `json:"website,omitempty" validate:"omitempty,max=500"`
}

// Fields returns the non-nil fields keyed by their stored name
func (r UpdateProfileRequest) Fields() map[string]string {
	fields := map[string]string{}
	set := func(key string, v *string) {
		if v != nil {
			fields[key] = *v
		}
	}
	set("bio", r.Bio)
	set("avatar", r.Avatar)
	set("cover_image", r.CoverImage)
	set("headline", r.Headline)
	set("location", r.Location)
	set("website", r.Website)
	return fields
}

// AuthResponse is returned by signup and login
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
