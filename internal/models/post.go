package models

// Post is stored in the posts collection. The author fields are a snapshot taken at creation.
type Post struct {
	ID           string    `json:"id" bson:"id"`
	UserID       string    `json:"user_id" bson:"user_id"`
	UserName     string    `json:"user_name" bson:"user_name"`
	UserHeadline string    `json:"user_headline" bson:"user_headline"`
	UserAvatar   string    `json:"user_avatar" bson:"user_avatar"`
	Content      string    `json:"content" bson:"content"`
	Image        string    `json:"image,omitempty" bson:"image,omitempty"`
	Hashtags     []string  `json:"hashtags" bson:"hashtags"`
	Reactions    Reactions `json:"reactions" bson:"reactions"`
	Views        int64     `json:"views" bson:"views"`
	CreatedAt    Timestamp `json:"created_at" bson:"created_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
	Image   string `json:"image,omitempty"`
}

// UpdatePostRequest defines the request body for editing a post's content
type UpdatePostRequest struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

// ReactionResponse is returned by the reaction toggle
type ReactionResponse struct {
	Message   string    `json:"message"`
	Reactions Reactions `json:"reactions"`
}
