package models

// Comment is stored in the comments collection with a snapshot of its author.
type Comment struct {
	ID           string    `json:"id" bson:"id"`
	PostID       string    `json:"post_id" bson:"post_id"`
	UserID       string    `json:"user_id" bson:"user_id"`
	UserName     string    `json:"user_name" bson:"user_name"`
	UserHeadline string    `json:"user_headline" bson:"user_headline"`
	UserAvatar   string    `json:"user_avatar" bson:"user_avatar"`
	Content      string    `json:"content" bson:"content"`
	CreatedAt    Timestamp `json:"created_at" bson:"created_at"`
}

// CommentRequest is used for both creating and editing a comment
type CommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}
