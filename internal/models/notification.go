package models

// NotificationType is what the actor did
type NotificationType string

const (
	NotificationFollow   NotificationType = "follow"
	NotificationReaction NotificationType = "reaction"
	NotificationComment  NotificationType = "comment"
	NotificationPost     NotificationType = "post"
)

// Notification is created only by the fan-out and only its Read flag changes afterwards.
type Notification struct {
	ID          string           `json:"id" bson:"id"`
	UserID      string           `json:"user_id" bson:"user_id"`
	Type        NotificationType `json:"type" bson:"type"`
	ActorID     string           `json:"actor_id" bson:"actor_id"`
	ActorName   string           `json:"actor_name" bson:"actor_name"`
	ActorAvatar string           `json:"actor_avatar" bson:"actor_avatar"`
	PostID      string           `json:"post_id,omitempty" bson:"post_id,omitempty"`
	Message     string           `json:"message" bson:"message"`
	Read        bool             `json:"read" bson:"read"`
	CreatedAt   Timestamp        `json:"created_at" bson:"created_at"`
}
