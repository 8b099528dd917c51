package models

import "time"

type Notification struct {
	ID              string            `json:"id" bson:"_id"`
	RecipientUserID string            `json:"recipientUserId" bson:"recipientUserId"`
	Title           string            `json:"title" bson:"title"`
	Message         string            `json:"message" bson:"message"`
	Type            string            `json:"type" bson:"type"`
	TargetPath      string            `json:"targetPath,omitempty" bson:"targetPath,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty" bson:"metadata,omitempty"`
	IsRead          bool              `json:"isRead" bson:"isRead"`
	CreatedAt       time.Time         `json:"createdAt" bson:"createdAt"`
}

// RealtimeMessage is the frame pushed to a user's room.
type RealtimeMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}
