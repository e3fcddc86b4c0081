package models

import "time"

type ContactMessage struct {
	ID         string     `json:"id" bson:"_id"`
	Nickname   string     `json:"nickname" bson:"nickname"`
	Email      string     `json:"email" bson:"email"`
	Message    string     `json:"message" bson:"message"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty" bson:"resolved_at,omitempty"`
	ResolvedBy string     `json:"resolved_by,omitempty" bson:"resolved_by,omitempty"`
}

type Notification struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
