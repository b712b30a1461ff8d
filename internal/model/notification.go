package model

import "time"

type NotificationType string

const (
	NotificationNewMember        NotificationType = "new_member"
	NotificationContentPublished NotificationType = "content_published"
	NotificationMembershipExpiry NotificationType = "membership_expiry"
)

type Notification struct {
	ID        string           `json:"id" db:"id"`
	UserID    string           `json:"user_id" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	Read      bool             `json:"read" db:"read"`
	Link      *string          `json:"link,omitempty" db:"link"`
	Metadata  Metadata         `json:"metadata,omitempty" db:"metadata"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}
