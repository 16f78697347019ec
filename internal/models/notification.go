package models

import "time"

type NotificationType string

const (
	NotificationWin       NotificationType = "WIN"
	NotificationLose      NotificationType = "LOSE"
	NotificationBroadcast NotificationType = "BROADCAST"
	NotificationInfo      NotificationType = "INFO"
)

// Notification is an immutable fan-out record; only the dismissed flag is
// ever mutated after creation.
type Notification struct {
	ID          string           `gorm:"primaryKey" json:"id"`
	RecipientID string           `gorm:"not null;index" json:"recipient_id"`
	EventID     string           `gorm:"not null;index" json:"event_id"`
	Type        NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	IssueDate   time.Time        `gorm:"not null" json:"issue_date"`
	Dismissed   bool             `gorm:"not null;default:false" json:"dismissed"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
