package entities

import "time"

// NotificationChannel represents the delivery channel
type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
	ChannelInApp NotificationChannel = "in_app"
)

// NotificationStatus represents the delivery status
type NotificationStatus string

const (
	NotificationStatusSent   NotificationStatus = "sent"
	NotificationStatusFailed NotificationStatus = "failed"
)

// Notification is the persisted record of a dispatched alert
type Notification struct {
	ID           string              `json:"id" db:"id"`
	NicheID      string              `json:"niche_id" db:"niche_id"`
	AlertID      string              `json:"alert_id" db:"alert_id"`
	AlertType    AlertType           `json:"alert_type" db:"alert_type"`
	Channel      NotificationChannel `json:"channel" db:"channel"`
	Recipient    string              `json:"recipient" db:"recipient"`
	Subject      string              `json:"subject" db:"subject"`
	Body         string              `json:"body" db:"body"`
	Urgency      AlertUrgency        `json:"urgency" db:"urgency"`
	Status       NotificationStatus  `json:"status" db:"status"`
	SentAt       *time.Time          `json:"sent_at,omitempty" db:"sent_at"`
	ErrorMessage *string             `json:"error_message,omitempty" db:"error_message"`
	CreatedAt    time.Time           `json:"created_at" db:"created_at"`
}
