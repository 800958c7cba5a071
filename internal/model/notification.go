package model

import "time"

// NotificationType distinguishes routine updates from alerts.
type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifyAlert   NotificationType = "alert"
	NotifySuccess NotificationType = "success"
)

// Notification is an update surfaced to a single user as a side effect of
// a store mutation. The list is append-only, newest first; the only
// permitted mutation is marking one read.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id"`

	// UserID is the recipient.
	UserID string `json:"user_id"`

	// Message is the human-readable notification text.
	Message string `json:"message"`

	// Read indicates whether the recipient has seen this notification.
	Read bool `json:"read"`

	Type NotificationType `json:"type"`

	// CreatedAt is when this notification was generated.
	CreatedAt time.Time `json:"created_at"`
}
