package domain

import "time"

// NotificationKind groups notifications for display.
type NotificationKind string

const (
	KindAccount     NotificationKind = "account"
	KindMaintenance NotificationKind = "maintenance"
	KindPackage     NotificationKind = "package"
	KindAlert       NotificationKind = "alert"
	KindResident    NotificationKind = "resident"
)

// Notification is a single inbox entry addressed to an account email.
type Notification struct {
	ID        string           `json:"id"`
	Recipient string           `json:"recipient"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	Kind      NotificationKind `json:"kind"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
