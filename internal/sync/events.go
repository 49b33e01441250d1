package sync

import "time"

const (
	EventCreated = "registration.created"
	EventUpdated = "registration.updated"
	EventDeleted = "registration.deleted"
)

// RegistrationEvent is broadcast after every registration write.
type RegistrationEvent struct {
	Type           string    `json:"type"`
	UserID         string    `json:"user_id"`
	RegistrationID int64     `json:"registration_id"`
	Title          string    `json:"title,omitempty"`
	Progress       int       `json:"progress,omitempty"`
	At             time.Time `json:"at"`
}
