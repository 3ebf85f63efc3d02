package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

// Notification is a persisted email to a client, created alongside the
// lifecycle transition that triggered it.
type Notification struct {
	ID            uuid.UUID          `db:"id" json:"id"`
	AppointmentID uuid.UUID          `db:"appointment_id" json:"appointment_id"`
	Recipient     string             `db:"recipient" json:"recipient"`
	Subject       string             `db:"subject" json:"subject"`
	Body          string             `db:"body" json:"body"`
	Status        NotificationStatus `db:"status" json:"status"`
	LastError     *string            `db:"last_error" json:"last_error,omitempty"`
	CreatedAt     time.Time          `db:"created_at" json:"created_at"`
	SentAt        *time.Time         `db:"sent_at" json:"sent_at,omitempty"`
}
