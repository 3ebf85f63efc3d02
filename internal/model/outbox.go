package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "pending"
	OutboxStatusProcessed OutboxStatus = "processed"
	OutboxStatusFailed    OutboxStatus = "failed"
)

// OutboxEvent is a lifecycle event staged for asynchronous publishing.
type OutboxEvent struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	Topic       string          `db:"topic" json:"topic"`
	Payload     json.RawMessage `db:"payload" json:"payload"`
	Status      OutboxStatus    `db:"status" json:"status"`
	LastError   *string         `db:"last_error" json:"last_error,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	ProcessedAt *time.Time      `db:"processed_at" json:"processed_at,omitempty"`
}

// AppointmentEvent is the payload published for every lifecycle transition.
type AppointmentEvent struct {
	AppointmentID  uuid.UUID         `json:"appointment_id"`
	ClientID       uuid.UUID         `json:"client_id"`
	Status         AppointmentStatus `json:"status"`
	PreviousStatus AppointmentStatus `json:"previous_status"`
	ScheduledAt    time.Time         `json:"scheduled_at"`
	OccurredAt     time.Time         `json:"occurred_at"`
}
