package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type AppointmentStatus string

const (
	AppointmentStatusPending     AppointmentStatus = "pending"
	AppointmentStatusRequest     AppointmentStatus = "request"
	AppointmentStatusConfirmed   AppointmentStatus = "confirmed"
	AppointmentStatusFinished    AppointmentStatus = "finished"
	AppointmentStatusCancelled   AppointmentStatus = "cancelled"
	AppointmentStatusRescheduled AppointmentStatus = "rescheduled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusRequest, AppointmentStatusConfirmed,
		AppointmentStatusFinished, AppointmentStatusCancelled, AppointmentStatusRescheduled:
		return true
	}
	return false
}

// Terminal reports whether no further lifecycle transitions are expected.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusFinished || s == AppointmentStatusCancelled
}

type PaymentMethod string

const (
	PaymentMethodBAC       PaymentMethod = "BAC"
	PaymentMethodOccidente PaymentMethod = "Occidente"
	PaymentMethodNone      PaymentMethod = "N/A"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodBAC || m == PaymentMethodOccidente || m == PaymentMethodNone
}

type Appointment struct {
	ID            uuid.UUID         `db:"id" json:"id"`
	ClientID      uuid.UUID         `db:"client_id" json:"client_id"`
	Title         string            `db:"title" json:"title"`
	Description   string            `db:"description" json:"description"`
	PaymentMethod PaymentMethod     `db:"payment_method" json:"payment_method"`
	Attendees     pq.StringArray    `db:"attendees" json:"attendees"`
	Status        AppointmentStatus `db:"status" json:"status"`
	ScheduledAt   time.Time         `db:"scheduled_at" json:"scheduled_at"`
	ClientRating  int               `db:"client_rating" json:"client_rating,omitempty"`
	Version       int               `db:"version" json:"version"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time         `db:"updated_at" json:"updated_at"`

	// Join field, populated for the doctor's agenda view.
	Client *Profile `db:"-" json:"client,omitempty"`

	// Advisory annotation against the configured working hours.
	// Never used to reject a booking.
	OutsideWorkingHours bool `db:"-" json:"outside_working_hours"`
}

type CreateAppointmentRequest struct {
	Title         string        `json:"title" binding:"required,max=200"`
	Description   string        `json:"description" binding:"max=2000"`
	PaymentMethod PaymentMethod `json:"payment_method" binding:"omitempty,payment_method"`
	Attendees     []string      `json:"attendees" binding:"dive,max=100"`
	ScheduledAt   time.Time     `json:"scheduled_at" binding:"required"`
}

// DirectCreateAppointmentRequest is the doctor's manual booking on behalf of
// a client. Stamped confirmed, payment method N/A.
type DirectCreateAppointmentRequest struct {
	ClientID    uuid.UUID `json:"client_id" binding:"required"`
	Title       string    `json:"title" binding:"required,max=200"`
	Description string    `json:"description" binding:"max=2000"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

type FinishAppointmentRequest struct {
	// 0 means no rating supplied; otherwise must be 1..5.
	Rating int `json:"rating"`
}

type AppointmentFilter struct {
	ClientID    uuid.UUID
	Status      AppointmentStatus
	WithClients bool
}

// AgendaStats backs the doctor's dashboard counters.
type AgendaStats struct {
	Total        int `json:"total"`
	Today        int `json:"today"`
	OpenRequests int `json:"open_requests"`
}
