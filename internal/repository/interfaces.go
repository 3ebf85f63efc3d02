package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/salvadodental/booking-api/internal/model"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) error
	Get(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	GetByEmail(ctx context.Context, email string) (*model.Profile, error)
	ListByRole(ctx context.Context, role model.Role) ([]*model.Profile, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Profile, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	// List returns appointments ordered by scheduled_at descending,
	// optionally narrowed to one client.
	List(ctx context.Context, filter model.AppointmentFilter) ([]*model.Appointment, error)
	// Update writes all mutable fields, guarded by the appointment's
	// version. A stale version yields a conflict error.
	Update(ctx context.Context, appointment *model.Appointment) error
}

type ClinicConfigRepository interface {
	Get(ctx context.Context) (*model.ClinicConfig, error)
	Update(ctx context.Context, config *model.ClinicConfig) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *model.OutboxEvent) error
	GetPending(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	MarkProcessed(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error
}
