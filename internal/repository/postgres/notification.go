package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/salvadodental/booking-api/internal/model"
	"github.com/salvadodental/booking-api/pkg/errors"
)

func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	query := `
		INSERT INTO notifications (id, appointment_id, recipient, subject, body, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	notification.Status = model.NotificationStatusPending
	notification.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		notification.ID,
		notification.AppointmentID,
		notification.Recipient,
		notification.Subject,
		notification.Body,
		notification.Status,
		notification.CreatedAt,
	)
	if err != nil {
		return errors.Store(fmt.Errorf("failed to create notification: %w", err))
	}
	return nil
}

func (r *notificationRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE notifications
		SET status = $1, sent_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, model.NotificationStatusSent, time.Now(), id)
	if err != nil {
		return errors.Store(fmt.Errorf("failed to mark notification sent: %w", err))
	}
	return nil
}

func (r *notificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	query := `
		UPDATE notifications
		SET status = $1, last_error = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, model.NotificationStatusFailed, errMsg, id)
	if err != nil {
		return errors.Store(fmt.Errorf("failed to mark notification failed: %w", err))
	}
	return nil
}
