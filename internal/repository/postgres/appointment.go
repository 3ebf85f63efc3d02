package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/salvadodental/booking-api/internal/model"
	"github.com/salvadodental/booking-api/pkg/errors"
)

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	if appointment.Title == "" {
		return errors.Validation("title is required", nil)
	}
	if appointment.ClientID == uuid.Nil {
		return errors.Validation("client_id is required", nil)
	}
	if appointment.ScheduledAt.IsZero() {
		return errors.Validation("scheduled_at is required", nil)
	}

	query := `
		INSERT INTO appointments (
			id, client_id, title, description, payment_method,
			attendees, status, scheduled_at, client_rating, version,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	appointment.Version = 1
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = appointment.CreatedAt
	if appointment.Attendees == nil {
		appointment.Attendees = pq.StringArray{}
	}

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.ClientID,
		appointment.Title,
		appointment.Description,
		appointment.PaymentMethod,
		appointment.Attendees,
		appointment.Status,
		appointment.ScheduledAt,
		appointment.ClientRating,
		appointment.Version,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return errors.Store(fmt.Errorf("failed to create appointment: %w", err))
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT id, client_id, title, description, payment_method,
		       attendees, status, scheduled_at, client_rating, version,
		       created_at, updated_at
		FROM appointments
		WHERE id = $1
	`
	var appointment model.Appointment
	err := r.db.GetContext(ctx, &appointment, query, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("appointment", err)
		}
		return nil, errors.Store(fmt.Errorf("failed to get appointment: %w", err))
	}
	return &appointment, nil
}

func (r *appointmentRepository) List(ctx context.Context, filter model.AppointmentFilter) ([]*model.Appointment, error) {
	query := `
		SELECT id, client_id, title, description, payment_method,
		       attendees, status, scheduled_at, client_rating, version,
		       created_at, updated_at
		FROM appointments
	`
	var args []interface{}
	argCount := 1

	if filter.ClientID != uuid.Nil {
		query += fmt.Sprintf(" WHERE client_id = $%d", argCount)
		args = append(args, filter.ClientID)
		argCount++
	}

	if filter.Status != "" {
		if argCount == 1 {
			query += " WHERE"
		} else {
			query += " AND"
		}
		query += fmt.Sprintf(" status = $%d", argCount)
		args = append(args, filter.Status)
	}

	query += " ORDER BY scheduled_at DESC"

	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, args...)
	if err != nil {
		return nil, errors.Store(fmt.Errorf("failed to list appointments: %w", err))
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET title = $1, description = $2, payment_method = $3, attendees = $4,
		    status = $5, scheduled_at = $6, client_rating = $7,
		    version = version + 1, updated_at = $8
		WHERE id = $9 AND version = $10
	`
	appointment.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		appointment.Title,
		appointment.Description,
		appointment.PaymentMethod,
		appointment.Attendees,
		appointment.Status,
		appointment.ScheduledAt,
		appointment.ClientRating,
		appointment.UpdatedAt,
		appointment.ID,
		appointment.Version,
	)
	if err != nil {
		return errors.Store(fmt.Errorf("failed to update appointment: %w", err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.Store(fmt.Errorf("failed to get rows affected: %w", err))
	}
	if rows == 0 {
		// Either the id is unknown or a concurrent writer bumped the version.
		if _, getErr := r.Get(ctx, appointment.ID); getErr != nil {
			return getErr
		}
		return errors.Conflict("appointment was modified concurrently", nil)
	}

	appointment.Version++
	return nil
}
