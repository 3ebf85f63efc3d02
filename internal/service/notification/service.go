package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/salvadodental/booking-api/internal/email"
	"github.com/salvadodental/booking-api/internal/model"
	"github.com/salvadodental/booking-api/internal/repository"
	"github.com/salvadodental/booking-api/pkg/logger"
)

type Service interface {
	Send(ctx context.Context, notification *model.Notification) error
}

type service struct {
	repo     repository.NotificationRepository
	emailSvc email.Service
	logger   *logger.Logger
}

func NewService(repo repository.NotificationRepository, emailSvc email.Service, logger *logger.Logger) Service {
	return &service{
		repo:     repo,
		emailSvc: emailSvc,
		logger:   logger,
	}
}

// Send persists the notification and delivers it to the email sink.
// Delivery failure marks the row failed; it is not retried.
func (s *service) Send(ctx context.Context, notification *model.Notification) error {
	if err := s.validate(notification); err != nil {
		return fmt.Errorf("invalid notification: %w", err)
	}

	notification.ID = uuid.New()
	if err := s.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	if err := s.emailSvc.SendCustom(ctx, notification.Recipient, notification.Subject, notification.Body); err != nil {
		if markErr := s.repo.MarkFailed(ctx, notification.ID, err.Error()); markErr != nil {
			s.logger.Error(markErr, "failed to mark notification failed", "notification_id", notification.ID.String())
		}
		return fmt.Errorf("failed to send notification: %w", err)
	}

	if err := s.repo.MarkSent(ctx, notification.ID); err != nil {
		s.logger.Error(err, "failed to mark notification sent", "notification_id", notification.ID.String())
	}
	return nil
}

func (s *service) validate(notification *model.Notification) error {
	if notification.AppointmentID == uuid.Nil {
		return fmt.Errorf("appointment ID is required")
	}
	if notification.Recipient == "" {
		return fmt.Errorf("recipient is required")
	}
	if notification.Body == "" {
		return fmt.Errorf("content is required")
	}
	return nil
}
