package appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/salvadodental/booking-api/internal/model"
	"github.com/salvadodental/booking-api/internal/repository"
	"github.com/salvadodental/booking-api/internal/service/availability"
	"github.com/salvadodental/booking-api/internal/service/booking"
	"github.com/salvadodental/booking-api/internal/service/clinic"
	"github.com/salvadodental/booking-api/internal/service/notification"
	"github.com/salvadodental/booking-api/pkg/errors"
	"github.com/salvadodental/booking-api/pkg/logger"
)

const (
	minRating = 1
	maxRating = 5

	eventTopic = "appointments.events"
)

// allowedTransitions is the closed transition table enforced in strict mode.
// Confirm is only meaningful from a not-yet-committed state; finish, cancel
// and reschedule apply to any active state. Terminal states allow nothing.
var allowedTransitions = map[model.AppointmentStatus][]model.AppointmentStatus{
	model.AppointmentStatusPending: {
		model.AppointmentStatusConfirmed, model.AppointmentStatusFinished,
		model.AppointmentStatusCancelled, model.AppointmentStatusRescheduled,
	},
	model.AppointmentStatusRequest: {
		model.AppointmentStatusConfirmed, model.AppointmentStatusFinished,
		model.AppointmentStatusCancelled, model.AppointmentStatusRescheduled,
	},
	model.AppointmentStatusConfirmed: {
		model.AppointmentStatusFinished, model.AppointmentStatusCancelled,
		model.AppointmentStatusRescheduled,
	},
	model.AppointmentStatusRescheduled: {
		model.AppointmentStatusConfirmed, model.AppointmentStatusFinished,
		model.AppointmentStatusCancelled, model.AppointmentStatusRescheduled,
	},
	model.AppointmentStatusFinished:  {},
	model.AppointmentStatusCancelled: {},
}

type Config struct {
	// StrictTransitions rejects moves outside the transition table.
	// Off by default: the clinic historically allows the practitioner
	// to overwrite any status.
	StrictTransitions bool
}

type Service struct {
	repo        repository.AppointmentRepository
	profileRepo repository.ProfileRepository
	outboxRepo  repository.OutboxRepository
	clinicSvc   *clinic.Service
	notifSvc    notification.Service
	config      Config
	logger      *logger.Logger
}

func NewService(
	repo repository.AppointmentRepository,
	profileRepo repository.ProfileRepository,
	outboxRepo repository.OutboxRepository,
	clinicSvc *clinic.Service,
	notifSvc notification.Service,
	config Config,
	logger *logger.Logger,
) *Service {
	return &Service{
		repo:        repo,
		profileRepo: profileRepo,
		outboxRepo:  outboxRepo,
		clinicSvc:   clinicSvc,
		notifSvc:    notifSvc,
		config:      config,
		logger:      logger,
	}
}

// Book creates a client-submitted appointment. The initial status comes from
// the booking policy against current clinic state; working hours only
// annotate the result, they never reject it.
func (s *Service) Book(ctx context.Context, clientID uuid.UUID, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	config, err := s.clinicSvc.GetConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load clinic config: %w", err)
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = model.PaymentMethodNone
	}
	if !paymentMethod.Valid() {
		return nil, errors.Validation("invalid payment method", nil)
	}

	apt := &model.Appointment{
		ID:            uuid.New(),
		ClientID:      clientID,
		Title:         req.Title,
		Description:   req.Description,
		PaymentMethod: paymentMethod,
		Attendees:     pq.StringArray(req.Attendees),
		Status:        booking.DecideInitialStatus(config, model.RoleClient),
		ScheduledAt:   req.ScheduledAt,
	}

	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	apt.OutsideWorkingHours = !availability.WithinWorkingHours(apt.ScheduledAt, config.WorkingHours)
	s.stageEvent(ctx, apt, "")
	return apt, nil
}

// DirectCreate is the doctor's manual booking for a client. Trusted by
// construction: stamped confirmed, payment method N/A.
func (s *Service) DirectCreate(ctx context.Context, req *model.DirectCreateAppointmentRequest) (*model.Appointment, error) {
	if _, err := s.profileRepo.Get(ctx, req.ClientID); err != nil {
		return nil, fmt.Errorf("failed to resolve client: %w", err)
	}

	apt := &model.Appointment{
		ID:            uuid.New(),
		ClientID:      req.ClientID,
		Title:         req.Title,
		Description:   req.Description,
		PaymentMethod: model.PaymentMethodNone,
		Attendees:     pq.StringArray{},
		Status:        booking.DecideInitialStatus(nil, model.RoleDoctor),
		ScheduledAt:   req.ScheduledAt,
	}

	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.annotate(ctx, apt)
	s.stageEvent(ctx, apt, "")
	return apt, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	s.annotate(ctx, apt)
	return apt, nil
}

// List returns appointments newest-first. With WithClients set (doctor's
// agenda) each appointment carries its owning profile.
func (s *Service) List(ctx context.Context, filter model.AppointmentFilter) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	if filter.WithClients {
		if err := s.attachClients(ctx, appointments); err != nil {
			return nil, err
		}
	}

	config, err := s.clinicSvc.GetConfig(ctx)
	if err == nil {
		for _, apt := range appointments {
			apt.OutsideWorkingHours = !availability.WithinWorkingHours(apt.ScheduledAt, config.WorkingHours)
		}
	}

	return appointments, nil
}

// Stats derives the doctor's dashboard counters from the full agenda.
func (s *Service) Stats(ctx context.Context) (*model.AgendaStats, error) {
	appointments, err := s.repo.List(ctx, model.AppointmentFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	stats := &model.AgendaStats{Total: len(appointments)}
	now := time.Now()
	for _, apt := range appointments {
		y1, m1, d1 := apt.ScheduledAt.Year(), apt.ScheduledAt.Month(), apt.ScheduledAt.Day()
		y2, m2, d2 := now.Year(), now.Month(), now.Day()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			stats.Today++
		}
		if apt.Status == model.AppointmentStatusRequest {
			stats.OpenRequests++
		}
	}
	return stats, nil
}

// Confirm accepts a pending or requested appointment.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.transition(ctx, id, model.AppointmentStatusConfirmed, nil)
}

// Finish closes out an appointment, optionally capturing the client's
// rating. The client is notified by email exactly once per actual
// transition; an idempotent repeat does not notify again.
func (s *Service) Finish(ctx context.Context, id uuid.UUID, rating int) (*model.Appointment, error) {
	if rating != 0 && (rating < minRating || rating > maxRating) {
		return nil, errors.Validation(fmt.Sprintf("rating must be between %d and %d", minRating, maxRating), nil)
	}

	return s.transition(ctx, id, model.AppointmentStatusFinished, func(apt *model.Appointment) {
		if rating != 0 {
			apt.ClientRating = rating
		}
	})
}

// Cancel aborts an appointment. Cancelling an already cancelled
// appointment is a no-op success.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.transition(ctx, id, model.AppointmentStatusCancelled, nil)
}

// RescheduleToNextDay pushes the appointment exactly one calendar day out
// at the same clock time. Working hours are not re-checked; the new slot
// only carries the advisory annotation.
func (s *Service) RescheduleToNextDay(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.transition(ctx, id, model.AppointmentStatusRescheduled, func(apt *model.Appointment) {
		apt.ScheduledAt = apt.ScheduledAt.AddDate(0, 0, 1)
	})
}

// transition applies a status change. Re-applying the current status of a
// terminal appointment succeeds without touching the store. In strict mode
// every other move must appear in the transition table. A persistence
// failure aborts the transition and leaves stored state unchanged.
func (s *Service) transition(ctx context.Context, id uuid.UUID, target model.AppointmentStatus, mutate func(*model.Appointment)) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	if apt.Status.Terminal() && apt.Status == target {
		s.annotate(ctx, apt)
		return apt, nil
	}

	if s.config.StrictTransitions && !transitionAllowed(apt.Status, target) {
		return nil, errors.InvalidTransition(string(apt.Status), string(target))
	}

	previous := apt.Status
	apt.Status = target
	if mutate != nil {
		mutate(apt)
	}

	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to apply transition: %w", err)
	}

	s.stageEvent(ctx, apt, previous)

	if target == model.AppointmentStatusFinished {
		s.notifyFinished(ctx, apt)
	}

	s.annotate(ctx, apt)
	return apt, nil
}

func transitionAllowed(from, to model.AppointmentStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// notifyFinished emails the client a visit confirmation. Failures are
// logged and never fail the transition.
func (s *Service) notifyFinished(ctx context.Context, apt *model.Appointment) {
	client, err := s.profileRepo.Get(ctx, apt.ClientID)
	if err != nil {
		s.logger.Error(err, "failed to resolve client for notification", "appointment_id", apt.ID.String())
		return
	}

	body := fmt.Sprintf(
		"Hola %s,\n\nTu cita %q del %s ha sido finalizada. ¡Gracias por tu visita!\n\nSalvadó Dental",
		client.FirstName, apt.Title, apt.ScheduledAt.Format("02/01/2006 15:04"),
	)

	err = s.notifSvc.Send(ctx, &model.Notification{
		AppointmentID: apt.ID,
		Recipient:     client.Email,
		Subject:       "Tu cita ha sido finalizada",
		Body:          body,
	})
	if err != nil {
		s.logger.Error(err, "failed to send finish notification", "appointment_id", apt.ID.String())
	}
}

// stageEvent records the transition in the outbox for asynchronous
// publishing. Best effort: a failed stage never rolls back the write.
func (s *Service) stageEvent(ctx context.Context, apt *model.Appointment, previous model.AppointmentStatus) {
	if s.outboxRepo == nil {
		return
	}

	payload, err := json.Marshal(model.AppointmentEvent{
		AppointmentID:  apt.ID,
		ClientID:       apt.ClientID,
		Status:         apt.Status,
		PreviousStatus: previous,
		ScheduledAt:    apt.ScheduledAt,
		OccurredAt:     time.Now(),
	})
	if err != nil {
		s.logger.Error(err, "failed to marshal appointment event", "appointment_id", apt.ID.String())
		return
	}

	event := &model.OutboxEvent{Topic: eventTopic, Payload: payload}
	if err := s.outboxRepo.Create(ctx, event); err != nil {
		s.logger.Error(err, "failed to stage appointment event", "appointment_id", apt.ID.String())
	}
}

func (s *Service) annotate(ctx context.Context, apt *model.Appointment) {
	config, err := s.clinicSvc.GetConfig(ctx)
	if err != nil {
		return
	}
	apt.OutsideWorkingHours = !availability.WithinWorkingHours(apt.ScheduledAt, config.WorkingHours)
}

func (s *Service) attachClients(ctx context.Context, appointments []*model.Appointment) error {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, apt := range appointments {
		if _, ok := seen[apt.ClientID]; !ok {
			seen[apt.ClientID] = struct{}{}
			ids = append(ids, apt.ClientID)
		}
	}

	profiles, err := s.profileRepo.ListByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load client profiles: %w", err)
	}

	byID := make(map[uuid.UUID]*model.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}
	for _, apt := range appointments {
		apt.Client = byID[apt.ClientID]
	}
	return nil
}
