package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salvadodental/booking-api/internal/model"
	"github.com/salvadodental/booking-api/pkg/errors"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func appointmentColumns() []string {
	return []string{
		"id", "client_id", "title", "description", "payment_method",
		"attendees", "status", "scheduled_at", "client_rating", "version",
		"created_at", "updated_at",
	}
}

func appointmentRow(id, clientID uuid.UUID, status model.AppointmentStatus, version int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(appointmentColumns()).AddRow(
		id, clientID, "Consulta", "", "N/A",
		[]byte("{}"), string(status), now, 0, version,
		now, now,
	)
}

func TestAppointmentCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &appointmentRepository{db: db}

	mock.ExpectExec("INSERT INTO appointments").
		WillReturnResult(sqlmock.NewResult(0, 1))

	apt := &model.Appointment{
		ClientID:      uuid.New(),
		Title:         "Consulta",
		PaymentMethod: model.PaymentMethodNone,
		Status:        model.AppointmentStatusPending,
		ScheduledAt:   time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), apt))

	assert.NotEqual(t, uuid.Nil, apt.ID)
	assert.Equal(t, 1, apt.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentCreateMissingTitle(t *testing.T) {
	db, _ := newMockDB(t)
	repo := &appointmentRepository{db: db}

	err := repo.Create(context.Background(), &model.Appointment{
		ClientID:    uuid.New(),
		ScheduledAt: time.Now(),
	})
	assert.True(t, errors.IsValidation(err))
}

func TestAppointmentGetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &appointmentRepository{db: db}

	mock.ExpectQuery("SELECT (.+) FROM appointments").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), uuid.New())
	assert.True(t, errors.IsNotFound(err))
}

func TestAppointmentUpdateVersionConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &appointmentRepository{db: db}

	id := uuid.New()
	clientID := uuid.New()

	// Zero rows affected: a concurrent writer already bumped the version.
	mock.ExpectExec("UPDATE appointments").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM appointments").
		WillReturnRows(appointmentRow(id, clientID, model.AppointmentStatusConfirmed, 3))

	err := repo.Update(context.Background(), &model.Appointment{
		ID:            id,
		ClientID:      clientID,
		Title:         "Consulta",
		PaymentMethod: model.PaymentMethodNone,
		Status:        model.AppointmentStatusCancelled,
		ScheduledAt:   time.Now(),
		Version:       2,
	})
	assert.True(t, errors.IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentUpdateVanishedRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &appointmentRepository{db: db}

	mock.ExpectExec("UPDATE appointments").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM appointments").
		WillReturnError(sql.ErrNoRows)

	err := repo.Update(context.Background(), &model.Appointment{
		ID:            uuid.New(),
		ClientID:      uuid.New(),
		Title:         "Consulta",
		PaymentMethod: model.PaymentMethodNone,
		Status:        model.AppointmentStatusCancelled,
		ScheduledAt:   time.Now(),
		Version:       1,
	})
	assert.True(t, errors.IsNotFound(err))
}

func TestAppointmentUpdateBumpsVersion(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &appointmentRepository{db: db}

	mock.ExpectExec("UPDATE appointments").
		WillReturnResult(sqlmock.NewResult(0, 1))

	apt := &model.Appointment{
		ID:            uuid.New(),
		ClientID:      uuid.New(),
		Title:         "Consulta",
		PaymentMethod: model.PaymentMethodNone,
		Status:        model.AppointmentStatusConfirmed,
		ScheduledAt:   time.Now(),
		Version:       1,
	}
	require.NoError(t, repo.Update(context.Background(), apt))
	assert.Equal(t, 2, apt.Version)
}

func TestAppointmentListFiltersByClient(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &appointmentRepository{db: db}

	clientID := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM appointments WHERE client_id").
		WithArgs(clientID).
		WillReturnRows(appointmentRow(uuid.New(), clientID, model.AppointmentStatusPending, 1))

	appointments, err := repo.List(context.Background(), model.AppointmentFilter{ClientID: clientID})
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, clientID, appointments[0].ClientID)
}
