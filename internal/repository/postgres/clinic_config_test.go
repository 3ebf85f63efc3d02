package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salvadodental/booking-api/internal/model"
	"github.com/salvadodental/booking-api/pkg/errors"
)

func TestClinicConfigGet(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &clinicConfigRepository{db: db}

	hours, err := json.Marshal(model.DefaultWorkingHours())
	require.NoError(t, err)

	mock.ExpectQuery("SELECT (.+) FROM clinic_config").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "is_open", "working_hours", "version", "updated_at"},
		).AddRow(int64(1), true, hours, 1, time.Now()))

	config, err := repo.Get(context.Background())
	require.NoError(t, err)

	assert.True(t, config.IsOpen)
	assert.Equal(t, 1, config.Version)
	monday, ok := config.WorkingHours["monday"]
	require.True(t, ok)
	assert.True(t, monday.Enabled)
	assert.Equal(t, "08:00", monday.Start)
}

func TestClinicConfigGetUninitialized(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &clinicConfigRepository{db: db}

	mock.ExpectQuery("SELECT (.+) FROM clinic_config").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background())
	assert.True(t, errors.IsNotFound(err))
}

func TestClinicConfigUpdateConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &clinicConfigRepository{db: db}

	hours, err := json.Marshal(model.DefaultWorkingHours())
	require.NoError(t, err)

	mock.ExpectExec("UPDATE clinic_config").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM clinic_config").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "is_open", "working_hours", "version", "updated_at"},
		).AddRow(int64(1), false, hours, 2, time.Now()))

	updateErr := repo.Update(context.Background(), &model.ClinicConfig{
		ID:           1,
		IsOpen:       true,
		WorkingHours: model.DefaultWorkingHours(),
		Version:      1,
	})
	assert.True(t, errors.IsConflict(updateErr))
}
