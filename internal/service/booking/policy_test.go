package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/salvadodental/booking-api/internal/model"
)

func TestDecideInitialStatus(t *testing.T) {
	tests := []struct {
		name   string
		config *model.ClinicConfig
		actor  model.Role
		want   model.AppointmentStatus
	}{
		{
			name:   "client booking while clinic open",
			config: &model.ClinicConfig{IsOpen: true},
			actor:  model.RoleClient,
			want:   model.AppointmentStatusPending,
		},
		{
			name:   "client booking while clinic closed",
			config: &model.ClinicConfig{IsOpen: false},
			actor:  model.RoleClient,
			want:   model.AppointmentStatusRequest,
		},
		{
			name:   "client booking with no config falls back to request",
			config: nil,
			actor:  model.RoleClient,
			want:   model.AppointmentStatusRequest,
		},
		{
			name:   "doctor booking is confirmed regardless of gate",
			config: &model.ClinicConfig{IsOpen: false},
			actor:  model.RoleDoctor,
			want:   model.AppointmentStatusConfirmed,
		},
		{
			name:   "doctor booking with no config is still confirmed",
			config: nil,
			actor:  model.RoleDoctor,
			want:   model.AppointmentStatusConfirmed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecideInitialStatus(tt.config, tt.actor))
		})
	}
}
