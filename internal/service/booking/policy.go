package booking

import (
	"github.com/salvadodental/booking-api/internal/model"
)

// DecideInitialStatus stamps the initial status of a new appointment.
//
// Doctor-authored bookings are trusted by construction and start confirmed.
// Client bookings depend on the clinic gate: an open clinic provisionally
// accepts them as pending, a closed clinic logs them as outreach requests.
// Pure function of clinic state; persistence is the caller's responsibility.
func DecideInitialStatus(config *model.ClinicConfig, actor model.Role) model.AppointmentStatus {
	if actor == model.RoleDoctor {
		return model.AppointmentStatusConfirmed
	}
	if config != nil && config.IsOpen {
		return model.AppointmentStatusPending
	}
	return model.AppointmentStatusRequest
}
