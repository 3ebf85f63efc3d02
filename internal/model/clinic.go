package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// WorkingDay is one weekday's bookable window. Start and End are clock times
// in "HH:MM" 24h format; the window is inclusive of Start, exclusive of End.
type WorkingDay struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// WorkingHours maps lowercase English weekday names to their window.
type WorkingHours map[string]WorkingDay

func (h WorkingHours) Value() (driver.Value, error) {
	return json.Marshal(h)
}

func (h *WorkingHours) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, h)
	case string:
		return json.Unmarshal([]byte(v), h)
	case nil:
		*h = nil
		return nil
	default:
		return fmt.Errorf("unsupported working_hours type %T", src)
	}
}

// DefaultWorkingHours is the seed schedule: weekdays 08:00-17:00, weekend off.
func DefaultWorkingHours() WorkingHours {
	hours := WorkingHours{}
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday"} {
		hours[day] = WorkingDay{Enabled: true, Start: "08:00", End: "17:00"}
	}
	for _, day := range []string{"saturday", "sunday"} {
		hours[day] = WorkingDay{Enabled: false, Start: "08:00", End: "12:00"}
	}
	return hours
}

// ClinicConfig is the singleton clinic state. IsOpen gates the initial status
// of client bookings; WorkingHours feed the advisory availability check.
type ClinicConfig struct {
	ID           int64        `db:"id" json:"id"`
	IsOpen       bool         `db:"is_open" json:"is_open"`
	WorkingHours WorkingHours `db:"working_hours" json:"working_hours"`
	Version      int          `db:"version" json:"version"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

type UpdateClinicConfigRequest struct {
	IsOpen       *bool         `json:"is_open"`
	WorkingHours *WorkingHours `json:"working_hours"`
}
