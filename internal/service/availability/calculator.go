package availability

import (
	"strconv"
	"strings"
	"time"

	"github.com/salvadodental/booking-api/internal/model"
)

// WithinWorkingHours reports whether t falls inside the configured window
// for its weekday. Disabled or missing days are always outside. The window
// is inclusive of the start minute and exclusive of the end minute.
//
// The check is advisory: booking acceptance never depends on it, callers
// use it to annotate slots for display.
func WithinWorkingHours(t time.Time, hours model.WorkingHours) bool {
	if len(hours) == 0 {
		return false
	}

	day, ok := hours[Weekday(t)]
	if !ok || !day.Enabled {
		return false
	}

	start, err := parseClock(day.Start)
	if err != nil {
		return false
	}
	end, err := parseClock(day.End)
	if err != nil {
		return false
	}

	minute := t.Hour()*60 + t.Minute()
	return minute >= start && minute < end
}

// Weekday returns the lowercase English weekday key used in working hours.
func Weekday(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, strconv.ErrSyntax
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}
