package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/salvadodental/booking-api/internal/model"
)

// 2024-06-10 is a Monday.
func monday(hour, minute int) time.Time {
	return time.Date(2024, 6, 10, hour, minute, 0, 0, time.UTC)
}

func TestWithinWorkingHours(t *testing.T) {
	hours := model.DefaultWorkingHours()

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"at opening minute", monday(8, 0), true},
		{"mid-morning", monday(10, 30), true},
		{"last minute before close", monday(16, 59), true},
		{"one minute before opening", monday(7, 59), false},
		{"closing minute is exclusive", monday(17, 0), false},
		{"late evening", monday(21, 0), false},
		{"disabled weekend day", time.Date(2024, 6, 9, 10, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithinWorkingHours(tt.at, hours))
		})
	}
}

func TestWithinWorkingHoursEmptyConfig(t *testing.T) {
	assert.False(t, WithinWorkingHours(monday(10, 0), nil))
	assert.False(t, WithinWorkingHours(monday(10, 0), model.WorkingHours{}))
}

func TestWithinWorkingHoursMissingDay(t *testing.T) {
	hours := model.WorkingHours{
		"tuesday": {Enabled: true, Start: "08:00", End: "17:00"},
	}
	assert.False(t, WithinWorkingHours(monday(10, 0), hours))
}

func TestWithinWorkingHoursMalformedClock(t *testing.T) {
	hours := model.WorkingHours{
		"monday": {Enabled: true, Start: "eight", End: "17:00"},
	}
	assert.False(t, WithinWorkingHours(monday(10, 0), hours))
}

func TestWeekday(t *testing.T) {
	assert.Equal(t, "monday", Weekday(monday(0, 0)))
	assert.Equal(t, "sunday", Weekday(time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)))
}
