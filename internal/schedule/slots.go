// Package schedule implements the salon's daily slot grid and the staff
// availability check shared by every booking path.
package schedule

import (
	"fmt"
	"time"

	"github.com/spec-kit/salon-booking-service/internal/config"
)

// Slots returns the ordered universe of bookable time-of-day values for one
// business day: every grid step from the opening hour up to, but excluding,
// the closing hour. With the default 09:00-18:00 window at 30 minutes this
// yields 18 slots, "09:00" through "17:30".
func Slots(hours config.BusinessHoursConfig) []string {
	open := hours.OpenHour * 60
	closing := hours.CloseHour * 60

	slots := make([]string, 0, (closing-open)/hours.SlotMinutes)
	for m := open; m < closing; m += hours.SlotMinutes {
		slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return slots
}

// ValidSlot reports whether t lies on the daily grid.
func ValidSlot(hours config.BusinessHoursConfig, t string) bool {
	m, err := TimeToMinutes(t)
	if err != nil {
		return false
	}
	open := hours.OpenHour * 60
	if m < open || m >= hours.CloseHour*60 {
		return false
	}
	return (m-open)%hours.SlotMinutes == 0
}

// TimeToMinutes converts an HH:MM value to minutes since midnight. The value
// must be exactly zero-padded HH:MM; trailing text and unpadded hours are
// rejected so only canonical grid values reach storage.
func TimeToMinutes(t string) (int, error) {
	parsed, err := time.Parse("15:04", t)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", t, err)
	}
	if parsed.Format("15:04") != t {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", t)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}
