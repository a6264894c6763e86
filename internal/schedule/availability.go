package schedule

import (
	"github.com/spec-kit/salon-booking-service/internal/config"
	"github.com/spec-kit/salon-booking-service/internal/domain"
)

// Request describes a candidate booking slot to test for conflicts.
type Request struct {
	Date     string
	Time     string
	StaffID  string
	Duration int
	// ExcludeID skips one appointment so an edit can be revalidated
	// against everything except itself.
	ExcludeID string
}

// Checker answers availability queries against an appointment list. It holds
// only immutable business-hours configuration; every query is a pure function
// of its inputs and may be evaluated once per rendered slot without
// coordination.
type Checker struct {
	hours config.BusinessHoursConfig
}

// NewChecker constructs a checker for the configured business hours.
func NewChecker(hours config.BusinessHoursConfig) *Checker {
	return &Checker{hours: hours}
}

// Hours exposes the business-hours configuration the checker was built with.
func (c *Checker) Hours() config.BusinessHoursConfig {
	return c.hours
}

// Slots returns the daily slot grid.
func (c *Checker) Slots() []string {
	return Slots(c.hours)
}

// ValidSlot reports whether t lies on the daily grid.
func (c *Checker) ValidSlot(t string) bool {
	return ValidSlot(c.hours, t)
}

// IsAvailable reports whether the candidate interval [Time, Time+Duration)
// is free of conflicts with the given appointments for the same staff member
// and date. Two half-open intervals conflict iff each starts before the other
// ends, so a booking that ends exactly when another starts is not a conflict.
func (c *Checker) IsAvailable(req Request, appointments []domain.Appointment) bool {
	start, err := TimeToMinutes(req.Time)
	if err != nil || req.Duration <= 0 {
		return false
	}
	end := start + req.Duration

	for _, appt := range appointments {
		if req.ExcludeID != "" && appt.ID == req.ExcludeID {
			continue
		}
		if appt.StaffID != req.StaffID || appt.Date != req.Date {
			continue
		}
		existingStart, existingEnd, ok := c.occupiedInterval(appt)
		if !ok {
			continue
		}
		if start < existingEnd && existingStart < end {
			return false
		}
	}
	return true
}

// occupiedInterval computes the minutes-since-midnight range an appointment
// reserves. Records stored before durations were tracked carry no
// TotalDuration; they fall back to the configured default pending a data
// migration.
func (c *Checker) occupiedInterval(appt domain.Appointment) (start, end int, ok bool) {
	start, err := TimeToMinutes(appt.Time)
	if err != nil {
		return 0, 0, false
	}
	dur := appt.TotalDuration
	if dur <= 0 {
		dur = c.hours.DefaultDuration
	}
	return start, start + dur, true
}
