package domain

import (
	"errors"
	"time"
)

// ErrSlotConflict reports that a guarded mutation lost its slot to a booking
// committed first.
var ErrSlotConflict = errors.New("slot conflict")

// ConflictGuard inspects the stored appointment list and reports whether a
// mutation may proceed. Stores run it under their own lock, so the
// availability check and the write it protects are a single atomic step.
type ConflictGuard func(existing []Appointment) bool

// AppointmentStatus enumerates lifecycle states for appointments.
type AppointmentStatus string

const (
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
)

// Appointment is the aggregate for a committed booking. Its occupied interval
// is the half-open range [Time, Time+TotalDuration) on Date for StaffID.
type Appointment struct {
	ID            string            `json:"id"`
	ServiceIDs    []string          `json:"service_ids"`
	StaffID       string            `json:"staff_id"`
	Date          string            `json:"date"`
	Time          string            `json:"time"`
	TotalDuration int               `json:"total_duration"`
	TotalPrice    float64           `json:"total_price"`
	ClientName    string            `json:"client_name"`
	Phone         string            `json:"phone"`
	Email         string            `json:"email,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	Status        AppointmentStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
}

// AppointmentPatch carries optional field overrides for an update.
// Nil fields are left untouched; ID and CreatedAt are never patched.
type AppointmentPatch struct {
	ServiceIDs    []string
	StaffID       *string
	Date          *string
	Time          *string
	TotalDuration *int
	TotalPrice    *float64
	ClientName    *string
	Phone         *string
	Email         *string
	Notes         *string
	Status        *AppointmentStatus
}
