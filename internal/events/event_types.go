package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/salon-booking-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAppointmentCreated     EventType = "appointment_created"
	EventAppointmentUpdated     EventType = "appointment_updated"
	EventAppointmentCancelled   EventType = "appointment_cancelled"
	EventAppointmentsReconciled EventType = "appointments_reconciled"
)

// Event represents a store mutation emitted for external observers.
type Event struct {
	ID            string      `json:"id"`
	Type          EventType   `json:"type"`
	AppointmentID string      `json:"appointment_id,omitempty"`
	Timestamp     time.Time   `json:"timestamp"`
	Payload       interface{} `json:"payload"`
}

// AppointmentCreatedPayload payload.
type AppointmentCreatedPayload struct {
	StaffID       string  `json:"staff_id"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	TotalDuration int     `json:"total_duration"`
	TotalPrice    float64 `json:"total_price"`
	ClientName    string  `json:"client_name"`
}

// AppointmentUpdatedPayload payload.
type AppointmentUpdatedPayload struct {
	StaffID string `json:"staff_id"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

// AppointmentCancelledPayload payload.
type AppointmentCancelledPayload struct {
	StaffID string `json:"staff_id"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

// AppointmentsReconciledPayload payload.
type AppointmentsReconciledPayload struct {
	LocalCount  int `json:"local_count"`
	RemoteCount int `json:"remote_count"`
	MergedCount int `json:"merged_count"`
}

// NewEvent stamps an event with id and timestamp.
func NewEvent(eventType EventType, appt *domain.Appointment, payload interface{}) Event {
	evt := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	}
	if appt != nil {
		evt.AppointmentID = appt.ID
	}
	return evt
}
