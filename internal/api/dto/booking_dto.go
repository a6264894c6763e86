package dto

import (
	"time"

	"github.com/spec-kit/salon-booking-service/internal/domain"
)

// CreateAppointmentRequest payload.
type CreateAppointmentRequest struct {
	ServiceIDs []string `json:"service_ids"`
	StaffID    string   `json:"staff_id"`
	Date       string   `json:"date"`
	Time       string   `json:"time"`
	ClientName string   `json:"client_name"`
	Phone      string   `json:"phone"`
	Email      string   `json:"email"`
	Notes      string   `json:"notes"`
}

// UpdateAppointmentRequest payload; absent fields stay unchanged.
type UpdateAppointmentRequest struct {
	ServiceIDs []string `json:"service_ids"`
	StaffID    *string  `json:"staff_id"`
	Date       *string  `json:"date"`
	Time       *string  `json:"time"`
	ClientName *string  `json:"client_name"`
	Phone      *string  `json:"phone"`
	Email      *string  `json:"email"`
	Notes      *string  `json:"notes"`
}

// AppointmentResponse response.
type AppointmentResponse struct {
	ID            string    `json:"id"`
	ServiceIDs    []string  `json:"service_ids"`
	StaffID       string    `json:"staff_id"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	TotalDuration int       `json:"total_duration"`
	TotalPrice    float64   `json:"total_price"`
	ClientName    string    `json:"client_name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewAppointmentResponse maps a domain appointment.
func NewAppointmentResponse(appt domain.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:            appt.ID,
		ServiceIDs:    appt.ServiceIDs,
		StaffID:       appt.StaffID,
		Date:          appt.Date,
		Time:          appt.Time,
		TotalDuration: appt.TotalDuration,
		TotalPrice:    appt.TotalPrice,
		ClientName:    appt.ClientName,
		Phone:         appt.Phone,
		Email:         appt.Email,
		Notes:         appt.Notes,
		Status:        string(appt.Status),
		CreatedAt:     appt.CreatedAt,
	}
}
