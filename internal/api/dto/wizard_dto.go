package dto

import (
	"github.com/spec-kit/salon-booking-service/internal/booking"
)

// WizardServicesRequest selects services by id (full replacement).
type WizardServicesRequest struct {
	ServiceIDs []string `json:"service_ids"`
}

// WizardStaffRequest selects the specialist.
type WizardStaffRequest struct {
	StaffID string `json:"staff_id"`
}

// WizardScheduleRequest selects date and, optionally, time.
type WizardScheduleRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// WizardDetailsRequest carries the contact form.
type WizardDetailsRequest struct {
	ClientName string `json:"client_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Notes      string `json:"notes"`
}

// WizardSessionResponse is the full session state returned after every call.
type WizardSessionResponse struct {
	SessionID   string               `json:"session_id"`
	Step        string               `json:"step"`
	Status      string               `json:"status"`
	FailReason  string               `json:"fail_reason,omitempty"`
	ServiceIDs  []string             `json:"service_ids"`
	StaffID     string               `json:"staff_id,omitempty"`
	Date        string               `json:"date,omitempty"`
	Time        string               `json:"time,omitempty"`
	TotalPrice  float64              `json:"total_price"`
	TotalMins   int                  `json:"total_duration"`
	ClientName  string               `json:"client_name,omitempty"`
	Phone       string               `json:"phone,omitempty"`
	Email       string               `json:"email,omitempty"`
	Notes       string               `json:"notes,omitempty"`
	FieldErrors booking.FieldErrors  `json:"field_errors,omitempty"`
	Appointment *AppointmentResponse `json:"appointment,omitempty"`
}

// EditSessionResponse is the edit-in-place session state.
type EditSessionResponse struct {
	SessionID     string              `json:"session_id"`
	AppointmentID string              `json:"appointment_id"`
	Date          string              `json:"date"`
	Time          string              `json:"time,omitempty"`
	ClientName    string              `json:"client_name"`
	Phone         string              `json:"phone"`
	Email         string              `json:"email,omitempty"`
	Notes         string              `json:"notes,omitempty"`
	FieldErrors   booking.FieldErrors `json:"field_errors,omitempty"`
}

// NewEditSessionResponse maps an edit session.
func NewEditSessionResponse(sessionID string, e *booking.Editor) EditSessionResponse {
	form := e.Form()
	return EditSessionResponse{
		SessionID:     sessionID,
		AppointmentID: e.AppointmentID(),
		Date:          e.Date(),
		Time:          e.Time(),
		ClientName:    form.ClientName,
		Phone:         form.Phone,
		Email:         form.Email,
		Notes:         form.Notes,
		FieldErrors:   e.FieldErrors(),
	}
}

// NewWizardSessionResponse maps a wizard session.
func NewWizardSessionResponse(sessionID string, w *booking.Wizard) WizardSessionResponse {
	draft := w.Draft()
	serviceIDs := make([]string, 0, len(draft.Services))
	for _, svc := range draft.Services {
		serviceIDs = append(serviceIDs, svc.ID)
	}

	resp := WizardSessionResponse{
		SessionID:   sessionID,
		Step:        w.Step().String(),
		Status:      string(w.Status()),
		FailReason:  w.FailReason(),
		ServiceIDs:  serviceIDs,
		Date:        draft.Date,
		Time:        draft.Time,
		TotalPrice:  draft.TotalPrice(),
		TotalMins:   draft.TotalDuration(),
		ClientName:  draft.Form.ClientName,
		Phone:       draft.Form.Phone,
		Email:       draft.Form.Email,
		Notes:       draft.Form.Notes,
		FieldErrors: w.FieldErrors(),
	}
	if draft.Staff != nil {
		resp.StaffID = draft.Staff.ID
	}
	if confirmed := w.Confirmed(); confirmed != nil {
		appt := NewAppointmentResponse(*confirmed)
		resp.Appointment = &appt
	}
	return resp
}
