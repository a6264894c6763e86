package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/salon-booking-service/internal/api/dto"
	"github.com/spec-kit/salon-booking-service/internal/service"
	apperrors "github.com/spec-kit/salon-booking-service/pkg/util"
)

// AppointmentsHandler manages the direct appointment endpoints.
type AppointmentsHandler struct {
	service *service.BookingService
}

// NewAppointmentsHandler constructs handler.
func NewAppointmentsHandler(bookingService *service.BookingService) *AppointmentsHandler {
	return &AppointmentsHandler{service: bookingService}
}

// ListAppointments GET /appointments.
func (h *AppointmentsHandler) ListAppointments(c *fiber.Ctx) error {
	appointments := h.service.ListAppointments(c.Context())
	items := make([]dto.AppointmentResponse, 0, len(appointments))
	for _, appt := range appointments {
		items = append(items, dto.NewAppointmentResponse(appt))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetAppointment GET /appointments/:id.
func (h *AppointmentsHandler) GetAppointment(c *fiber.Ctx) error {
	appt, err := h.service.GetAppointment(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAppointmentResponse(appt)})
}

// CreateAppointment POST /appointments.
func (h *AppointmentsHandler) CreateAppointment(c *fiber.Ctx) error {
	var req dto.CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if len(req.ServiceIDs) == 0 || req.StaffID == "" || req.Date == "" || req.Time == "" {
		return apperrors.NewValidationError("service_ids, staff_id, date, time required", nil)
	}

	appt, err := h.service.BookAppointment(c.Context(), service.BookingInput{
		ServiceIDs: req.ServiceIDs,
		StaffID:    req.StaffID,
		Date:       req.Date,
		Time:       req.Time,
		ClientName: req.ClientName,
		Phone:      req.Phone,
		Email:      req.Email,
		Notes:      req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewAppointmentResponse(*appt)})
}

// UpdateAppointment PATCH /appointments/:id.
func (h *AppointmentsHandler) UpdateAppointment(c *fiber.Ctx) error {
	var req dto.UpdateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	appt, err := h.service.UpdateAppointment(c.Context(), c.Params("id"), service.BookingUpdateInput{
		ServiceIDs: req.ServiceIDs,
		StaffID:    req.StaffID,
		Date:       req.Date,
		Time:       req.Time,
		ClientName: req.ClientName,
		Phone:      req.Phone,
		Email:      req.Email,
		Notes:      req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAppointmentResponse(*appt)})
}

// DeleteAppointment DELETE /appointments/:id.
func (h *AppointmentsHandler) DeleteAppointment(c *fiber.Ctx) error {
	if err := h.service.CancelAppointment(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": c.Params("id"), "deleted": true}})
}
