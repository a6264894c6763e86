package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/salon-booking-service/internal/api/dto"
	"github.com/spec-kit/salon-booking-service/internal/booking"
	"github.com/spec-kit/salon-booking-service/internal/service"
	apperrors "github.com/spec-kit/salon-booking-service/pkg/util"
)

// EditHandler exposes the edit-in-place flow as uuid-keyed sessions, the
// server-side counterpart of the wizard sessions.
type EditHandler struct {
	manager *booking.Manager
	service *service.BookingService
}

// NewEditHandler constructs handler.
func NewEditHandler(manager *booking.Manager, bookingService *service.BookingService) *EditHandler {
	return &EditHandler{manager: manager, service: bookingService}
}

// StartSession POST /appointments/:id/edit.
func (h *EditHandler) StartSession(c *fiber.Ctx) error {
	appt, err := h.service.GetAppointment(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	id, editor := h.manager.StartEdit(appt)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewEditSessionResponse(id, editor)})
}

// GetSession GET /booking/edits/:id.
func (h *EditHandler) GetSession(c *fiber.Ctx) error {
	id, editor, err := h.session(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEditSessionResponse(id, editor)})
}

// SetSchedule PUT /booking/edits/:id/schedule.
func (h *EditHandler) SetSchedule(c *fiber.Ctx) error {
	id, editor, err := h.session(c)
	if err != nil {
		return err
	}
	var req dto.WizardScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if req.Date != "" {
		if _, err := time.Parse("2006-01-02", req.Date); err != nil {
			return apperrors.NewValidationError("date must be YYYY-MM-DD", map[string]any{"date": req.Date})
		}
		editor.SelectDate(req.Date)
	}
	if req.Time != "" {
		if err := editor.SelectTime(req.Time); err != nil {
			return mapBookingError(err, editor.FieldErrors())
		}
	}
	return c.JSON(fiber.Map{"data": dto.NewEditSessionResponse(id, editor)})
}

// SetDetails PUT /booking/edits/:id/details.
func (h *EditHandler) SetDetails(c *fiber.Ctx) error {
	id, editor, err := h.session(c)
	if err != nil {
		return err
	}
	var req dto.WizardDetailsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	editor.SetForm(booking.ContactForm{
		ClientName: req.ClientName,
		Phone:      req.Phone,
		Email:      req.Email,
		Notes:      req.Notes,
	})
	return c.JSON(fiber.Map{"data": dto.NewEditSessionResponse(id, editor)})
}

// ListSlots GET /booking/edits/:id/slots?date=.
func (h *EditHandler) ListSlots(c *fiber.Ctx) error {
	_, editor, err := h.session(c)
	if err != nil {
		return err
	}
	date := c.Query("date")
	if date == "" {
		date = editor.Date()
	}
	if date == "" {
		return apperrors.NewValidationError("date required", nil)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"date": date, "slots": editor.SlotAvailability(date)}})
}

// Submit POST /booking/edits/:id/submit.
func (h *EditHandler) Submit(c *fiber.Ctx) error {
	id, editor, err := h.session(c)
	if err != nil {
		return err
	}
	updated, err := editor.Submit(c.Context())
	if err != nil {
		return mapBookingError(err, editor.FieldErrors())
	}
	h.manager.EndEdit(id)
	return c.JSON(fiber.Map{"data": dto.NewAppointmentResponse(*updated)})
}

// Abandon DELETE /booking/edits/:id.
func (h *EditHandler) Abandon(c *fiber.Ctx) error {
	h.manager.EndEdit(c.Params("id"))
	return c.JSON(fiber.Map{"data": fiber.Map{"id": c.Params("id"), "abandoned": true}})
}

func (h *EditHandler) session(c *fiber.Ctx) (string, *booking.Editor, error) {
	id := c.Params("id")
	editor, ok := h.manager.Edit(id)
	if !ok {
		return "", nil, apperrors.NewNotFound("edit session", map[string]any{"id": id})
	}
	return id, editor, nil
}
