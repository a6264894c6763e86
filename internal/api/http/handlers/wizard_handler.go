package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/salon-booking-service/internal/api/dto"
	"github.com/spec-kit/salon-booking-service/internal/booking"
	"github.com/spec-kit/salon-booking-service/internal/catalog"
	"github.com/spec-kit/salon-booking-service/internal/domain"
	apperrors "github.com/spec-kit/salon-booking-service/pkg/util"
)

// WizardHandler exposes the booking wizard as uuid-keyed sessions.
type WizardHandler struct {
	manager *booking.Manager
	catalog catalog.Provider
}

// NewWizardHandler constructs handler.
func NewWizardHandler(manager *booking.Manager, provider catalog.Provider) *WizardHandler {
	return &WizardHandler{manager: manager, catalog: provider}
}

// StartSession POST /booking/sessions.
func (h *WizardHandler) StartSession(c *fiber.Ctx) error {
	id, wizard := h.manager.Start()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewWizardSessionResponse(id, wizard)})
}

// GetSession GET /booking/sessions/:id.
func (h *WizardHandler) GetSession(c *fiber.Ctx) error {
	id, wizard, err := h.session(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewWizardSessionResponse(id, wizard)})
}

// SetServices PUT /booking/sessions/:id/services.
func (h *WizardHandler) SetServices(c *fiber.Ctx) error {
	id, wizard, err := h.session(c)
	if err != nil {
		return err
	}
	var req dto.WizardServicesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	services := make([]domain.Service, 0, len(req.ServiceIDs))
	for _, serviceID := range req.ServiceIDs {
		svc, err := h.catalog.ServiceByID(c.Context(), serviceID)
		if errors.Is(err, catalog.ErrNotFound) {
			return apperrors.NewValidationError("unknown service", map[string]any{"service_id": serviceID})
		}
		if err != nil {
			return err
		}
		services = append(services, *svc)
	}
	wizard.SetServices(services)
	return c.JSON(fiber.Map{"data": dto.NewWizardSessionResponse(id, wizard)})
}

// SetStaff PUT /booking/sessions/:id/staff.
func (h *WizardHandler) SetStaff(c *fiber.Ctx) error {
	id, wizard, err := h.session(c)
	if err != nil {
		return err
	}
	var req dto.WizardStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	member, err := h.catalog.StaffByID(c.Context(), req.StaffID)
	if errors.Is(err, catalog.ErrNotFound) {
		return apperrors.NewValidationError("unknown staff member", map[string]any{"staff_id": req.StaffID})
	}
	if err != nil {
		return err
	}
	wizard.SelectStaff(*member)
	return c.JSON(fiber.Map{"data": dto.NewWizardSessionResponse(id, wizard)})
}

// SetSchedule PUT /booking/sessions/:id/schedule.
func (h *WizardHandler) SetSchedule(c *fiber.Ctx) error {
	id, wizard, err := h.session(c)
	if err != nil {
		return err
	}
	var req dto.WizardScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if req.Date != "" {
		if err := wizard.SelectDate(req.Date); err != nil {
			return mapBookingError(err, wizard.FieldErrors())
		}
	}
	if req.Time != "" {
		if err := wizard.SelectTime(req.Time); err != nil {
			return mapBookingError(err, wizard.FieldErrors())
		}
	}
	return c.JSON(fiber.Map{"data": dto.NewWizardSessionResponse(id, wizard)})
}

// SetDetails PUT /booking/sessions/:id/details.
func (h *WizardHandler) SetDetails(c *fiber.Ctx) error {
	id, wizard, err := h.session(c)
	if err != nil {
		return err
	}
	var req dto.WizardDetailsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	wizard.SetForm(booking.ContactForm{
		ClientName: req.ClientName,
		Phone:      req.Phone,
		Email:      req.Email,
		Notes:      req.Notes,
	})
	return c.JSON(fiber.Map{"data": dto.NewWizardSessionResponse(id, wizard)})
}

// Next POST /booking/sessions/:id/next.
func (h *WizardHandler) Next(c *fiber.Ctx) error {
	id, wizard, err := h.session(c)
	if err != nil {
		return err
	}
	if err := wizard.Next(); err != nil {
		return mapBookingError(err, wizard.FieldErrors())
	}
	return c.JSON(fiber.Map{"data": dto.NewWizardSessionResponse(id, wizard)})
}

// Back POST /booking/sessions/:id/back.
func (h *WizardHandler) Back(c *fiber.Ctx) error {
	id, wizard, err := h.session(c)
	if err != nil {
		return err
	}
	wizard.Back()
	return c.JSON(fiber.Map{"data": dto.NewWizardSessionResponse(id, wizard)})
}

// Submit POST /booking/sessions/:id/submit.
func (h *WizardHandler) Submit(c *fiber.Ctx) error {
	id, wizard, err := h.session(c)
	if err != nil {
		return err
	}
	if _, err := wizard.Submit(c.Context()); err != nil {
		return mapBookingError(err, wizard.FieldErrors())
	}
	response := dto.NewWizardSessionResponse(id, wizard)
	h.manager.End(id)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": response})
}

// Abandon DELETE /booking/sessions/:id.
func (h *WizardHandler) Abandon(c *fiber.Ctx) error {
	h.manager.End(c.Params("id"))
	return c.JSON(fiber.Map{"data": fiber.Map{"id": c.Params("id"), "abandoned": true}})
}

// ListSlots GET /booking/sessions/:id/slots?date=.
func (h *WizardHandler) ListSlots(c *fiber.Ctx) error {
	_, wizard, err := h.session(c)
	if err != nil {
		return err
	}
	date := c.Query("date")
	if date == "" {
		date = wizard.Draft().Date
	}
	if date == "" {
		return apperrors.NewValidationError("date required", nil)
	}
	slots, err := wizard.SlotAvailability(date)
	if err != nil {
		return mapBookingError(err, wizard.FieldErrors())
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"date": date, "slots": slots}})
}

func (h *WizardHandler) session(c *fiber.Ctx) (string, *booking.Wizard, error) {
	id := c.Params("id")
	wizard, ok := h.manager.Session(id)
	if !ok {
		return "", nil, apperrors.NewNotFound("booking session", map[string]any{"id": id})
	}
	return id, wizard, nil
}

func mapBookingError(err error, fieldErrs booking.FieldErrors) error {
	switch {
	case errors.Is(err, booking.ErrSlotTaken):
		return apperrors.NewConflict(booking.FailReasonSlotTaken, nil)
	case errors.Is(err, booking.ErrInvalidForm):
		details := make(map[string]any, len(fieldErrs))
		for field, msg := range fieldErrs {
			details[field] = msg
		}
		return apperrors.NewValidationError("contact details invalid", details)
	case errors.Is(err, booking.ErrStepIncomplete),
		errors.Is(err, booking.ErrNotInProgress),
		errors.Is(err, booking.ErrNoSelection),
		errors.Is(err, booking.ErrPastDate),
		errors.Is(err, booking.ErrInvalidDate),
		errors.Is(err, booking.ErrInvalidSlot):
		return apperrors.NewValidationError(err.Error(), nil)
	}
	return err
}
