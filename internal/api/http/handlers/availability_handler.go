package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/salon-booking-service/internal/service"
	apperrors "github.com/spec-kit/salon-booking-service/pkg/util"
)

// AvailabilityHandler serves slot-grid availability queries.
type AvailabilityHandler struct {
	service *service.BookingService
}

// NewAvailabilityHandler constructs handler.
func NewAvailabilityHandler(bookingService *service.BookingService) *AvailabilityHandler {
	return &AvailabilityHandler{service: bookingService}
}

// ListSlots GET /availability/slots?date=&staff_id=&duration=&exclude_id=.
func (h *AvailabilityHandler) ListSlots(c *fiber.Ctx) error {
	date := c.Query("date")
	staffID := c.Query("staff_id")
	if date == "" || staffID == "" {
		return apperrors.NewValidationError("date and staff_id required", nil)
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return apperrors.NewValidationError("date must be YYYY-MM-DD", map[string]any{"date": date})
	}
	duration := c.QueryInt("duration")
	excludeID := c.Query("exclude_id")

	slots, err := h.service.SlotAvailability(c.Context(), date, staffID, duration, excludeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"date":     date,
		"staff_id": staffID,
		"slots":    slots,
	}})
}
