package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/salon-booking-service/internal/api/dto"
	"github.com/spec-kit/salon-booking-service/internal/service"
	apperrors "github.com/spec-kit/salon-booking-service/pkg/util"
)

// AdminHandler serves the back-office login and schedule views.
type AdminHandler struct {
	auth    *service.AuthService
	booking *service.BookingService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService, bookingService *service.BookingService) *AdminHandler {
	return &AdminHandler{auth: authService, booking: bookingService}
}

// Login POST /auth/admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	token, expiresAt, err := h.auth.LoginAdmin(c.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrLoginDisabled) || errors.Is(err, service.ErrInvalidCredentials) {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AdminLoginResponse{Token: token, ExpiresAt: expiresAt}})
}

// DaySchedule GET /admin/schedule?date=.
func (h *AdminHandler) DaySchedule(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return apperrors.NewValidationError("date required", nil)
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return apperrors.NewValidationError("date must be YYYY-MM-DD", map[string]any{"date": date})
	}

	appointments := h.booking.DaySchedule(c.Context(), date)
	items := make([]dto.AppointmentResponse, 0, len(appointments))
	for _, appt := range appointments {
		items = append(items, dto.NewAppointmentResponse(appt))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"date": date, "appointments": items}})
}

// CancelAppointment DELETE /admin/appointments/:id.
func (h *AdminHandler) CancelAppointment(c *fiber.Ctx) error {
	if err := h.booking.CancelAppointment(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": c.Params("id"), "deleted": true}})
}
