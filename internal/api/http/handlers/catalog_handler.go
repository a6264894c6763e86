package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/salon-booking-service/internal/api/dto"
	"github.com/spec-kit/salon-booking-service/internal/catalog"
	apperrors "github.com/spec-kit/salon-booking-service/pkg/util"
)

// CatalogHandler serves the read-only service and staff catalog.
type CatalogHandler struct {
	catalog catalog.Provider
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(provider catalog.Provider) *CatalogHandler {
	return &CatalogHandler{catalog: provider}
}

// ListServices GET /services.
func (h *CatalogHandler) ListServices(c *fiber.Ctx) error {
	services, err := h.catalog.Services(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.ServiceResponse, 0, len(services))
	for _, svc := range services {
		items = append(items, dto.NewServiceResponse(svc))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetService GET /services/:id.
func (h *CatalogHandler) GetService(c *fiber.Ctx) error {
	svc, err := h.catalog.ServiceByID(c.Context(), c.Params("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		return apperrors.NewNotFound("service", map[string]any{"id": c.Params("id")})
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewServiceResponse(*svc)})
}

// ListStaff GET /staff.
func (h *CatalogHandler) ListStaff(c *fiber.Ctx) error {
	staff, err := h.catalog.Staff(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.StaffResponse, 0, len(staff))
	for _, member := range staff {
		items = append(items, dto.NewStaffResponse(member))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetStaffMember GET /staff/:id.
func (h *CatalogHandler) GetStaffMember(c *fiber.Ctx) error {
	member, err := h.catalog.StaffByID(c.Context(), c.Params("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		return apperrors.NewNotFound("staff member", map[string]any{"id": c.Params("id")})
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStaffResponse(*member)})
}
