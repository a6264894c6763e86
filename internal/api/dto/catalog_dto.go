package dto

import "github.com/spec-kit/salon-booking-service/internal/domain"

// ServiceResponse response.
type ServiceResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"`
	Category    string  `json:"category"`
}

// StaffResponse response.
type StaffResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Specialty  string `json:"specialty"`
	Experience string `json:"experience"`
	Bio        string `json:"bio"`
}

// NewServiceResponse maps a catalog service.
func NewServiceResponse(svc domain.Service) ServiceResponse {
	return ServiceResponse(svc)
}

// NewStaffResponse maps a staff member.
func NewStaffResponse(member domain.StaffMember) StaffResponse {
	return StaffResponse(member)
}
