package catalog

import (
	"context"

	"github.com/spec-kit/salon-booking-service/internal/domain"
)

// StaticProvider serves the embedded catalog seed. It is the fallback when no
// back-office database is configured.
type StaticProvider struct {
	services []domain.Service
	staff    []domain.StaffMember
}

// NewStaticProvider builds a provider over the default seed.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{services: defaultServices, staff: defaultStaff}
}

// Services returns all catalog services.
func (p *StaticProvider) Services(_ context.Context) ([]domain.Service, error) {
	out := make([]domain.Service, len(p.services))
	copy(out, p.services)
	return out, nil
}

// ServiceByID returns a single service or ErrNotFound.
func (p *StaticProvider) ServiceByID(_ context.Context, id string) (*domain.Service, error) {
	for i := range p.services {
		if p.services[i].ID == id {
			svc := p.services[i]
			return &svc, nil
		}
	}
	return nil, ErrNotFound
}

// Staff returns all staff members.
func (p *StaticProvider) Staff(_ context.Context) ([]domain.StaffMember, error) {
	out := make([]domain.StaffMember, len(p.staff))
	copy(out, p.staff)
	return out, nil
}

// StaffByID returns a single staff member or ErrNotFound.
func (p *StaticProvider) StaffByID(_ context.Context, id string) (*domain.StaffMember, error) {
	for i := range p.staff {
		if p.staff[i].ID == id {
			member := p.staff[i]
			return &member, nil
		}
	}
	return nil, ErrNotFound
}

var defaultServices = []domain.Service{
	{ID: "1", Name: "Haircut & Styling", Description: "Professional haircut with expert styling and consultation", Price: 45, Duration: 60, Category: "hair"},
	{ID: "2", Name: "Hair Coloring", Description: "Full color treatment with premium products", Price: 120, Duration: 120, Category: "hair"},
	{ID: "3", Name: "Manicure", Description: "Complete nail care with gel polish options", Price: 35, Duration: 45, Category: "nails"},
	{ID: "4", Name: "Pedicure", Description: "Relaxing foot treatment with polish", Price: 45, Duration: 60, Category: "nails"},
	{ID: "5", Name: "Facial Treatment", Description: "Deep cleansing facial with moisturizing mask", Price: 85, Duration: 60, Category: "skincare"},
	{ID: "6", Name: "Makeup Application", Description: "Professional makeup for special occasions", Price: 75, Duration: 45, Category: "makeup"},
	{ID: "7", Name: "Hair Extensions", Description: "Premium quality hair extension installation", Price: 250, Duration: 180, Category: "hair"},
	{ID: "8", Name: "Waxing", Description: "Professional hair removal service", Price: 30, Duration: 30, Category: "skincare"},
}

var defaultStaff = []domain.StaffMember{
	{ID: "1", Name: "Anna Smith", Specialty: "Hair Stylist & Colorist", Experience: "8 years", Bio: "Specializing in modern cuts and balayage techniques"},
	{ID: "2", Name: "Maria Garcia", Specialty: "Nail Technician", Experience: "5 years", Bio: "Expert in gel nails and nail art designs"},
	{ID: "3", Name: "Jessica Lee", Specialty: "Makeup Artist & Esthetician", Experience: "6 years", Bio: "Certified in bridal makeup and skincare treatments"},
	{ID: "4", Name: "Sarah Johnson", Specialty: "Hair & Beauty Specialist", Experience: "7 years", Bio: "All-around specialist in hair, makeup, and waxing"},
}
