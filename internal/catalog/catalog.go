// Package catalog serves the read-only service and staff catalog the booking
// core consumes. Entries are immutable at runtime; they come either from the
// back-office database or from the embedded seed.
package catalog

import (
	"context"
	"errors"

	"github.com/spec-kit/salon-booking-service/internal/domain"
)

// ErrNotFound reports an unknown catalog id.
var ErrNotFound = errors.New("catalog entry not found")

// Provider exposes catalog lookups.
type Provider interface {
	Services(ctx context.Context) ([]domain.Service, error)
	ServiceByID(ctx context.Context, id string) (*domain.Service, error)
	Staff(ctx context.Context) ([]domain.StaffMember, error)
	StaffByID(ctx context.Context, id string) (*domain.StaffMember, error)
}
