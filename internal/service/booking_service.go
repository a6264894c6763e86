package service

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/spec-kit/salon-booking-service/internal/booking"
	"github.com/spec-kit/salon-booking-service/internal/catalog"
	"github.com/spec-kit/salon-booking-service/internal/domain"
	"github.com/spec-kit/salon-booking-service/internal/observability"
	"github.com/spec-kit/salon-booking-service/internal/repository"
	"github.com/spec-kit/salon-booking-service/internal/schedule"
	apperrors "github.com/spec-kit/salon-booking-service/pkg/util"
)

// BookingService coordinates the direct booking workflows: it resolves
// catalog entries, validates client input, runs the availability check and
// only then drives the appointment store. The store itself stays free of
// scheduling policy.
type BookingService struct {
	catalog catalog.Provider
	store   *repository.AppointmentStore
	checker *schedule.Checker
	metrics *observability.Metrics
	logger  *zap.Logger
}

// BookingDependencies bundles collaborators for the booking service.
type BookingDependencies struct {
	Catalog catalog.Provider
	Store   *repository.AppointmentStore
	Checker *schedule.Checker
	Metrics *observability.Metrics
	Logger  *zap.Logger
}

// BookingInput describes a booking creation payload.
type BookingInput struct {
	ServiceIDs []string
	StaffID    string
	Date       string
	Time       string
	ClientName string
	Phone      string
	Email      string
	Notes      string
}

// BookingUpdateInput describes an edit payload; nil fields stay unchanged.
type BookingUpdateInput struct {
	ServiceIDs []string
	StaffID    *string
	Date       *string
	Time       *string
	ClientName *string
	Phone      *string
	Email      *string
	Notes      *string
}

// NewBookingService constructs the service.
func NewBookingService(deps BookingDependencies) *BookingService {
	return &BookingService{
		catalog: deps.Catalog,
		store:   deps.Store,
		checker: deps.Checker,
		metrics: deps.Metrics,
		logger:  deps.Logger,
	}
}

// ListAppointments returns the current appointment snapshot.
func (s *BookingService) ListAppointments(_ context.Context) []domain.Appointment {
	return s.store.List()
}

// GetAppointment returns one appointment.
func (s *BookingService) GetAppointment(_ context.Context, id string) (domain.Appointment, error) {
	appt, err := s.store.GetByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Appointment{}, apperrors.NewNotFound("appointment", map[string]any{"id": id})
	}
	return appt, err
}

// BookAppointment validates and commits a new booking.
func (s *BookingService) BookAppointment(ctx context.Context, input BookingInput) (*domain.Appointment, error) {
	services, totalDuration, totalPrice, err := s.resolveServices(ctx, input.ServiceIDs)
	if err != nil {
		return nil, err
	}
	staff, err := s.resolveStaff(ctx, input.StaffID)
	if err != nil {
		return nil, err
	}

	form := booking.ContactForm{
		ClientName: input.ClientName,
		Phone:      booking.NormalizePhone(input.Phone),
		Email:      input.Email,
		Notes:      input.Notes,
	}
	if fieldErrs := booking.ValidateForm(form); !fieldErrs.Valid() {
		return nil, apperrors.NewValidationError("invalid booking details", fieldDetails(fieldErrs))
	}

	if !s.checker.ValidSlot(input.Time) {
		return nil, apperrors.NewValidationError("time is not a bookable slot", map[string]any{"time": input.Time})
	}
	request := schedule.Request{
		Date:     input.Date,
		Time:     input.Time,
		StaffID:  staff.ID,
		Duration: totalDuration,
	}

	serviceIDs := make([]string, 0, len(services))
	for _, svc := range services {
		serviceIDs = append(serviceIDs, svc.ID)
	}
	// The availability check runs as the store's guard so concurrent
	// requests cannot both see the slot free and both commit.
	appt, err := s.store.Create(ctx, domain.Appointment{
		ServiceIDs:    serviceIDs,
		StaffID:       staff.ID,
		Date:          input.Date,
		Time:          input.Time,
		TotalDuration: totalDuration,
		TotalPrice:    totalPrice,
		ClientName:    form.ClientName,
		Phone:         form.Phone,
		Email:         form.Email,
		Notes:         form.Notes,
		Status:        domain.AppointmentStatusConfirmed,
	}, func(existing []domain.Appointment) bool {
		return s.checker.IsAvailable(request, existing)
	})
	if errors.Is(err, domain.ErrSlotConflict) {
		return nil, apperrors.NewSlotUnavailable(staff.Name, input.Date, input.Time)
	}
	if err != nil {
		return nil, err
	}

	s.metrics.RecordBooking(staff.ID, "create")
	s.logger.Info("appointment booked",
		zap.String("appointment_id", appt.ID),
		zap.String("staff_id", staff.ID),
		zap.String("date", appt.Date),
		zap.String("time", appt.Time))
	return &appt, nil
}

// UpdateAppointment revalidates an edited appointment against everything but
// itself and merges the patch.
func (s *BookingService) UpdateAppointment(ctx context.Context, id string, input BookingUpdateInput) (*domain.Appointment, error) {
	existing, err := s.store.GetByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFound("appointment", map[string]any{"id": id})
	}
	if err != nil {
		return nil, err
	}

	candidate := existing
	patch := domain.AppointmentPatch{
		StaffID:    input.StaffID,
		Date:       input.Date,
		Time:       input.Time,
		ClientName: input.ClientName,
		Email:      input.Email,
		Notes:      input.Notes,
	}
	if input.ServiceIDs != nil {
		services, totalDuration, totalPrice, err := s.resolveServices(ctx, input.ServiceIDs)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(services))
		for _, svc := range services {
			ids = append(ids, svc.ID)
		}
		patch.ServiceIDs = ids
		patch.TotalDuration = &totalDuration
		patch.TotalPrice = &totalPrice
	}
	if input.Phone != nil {
		normalized := booking.NormalizePhone(*input.Phone)
		patch.Phone = &normalized
	}
	applyCandidate(&candidate, patch)

	staff, err := s.resolveStaff(ctx, candidate.StaffID)
	if err != nil {
		return nil, err
	}
	form := booking.ContactForm{
		ClientName: candidate.ClientName,
		Phone:      candidate.Phone,
		Email:      candidate.Email,
		Notes:      candidate.Notes,
	}
	if fieldErrs := booking.ValidateForm(form); !fieldErrs.Valid() {
		return nil, apperrors.NewValidationError("invalid booking details", fieldDetails(fieldErrs))
	}
	if !s.checker.ValidSlot(candidate.Time) {
		return nil, apperrors.NewValidationError("time is not a bookable slot", map[string]any{"time": candidate.Time})
	}

	duration := candidate.TotalDuration
	if duration <= 0 {
		duration = s.checker.Hours().DefaultDuration
	}
	request := schedule.Request{
		Date:      candidate.Date,
		Time:      candidate.Time,
		StaffID:   candidate.StaffID,
		Duration:  duration,
		ExcludeID: id,
	}
	updated, err := s.store.Update(ctx, id, patch, func(existing []domain.Appointment) bool {
		return s.checker.IsAvailable(request, existing)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFound("appointment", map[string]any{"id": id})
	}
	if errors.Is(err, domain.ErrSlotConflict) {
		return nil, apperrors.NewSlotUnavailable(staff.Name, candidate.Date, candidate.Time)
	}
	if err != nil {
		return nil, err
	}

	s.metrics.RecordBooking(updated.StaffID, "update")
	return &updated, nil
}

// CancelAppointment removes an appointment.
func (s *BookingService) CancelAppointment(ctx context.Context, id string) error {
	appt, err := s.store.GetByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("appointment", map[string]any{"id": id})
	}
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("appointment", map[string]any{"id": id})
		}
		return err
	}
	s.metrics.RecordBooking(appt.StaffID, "cancel")
	return nil
}

// SlotAvailability renders the daily grid for one staff member and duration.
// ExcludeID may name an appointment being edited.
func (s *BookingService) SlotAvailability(ctx context.Context, date, staffID string, duration int, excludeID string) ([]booking.SlotStatus, error) {
	if _, err := s.resolveStaff(ctx, staffID); err != nil {
		return nil, err
	}
	if duration <= 0 {
		duration = s.checker.Hours().DefaultDuration
	}

	appointments := s.store.List()
	slots := s.checker.Slots()
	statuses := make([]booking.SlotStatus, 0, len(slots))
	for _, slot := range slots {
		request := schedule.Request{
			Date:      date,
			Time:      slot,
			StaffID:   staffID,
			Duration:  duration,
			ExcludeID: excludeID,
		}
		statuses = append(statuses, booking.SlotStatus{
			Time:      slot,
			Available: s.checker.IsAvailable(request, appointments),
		})
	}
	return statuses, nil
}

// DaySchedule lists all appointments for one date ordered by staff and time,
// for the back-office view.
func (s *BookingService) DaySchedule(_ context.Context, date string) []domain.Appointment {
	var result []domain.Appointment
	for _, appt := range s.store.List() {
		if appt.Date == date {
			result = append(result, appt)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StaffID != result[j].StaffID {
			return result[i].StaffID < result[j].StaffID
		}
		return result[i].Time < result[j].Time
	})
	return result
}

func (s *BookingService) resolveServices(ctx context.Context, ids []string) ([]domain.Service, int, float64, error) {
	if len(ids) == 0 {
		return nil, 0, 0, apperrors.NewValidationError("at least one service required", nil)
	}
	seen := make(map[string]struct{}, len(ids))
	services := make([]domain.Service, 0, len(ids))
	totalDuration := 0
	totalPrice := 0.0
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		svc, err := s.catalog.ServiceByID(ctx, id)
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, 0, 0, apperrors.NewValidationError("unknown service", map[string]any{"service_id": id})
		}
		if err != nil {
			return nil, 0, 0, err
		}
		services = append(services, *svc)
		totalDuration += svc.Duration
		totalPrice += svc.Price
	}
	return services, totalDuration, totalPrice, nil
}

func (s *BookingService) resolveStaff(ctx context.Context, id string) (*domain.StaffMember, error) {
	staff, err := s.catalog.StaffByID(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, apperrors.NewValidationError("unknown staff member", map[string]any{"staff_id": id})
	}
	if err != nil {
		return nil, err
	}
	return staff, nil
}

func fieldDetails(fieldErrs booking.FieldErrors) map[string]any {
	details := make(map[string]any, len(fieldErrs))
	for field, msg := range fieldErrs {
		details[field] = msg
	}
	return details
}

func applyCandidate(appt *domain.Appointment, patch domain.AppointmentPatch) {
	if patch.ServiceIDs != nil {
		appt.ServiceIDs = patch.ServiceIDs
	}
	if patch.StaffID != nil {
		appt.StaffID = *patch.StaffID
	}
	if patch.Date != nil {
		appt.Date = *patch.Date
	}
	if patch.Time != nil {
		appt.Time = *patch.Time
	}
	if patch.TotalDuration != nil {
		appt.TotalDuration = *patch.TotalDuration
	}
	if patch.TotalPrice != nil {
		appt.TotalPrice = *patch.TotalPrice
	}
	if patch.ClientName != nil {
		appt.ClientName = *patch.ClientName
	}
	if patch.Phone != nil {
		appt.Phone = *patch.Phone
	}
	if patch.Email != nil {
		appt.Email = *patch.Email
	}
	if patch.Notes != nil {
		appt.Notes = *patch.Notes
	}
}
