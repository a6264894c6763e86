package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/salon-booking-service/internal/catalog"
	"github.com/spec-kit/salon-booking-service/internal/config"
	"github.com/spec-kit/salon-booking-service/internal/domain"
	"github.com/spec-kit/salon-booking-service/internal/events"
	"github.com/spec-kit/salon-booking-service/internal/observability"
	"github.com/spec-kit/salon-booking-service/internal/repository"
	"github.com/spec-kit/salon-booking-service/internal/schedule"
	apperrors "github.com/spec-kit/salon-booking-service/pkg/util"
)

type nullPersister struct{}

func (nullPersister) Load(context.Context) ([]domain.Appointment, error) { return nil, nil }
func (nullPersister) Save(context.Context, []domain.Appointment) error   { return nil }

func newTestService(t *testing.T) *BookingService {
	t.Helper()
	store := repository.NewAppointmentStore(nullPersister{}, events.NewInMemoryDispatcher(), zap.NewNop())
	store.Load(context.Background())
	checker := schedule.NewChecker(config.BusinessHoursConfig{
		OpenHour: 9, CloseHour: 18, SlotMinutes: 30, DefaultDuration: 30,
	})
	return NewBookingService(BookingDependencies{
		Catalog: catalog.NewStaticProvider(),
		Store:   store,
		Checker: checker,
		Metrics: observability.NewMetrics(),
		Logger:  zap.NewNop(),
	})
}

func validInput() BookingInput {
	return BookingInput{
		ServiceIDs: []string{"1"},
		StaffID:    "1",
		Date:       "2026-09-01",
		Time:       "10:00",
		ClientName: "Jo Client",
		Phone:      "(555) 123-4567",
		Email:      "jo@example.com",
	}
}

func requireDomainErr(t *testing.T, err error, code string) *apperrors.DomainError {
	t.Helper()
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, code, domainErr.Code)
	return domainErr
}

func TestBookAppointment_Success(t *testing.T) {
	svc := newTestService(t)

	appt, err := svc.BookAppointment(context.Background(), validInput())
	require.NoError(t, err)
	require.NotEmpty(t, appt.ID)
	require.Equal(t, []string{"1"}, appt.ServiceIDs)
	require.Equal(t, 60, appt.TotalDuration)
	require.Equal(t, 45.0, appt.TotalPrice)
	require.Equal(t, "5551234567", appt.Phone)
	require.Equal(t, domain.AppointmentStatusConfirmed, appt.Status)

	listed := svc.ListAppointments(context.Background())
	require.Len(t, listed, 1)
}

func TestBookAppointment_SumsMultipleServices(t *testing.T) {
	svc := newTestService(t)
	input := validInput()
	input.ServiceIDs = []string{"1", "3", "1"} // duplicate collapses

	appt, err := svc.BookAppointment(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, []string{"1", "3"}, appt.ServiceIDs)
	require.Equal(t, 105, appt.TotalDuration)
	require.Equal(t, 80.0, appt.TotalPrice)
}

func TestBookAppointment_UnknownCatalogEntries(t *testing.T) {
	svc := newTestService(t)

	input := validInput()
	input.ServiceIDs = []string{"999"}
	_, err := svc.BookAppointment(context.Background(), input)
	requireDomainErr(t, err, "VALIDATION_FAILED")

	input = validInput()
	input.StaffID = "999"
	_, err = svc.BookAppointment(context.Background(), input)
	requireDomainErr(t, err, "VALIDATION_FAILED")
}

func TestBookAppointment_InvalidContactDetails(t *testing.T) {
	svc := newTestService(t)
	input := validInput()
	input.ClientName = ""
	input.Phone = "123"

	_, err := svc.BookAppointment(context.Background(), input)
	domainErr := requireDomainErr(t, err, "VALIDATION_FAILED")
	require.Equal(t, "Name is required", domainErr.Details["clientName"])
	require.Equal(t, "Phone number must be at least 10 digits", domainErr.Details["phone"])
}

func TestBookAppointment_OffGridTime(t *testing.T) {
	svc := newTestService(t)
	input := validInput()
	input.Time = "10:15"

	_, err := svc.BookAppointment(context.Background(), input)
	requireDomainErr(t, err, "VALIDATION_FAILED")
}

func TestBookAppointment_ConflictNamesStaff(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.BookAppointment(context.Background(), validInput())
	require.NoError(t, err)

	// Service "1" runs 60 minutes, so 10:30 still collides.
	input := validInput()
	input.Time = "10:30"
	_, err = svc.BookAppointment(context.Background(), input)
	domainErr := requireDomainErr(t, err, "SLOT_UNAVAILABLE")
	require.Contains(t, domainErr.Message, "Anna Smith")
	require.Contains(t, domainErr.Message, "2026-09-01")
	require.Contains(t, domainErr.Message, "10:30")

	// Same slot with different staff is fine.
	input.StaffID = "2"
	_, err = svc.BookAppointment(context.Background(), input)
	require.NoError(t, err)
}

func TestBookAppointment_ConcurrentSameSlotBooksOnce(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	const workers = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	var booked atomic.Int32
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, err := svc.BookAppointment(ctx, validInput()); err == nil {
				booked.Add(1)
			} else {
				errs <- err
			}
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	// Exactly one request may win; every loser gets the conflict error.
	require.Equal(t, int32(1), booked.Load())
	require.Len(t, svc.ListAppointments(ctx), 1)
	for err := range errs {
		requireDomainErr(t, err, "SLOT_UNAVAILABLE")
	}
}

func TestUpdateAppointment_MoveAndRevalidate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	first, err := svc.BookAppointment(ctx, validInput())
	require.NoError(t, err)

	second := validInput()
	second.Time = "14:00"
	blocked, err := svc.BookAppointment(ctx, second)
	require.NoError(t, err)

	// Re-saving on the appointment's own slot works.
	sameTime := first.Time
	updated, err := svc.UpdateAppointment(ctx, first.ID, BookingUpdateInput{Time: &sameTime})
	require.NoError(t, err)
	require.Equal(t, first.ID, updated.ID)

	// Moving onto the other appointment's slot fails.
	takenTime := blocked.Time
	_, err = svc.UpdateAppointment(ctx, first.ID, BookingUpdateInput{Time: &takenTime})
	requireDomainErr(t, err, "SLOT_UNAVAILABLE")

	// Moving to a free slot succeeds.
	freeTime := "16:00"
	updated, err = svc.UpdateAppointment(ctx, first.ID, BookingUpdateInput{Time: &freeTime})
	require.NoError(t, err)
	require.Equal(t, "16:00", updated.Time)
}

func TestUpdateAppointment_ServiceChangeRecomputesTotals(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	appt, err := svc.BookAppointment(ctx, validInput())
	require.NoError(t, err)

	updated, err := svc.UpdateAppointment(ctx, appt.ID, BookingUpdateInput{ServiceIDs: []string{"8"}})
	require.NoError(t, err)
	require.Equal(t, []string{"8"}, updated.ServiceIDs)
	require.Equal(t, 30, updated.TotalDuration)
	require.Equal(t, 30.0, updated.TotalPrice)
}

func TestUpdateAppointment_NotFound(t *testing.T) {
	svc := newTestService(t)
	newTime := "10:00"

	_, err := svc.UpdateAppointment(context.Background(), "missing", BookingUpdateInput{Time: &newTime})
	requireDomainErr(t, err, "NOT_FOUND")
}

func TestCancelAppointment(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	appt, err := svc.BookAppointment(ctx, validInput())
	require.NoError(t, err)

	require.NoError(t, svc.CancelAppointment(ctx, appt.ID))
	require.Empty(t, svc.ListAppointments(ctx))

	err = svc.CancelAppointment(ctx, appt.ID)
	requireDomainErr(t, err, "NOT_FOUND")
}

func TestSlotAvailability_ExcludeID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	appt, err := svc.BookAppointment(ctx, validInput())
	require.NoError(t, err)

	statuses, err := svc.SlotAvailability(ctx, "2026-09-01", "1", 60, "")
	require.NoError(t, err)
	byTime := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		byTime[s.Time] = s.Available
	}
	require.False(t, byTime["10:00"])
	require.False(t, byTime["10:30"])

	statuses, err = svc.SlotAvailability(ctx, "2026-09-01", "1", 60, appt.ID)
	require.NoError(t, err)
	for _, s := range statuses {
		require.True(t, s.Available, "slot %s", s.Time)
	}
}

func TestDaySchedule_SortsByStaffThenTime(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, in := range []struct{ staff, t string }{
		{"2", "11:00"},
		{"1", "14:00"},
		{"1", "09:00"},
	} {
		input := validInput()
		input.StaffID = in.staff
		input.Time = in.t
		_, err := svc.BookAppointment(ctx, input)
		require.NoError(t, err)
	}
	other := validInput()
	other.Date = "2026-09-02"
	_, err := svc.BookAppointment(ctx, other)
	require.NoError(t, err)

	day := svc.DaySchedule(ctx, "2026-09-01")
	require.Len(t, day, 3)
	require.Equal(t, "1", day[0].StaffID)
	require.Equal(t, "09:00", day[0].Time)
	require.Equal(t, "1", day[1].StaffID)
	require.Equal(t, "14:00", day[1].Time)
	require.Equal(t, "2", day[2].StaffID)
}
