package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/salon-booking-service/internal/domain"
	"github.com/spec-kit/salon-booking-service/internal/events"
)

// memPersister records saves in memory; failErr makes every Save fail.
type memPersister struct {
	stored    []domain.Appointment
	loadErr   error
	failErr   error
	saveCount int
}

func (p *memPersister) Load(_ context.Context) ([]domain.Appointment, error) {
	if p.loadErr != nil {
		return nil, p.loadErr
	}
	return p.stored, nil
}

func (p *memPersister) Save(_ context.Context, appointments []domain.Appointment) error {
	p.saveCount++
	if p.failErr != nil {
		return p.failErr
	}
	p.stored = appointments
	return nil
}

func newTestStore(t *testing.T, persister Persister) (*AppointmentStore, *[]events.Event) {
	t.Helper()
	dispatcher := events.NewInMemoryDispatcher()
	var published []events.Event
	for _, eventType := range []events.EventType{
		events.EventAppointmentCreated,
		events.EventAppointmentUpdated,
		events.EventAppointmentCancelled,
		events.EventAppointmentsReconciled,
	} {
		dispatcher.Subscribe(eventType, func(_ context.Context, event events.Event) error {
			published = append(published, event)
			return nil
		})
	}
	store := NewAppointmentStore(persister, dispatcher, zap.NewNop())
	store.Load(context.Background())
	return store, &published
}

func sampleAppointment(staffID, date, start string) domain.Appointment {
	return domain.Appointment{
		ServiceIDs:    []string{"svc-haircut"},
		StaffID:       staffID,
		Date:          date,
		Time:          start,
		TotalDuration: 30,
		TotalPrice:    45,
		ClientName:    "Jo Client",
		Phone:         "5551234567",
	}
}

func TestStore_CreateAssignsIdentityAndPersists(t *testing.T) {
	persister := &memPersister{}
	store, published := newTestStore(t, persister)

	created, err := store.Create(context.Background(), sampleAppointment("staff-anna", "2026-09-01", "10:00"), nil)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())
	require.Equal(t, domain.AppointmentStatusConfirmed, created.Status)

	listed := store.List()
	require.Len(t, listed, 1)
	require.Equal(t, created.ID, listed[0].ID)
	require.Len(t, persister.stored, 1)

	require.Len(t, *published, 1)
	require.Equal(t, events.EventAppointmentCreated, (*published)[0].Type)
	require.Equal(t, created.ID, (*published)[0].AppointmentID)
}

func TestStore_CreateGeneratesUniqueIDs(t *testing.T) {
	store, _ := newTestStore(t, &memPersister{})

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		created, err := store.Create(context.Background(), sampleAppointment("staff-anna", "2026-09-01", "10:00"), nil)
		require.NoError(t, err)
		_, dup := seen[created.ID]
		require.False(t, dup, "duplicate id %s", created.ID)
		seen[created.ID] = struct{}{}
	}
}

func TestStore_GetByID(t *testing.T) {
	store, _ := newTestStore(t, &memPersister{})
	created, err := store.Create(context.Background(), sampleAppointment("staff-anna", "2026-09-01", "10:00"), nil)
	require.NoError(t, err)

	found, err := store.GetByID(created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)

	_, err = store.GetByID("nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_UpdateMergesPatchAndKeepsIdentity(t *testing.T) {
	store, published := newTestStore(t, &memPersister{})
	created, err := store.Create(context.Background(), sampleAppointment("staff-anna", "2026-09-01", "10:00"), nil)
	require.NoError(t, err)

	newTime := "14:00"
	newName := "Maria Garcia"
	updated, err := store.Update(context.Background(), created.ID, domain.AppointmentPatch{
		Time:       &newTime,
		ClientName: &newName,
	}, nil)
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)
	require.Equal(t, "14:00", updated.Time)
	require.Equal(t, "Maria Garcia", updated.ClientName)
	// Unpatched fields are untouched.
	require.Equal(t, "2026-09-01", updated.Date)
	require.Equal(t, "5551234567", updated.Phone)

	require.Equal(t, events.EventAppointmentUpdated, (*published)[len(*published)-1].Type)

	_, err = store.Update(context.Background(), "nope", domain.AppointmentPatch{Time: &newTime}, nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_DeletePreservesOrder(t *testing.T) {
	store, published := newTestStore(t, &memPersister{})
	first, _ := store.Create(context.Background(), sampleAppointment("staff-anna", "2026-09-01", "09:00"), nil)
	second, _ := store.Create(context.Background(), sampleAppointment("staff-anna", "2026-09-01", "10:00"), nil)
	third, _ := store.Create(context.Background(), sampleAppointment("staff-anna", "2026-09-01", "11:00"), nil)

	require.NoError(t, store.Delete(context.Background(), second.ID))

	listed := store.List()
	require.Len(t, listed, 2)
	require.Equal(t, first.ID, listed[0].ID)
	require.Equal(t, third.ID, listed[1].ID)

	require.Equal(t, events.EventAppointmentCancelled, (*published)[len(*published)-1].Type)
	require.ErrorIs(t, store.Delete(context.Background(), second.ID), ErrNotFound)
}

func TestStore_ListReturnsSnapshot(t *testing.T) {
	store, _ := newTestStore(t, &memPersister{})
	created, _ := store.Create(context.Background(), sampleAppointment("staff-anna", "2026-09-01", "10:00"), nil)

	snapshot := store.List()
	snapshot[0].ClientName = "mutated"

	found, err := store.GetByID(created.ID)
	require.NoError(t, err)
	require.Equal(t, "Jo Client", found.ClientName)
}

func TestStore_LoadHydratesFromPersister(t *testing.T) {
	persister := &memPersister{stored: []domain.Appointment{
		{ID: "p1", StaffID: "staff-anna", Date: "2026-09-01", Time: "10:00", TotalDuration: 30, CreatedAt: time.Now()},
	}}
	store, _ := newTestStore(t, persister)

	require.Len(t, store.List(), 1)
}

func TestStore_LoadFailureStartsEmpty(t *testing.T) {
	persister := &memPersister{loadErr: errors.New("redis down")}
	store, _ := newTestStore(t, persister)

	require.Empty(t, store.List())
}

func TestStore_PersistFailureKeepsMemoryState(t *testing.T) {
	persister := &memPersister{failErr: errors.New("redis down")}
	store, _ := newTestStore(t, persister)

	created, err := store.Create(context.Background(), sampleAppointment("staff-anna", "2026-09-01", "10:00"), nil)
	require.NoError(t, err)

	found, err := store.GetByID(created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)
	require.Positive(t, persister.saveCount)
}

func TestStore_ReconcileLocalWins(t *testing.T) {
	persister := &memPersister{}
	store, published := newTestStore(t, persister)
	local, err := store.Create(context.Background(), sampleAppointment("staff-anna", "2026-09-01", "10:00"), nil)
	require.NoError(t, err)

	remoteCopy := local
	remoteCopy.ClientName = "Remote Edit"
	remoteOnly := domain.Appointment{
		ID: "remote-1", StaffID: "staff-maria", Date: "2026-09-02", Time: "11:00", TotalDuration: 60,
	}
	store.Reconcile(context.Background(), []domain.Appointment{remoteCopy, remoteOnly})

	listed := store.List()
	require.Len(t, listed, 2)
	require.Equal(t, "Jo Client", listed[0].ClientName)
	require.Equal(t, "remote-1", listed[1].ID)

	last := (*published)[len(*published)-1]
	require.Equal(t, events.EventAppointmentsReconciled, last.Type)
}

func TestStore_CreateGuardRunsUnderLock(t *testing.T) {
	persister := &memPersister{}
	store, _ := newTestStore(t, persister)

	// Guard sees the list the write will act on and can veto the append.
	_, err := store.Create(context.Background(), sampleAppointment("staff-anna", "2026-09-01", "10:00"),
		func(existing []domain.Appointment) bool { return len(existing) == 0 })
	require.NoError(t, err)

	_, err = store.Create(context.Background(), sampleAppointment("staff-anna", "2026-09-01", "10:00"),
		func(existing []domain.Appointment) bool { return len(existing) == 0 })
	require.ErrorIs(t, err, domain.ErrSlotConflict)

	require.Len(t, store.List(), 1)
	require.Len(t, persister.stored, 1)
}

func TestStore_UpdateGuardRejectionLeavesRecordUntouched(t *testing.T) {
	store, _ := newTestStore(t, &memPersister{})
	created, err := store.Create(context.Background(), sampleAppointment("staff-anna", "2026-09-01", "10:00"), nil)
	require.NoError(t, err)

	newTime := "14:00"
	_, err = store.Update(context.Background(), created.ID, domain.AppointmentPatch{Time: &newTime},
		func([]domain.Appointment) bool { return false })
	require.ErrorIs(t, err, domain.ErrSlotConflict)

	found, err := store.GetByID(created.ID)
	require.NoError(t, err)
	require.Equal(t, "10:00", found.Time)
}

func TestStore_ReconcileNoChangeSkipsPersist(t *testing.T) {
	persister := &memPersister{}
	store, _ := newTestStore(t, persister)
	local, err := store.Create(context.Background(), sampleAppointment("staff-anna", "2026-09-01", "10:00"), nil)
	require.NoError(t, err)
	savesBefore := persister.saveCount

	store.Reconcile(context.Background(), []domain.Appointment{local})
	require.Equal(t, savesBefore, persister.saveCount)
}
