package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/salon-booking-service/internal/domain"
	"github.com/spec-kit/salon-booking-service/internal/events"
)

// ErrNotFound reports an unknown appointment id.
var ErrNotFound = errors.New("appointment not found")

// Persister syncs the appointment list to durable storage.
type Persister interface {
	Load(ctx context.Context) ([]domain.Appointment, error)
	Save(ctx context.Context, appointments []domain.Appointment) error
}

// AppointmentStore is the single source of truth for appointments: an
// insertion-ordered in-memory list synced to a Persister after every
// mutation. The store holds no scheduling policy of its own; callers pass a
// ConflictGuard and the store runs it under the mutation lock, so concurrent
// writers cannot both see a slot free and both commit. Persistence failures
// are logged and the in-memory mutation stands, so the core keeps working
// when storage is down. Every mutation is published on the event dispatcher.
type AppointmentStore struct {
	mu           sync.Mutex
	appointments []domain.Appointment
	persister    Persister
	dispatcher   events.Dispatcher
	logger       *zap.Logger
}

// NewAppointmentStore constructs the store.
func NewAppointmentStore(persister Persister, dispatcher events.Dispatcher, logger *zap.Logger) *AppointmentStore {
	return &AppointmentStore{
		persister:  persister,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Load hydrates the store from the persister. Missing or unreadable data
// degrades to an empty list.
func (s *AppointmentStore) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appointments, err := s.persister.Load(ctx)
	if err != nil {
		s.logger.Warn("loading persisted appointments failed; starting empty", zap.Error(err))
		s.appointments = nil
		return
	}
	for _, appt := range appointments {
		if appt.TotalDuration <= 0 {
			s.logger.Warn("appointment record missing total duration; default will apply",
				zap.String("appointment_id", appt.ID))
		}
	}
	s.appointments = appointments
}

// List returns an insertion-order snapshot of all appointments.
func (s *AppointmentStore) List() []domain.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]domain.Appointment, len(s.appointments))
	copy(snapshot, s.appointments)
	return snapshot
}

// GetByID returns one appointment or ErrNotFound.
func (s *AppointmentStore) GetByID(id string) (domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, appt := range s.appointments {
		if appt.ID == id {
			return appt, nil
		}
	}
	return domain.Appointment{}, ErrNotFound
}

// Create assigns a collision-resistant id and creation timestamp, appends the
// record and persists the new list. A non-nil guard is evaluated against the
// current list under the store lock; if it rejects, nothing is written and
// domain.ErrSlotConflict is returned.
func (s *AppointmentStore) Create(ctx context.Context, appt domain.Appointment, guard domain.ConflictGuard) (domain.Appointment, error) {
	s.mu.Lock()
	if guard != nil && !guard(s.appointments) {
		s.mu.Unlock()
		return domain.Appointment{}, domain.ErrSlotConflict
	}
	appt.ID = uuid.NewString()
	appt.CreatedAt = time.Now()
	if appt.Status == "" {
		appt.Status = domain.AppointmentStatusConfirmed
	}
	s.appointments = append(s.appointments, appt)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.publish(ctx, events.NewEvent(events.EventAppointmentCreated, &appt, events.AppointmentCreatedPayload{
		StaffID:       appt.StaffID,
		Date:          appt.Date,
		Time:          appt.Time,
		TotalDuration: appt.TotalDuration,
		TotalPrice:    appt.TotalPrice,
		ClientName:    appt.ClientName,
	}))
	return appt, nil
}

// Update merges non-nil patch fields into the stored record and persists.
// ID and CreatedAt are never overwritten. A non-nil guard runs under the
// store lock before the merge; on rejection the record is left untouched and
// domain.ErrSlotConflict is returned.
func (s *AppointmentStore) Update(ctx context.Context, id string, patch domain.AppointmentPatch, guard domain.ConflictGuard) (domain.Appointment, error) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return domain.Appointment{}, ErrNotFound
	}
	if guard != nil && !guard(s.appointments) {
		s.mu.Unlock()
		return domain.Appointment{}, domain.ErrSlotConflict
	}
	applyPatch(&s.appointments[idx], patch)
	updated := s.appointments[idx]
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.publish(ctx, events.NewEvent(events.EventAppointmentUpdated, &updated, events.AppointmentUpdatedPayload{
		StaffID: updated.StaffID,
		Date:    updated.Date,
		Time:    updated.Time,
	}))
	return updated, nil
}

// Delete removes the record and persists the shortened list.
func (s *AppointmentStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	removed := s.appointments[idx]
	s.appointments = append(s.appointments[:idx], s.appointments[idx+1:]...)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.publish(ctx, events.NewEvent(events.EventAppointmentCancelled, &removed, events.AppointmentCancelledPayload{
		StaffID: removed.StaffID,
		Date:    removed.Date,
		Time:    removed.Time,
	}))
	return nil
}

// Reconcile merges a remote-sourced list into the store: on id collision the
// local copy wins, remote-only records are appended. Local edits and
// cancellations made while the remote source was unreachable are therefore
// never clobbered.
func (s *AppointmentStore) Reconcile(ctx context.Context, remote []domain.Appointment) {
	s.mu.Lock()
	localCount := len(s.appointments)
	known := make(map[string]struct{}, localCount)
	for _, appt := range s.appointments {
		known[appt.ID] = struct{}{}
	}
	for _, appt := range remote {
		if _, exists := known[appt.ID]; exists {
			continue
		}
		s.appointments = append(s.appointments, appt)
	}
	merged := len(s.appointments)
	if merged != localCount {
		s.persistLocked(ctx)
	}
	s.mu.Unlock()

	s.publish(ctx, events.NewEvent(events.EventAppointmentsReconciled, nil, events.AppointmentsReconciledPayload{
		LocalCount:  localCount,
		RemoteCount: len(remote),
		MergedCount: merged,
	}))
}

func (s *AppointmentStore) indexLocked(id string) int {
	for i := range s.appointments {
		if s.appointments[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *AppointmentStore) persistLocked(ctx context.Context) {
	snapshot := make([]domain.Appointment, len(s.appointments))
	copy(snapshot, s.appointments)
	if err := s.persister.Save(ctx, snapshot); err != nil {
		s.logger.Warn("persisting appointments failed; continuing on in-memory state", zap.Error(err))
	}
}

func (s *AppointmentStore) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func applyPatch(appt *domain.Appointment, patch domain.AppointmentPatch) {
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
	if patch.Status != nil {
		appt.Status = *patch.Status
	}
}
