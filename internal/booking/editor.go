package booking

import (
	"context"
	"errors"

	"github.com/spec-kit/salon-booking-service/internal/domain"
	"github.com/spec-kit/salon-booking-service/internal/schedule"
)

// Editor is the reduced state machine for editing one existing appointment
// in place. It reuses the availability checker with the appointment's own id
// excluded, so the record never conflicts with itself, and the contact-form
// validator; submitting updates the stored record instead of creating one.
type Editor struct {
	checker *schedule.Checker
	book    Book

	appt      domain.Appointment
	date      string
	time      string
	form      ContactForm
	fieldErrs FieldErrors
}

// NewEditor opens an edit session seeded from the existing appointment.
func NewEditor(checker *schedule.Checker, book Book, appt domain.Appointment) *Editor {
	return &Editor{
		checker: checker,
		book:    book,
		appt:    appt,
		date:    appt.Date,
		time:    appt.Time,
		form: ContactForm{
			ClientName: appt.ClientName,
			Phone:      appt.Phone,
			Email:      appt.Email,
			Notes:      appt.Notes,
		},
	}
}

// AppointmentID returns the id of the appointment being edited.
func (e *Editor) AppointmentID() string { return e.appt.ID }

// Date returns the currently selected date.
func (e *Editor) Date() string { return e.date }

// Time returns the currently selected time.
func (e *Editor) Time() string { return e.time }

// Form returns the current contact details.
func (e *Editor) Form() ContactForm { return e.form }

// FieldErrors returns the most recent contact-form validation result.
func (e *Editor) FieldErrors() FieldErrors { return e.fieldErrs }

// SelectDate moves the appointment to another date and clears the time.
func (e *Editor) SelectDate(date string) {
	if date == e.date {
		return
	}
	e.date = date
	e.time = ""
}

// SelectTime picks a slot, revalidated against everything but this
// appointment itself.
func (e *Editor) SelectTime(t string) error {
	if !e.checker.ValidSlot(t) {
		return ErrInvalidSlot
	}
	if !e.checker.IsAvailable(e.request(e.date, t), e.book.List()) {
		return ErrSlotTaken
	}
	e.time = t
	return nil
}

// SetForm stores and revalidates the contact details.
func (e *Editor) SetForm(form ContactForm) FieldErrors {
	form.Phone = NormalizePhone(form.Phone)
	e.form = form
	e.fieldErrs = ValidateForm(form)
	return e.fieldErrs
}

// SlotAvailability renders the daily grid for the given date, with this
// appointment excluded from conflict checks.
func (e *Editor) SlotAvailability(date string) []SlotStatus {
	appointments := e.book.List()
	slots := e.checker.Slots()
	statuses := make([]SlotStatus, 0, len(slots))
	for _, slot := range slots {
		statuses = append(statuses, SlotStatus{
			Time:      slot,
			Available: e.checker.IsAvailable(e.request(date, slot), appointments),
		})
	}
	return statuses
}

// Submit re-runs validation, then merges the edit into the stored record
// with the availability check running as the store's guard, so the final
// conflict test and the write are atomic.
func (e *Editor) Submit(ctx context.Context) (*domain.Appointment, error) {
	if e.date == "" || e.time == "" {
		return nil, ErrStepIncomplete
	}
	e.fieldErrs = ValidateForm(e.form)
	if !e.fieldErrs.Valid() {
		return nil, ErrInvalidForm
	}

	date, slot := e.date, e.time
	updated, err := e.book.Update(ctx, e.appt.ID, domain.AppointmentPatch{
		Date:       &e.date,
		Time:       &e.time,
		ClientName: &e.form.ClientName,
		Phone:      &e.form.Phone,
		Email:      &e.form.Email,
		Notes:      &e.form.Notes,
	}, func(existing []domain.Appointment) bool {
		return e.checker.IsAvailable(e.request(date, slot), existing)
	})
	if errors.Is(err, domain.ErrSlotConflict) {
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, err
	}
	e.appt = updated
	return &updated, nil
}

func (e *Editor) request(date, t string) schedule.Request {
	duration := e.appt.TotalDuration
	if duration <= 0 {
		duration = e.checker.Hours().DefaultDuration
	}
	return schedule.Request{
		Date:      date,
		Time:      t,
		StaffID:   e.appt.StaffID,
		Duration:  duration,
		ExcludeID: e.appt.ID,
	}
}
