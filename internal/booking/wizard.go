package booking

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/salon-booking-service/internal/domain"
	"github.com/spec-kit/salon-booking-service/internal/schedule"
)

// Step identifies a wizard stage.
type Step int

const (
	StepServices Step = iota + 1
	StepStaff
	StepSchedule
	StepDetails
)

// String names the step for transport and logging.
func (s Step) String() string {
	switch s {
	case StepServices:
		return "selecting_services"
	case StepStaff:
		return "selecting_staff"
	case StepSchedule:
		return "selecting_date_time"
	case StepDetails:
		return "entering_details"
	}
	return "unknown"
}

// Status describes the wizard outcome.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusConfirmed  Status = "confirmed"
	StatusFailed     Status = "failed"
)

// FailReasonSlotTaken is reported when the chosen slot was booked by another
// session between selection and submission.
const FailReasonSlotTaken = "slot no longer available"

var (
	ErrStepIncomplete = errors.New("current step incomplete")
	ErrSlotTaken      = errors.New(FailReasonSlotTaken)
	ErrInvalidForm    = errors.New("contact details invalid")
	ErrPastDate       = errors.New("date is in the past")
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidSlot    = errors.New("time not on the booking grid")
	ErrNotInProgress  = errors.New("wizard already finished")
	ErrNoSelection    = errors.New("staff and services must be selected first")
)

// Draft is the ephemeral selection state of one wizard session. It is
// discarded on successful submission or abandonment.
type Draft struct {
	Services []domain.Service
	Staff    *domain.StaffMember
	Date     string
	Time     string
	Form     ContactForm
}

// TotalDuration sums the selected services' durations in minutes.
func (d Draft) TotalDuration() int {
	total := 0
	for _, svc := range d.Services {
		total += svc.Duration
	}
	return total
}

// TotalPrice sums the selected services' prices.
func (d Draft) TotalPrice() float64 {
	total := 0.0
	for _, svc := range d.Services {
		total += svc.Price
	}
	return total
}

// Book is the slice of the appointment store the booking flows need: a live
// snapshot for advisory availability checks plus guarded mutations for
// submit, where the guard runs under the store lock and makes the final
// conflict check and the write atomic.
type Book interface {
	List() []domain.Appointment
	Create(ctx context.Context, appt domain.Appointment, guard domain.ConflictGuard) (domain.Appointment, error)
	Update(ctx context.Context, id string, patch domain.AppointmentPatch, guard domain.ConflictGuard) (domain.Appointment, error)
}

// SlotStatus pairs a grid slot with its availability for the current selection.
type SlotStatus struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// Wizard sequences service selection, staff selection, date/time selection
// and contact details, gating forward progress on per-step validity. A
// wizard serves one session; callers sequence their own access.
type Wizard struct {
	checker *schedule.Checker
	book    Book
	now     func() time.Time

	step       Step
	status     Status
	failReason string
	draft      Draft
	fieldErrs  FieldErrors
	confirmed  *domain.Appointment
}

// NewWizard starts a fresh session at the service-selection step.
func NewWizard(checker *schedule.Checker, book Book) *Wizard {
	return &Wizard{
		checker: checker,
		book:    book,
		now:     time.Now,
		step:    StepServices,
		status:  StatusInProgress,
	}
}

// Step returns the current stage.
func (w *Wizard) Step() Step { return w.step }

// Status returns the wizard outcome so far.
func (w *Wizard) Status() Status { return w.status }

// FailReason returns the reason for a failed submission, empty otherwise.
func (w *Wizard) FailReason() string { return w.failReason }

// Draft returns a copy of the current selection state.
func (w *Wizard) Draft() Draft { return w.draft }

// FieldErrors returns the most recent contact-form validation result.
func (w *Wizard) FieldErrors() FieldErrors { return w.fieldErrs }

// Confirmed returns the committed appointment after a successful submission.
func (w *Wizard) Confirmed() *domain.Appointment { return w.confirmed }

// ToggleService adds the service to the selection, or removes it if already
// selected.
func (w *Wizard) ToggleService(svc domain.Service) {
	w.reopen()
	for i, existing := range w.draft.Services {
		if existing.ID == svc.ID {
			w.draft.Services = append(w.draft.Services[:i], w.draft.Services[i+1:]...)
			return
		}
	}
	w.draft.Services = append(w.draft.Services, svc)
}

// SetServices replaces the service selection wholesale.
func (w *Wizard) SetServices(services []domain.Service) {
	w.reopen()
	w.draft.Services = services
}

// SelectStaff chooses the specialist for the appointment.
func (w *Wizard) SelectStaff(member domain.StaffMember) {
	w.reopen()
	w.draft.Staff = &member
}

// SelectDate chooses the calendar date and clears any previously selected
// time: a time valid for one date carries no meaning for another.
func (w *Wizard) SelectDate(date string) error {
	if err := validateDate(date, w.now()); err != nil {
		return err
	}
	w.reopen()
	w.draft.Date = date
	w.draft.Time = ""
	return nil
}

// SelectTime chooses a slot on the grid, verifying availability against the
// live appointment list at selection time.
func (w *Wizard) SelectTime(t string) error {
	if w.draft.Staff == nil || len(w.draft.Services) == 0 {
		return ErrNoSelection
	}
	if w.draft.Date == "" {
		return ErrInvalidDate
	}
	if !w.checker.ValidSlot(t) {
		return ErrInvalidSlot
	}
	if !w.checker.IsAvailable(w.request(w.draft.Date, t), w.book.List()) {
		return ErrSlotTaken
	}
	w.reopen()
	w.draft.Time = t
	return nil
}

// SetForm stores the contact details and revalidates them.
func (w *Wizard) SetForm(form ContactForm) FieldErrors {
	w.reopen()
	form.Phone = NormalizePhone(form.Phone)
	w.draft.Form = form
	w.fieldErrs = ValidateForm(form)
	return w.fieldErrs
}

// CanProceed reports whether the current step's guard is satisfied.
func (w *Wizard) CanProceed() bool {
	switch w.step {
	case StepServices:
		return len(w.draft.Services) > 0
	case StepStaff:
		return w.draft.Staff != nil
	case StepSchedule:
		return w.draft.Date != "" && w.draft.Time != ""
	case StepDetails:
		return ValidateForm(w.draft.Form).Valid()
	}
	return false
}

// Next advances one step when the guard allows it. Leaving the schedule step
// re-checks the chosen slot against the current appointment list, since other
// sessions may have booked it while this wizard was open.
func (w *Wizard) Next() error {
	if w.status != StatusInProgress {
		return ErrNotInProgress
	}
	if !w.CanProceed() {
		return ErrStepIncomplete
	}
	if w.step == StepSchedule {
		if !w.checker.IsAvailable(w.request(w.draft.Date, w.draft.Time), w.book.List()) {
			w.draft.Time = ""
			return ErrSlotTaken
		}
	}
	if w.step < StepDetails {
		w.step++
	}
	return nil
}

// Back moves one step backward. Previously entered data is kept.
func (w *Wizard) Back() {
	w.reopen()
	if w.step > StepServices {
		w.step--
	}
}

// SlotAvailability renders the daily grid for the given date against the
// current staff and duration selection.
func (w *Wizard) SlotAvailability(date string) ([]SlotStatus, error) {
	if w.draft.Staff == nil || len(w.draft.Services) == 0 {
		return nil, ErrNoSelection
	}
	if err := validateDate(date, w.now()); err != nil {
		return nil, err
	}
	appointments := w.book.List()
	slots := w.checker.Slots()
	statuses := make([]SlotStatus, 0, len(slots))
	for _, slot := range slots {
		statuses = append(statuses, SlotStatus{
			Time:      slot,
			Available: w.checker.IsAvailable(w.request(date, slot), appointments),
		})
	}
	return statuses, nil
}

// Submit runs the final gates and commits the appointment. The slot check is
// delegated to the Book's guard so check and append are one atomic step; a
// conflict discovered there (the submission race) fails the wizard with a
// specific reason and keeps it on the details step. Any later selection
// change reopens it.
func (w *Wizard) Submit(ctx context.Context) (*domain.Appointment, error) {
	if w.status == StatusConfirmed {
		return nil, ErrNotInProgress
	}
	if w.step != StepDetails {
		return nil, ErrStepIncomplete
	}
	w.fieldErrs = ValidateForm(w.draft.Form)
	if !w.fieldErrs.Valid() {
		return nil, ErrInvalidForm
	}

	date, slot := w.draft.Date, w.draft.Time
	appt, err := w.book.Create(ctx, w.buildAppointment(), func(existing []domain.Appointment) bool {
		return w.checker.IsAvailable(w.request(date, slot), existing)
	})
	if errors.Is(err, domain.ErrSlotConflict) {
		w.status = StatusFailed
		w.failReason = FailReasonSlotTaken
		return nil, ErrSlotTaken
	}
	if err != nil {
		w.status = StatusFailed
		w.failReason = err.Error()
		return nil, err
	}

	w.status = StatusConfirmed
	w.confirmed = &appt
	w.draft = Draft{}
	return &appt, nil
}

func (w *Wizard) buildAppointment() domain.Appointment {
	serviceIDs := make([]string, 0, len(w.draft.Services))
	for _, svc := range w.draft.Services {
		serviceIDs = append(serviceIDs, svc.ID)
	}
	return domain.Appointment{
		ServiceIDs:    serviceIDs,
		StaffID:       w.draft.Staff.ID,
		Date:          w.draft.Date,
		Time:          w.draft.Time,
		TotalDuration: w.draft.TotalDuration(),
		TotalPrice:    w.draft.TotalPrice(),
		ClientName:    w.draft.Form.ClientName,
		Phone:         w.draft.Form.Phone,
		Email:         w.draft.Form.Email,
		Notes:         w.draft.Form.Notes,
		Status:        domain.AppointmentStatusConfirmed,
	}
}

func (w *Wizard) request(date, t string) schedule.Request {
	return schedule.Request{
		Date:     date,
		Time:     t,
		StaffID:  w.draft.Staff.ID,
		Duration: w.draft.TotalDuration(),
	}
}

// reopen clears a failed outcome once the user changes their selection.
func (w *Wizard) reopen() {
	if w.status == StatusFailed {
		w.status = StatusInProgress
		w.failReason = ""
	}
}

// validateDate checks the YYYY-MM-DD format and rejects dates before today.
func validateDate(date string, now time.Time) error {
	parsed, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return ErrInvalidDate
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if parsed.Before(today) {
		return ErrPastDate
	}
	return nil
}
