package booking

import (
	"sync"

	"github.com/google/uuid"

	"github.com/spec-kit/salon-booking-service/internal/domain"
	"github.com/spec-kit/salon-booking-service/internal/schedule"
)

// Manager tracks in-flight wizard and edit sessions for the HTTP surface.
// Sessions are as ephemeral as the drafts they hold: they disappear on
// submission, explicit abandonment or process restart. Requests for one
// session are expected to arrive sequentially, matching the single-actor
// model of the booking UI.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Wizard
	edits    map[string]*Editor
	checker  *schedule.Checker
	book     Book
}

// NewManager constructs the session registry.
func NewManager(checker *schedule.Checker, book Book) *Manager {
	return &Manager{
		sessions: make(map[string]*Wizard),
		edits:    make(map[string]*Editor),
		checker:  checker,
		book:     book,
	}
}

// Start opens a new wizard session and returns its id.
func (m *Manager) Start() (string, *Wizard) {
	id := uuid.NewString()
	wizard := NewWizard(m.checker, m.book)

	m.mu.Lock()
	m.sessions[id] = wizard
	m.mu.Unlock()
	return id, wizard
}

// Session looks up an in-flight wizard.
func (m *Manager) Session(id string) (*Wizard, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wizard, ok := m.sessions[id]
	return wizard, ok
}

// End discards a session. Called after a confirmed submission or when the
// client abandons the flow.
func (m *Manager) End(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// StartEdit opens an edit session seeded from an existing appointment.
func (m *Manager) StartEdit(appt domain.Appointment) (string, *Editor) {
	id := uuid.NewString()
	editor := NewEditor(m.checker, m.book, appt)

	m.mu.Lock()
	m.edits[id] = editor
	m.mu.Unlock()
	return id, editor
}

// Edit looks up an in-flight edit session.
func (m *Manager) Edit(id string) (*Editor, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	editor, ok := m.edits[id]
	return editor, ok
}

// EndEdit discards an edit session.
func (m *Manager) EndEdit(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.edits, id)
}
