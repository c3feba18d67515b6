package session

import (
	"github.com/jonathan/job-application-form/internal/form"
	"github.com/jonathan/job-application-form/internal/types"
	"github.com/jonathan/job-application-form/internal/validation"
)

// Session bundles the draft, its latest errors and the lifecycle state so
// that each call updates them together. It is what a presentation layer
// talks to: edits in, active fields and submit results out.
type Session struct {
	form       *form.State
	controller *Controller
}

// New starts an Editing session over an empty draft.
func New(engine *validation.Engine, opts ...Option) *Session {
	return NewFrom(types.ApplicationDraft{}, engine, opts...)
}

// NewFrom starts an Editing session over an existing draft.
func NewFrom(draft types.ApplicationDraft, engine *validation.Engine, opts ...Option) *Session {
	return &Session{
		form:       form.NewStateFrom(draft),
		controller: NewController(engine, opts...),
	}
}

// Controller exposes the underlying submission controller.
func (s *Session) Controller() *Controller {
	return s.controller
}

// Draft returns the current snapshot.
func (s *Session) Draft() types.ApplicationDraft {
	return s.form.Draft()
}

// ActiveFields returns the fields to show for the current draft.
func (s *Session) ActiveFields() types.FieldSet {
	return validation.ActiveFields(s.form.Draft())
}

// Apply applies one edit. Unknown names panic as in form.State.Apply.
// No edits are accepted once the session is accepted.
func (s *Session) Apply(name string, value any) (types.ApplicationDraft, error) {
	if s.controller.State() == types.SessionAccepted {
		return s.form.Draft(), ErrAlreadyAccepted
	}
	return s.form.Apply(name, value), nil
}

// Submit submits the current draft.
func (s *Session) Submit() (types.SessionState, error) {
	return s.controller.Submit(s.form.Draft())
}

// State returns the lifecycle state.
func (s *Session) State() types.SessionState {
	return s.controller.State()
}

// Errors returns the errors from the latest submit attempt.
func (s *Session) Errors() types.ErrorMap {
	return s.controller.Errors()
}
