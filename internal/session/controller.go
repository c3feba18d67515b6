// Package session drives the editing/accepted lifecycle of one job application attempt.
package session

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonathan/job-application-form/internal/types"
)

// ErrAlreadyAccepted is returned when a session that has been accepted is
// submitted or edited again. Accepted is terminal.
var ErrAlreadyAccepted = errors.New("application already accepted")

// Validator computes the errors of a draft. *validation.Engine implements it.
type Validator interface {
	Validate(draft types.ApplicationDraft) types.ErrorMap
}

// Controller owns the SessionState and the most recent ErrorMap of one
// application attempt.
//
// Controller is not safe for concurrent use.
type Controller struct {
	id        uuid.UUID
	validator Validator
	logger    *slog.Logger

	state    types.SessionState
	errors   types.ErrorMap
	accepted types.ApplicationDraft
	attempts int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for submit attempts.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithID sets the session identifier instead of a random one.
func WithID(id uuid.UUID) Option {
	return func(c *Controller) {
		c.id = id
	}
}

// NewController returns a Controller in the Editing state.
func NewController(v Validator, opts ...Option) *Controller {
	c := &Controller{
		id:        uuid.New(),
		validator: v,
		logger:    slog.Default(),
		state:     types.SessionEditing,
		errors:    types.ErrorMap{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(slog.String("session_id", c.id.String()))
	return c
}

// ID returns the session identifier.
func (c *Controller) ID() uuid.UUID {
	return c.id
}

// State returns the current lifecycle state.
func (c *Controller) State() types.SessionState {
	return c.state
}

// Attempts returns how many times Submit ran validation.
func (c *Controller) Attempts() int {
	return c.attempts
}

// Errors returns a copy of the ErrorMap from the latest submit attempt.
func (c *Controller) Errors() types.ErrorMap {
	out := make(types.ErrorMap, len(c.errors))
	for f, e := range c.errors {
		out[f] = e
	}
	return out
}

// Accepted returns the accepted draft. ok is false until the session is
// accepted.
func (c *Controller) Accepted() (draft types.ApplicationDraft, ok bool) {
	if c.state != types.SessionAccepted {
		return types.ApplicationDraft{}, false
	}
	return c.accepted, true
}

// Submit validates the whole draft from scratch. An empty result moves the
// session to Accepted and keeps the draft for the summary; otherwise the
// session stays in Editing and the new errors replace the previous ones.
// Submitting an accepted session returns ErrAlreadyAccepted.
func (c *Controller) Submit(draft types.ApplicationDraft) (types.SessionState, error) {
	if c.state == types.SessionAccepted {
		return c.state, ErrAlreadyAccepted
	}

	errs := c.validator.Validate(draft)
	if errs == nil {
		errs = types.ErrorMap{}
	}
	c.attempts++
	c.errors = errs

	if errs.Empty() {
		c.state = types.SessionAccepted
		c.accepted = draft
	}

	c.logger.Info("application submitted",
		slog.String("state", string(c.state)),
		slog.Int("attempt", c.attempts),
		slog.Int("error_count", len(errs)),
	)
	for _, field := range errs.Fields() {
		c.logger.Debug("field rejected",
			slog.String("field", string(field)),
			slog.String("kind", string(errs[field].Kind)),
		)
	}
	return c.state, nil
}
