// Package validation decides which form fields are active for a draft and validates them.
package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/job-application-form/internal/types"
)

// baseFields are active regardless of position.
var baseFields = types.NewFieldSet(
	types.FieldFullName,
	types.FieldEmail,
	types.FieldPhoneNumber,
	types.FieldPosition,
	types.FieldSkills,
	types.FieldPreferredInterviewTime,
)

// ActiveFields returns the fields shown and validated for the draft's
// position. It is the single source of truth for conditional visibility.
func ActiveFields(draft types.ApplicationDraft) types.FieldSet {
	return ActiveFieldsFor(draft.Position)
}

// ActiveFieldsFor returns the active fields for a position value. Unknown
// positions behave like PositionUnset.
func ActiveFieldsFor(position types.Position) types.FieldSet {
	active := baseFields
	switch position {
	case types.PositionDeveloper:
		active = active.With(types.FieldRelevantExperience)
	case types.PositionDesigner:
		active = active.With(types.FieldRelevantExperience).With(types.FieldPortfolioURL)
	case types.PositionManager:
		active = active.With(types.FieldManagementExperience)
	}
	return active
}

// Engine validates application drafts. It holds no per-draft state and may
// be shared.
type Engine struct {
	validate *validator.Validate
}

// New builds an Engine with the form rules registered.
func New() (*Engine, error) {
	v := validator.New()
	if err := registerRules(v); err != nil {
		return nil, err
	}
	return &Engine{validate: v}, nil
}

// MustNew is New that panics on error.
func MustNew() *Engine {
	e, err := New()
	if err != nil {
		panic(err)
	}
	return e
}

// ActiveFields returns the active fields for the draft.
func (e *Engine) ActiveFields(draft types.ApplicationDraft) types.FieldSet {
	return ActiveFields(draft)
}

// Validate checks every active field and returns the failures. Inactive
// fields are never checked, so their stale values never produce errors.
// The result is never nil.
func (e *Engine) Validate(draft types.ApplicationDraft) types.ErrorMap {
	errs := make(types.ErrorMap)
	for _, field := range ActiveFields(draft).Fields() {
		r, ok := fieldRules[field]
		if !ok {
			continue
		}
		if fe, failed := e.check(field, draft, r); failed {
			errs[field] = fe
		}
	}
	return errs
}

// check runs one field's tag chain. validator stops at the first failing
// tag, which gives the per-field cascade.
func (e *Engine) check(field types.FieldName, draft types.ApplicationDraft, r rule) (types.FieldError, bool) {
	var value any
	if field == types.FieldSkills {
		value = draft.Skills
	} else {
		value, _ = draft.Text(field)
	}

	err := e.validate.Var(value, r.tags)
	if err == nil {
		return types.FieldError{}, false
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		// only reachable with a malformed tag chain
		panic(fmt.Sprintf("validation: rule for %s: %v", field, err))
	}
	kind, ok := tagKinds[verrs[0].Tag()]
	if !ok {
		panic(fmt.Sprintf("validation: rule for %s failed on unmapped tag %q", field, verrs[0].Tag()))
	}
	return types.FieldError{Kind: kind, Message: r.messages[kind]}, true
}
