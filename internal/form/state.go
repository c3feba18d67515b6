// Package form holds the in-progress application draft and applies field edits to it.
package form

import (
	"github.com/jonathan/job-application-form/internal/types"
)

// State owns the current ApplicationDraft. It performs no validation: any
// value, including empty or out-of-range text, is accepted.
//
// State is not safe for concurrent use; edits are applied one at a time.
type State struct {
	draft types.ApplicationDraft
}

// NewState returns a State holding an empty draft.
func NewState() *State {
	return &State{}
}

// NewStateFrom returns a State seeded with an existing draft.
func NewStateFrom(draft types.ApplicationDraft) *State {
	return &State{draft: draft}
}

// Draft returns the current snapshot.
func (s *State) Draft() types.ApplicationDraft {
	return s.draft
}

// Apply applies one edit and returns the new snapshot. Skill names take a bool
// that is merged into the skill flags; every other field takes a string that
// replaces the stored value.
//
// Apply panics with *types.UnknownFieldError for a name outside the form and
// with *types.ValueTypeError for a value of the wrong type, including any
// value given to the skills aggregate itself. Callers fed by
// untrusted input should check names with types.ParseFieldName and
// types.ParseSkill first, or use ApplyChecked.
func (s *State) Apply(name string, value any) types.ApplicationDraft {
	next, err := apply(s.draft, name, value)
	if err != nil {
		panic(err)
	}
	s.draft = next
	return next
}

// ApplyChecked is Apply returning the programming errors instead of panicking.
// The draft is unchanged when an error is returned.
func (s *State) ApplyChecked(name string, value any) (types.ApplicationDraft, error) {
	next, err := apply(s.draft, name, value)
	if err != nil {
		return s.draft, err
	}
	s.draft = next
	return next, nil
}

// ApplyText replaces a scalar field.
func (s *State) ApplyText(field types.FieldName, value string) types.ApplicationDraft {
	return s.Apply(string(field), value)
}

// ApplySkill sets one skill flag, leaving the others untouched.
func (s *State) ApplySkill(skill types.Skill, checked bool) types.ApplicationDraft {
	s.draft = s.draft.WithSkill(skill, checked)
	return s.draft
}

func apply(draft types.ApplicationDraft, name string, value any) (types.ApplicationDraft, error) {
	if skill, err := types.ParseSkill(name); err == nil {
		checked, ok := value.(bool)
		if !ok {
			return draft, &types.ValueTypeError{Name: name, Want: "bool", Got: value}
		}
		return draft.WithSkill(skill, checked), nil
	}

	field, err := types.ParseFieldName(name)
	if err != nil {
		return draft, err
	}
	if field == types.FieldSkills {
		// edited one flag at a time, by skill name
		return draft, &types.ValueTypeError{Name: name, Want: "per-skill bool", Got: value}
	}
	text, ok := value.(string)
	if !ok {
		return draft, &types.ValueTypeError{Name: name, Want: "string", Got: value}
	}
	next, ok := draft.WithText(field, text)
	if !ok {
		return draft, &types.ValueTypeError{Name: name, Want: "string", Got: value}
	}
	return next, nil
}
