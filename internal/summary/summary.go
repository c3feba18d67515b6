// Package summary builds the read-only Application Summary of an accepted draft.
package summary

import (
	"errors"
	"strings"

	"github.com/jonathan/job-application-form/internal/session"
	"github.com/jonathan/job-application-form/internal/types"
	"github.com/jonathan/job-application-form/internal/validation"
)

// ErrNotAccepted is returned when a summary is requested for a session that
// is still being edited.
var ErrNotAccepted = errors.New("application has not been accepted")

// Entry is one line of the summary.
type Entry struct {
	Field types.FieldName `json:"field"`
	Label string          `json:"label"`
	Value string          `json:"value"`
}

// Summary lists the active fields of an accepted application in display order.
type Summary struct {
	SessionID string  `json:"session_id,omitempty"`
	Entries   []Entry `json:"entries"`
}

// Build renders the active fields of draft. Values of inactive fields are
// never included.
func Build(draft types.ApplicationDraft) Summary {
	active := validation.ActiveFields(draft)
	s := Summary{Entries: make([]Entry, 0, active.Len())}
	for _, f := range active.Fields() {
		s.Entries = append(s.Entries, Entry{
			Field: f,
			Label: f.Label(),
			Value: displayValue(draft, f),
		})
	}
	return s
}

// FromSession builds the summary of an accepted session.
func FromSession(c *session.Controller) (Summary, error) {
	draft, ok := c.Accepted()
	if !ok {
		return Summary{}, ErrNotAccepted
	}
	s := Build(draft)
	s.SessionID = c.ID().String()
	return s, nil
}

// Value returns the value shown for field, if it is part of the summary.
func (s Summary) Value(field types.FieldName) (string, bool) {
	for _, e := range s.Entries {
		if e.Field == field {
			return e.Value, true
		}
	}
	return "", false
}

func displayValue(draft types.ApplicationDraft, f types.FieldName) string {
	switch f {
	case types.FieldSkills:
		selected := draft.Skills.Selected()
		names := make([]string, len(selected))
		for i, skill := range selected {
			names[i] = skill.String()
		}
		return strings.Join(names, ", ")
	case types.FieldRelevantExperience:
		return draft.RelevantExperience + " years"
	}
	v, _ := draft.Text(f)
	return v
}
