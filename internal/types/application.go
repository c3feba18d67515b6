// Package types provides type definitions for structured data used throughout the job application form.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// FieldName identifies one field of the application form.
type FieldName string

// Form fields, in display order.
const (
	FieldFullName               FieldName = "fullName"
	FieldEmail                  FieldName = "email"
	FieldPhoneNumber            FieldName = "phoneNumber"
	FieldPosition               FieldName = "position"
	FieldRelevantExperience     FieldName = "relevantExperience"
	FieldPortfolioURL           FieldName = "portfolioUrl"
	FieldManagementExperience   FieldName = "managementExperience"
	FieldSkills                 FieldName = "skills"
	FieldPreferredInterviewTime FieldName = "preferredInterviewTime"
)

// formOrder is the order fields are shown in. The index of a field in this
// slice is its bit in a FieldSet.
var formOrder = []FieldName{
	FieldFullName,
	FieldEmail,
	FieldPhoneNumber,
	FieldPosition,
	FieldRelevantExperience,
	FieldPortfolioURL,
	FieldManagementExperience,
	FieldSkills,
	FieldPreferredInterviewTime,
}

var fieldLabels = map[FieldName]string{
	FieldFullName:               "Full Name",
	FieldEmail:                  "Email",
	FieldPhoneNumber:            "Phone Number",
	FieldPosition:               "Applying for Position",
	FieldRelevantExperience:     "Relevant Experience",
	FieldPortfolioURL:           "Portfolio URL",
	FieldManagementExperience:   "Management Experience",
	FieldSkills:                 "Additional Skills",
	FieldPreferredInterviewTime: "Preferred Interview Time",
}

// FormOrder returns every field in display order.
func FormOrder() []FieldName {
	out := make([]FieldName, len(formOrder))
	copy(out, formOrder)
	return out
}

// ParseFieldName resolves a form field name. Skill names are not field
// names; use ParseSkill for those.
func ParseFieldName(name string) (FieldName, error) {
	for _, f := range formOrder {
		if string(f) == name {
			return f, nil
		}
	}
	return "", &UnknownFieldError{Name: name}
}

// Label returns the human-readable label of the field.
func (f FieldName) Label() string {
	if l, ok := fieldLabels[f]; ok {
		return l
	}
	return string(f)
}

func (f FieldName) index() int {
	for i, o := range formOrder {
		if o == f {
			return i
		}
	}
	return -1
}

// Position is the discriminator value selecting which conditional fields apply.
type Position string

const (
	PositionUnset     Position = ""
	PositionDeveloper Position = "Developer"
	PositionDesigner  Position = "Designer"
	PositionManager   Position = "Manager"
)

// Positions returns the selectable positions, excluding PositionUnset.
func Positions() []Position {
	return []Position{PositionDeveloper, PositionDesigner, PositionManager}
}

// Known reports whether p is one of the selectable positions.
func (p Position) Known() bool {
	switch p {
	case PositionDeveloper, PositionDesigner, PositionManager:
		return true
	}
	return false
}

// Skill is one of the fixed, independently toggled skill flags.
type Skill int

const (
	SkillJavaScript Skill = iota
	SkillCSS
	SkillPython

	numSkills
)

var skillNames = [numSkills]string{
	SkillJavaScript: "JavaScript",
	SkillCSS:        "CSS",
	SkillPython:     "Python",
}

// AllSkills returns every skill in display order.
func AllSkills() []Skill {
	out := make([]Skill, 0, numSkills)
	for s := Skill(0); s < numSkills; s++ {
		out = append(out, s)
	}
	return out
}

// ParseSkill resolves a skill by its display name.
func ParseSkill(name string) (Skill, error) {
	for s := Skill(0); s < numSkills; s++ {
		if skillNames[s] == name {
			return s, nil
		}
	}
	return 0, &UnknownFieldError{Name: name}
}

func (s Skill) String() string {
	if s < 0 || s >= numSkills {
		return fmt.Sprintf("Skill(%d)", int(s))
	}
	return skillNames[s]
}

// SkillSet maps every skill to whether it is selected. The zero value has
// nothing selected.
type SkillSet [numSkills]bool

// With returns a copy of the set with skill set to checked.
func (s SkillSet) With(skill Skill, checked bool) SkillSet {
	s[skill] = checked
	return s
}

// Has reports whether skill is selected.
func (s SkillSet) Has(skill Skill) bool {
	return s[skill]
}

// Any reports whether at least one skill is selected.
func (s SkillSet) Any() bool {
	for _, v := range s {
		if v {
			return true
		}
	}
	return false
}

// Selected returns the selected skills in display order.
func (s SkillSet) Selected() []Skill {
	var out []Skill
	for i, v := range s {
		if v {
			out = append(out, Skill(i))
		}
	}
	return out
}

// MarshalJSON encodes the set as an object of skill name to flag.
func (s SkillSet) MarshalJSON() ([]byte, error) {
	m := make(map[string]bool, numSkills)
	for i, v := range s {
		m[skillNames[i]] = v
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes an object of skill name to flag. Skills missing
// from the object are left unselected.
func (s *SkillSet) UnmarshalJSON(data []byte) error {
	var m map[string]bool
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("failed to parse skills: %w", err)
	}
	var out SkillSet
	for name, v := range m {
		skill, err := ParseSkill(name)
		if err != nil {
			return err
		}
		out[skill] = v
	}
	*s = out
	return nil
}

// ApplicationDraft is an immutable snapshot of every form value. Values of
// fields inactive under the current Position may be stale and must be ignored.
type ApplicationDraft struct {
	FullName               string   `json:"fullName"`
	Email                  string   `json:"email"`
	PhoneNumber            string   `json:"phoneNumber"`
	Position               Position `json:"position"`
	RelevantExperience     string   `json:"relevantExperience"`
	PortfolioURL           string   `json:"portfolioUrl"`
	ManagementExperience   string   `json:"managementExperience"`
	Skills                 SkillSet `json:"skills"`
	PreferredInterviewTime string   `json:"preferredInterviewTime"`
}

// Text returns the raw text of a scalar field. ok is false for FieldSkills
// and unknown fields.
func (d ApplicationDraft) Text(f FieldName) (value string, ok bool) {
	switch f {
	case FieldFullName:
		return d.FullName, true
	case FieldEmail:
		return d.Email, true
	case FieldPhoneNumber:
		return d.PhoneNumber, true
	case FieldPosition:
		return string(d.Position), true
	case FieldRelevantExperience:
		return d.RelevantExperience, true
	case FieldPortfolioURL:
		return d.PortfolioURL, true
	case FieldManagementExperience:
		return d.ManagementExperience, true
	case FieldPreferredInterviewTime:
		return d.PreferredInterviewTime, true
	}
	return "", false
}

// WithText returns a copy of the draft with the scalar field replaced.
// ok is false when f is not a scalar field.
func (d ApplicationDraft) WithText(f FieldName, value string) (ApplicationDraft, bool) {
	switch f {
	case FieldFullName:
		d.FullName = value
	case FieldEmail:
		d.Email = value
	case FieldPhoneNumber:
		d.PhoneNumber = value
	case FieldPosition:
		d.Position = Position(value)
	case FieldRelevantExperience:
		d.RelevantExperience = value
	case FieldPortfolioURL:
		d.PortfolioURL = value
	case FieldManagementExperience:
		d.ManagementExperience = value
	case FieldPreferredInterviewTime:
		d.PreferredInterviewTime = value
	default:
		return d, false
	}
	return d, true
}

// WithSkill returns a copy of the draft with one skill flag changed.
func (d ApplicationDraft) WithSkill(skill Skill, checked bool) ApplicationDraft {
	d.Skills = d.Skills.With(skill, checked)
	return d
}

// interviewLayouts are the accepted encodings of a local date-time, most
// specific last.
var interviewLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// InterviewTime parses PreferredInterviewTime. Values from a datetime-local
// control carry no zone and are returned in UTC.
func (d ApplicationDraft) InterviewTime() (time.Time, bool) {
	v := strings.TrimSpace(d.PreferredInterviewTime)
	for _, layout := range interviewLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FieldSet is a set of form fields.
type FieldSet uint16

// NewFieldSet returns a set holding the given fields.
func NewFieldSet(fields ...FieldName) FieldSet {
	var s FieldSet
	for _, f := range fields {
		s = s.With(f)
	}
	return s
}

// With returns the set with f added. Unknown fields are ignored.
func (s FieldSet) With(f FieldName) FieldSet {
	if i := f.index(); i >= 0 {
		s |= 1 << i
	}
	return s
}

// Contains reports whether f is in the set.
func (s FieldSet) Contains(f FieldName) bool {
	i := f.index()
	return i >= 0 && s&(1<<i) != 0
}

// Fields returns the members in display order.
func (s FieldSet) Fields() []FieldName {
	var out []FieldName
	for i, f := range formOrder {
		if s&(1<<i) != 0 {
			out = append(out, f)
		}
	}
	return out
}

// Len returns the number of fields in the set.
func (s FieldSet) Len() int {
	n := 0
	for i := range formOrder {
		if s&(1<<i) != 0 {
			n++
		}
	}
	return n
}

// MarshalJSON encodes the set as an ordered array of field names.
func (s FieldSet) MarshalJSON() ([]byte, error) {
	fields := s.Fields()
	if fields == nil {
		fields = []FieldName{}
	}
	return json.Marshal(fields)
}
