package types

import "fmt"

// ErrorKind classifies why a field failed validation.
type ErrorKind string

const (
	ErrorRequired      ErrorKind = "required"
	ErrorFormatInvalid ErrorKind = "format_invalid"
	ErrorNotNumeric    ErrorKind = "not_numeric"
	ErrorOutOfRange    ErrorKind = "out_of_range"
	ErrorNoneSelected  ErrorKind = "none_selected"
)

// FieldError is the single validation failure reported for one field.
type FieldError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// ErrorMap holds the current failure of every failing field. A missing key
// means the field has no error.
type ErrorMap map[FieldName]FieldError

// Empty reports whether no field has an error.
func (m ErrorMap) Empty() bool {
	return len(m) == 0
}

// Fields returns the failing fields in display order.
func (m ErrorMap) Fields() []FieldName {
	var out []FieldName
	for _, f := range formOrder {
		if _, ok := m[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Kinds returns a map of field to error kind, handy for comparisons.
func (m ErrorMap) Kinds() map[FieldName]ErrorKind {
	out := make(map[FieldName]ErrorKind, len(m))
	for f, e := range m {
		out[f] = e.Kind
	}
	return out
}

// SessionState is the lifecycle state of one application attempt.
type SessionState string

const (
	SessionEditing  SessionState = "editing"
	SessionAccepted SessionState = "accepted"
)

// UnknownFieldError reports a field or skill name outside the fixed form.
type UnknownFieldError struct {
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown form field %q", e.Name)
}

// ValueTypeError reports an edit whose value has the wrong type for the field.
type ValueTypeError struct {
	Name string
	Want string
	Got  any
}

func (e *ValueTypeError) Error() string {
	return fmt.Sprintf("form field %q takes a %s value, got %T", e.Name, e.Want, e.Got)
}
