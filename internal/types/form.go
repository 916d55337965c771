// Package types provides type definitions for structured data used throughout the application wizard.
package types

import (
	"encoding/json"
	"fmt"
)

// MaxEmploymentEntries is the number of employer blocks the Employment step shows.
const MaxEmploymentEntries = 3

// MaxReferenceEntries is the number of reference blocks the References step shows.
const MaxReferenceEntries = 3

// EmploymentEntry represents one employer block of the Employment step.
type EmploymentEntry struct {
	Company          string `json:"company"`
	Address          string `json:"address"`
	Phone            string `json:"phone"`
	Position         string `json:"position"`
	DateFrom         string `json:"dateFrom"`
	DateTo           string `json:"dateTo"`
	Duties           string `json:"duties"`
	ReasonForLeaving string `json:"reasonForLeaving"`
	Supervisor       string `json:"supervisor"`
}

// Reference represents one professional reference.
type Reference struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
}

// FormState is the complete application form.
// Scalar fields live in Fields keyed by their wire name; values are strings or
// booleans. The two repeating sections are positional: index is identity.
type FormState struct {
	Fields     map[string]any
	Employment []EmploymentEntry
	References []Reference
}

// NewFormState returns an empty form with every known scalar field present
// and the employment/reference blocks padded to their display size.
func NewFormState() FormState {
	fields := make(map[string]any, len(ScalarFields))
	for _, f := range ScalarFields {
		if f.Kind == KindBool {
			fields[f.Name] = false
			continue
		}
		fields[f.Name] = ""
	}
	return FormState{
		Fields:     fields,
		Employment: make([]EmploymentEntry, MaxEmploymentEntries),
		References: make([]Reference, MaxReferenceEntries),
	}
}

// Clone returns a deep copy so callers can derive a new state without
// touching the original.
func (f FormState) Clone() FormState {
	out := FormState{
		Fields: make(map[string]any, len(f.Fields)),
	}
	for k, v := range f.Fields {
		out.Fields[k] = v
	}
	if f.Employment != nil {
		out.Employment = append([]EmploymentEntry(nil), f.Employment...)
	}
	if f.References != nil {
		out.References = append([]Reference(nil), f.References...)
	}
	return out
}

// String returns the string value of a scalar field, or "" when the field is
// absent or not a string.
func (f FormState) String(name string) string {
	if s, ok := f.Fields[name].(string); ok {
		return s
	}
	return ""
}

// Bool returns the boolean value of a scalar field.
func (f FormState) Bool(name string) bool {
	b, _ := f.Fields[name].(bool)
	return b
}

// With returns a copy of the form with one scalar field set.
func (f FormState) With(name string, value any) FormState {
	out := f.Clone()
	out.Fields[name] = value
	return out
}

// MarshalJSON writes the form as a single flat object, the same shape the
// browser submits.
func (f FormState) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(f.Fields)+2)
	for k, v := range f.Fields {
		flat[k] = v
	}
	employment := f.Employment
	if employment == nil {
		employment = []EmploymentEntry{}
	}
	references := f.References
	if references == nil {
		references = []Reference{}
	}
	flat["employment"] = employment
	flat["references"] = references
	return json.Marshal(flat)
}

// UnmarshalJSON reads a flat form object. Scalar values that are neither
// strings nor booleans are kept as their string rendering; null is dropped.
func (f *FormState) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode form: %w", err)
	}

	out := FormState{Fields: make(map[string]any, len(raw))}
	for key, msg := range raw {
		switch key {
		case "employment":
			if err := decodeList(msg, &out.Employment); err != nil {
				return fmt.Errorf("failed to decode employment: %w", err)
			}
		case "references":
			if err := decodeList(msg, &out.References); err != nil {
				return fmt.Errorf("failed to decode references: %w", err)
			}
		default:
			var v any
			if err := json.Unmarshal(msg, &v); err != nil {
				return fmt.Errorf("failed to decode field %s: %w", key, err)
			}
			switch tv := v.(type) {
			case nil:
			case string, bool:
				out.Fields[key] = tv
			case float64:
				out.Fields[key] = string(msg)
			default:
				// nested objects have no meaning at the top level of the form
			}
		}
	}

	*f = out
	return nil
}

// decodeList tolerates null and non-array values by leaving the list empty.
func decodeList[T any](msg json.RawMessage, dst *[]T) error {
	var probe any
	if err := json.Unmarshal(msg, &probe); err != nil {
		return err
	}
	items, ok := probe.([]any)
	if !ok {
		return nil
	}
	list := make([]T, 0, len(items))
	for _, item := range items {
		b, err := json.Marshal(item)
		if err != nil {
			return err
		}
		var entry T
		if _, isObj := item.(map[string]any); isObj {
			if err := json.Unmarshal(b, &entry); err != nil {
				return err
			}
		}
		list = append(list, entry)
	}
	*dst = list
	return nil
}
