// Package autofill merges a parsed resume into an application form without
// ever overwriting something the applicant already entered.
package autofill

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/jonathan/application-wizard/internal/types"
)

// IsBlank reports whether v is absent or a string of only whitespace.
// Booleans are never blank, so an unchecked box is still a user value.
func IsBlank(v any) bool {
	switch tv := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(tv) == ""
	case *string:
		return tv == nil || strings.TrimSpace(*tv) == ""
	case bool:
		return false
	default:
		return strings.TrimSpace(fmt.Sprint(tv)) == ""
	}
}

// MergeScalar returns incoming when current is blank and incoming is present,
// otherwise current.
func MergeScalar(current, incoming any) any {
	if isNil(incoming) {
		return current
	}
	if !IsBlank(current) {
		return current
	}
	if p, ok := incoming.(*string); ok {
		return *p
	}
	return incoming
}

// MergeListByPosition merges incoming into current index by index. Entries
// without an incoming counterpart pass through unchanged, new entries are added
// only up to maxLength, and the result never holds more than maxLength entries.
func MergeListByPosition[C, I any](current []C, incoming []I, maxLength int, merge func(C, I) C) []C {
	if maxLength < 0 {
		maxLength = 0
	}
	kept := min(len(current), maxLength)
	size := max(kept, min(len(incoming), maxLength))

	out := make([]C, size)
	copy(out, current[:kept])
	for i := 0; i < size && i < len(incoming); i++ {
		out[i] = merge(out[i], incoming[i])
	}
	return out
}

// MergeAll returns a new form with every blank field that the parsed resume
// can supply filled in. Neither input is modified. A nil resume or missing
// sections contribute nothing.
func MergeAll(form types.FormState, parsed *types.ParsedResume) types.FormState {
	out := form.Clone()
	if out.Fields == nil {
		out.Fields = map[string]any{}
	}
	if parsed == nil {
		return out
	}

	mergeContact(out.Fields, parsed.Contact)

	if IsBlank(out.Fields["position"]) && !IsBlank(parsed.TargetRole) {
		out.Fields["position"] = *parsed.TargetRole
	}

	mergeEducation(out.Fields, parsed.Education)
	mergeSkills(out.Fields, parsed.Skills)

	out.Employment = MergeListByPosition(out.Employment, parsed.Employment, types.MaxEmploymentEntries, mergeEmployment)
	out.References = MergeListByPosition(out.References, parsed.References, types.MaxReferenceEntries, mergeReference)
	return out
}

// Report runs MergeAll and lists the field paths that went from blank to
// filled, e.g. "email" or "employment[1].company".
func Report(form types.FormState, parsed *types.ParsedResume) (types.FormState, []string) {
	merged := MergeAll(form, parsed)
	return merged, FilledPaths(form, merged)
}

// FilledPaths compares two forms and returns the paths that were blank in
// before and are non-blank in after.
func FilledPaths(before, after types.FormState) []string {
	var filled []string

	keys := make([]string, 0, len(after.Fields))
	for k := range after.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if IsBlank(before.Fields[k]) && !IsBlank(after.Fields[k]) {
			filled = append(filled, k)
		}
	}

	filled = append(filled, diffEntries("employment", before.Employment, after.Employment)...)
	filled = append(filled, diffEntries("references", before.References, after.References)...)
	return filled
}

func mergeContact(fields map[string]any, c *types.ParsedContact) {
	if c == nil {
		return
	}
	fillField(fields, "name", c.Name)
	fillField(fields, "email", c.Email)
	fillField(fields, "phone", trimmed(c.Phone))
	fillField(fields, "cell", trimmed(c.Cell))
	fillField(fields, "address", c.Address)
	fillField(fields, "city", c.City)
	fillField(fields, "state", c.State)
	fillField(fields, "zip", c.Zip)

	if !IsBlank(fields["location"]) {
		return
	}
	if guess := locationGuess(c); guess != "" {
		fields["location"] = guess
	}
}

// locationGuess prefers an explicit location and otherwise joins the
// non-blank parts of city, state and zip.
func locationGuess(c *types.ParsedContact) string {
	if !IsBlank(c.Location) {
		return *c.Location
	}
	var parts []string
	for _, p := range []*string{c.City, c.State, c.Zip} {
		if !IsBlank(p) {
			parts = append(parts, *p)
		}
	}
	return strings.Join(parts, ", ")
}

// mergeEducation fills the education step from the highest school listed.
func mergeEducation(fields map[string]any, e *types.ParsedEducation) {
	if e == nil {
		return
	}
	schools := []struct{ name, years, major *string }{
		{e.Graduate, e.GraduateYears, e.GraduateMajor},
		{e.Trade, e.TradeYears, e.TradeMajor},
		{e.High, e.HighYears, e.HighMajor},
	}
	for _, s := range schools {
		if IsBlank(s.name) {
			continue
		}
		fillField(fields, "educationSchoolName", s.name)
		fillField(fields, "educationYears", s.years)
		fillField(fields, "educationFieldOfStudy", s.major)
		return
	}
}

func mergeSkills(fields map[string]any, s *types.ParsedSkills) {
	if s == nil {
		return
	}
	fillField(fields, "skillsSoftware", s.ComputerSkills)
	fillField(fields, "typingSpeed", s.TypingSpeed)
	fillField(fields, "tenKey", s.TenKey)
	fillField(fields, "tenKeyMode", nonBlank(s.TenKeyMode))
	fillField(fields, "driverLicense", nonBlank(s.DriverLicense))
}

func mergeEmployment(cur types.EmploymentEntry, in types.ParsedEmployment) types.EmploymentEntry {
	fillText(&cur.Company, in.Company)
	fillText(&cur.Address, in.Address)
	fillText(&cur.Phone, trimmed(in.Phone))
	fillText(&cur.Position, in.Position)
	fillText(&cur.DateFrom, in.DateFrom)
	fillText(&cur.DateTo, in.DateTo)
	fillText(&cur.Duties, in.Duties)
	fillText(&cur.Supervisor, in.Supervisor)
	fillText(&cur.ReasonForLeaving, in.ReasonForLeaving)
	return cur
}

func mergeReference(cur types.Reference, in types.ParsedReference) types.Reference {
	fillText(&cur.Name, in.Name)
	fillText(&cur.Company, in.Company)
	fillText(&cur.Phone, trimmed(in.Phone))
	return cur
}

func fillField(fields map[string]any, key string, incoming *string) {
	if incoming == nil {
		return
	}
	fields[key] = MergeScalar(fields[key], *incoming)
}

func fillText(dst *string, incoming *string) {
	if incoming == nil || !IsBlank(*dst) {
		return
	}
	*dst = *incoming
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	return &s
}

func nonBlank(p *string) *string {
	if IsBlank(p) {
		return nil
	}
	return p
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// diffEntries walks two lists of flat string structs and reports fields that
// became non-blank.
func diffEntries[T any](section string, before, after []T) []string {
	var filled []string
	for i, entry := range after {
		av := reflect.ValueOf(entry)
		var bv reflect.Value
		if i < len(before) {
			bv = reflect.ValueOf(before[i])
		}
		for f := 0; f < av.NumField(); f++ {
			newVal := av.Field(f).String()
			oldVal := ""
			if bv.IsValid() {
				oldVal = bv.Field(f).String()
			}
			if IsBlank(oldVal) && !IsBlank(newVal) {
				filled = append(filled, fmt.Sprintf("%s[%d].%s", section, i, jsonName(av.Type().Field(f))))
			}
		}
	}
	return filled
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" {
		return f.Name
	}
	return name
}
