package resume

import (
	"strconv"
	"strings"

	"github.com/jonathan/application-wizard/internal/types"
)

// Normalize converts raw parser output into a ParsedResume. Alias keys are
// folded into their canonical names, numbers become strings, anything of the
// wrong shape is dropped, and the employment and reference lists are capped.
func Normalize(raw map[string]any) types.ParsedResume {
	contact := object(raw["contact"])
	education := object(raw["education"])
	skills := object(raw["skills"])

	out := types.ParsedResume{
		Contact: &types.ParsedContact{
			Name:     text(contact["name"]),
			Email:    text(contact["email"]),
			Phone:    text(contact["phone"]),
			Cell:     first(contact, "cell", "mobile"),
			Address:  text(contact["address"]),
			City:     text(contact["city"]),
			State:    text(contact["state"]),
			Zip:      text(contact["zip"]),
			Location: text(contact["location"]),
		},
		TargetRole: first(raw, "targetRole", "objective", "position"),
		Education: &types.ParsedEducation{
			Graduate:      text(education["graduate"]),
			GraduateYears: text(education["graduateYears"]),
			GraduateMajor: text(education["graduateMajor"]),
			Trade:         text(education["trade"]),
			TradeYears:    text(education["tradeYears"]),
			TradeMajor:    text(education["tradeMajor"]),
			High:          text(education["high"]),
			HighYears:     text(education["highYears"]),
			HighMajor:     text(education["highMajor"]),
		},
		Skills: &types.ParsedSkills{
			TypingSpeed:    text(skills["typingSpeed"]),
			TenKey:         text(skills["tenKey"]),
			TenKeyMode:     text(skills["tenKeyMode"]),
			ComputerSkills: text(skills["computerSkills"]),
			DriverLicense:  text(skills["driverLicense"]),
		},
		Employment: []types.ParsedEmployment{},
		References: []types.ParsedReference{},
	}

	for _, item := range capped(raw["employment"], types.MaxEmploymentEntries) {
		job := object(item)
		out.Employment = append(out.Employment, types.ParsedEmployment{
			Company:          text(job["company"]),
			Address:          text(job["address"]),
			Phone:            text(job["phone"]),
			Position:         text(job["position"]),
			DateFrom:         first(job, "dateFrom", "startDate"),
			DateTo:           first(job, "dateTo", "endDate"),
			Duties:           first(job, "duties", "summary"),
			ReasonForLeaving: first(job, "reasonForLeaving", "reason"),
			Supervisor:       text(job["supervisor"]),
		})
	}

	for _, item := range capped(raw["references"], types.MaxReferenceEntries) {
		ref := object(item)
		out.References = append(out.References, types.ParsedReference{
			Name:    text(ref["name"]),
			Company: text(ref["company"]),
			Phone:   text(ref["phone"]),
		})
	}

	return out
}

// NormalizeParsed re-runs the list caps and fills missing sections of an
// already typed resume, so the fallback and smart paths return the same shape.
func NormalizeParsed(p types.ParsedResume) types.ParsedResume {
	if p.Contact == nil {
		p.Contact = &types.ParsedContact{}
	}
	if p.Education == nil {
		p.Education = &types.ParsedEducation{}
	}
	if p.Skills == nil {
		p.Skills = &types.ParsedSkills{}
	}
	if p.Employment == nil {
		p.Employment = []types.ParsedEmployment{}
	}
	if p.References == nil {
		p.References = []types.ParsedReference{}
	}
	if len(p.Employment) > types.MaxEmploymentEntries {
		p.Employment = p.Employment[:types.MaxEmploymentEntries]
	}
	if len(p.References) > types.MaxReferenceEntries {
		p.References = p.References[:types.MaxReferenceEntries]
	}
	return p
}

func object(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func capped(v any, n int) []any {
	items, _ := v.([]any)
	if len(items) > n {
		items = items[:n]
	}
	return items
}

// text converts a scalar JSON value to a string pointer; null and
// non-scalars become nil.
func text(v any) *string {
	switch tv := v.(type) {
	case string:
		return &tv
	case float64:
		s := strconv.FormatFloat(tv, 'f', -1, 64)
		return &s
	default:
		return nil
	}
}

// first returns the first key holding a non-blank value. When none does, the
// primary key's value is returned as is.
func first(m map[string]any, keys ...string) *string {
	for _, k := range keys {
		if s := text(m[k]); s != nil && strings.TrimSpace(*s) != "" {
			return s
		}
	}
	return text(m[keys[0]])
}
