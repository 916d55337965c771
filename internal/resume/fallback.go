package resume

import (
	"regexp"
	"strings"

	"github.com/jonathan/application-wizard/internal/types"
)

const stateCodes = `AL|AK|AZ|AR|CA|CO|CT|DE|FL|GA|HI|ID|IL|IN|IA|KS|KY|LA|ME|MD|MA|MI|MN|MS|MO|MT|NE|NV|NH|NJ|NM|NY|NC|ND|OH|OK|OR|PA|RI|SC|SD|TN|TX|UT|VT|VA|WA|WV|WI|WY`

var (
	emailRe     = regexp.MustCompile(`(?i)\b[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}\b`)
	phoneRe     = regexp.MustCompile(`(?i)(?:(?:\+?1[\s\-.])?\(?\d{3}\)?[\s\-.]?\d{3}[\s\-.]?\d{4})(?:\s*(?:x|ext\.?)\s*\d+)?`)
	zipRe       = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)
	stateRe     = regexp.MustCompile(`\b(` + stateCodes + `)\b`)
	cityStateRe = regexp.MustCompile(`\b([A-Za-z][A-Za-z .'-]{1,30}),\s*(` + stateCodes + `)\b`)
	nameLineRe  = regexp.MustCompile(`^[A-Za-z .'-]{2,60}$`)
)

// FallbackParse extracts contact details with regular expressions. It is used
// when the smart parser is unavailable or fails, and never returns an error.
func FallbackParse(text string) types.ParsedResume {
	contact := &types.ParsedContact{}

	if m := emailRe.FindString(text); m != "" {
		contact.Email = types.Ptr(m)
	}

	phones := phoneRe.FindAllString(text, 2)
	if len(phones) > 0 {
		contact.Phone = types.Ptr(phones[0])
	}
	if len(phones) > 1 {
		contact.Cell = types.Ptr(phones[1])
	}

	if line := firstNonEmptyLine(text); line != "" && !strings.Contains(line, "@") && nameLineRe.MatchString(line) {
		contact.Name = types.Ptr(line)
	}

	if m := cityStateRe.FindStringSubmatch(text); m != nil {
		city := strings.TrimSpace(m[1])
		state := strings.TrimSpace(m[2])
		contact.City = types.Ptr(city)
		contact.State = types.Ptr(state)
		contact.Location = types.Ptr(city + ", " + state)
	}

	if m := zipRe.FindString(text); m != "" {
		contact.Zip = types.Ptr(m)
	}

	if contact.State == nil {
		if m := stateRe.FindString(text); m != "" {
			contact.State = types.Ptr(m)
		}
	}

	return types.ParsedResume{
		Contact:    contact,
		Employment: []types.ParsedEmployment{},
		Education:  &types.ParsedEducation{},
		Skills:     &types.ParsedSkills{},
		References: []types.ParsedReference{},
	}
}

func firstNonEmptyLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			return s
		}
	}
	return ""
}
