package application

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/application-wizard/internal/rendering"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Attachment is one file sent with an application email.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// SafeName replaces runs of characters outside [A-Za-z0-9._-] with "_" and
// trims leading and trailing underscores. Empty results become def.
func SafeName(s, def string) string {
	safe := strings.Trim(unsafeNameChars.ReplaceAllString(s, "_"), "_")
	if safe == "" {
		return def
	}
	return safe
}

// AttachmentName builds names like "2_EEO_Jane_Doe_Field_Technician.pdf".
func AttachmentName(number int, kind rendering.Kind, applicant, position, ext string) string {
	return fmt.Sprintf("%d_%s_%s_%s%s",
		number, kind, SafeName(applicant, "Applicant"), SafeName(position, "Position"), ext)
}
