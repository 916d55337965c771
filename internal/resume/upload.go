// Package resume turns an uploaded resume file into structured data for
// autofill.
package resume

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// MaxUploadBytes is the largest resume accepted when no other limit is set.
const MaxUploadBytes = 5 * 1024 * 1024

// AllowedExtensions lists the accepted resume file extensions.
var AllowedExtensions = []string{".pdf", ".doc", ".docx", ".txt"}

// ErrNoText is returned when a file yields no readable text.
var ErrNoText = errors.New("could not extract text from resume")

// UploadError describes why a file was refused before any parsing.
// Its message is safe to show to the applicant.
type UploadError struct {
	Filename string
	Reason   string
}

func (e *UploadError) Error() string {
	return e.Reason
}

// Extension returns the lowercase extension of filename including the dot,
// or "" when there is none.
func Extension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// IsAllowed reports whether filename has an accepted extension.
func IsAllowed(filename string) bool {
	ext := Extension(filename)
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// ValidateUpload checks the file name and size. maxBytes <= 0 uses
// MaxUploadBytes.
func ValidateUpload(filename string, size int64, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = MaxUploadBytes
	}
	if filename == "" {
		return &UploadError{Reason: "No file provided."}
	}
	if !IsAllowed(filename) {
		ext := Extension(filename)
		if ext == "" {
			ext = "unknown"
		}
		return &UploadError{
			Filename: filename,
			Reason:   fmt.Sprintf("Unsupported file type: %s. Please upload PDF, DOC, DOCX, or TXT.", ext),
		}
	}
	if size > maxBytes {
		return &UploadError{
			Filename: filename,
			Reason: fmt.Sprintf("File is too large (%.1f MB). Max allowed is %s MB.",
				float64(size)/(1024*1024), formatMB(maxBytes)),
		}
	}
	return nil
}

func formatMB(n int64) string {
	mb := float64(n) / (1024 * 1024)
	if mb == float64(int64(mb)) {
		return fmt.Sprintf("%d", int64(mb))
	}
	return fmt.Sprintf("%.1f", mb)
}
