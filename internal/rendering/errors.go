// Package rendering turns a submitted application into printable documents.
package rendering

import "fmt"

// TemplateError represents an error parsing or executing a document template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// PrintError represents a failure converting a rendered document to its
// delivery format
type PrintError struct {
	Document string
	Cause    error
}

func (e *PrintError) Error() string {
	return fmt.Sprintf("print error: %s: %v", e.Document, e.Cause)
}

func (e *PrintError) Unwrap() error {
	return e.Cause
}
