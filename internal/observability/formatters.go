// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/application-wizard/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if utf8.RuneCountInString(line) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintParsedResume outputs a human-readable summary of a parsed resume.
func (p *Printer) PrintParsedResume(parsed *types.ParsedResume, meta types.ParseMeta) {
	if parsed == nil {
		return
	}

	var sb strings.Builder
	if c := parsed.Contact; c != nil {
		sb.WriteString(fmt.Sprintf("Name:     %s\n", orDash(c.Name)))
		sb.WriteString(fmt.Sprintf("Email:    %s\n", orDash(c.Email)))
		sb.WriteString(fmt.Sprintf("Phone:    %s\n", orDash(c.Phone)))
		sb.WriteString(fmt.Sprintf("Location: %s\n", orDash(c.Location)))
	}
	if parsed.TargetRole != nil {
		sb.WriteString(fmt.Sprintf("Role:     %s\n", orDash(parsed.TargetRole)))
	}
	sb.WriteString("\n")

	if len(parsed.Employment) > 0 {
		sb.WriteString("Employment:\n")
		count := min(len(parsed.Employment), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := parsed.Employment[i]
			sb.WriteString(fmt.Sprintf("  • %s", orDash(e.Company)))
			if e.Position != nil && *e.Position != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", *e.Position))
			}
			sb.WriteString("\n")
		}
		if len(parsed.Employment) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(parsed.Employment)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(parsed.References) > 0 {
		sb.WriteString(fmt.Sprintf("References: %d\n\n", len(parsed.References)))
	}

	sb.WriteString(fmt.Sprintf("Parser:   %s (%s)\n", meta.Model, meta.Mode))
	sb.WriteString(fmt.Sprintf("Chars:    %d", meta.CharactersUsed))
	if meta.Truncated {
		sb.WriteString(" (truncated)")
	}

	p.printBox("PARSED RESUME", sb.String())
}

// PrintAutofill lists the form fields autofill filled in.
func (p *Printer) PrintAutofill(filled []string) {
	if len(filled) == 0 {
		p.printBox("AUTOFILL", "No blank fields could be filled.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Fields filled: %d\n\n", len(filled)))
	for _, path := range filled {
		sb.WriteString(fmt.Sprintf("  • %s\n", path))
	}
	p.printBox("AUTOFILL", strings.TrimSuffix(sb.String(), "\n"))
}

func orDash(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "-"
	}
	return *s
}
