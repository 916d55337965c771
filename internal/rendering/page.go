package rendering

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html.tmpl
var templateFiles embed.FS

// Row is one label/value line of a card.
type Row struct {
	Label string
	Value string
}

// Card is a bordered block of rows.
type Card struct {
	Title      string
	Rows       []Row
	Paragraphs []string
	// Signature is a validated data:image URL of a drawn signature.
	Signature template.URL
	Note      string
}

// LegalParagraph is one paragraph of notice text exactly as the applicant saw
// it.
type LegalParagraph struct {
	Text    string
	Warning bool
}

// Page is everything one document shows.
type Page struct {
	Organization string
	// DocTitle is the document title used for the PDF metadata.
	DocTitle string
	Title    string
	Subtitle string
	Legal    []LegalParagraph
	Cards    []Card
	Footer   string
}

// Renderer executes the document template.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded document template.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFiles, "templates/document.html.tmpl")
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse document template", Cause: err}
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render returns the HTML for page.
func (r *Renderer) Render(page Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "document.html.tmpl", page); err != nil {
		return nil, &TemplateError{Message: fmt.Sprintf("failed to execute template for %q", page.Title), Cause: err}
	}
	return buf.Bytes(), nil
}

// SplitParagraphs splits text on blank lines, dropping empty paragraphs.
func SplitParagraphs(text string) []string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DisplayValue renders a form value for a document: booleans become Yes/No,
// strings are trimmed and anything absent is empty.
func DisplayValue(v any) string {
	switch tv := v.(type) {
	case nil:
		return ""
	case bool:
		if tv {
			return "Yes"
		}
		return "No"
	case string:
		return strings.TrimSpace(tv)
	default:
		return strings.TrimSpace(fmt.Sprint(tv))
	}
}
