package resume

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
)

// ExtractText returns the plain text of a resume file. The format is chosen
// by extension.
func ExtractText(filename string, data []byte) (string, error) {
	var (
		text string
		err  error
	)

	switch Extension(filename) {
	case ".pdf":
		text, err = extractPDF(data)
	case ".doc", ".docx":
		text, err = extractDOCX(data)
	case ".txt":
		text = strings.ToValidUTF8(string(data), "")
	default:
		return "", &UploadError{Filename: filename, Reason: fmt.Sprintf("Unsupported file type: %s", Extension(filename))}
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}

// extractPDF joins the text of every page with a blank line.
func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read PDF page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n\n"), nil
}

// extractDOCX reads word/document.xml and returns its non-empty paragraphs,
// one per line.
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open document: %w", err)
	}

	var body io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			body, err = f.Open()
			if err != nil {
				return "", fmt.Errorf("failed to read document body: %w", err)
			}
			break
		}
	}
	if body == nil {
		return "", fmt.Errorf("document has no word/document.xml part")
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", fmt.Errorf("failed to parse document body: %w", err)
	}

	var paragraphs []string
	doc.Find(`w\:p`).Each(func(_ int, p *goquery.Selection) {
		var sb strings.Builder
		p.Find(`w\:t`).Each(func(_ int, t *goquery.Selection) {
			sb.WriteString(t.Text())
		})
		if text := sb.String(); strings.TrimSpace(text) != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	return strings.Join(paragraphs, "\n"), nil
}
