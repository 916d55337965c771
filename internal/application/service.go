// Package application turns a submitted wizard payload into the set of
// documents the hiring office receives and emails them.
package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"text/template"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/application-wizard/internal/rendering"
	"github.com/jonathan/application-wizard/internal/resume"
	"github.com/jonathan/application-wizard/internal/schemas"
	"github.com/jonathan/application-wizard/internal/types"
	schemafiles "github.com/jonathan/application-wizard/schemas"
)

// Upload is an optional resume sent with the application.
type Upload struct {
	Filename string
	Data     []byte
}

// Receipt describes an accepted submission.
type Receipt struct {
	SubmissionID string
	Attachments  []string
}

// Options configures a Service.
type Options struct {
	From         string
	To           string
	Organization string
	Printer      rendering.Printer
	Mailer       Mailer
}

// Service renders and delivers applications.
type Service struct {
	from     string
	to       string
	builder  rendering.Builder
	renderer *rendering.Renderer
	printer  rendering.Printer
	mailer   Mailer
	newID    func() string
}

// NewService creates a submission service. A nil printer attaches HTML.
func NewService(opts Options) (*Service, error) {
	renderer, err := rendering.NewRenderer()
	if err != nil {
		return nil, err
	}
	printer := opts.Printer
	if printer == nil {
		printer = rendering.HTMLPrinter{}
	}
	return &Service{
		from:     opts.From,
		to:       opts.To,
		builder:  rendering.Builder{Organization: opts.Organization},
		renderer: renderer,
		printer:  printer,
		mailer:   opts.Mailer,
		newID:    uuid.NewString,
	}, nil
}

// DecodePayload checks raw JSON against the payload schema and decodes it.
func DecodePayload(data []byte) (*types.SubmissionPayload, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &PayloadError{Message: "Invalid payload."}
	}
	if err := schemas.ValidateDocument(schemafiles.ApplicationPayload, data); err != nil {
		return nil, &PayloadError{Message: "Invalid payload.", Cause: err}
	}

	var payload types.SubmissionPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &PayloadError{Message: "Invalid payload.", Cause: err}
	}
	if err := payload.Validate(); err != nil {
		return nil, &PayloadError{Message: "Invalid form object.", Cause: err}
	}
	return &payload, nil
}

// Submit renders every document for payload, converts the resume when it is
// not a PDF and mails everything in a single message.
func (s *Service) Submit(ctx context.Context, payload *types.SubmissionPayload, upload *Upload) (*Receipt, error) {
	if payload == nil {
		return nil, &PayloadError{Message: "Invalid payload."}
	}
	if err := payload.Validate(); err != nil {
		return nil, &PayloadError{Message: "Invalid form object.", Cause: err}
	}
	if upload != nil && upload.Filename != "" && !resume.IsAllowed(upload.Filename) {
		return nil, &resume.UploadError{
			Filename: upload.Filename,
			Reason:   fmt.Sprintf("Unsupported resume file type: %s", resume.Extension(upload.Filename)),
		}
	}
	if s.mailer == nil {
		return nil, ErrMailNotConfigured
	}

	id := s.newID()
	form := *payload.Form
	applicant := orDefault(form.String("name"), "Applicant")
	position := orDefault(form.String("position"), "Unknown Position")
	log.Printf("[submit] %s: rendering documents for %q (%s)", id, applicant, position)

	attachments, err := s.Attachments(ctx, payload, upload)
	if err != nil {
		return nil, err
	}

	body, err := messageBody(applicant, position, orDefault(form.String("email"), "No email"), attachments)
	if err != nil {
		return nil, err
	}
	msg := Message{
		From:        s.from,
		To:          s.to,
		ReplyTo:     strings.TrimSpace(form.String("email")),
		Subject:     fmt.Sprintf("New Employment Application: %s, %s", applicant, position),
		Body:        body,
		Attachments: attachments,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		if errors.Is(err, ErrMailNotConfigured) {
			return nil, err
		}
		return nil, &DeliveryError{SubmissionID: id, Cause: err}
	}

	receipt := &Receipt{SubmissionID: id}
	for _, a := range attachments {
		receipt.Attachments = append(receipt.Attachments, a.Name)
	}
	log.Printf("[submit] %s: delivered %d attachments to %s", id, len(attachments), s.to)
	return receipt, nil
}

// Attachments renders and prints the five application documents in parallel
// and appends the resume when one was uploaded. Order is stable.
func (s *Service) Attachments(ctx context.Context, payload *types.SubmissionPayload, upload *Upload) ([]Attachment, error) {
	form := *payload.Form
	applicant := form.String("name")
	position := form.String("position")
	format := s.printer.Format()

	docs := s.builder.Documents(payload)
	out := make([]Attachment, len(docs))

	printer, release, err := rendering.Begin(ctx, s.printer)
	if err != nil {
		return nil, &rendering.PrintError{Document: "all documents", Cause: err}
	}
	defer release()

	g, gCtx := errgroup.WithContext(ctx)
	for i, doc := range docs {
		g.Go(func() error {
			data, err := s.print(gCtx, printer, doc.Page)
			if err != nil {
				return fmt.Errorf("document %d (%s) failed: %w", doc.Number, doc.Kind, err)
			}
			out[i] = Attachment{
				Name:        AttachmentName(doc.Number, doc.Kind, applicant, position, format.Extension),
				ContentType: format.ContentType,
				Data:        data,
			}
			return nil
		})
	}

	var resumeAttachment *Attachment
	if upload != nil && len(upload.Data) > 0 {
		g.Go(func() error {
			a, err := s.resumeAttachment(gCtx, printer, upload, len(docs)+1, applicant, position)
			if err != nil {
				return fmt.Errorf("resume conversion failed: %w", err)
			}
			resumeAttachment = a
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if resumeAttachment != nil {
		out = append(out, *resumeAttachment)
	}
	return out, nil
}

func (s *Service) resumeAttachment(ctx context.Context, printer rendering.Printer, upload *Upload, number int, applicant, position string) (*Attachment, error) {
	if resume.Extension(upload.Filename) == ".pdf" {
		return &Attachment{
			Name:        AttachmentName(number, rendering.KindResume, applicant, position, rendering.FormatPDF.Extension),
			ContentType: rendering.FormatPDF.ContentType,
			Data:        upload.Data,
		}, nil
	}

	text, err := resume.ExtractText(upload.Filename, upload.Data)
	if err != nil {
		return nil, err
	}
	data, err := s.print(ctx, printer, s.builder.ResumePage(text))
	if err != nil {
		return nil, err
	}
	format := s.printer.Format()
	return &Attachment{
		Name:        AttachmentName(number, rendering.KindResume, applicant, position, format.Extension),
		ContentType: format.ContentType,
		Data:        data,
	}, nil
}

func (s *Service) print(ctx context.Context, printer rendering.Printer, page rendering.Page) ([]byte, error) {
	html, err := s.renderer.Render(page)
	if err != nil {
		return nil, err
	}
	data, err := printer.Print(ctx, html)
	if err != nil {
		return nil, &rendering.PrintError{Document: page.DocTitle, Cause: err}
	}
	return data, nil
}

var bodyTemplate = template.Must(template.New("body").Parse(`A new employment application was submitted from the web form.

Name: {{.Applicant}}
Position: {{.Position}}
Applicant Email: {{.Email}}

Attached documents:
{{range .Attachments}}- {{.Name}}
{{end}}`))

func messageBody(applicant, position, email string, attachments []Attachment) (string, error) {
	var buf bytes.Buffer
	err := bodyTemplate.Execute(&buf, struct {
		Applicant, Position, Email string
		Attachments                []Attachment
	}{applicant, position, email, attachments})
	if err != nil {
		return "", fmt.Errorf("failed to build message body: %w", err)
	}
	return buf.String(), nil
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}
