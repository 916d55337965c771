package application

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/jonathan/application-wizard/internal/config"
)

// Message is an outgoing application email.
type Message struct {
	From        string
	To          string
	ReplyTo     string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Mailer delivers application emails.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	cfg     config.MailConfig
	timeout time.Duration
}

// NewSMTPMailer creates a mailer for cfg. It does not connect until Send.
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, timeout: 20 * time.Second}
}

// Send builds a MIME message and delivers it in one SMTP session.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if m.cfg.Host == "" {
		return ErrMailNotConfigured
	}

	out := mail.NewMsg()
	if err := out.From(msg.From); err != nil {
		return fmt.Errorf("invalid sender address %q: %w", msg.From, err)
	}
	if err := out.To(msg.To); err != nil {
		return fmt.Errorf("invalid recipient address %q: %w", msg.To, err)
	}
	if msg.ReplyTo != "" {
		// Applicant-supplied; a malformed address only loses the header.
		_ = out.ReplyTo(msg.ReplyTo)
	}
	out.Subject(msg.Subject)
	out.SetBodyString(mail.TypeTextPlain, msg.Body)
	for _, a := range msg.Attachments {
		if err := out.AttachReader(a.Name, bytes.NewReader(a.Data), mail.WithFileContentType(mail.ContentType(a.ContentType))); err != nil {
			return fmt.Errorf("failed to attach %s: %w", a.Name, err)
		}
	}

	client, err := mail.NewClient(m.cfg.Host, m.clientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("failed to send mail via %s: %w", m.cfg.Host, err)
	}
	return nil
}

func (m *SMTPMailer) clientOptions() []mail.Option {
	port := m.cfg.Port
	if port == 0 {
		port = config.DefaultSMTPPort
	}
	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTimeout(m.timeout),
	}
	if m.cfg.UseTLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}
	if m.cfg.Username != "" && m.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}
	return opts
}
