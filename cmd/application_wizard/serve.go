package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/application-wizard/internal/application"
	"github.com/jonathan/application-wizard/internal/rendering"
	"github.com/jonathan/application-wizard/internal/server"
	"github.com/jonathan/application-wizard/internal/server/ratelimit"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the resume parsing, autofill, wizard and submission endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	resumes, closeLLM, err := newResumeService(context.Background(), cfg, false)
	if err != nil {
		return err
	}
	defer closeLLM()
	if !resumes.SmartReady() {
		log.Printf("[server] GEMINI_API_KEY not set, resumes use the regex fallback parser")
	}

	var mailer application.Mailer
	if cfg.Mail.Ready() {
		mailer = application.NewSMTPMailer(cfg.Mail)
	} else {
		log.Printf("[server] SMTP is not fully configured, submissions will be rejected")
	}

	submissions, err := application.NewService(application.Options{
		From:         cfg.Mail.From,
		To:           cfg.Mail.To,
		Organization: cfg.Organization,
		Printer:      rendering.NewPrinter(cfg.PDFEngine, false),
		Mailer:       mailer,
	})
	if err != nil {
		return fmt.Errorf("failed to create submission service: %w", err)
	}

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		AllowedOrigins: cfg.AllowedOrigins(),
		PDFEngine:      cfg.PDFEngine,
		MailReady:      cfg.Mail.Ready(),
		RateLimit:      ratelimit.FromSettings(cfg.RateLimit),
	}, resumes, submissions)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
